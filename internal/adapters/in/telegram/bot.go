// Package telegram is the chat transport: it long-polls the Telegram Bot API
// and feeds events into the intake state machine, keeping events of one user
// in arrival order while different users are processed concurrently.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sibcargo/internal/core/application/intake"
	"sibcargo/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	longPollTimeoutSec = 30
	userQueueCapacity  = 16
)

// Bot runs the long-polling loop and dispatches updates through per-user
// queues so one user's events never interleave.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  *slog.Logger

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
	wg     sync.WaitGroup
}

// NewBot authenticates against the Telegram Bot API and creates the transport.
func NewBot(token string, handler *Handler, logger *slog.Logger) (*Bot, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}
	if handler == nil {
		return nil, errs.NewValueIsRequiredError("handler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}

	return &Bot{
		api:     api,
		handler: handler,
		logger:  logger,
		queues:  make(map[int64]chan tgbotapi.Update),
	}, nil
}

// Run long-polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("telegram bot started", slog.String("username", b.api.Self.UserName))

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = longPollTimeoutSec
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.shutdownQueues()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				b.shutdownQueues()
				return nil
			}
			userID, ok := updateUserID(update)
			if !ok {
				continue
			}
			b.enqueue(ctx, userID, update)
		}
	}
}

// enqueue hands the update to the user's serial queue, starting its worker
// on first contact.
func (b *Bot) enqueue(ctx context.Context, userID int64, update tgbotapi.Update) {
	b.mu.Lock()
	queue, ok := b.queues[userID]
	if !ok {
		queue = make(chan tgbotapi.Update, userQueueCapacity)
		b.queues[userID] = queue
		b.wg.Add(1)
		go b.worker(ctx, queue)
	}
	b.mu.Unlock()

	select {
	case queue <- update:
	case <-ctx.Done():
	}
}

func (b *Bot) worker(ctx context.Context, queue <-chan tgbotapi.Update) {
	defer b.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-queue:
			if !ok {
				return
			}
			b.process(ctx, update)
		}
	}
}

func (b *Bot) process(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		replies := b.handler.HandleMessage(ctx, update.Message)
		b.send(update.Message.Chat.ID, replies)
	case update.CallbackQuery != nil:
		b.ackCallback(update.CallbackQuery)
		replies := b.handler.HandleCallback(ctx, update.CallbackQuery)
		if update.CallbackQuery.Message != nil {
			b.send(update.CallbackQuery.Message.Chat.ID, replies)
		}
	}
}

func (b *Bot) ackCallback(cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Warn("callback ack failed", slog.Any("error", err))
	}
}

func (b *Bot) send(chatID int64, replies []intake.Reply) {
	for _, r := range replies {
		msg := tgbotapi.NewMessage(chatID, r.Text)
		msg.ParseMode = tgbotapi.ModeHTML
		if markup := markupFor(r.Keyboard); markup != nil {
			msg.ReplyMarkup = markup
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("sending message failed",
				slog.Int64("chat_id", chatID), slog.Any("error", err))
		}
	}
}

func (b *Bot) shutdownQueues() {
	b.mu.Lock()
	for userID, queue := range b.queues {
		close(queue)
		delete(b.queues, userID)
	}
	b.mu.Unlock()
	b.wg.Wait()
}

func markupFor(keyboard intake.Keyboard) any {
	switch keyboard {
	case intake.KeyboardCalendar:
		return calendarKeyboard(time.Now())
	case intake.KeyboardTimeSlots:
		return timeSlotsKeyboard()
	case intake.KeyboardCancel:
		return cancelKeyboard()
	case intake.KeyboardConfirm:
		return confirmationKeyboard()
	case intake.KeyboardMainMenu:
		return mainMenuKeyboard()
	default:
		return nil
	}
}

func updateUserID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID, true
	default:
		return 0, false
	}
}
