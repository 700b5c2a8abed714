package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sibcargo/internal/core/application/intake"
	"sibcargo/internal/core/application/usecases/commands"
	"sibcargo/internal/core/application/usecases/queries"
	"sibcargo/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const textGreeting = "👋 Добро пожаловать в <b>SibCargo</b>!\n\n" +
	"Я помогу вам заказать грузоперевозку быстро и удобно.\n" +
	"Выберите действие из меню:"

const textHelp = "ℹ️ <b>Как пользоваться ботом:</b>\n\n" +
	"🚚 <b>Оформить перевозку</b> — создать новую заявку\n" +
	"ℹ️ <b>О нас</b> — информация о компании\n" +
	"📦 <b>Мои заказы</b> — посмотреть историю заказов\n\n" +
	"Для отмены действия используйте кнопку «❌ Отменить»"

const textAbout = "ℹ️ <b>О компании SibCargo</b>\n\n" +
	"Мы предоставляем услуги грузоперевозок по Новосибирску и области.\n\n" +
	"📞 <b>Контакты:</b>\n" +
	"Телефон: +7 (XXX) XXX-XX-XX\n" +
	"Email: info@sibcargo.ru\n\n" +
	"Работаем ежедневно с 8:00 до 22:00"

const textNoOrders = "📦 <b>Мои заказы</b>\n\n" +
	"У вас пока нет заказов.\n" +
	"Создайте первый заказ через кнопку «🚚 Оформить перевозку»"

const textOrdersFailed = "❌ Произошла ошибка при получении заказов"

const maxAddressPreview = 50

// Handler routes incoming chat events to the registration command, the
// intake state machine and the order queries.
type Handler struct {
	registerUser *commands.RegisterUserCommandHandler
	machine      *intake.Machine
	userOrders   queries.GetUserOrdersQueryHandler
	logger       *slog.Logger
}

// NewHandler creates the chat event handler.
func NewHandler(
	registerUser *commands.RegisterUserCommandHandler,
	machine *intake.Machine,
	userOrders queries.GetUserOrdersQueryHandler,
	logger *slog.Logger,
) (*Handler, error) {
	if registerUser == nil {
		return nil, errs.NewValueIsRequiredError("registerUser")
	}
	if machine == nil {
		return nil, errs.NewValueIsRequiredError("machine")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		registerUser: registerUser,
		machine:      machine,
		userOrders:   userOrders,
		logger:       logger,
	}, nil
}

// HandleMessage processes one incoming text message.
func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) []intake.Reply {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			return h.handleStart(ctx, msg)
		case "help":
			return []intake.Reply{{Text: textHelp, Keyboard: intake.KeyboardMainMenu}}
		default:
			return nil
		}
	}

	switch msg.Text {
	case ButtonNewOrder:
		return h.machine.Start(msg.From.ID)
	case ButtonAbout:
		return []intake.Reply{{Text: textAbout}}
	case ButtonMyOrders:
		return h.handleMyOrders(ctx, msg.From.ID)
	default:
		return h.machine.HandleText(ctx, msg.From.ID, msg.Text)
	}
}

// HandleCallback processes one inline keyboard callback.
func (h *Handler) HandleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) []intake.Reply {
	if cq.From == nil {
		return nil
	}
	userID := cq.From.ID

	data := cq.Data
	switch {
	case strings.HasPrefix(data, callbackDatePrefix):
		date, err := time.Parse(dateLayout, strings.TrimPrefix(data, callbackDatePrefix))
		if err != nil {
			h.logger.Warn("unparseable date callback", slog.String("data", data))
			return nil
		}
		return h.machine.ChooseDate(userID, date)
	case strings.HasPrefix(data, callbackTimePrefix):
		return h.machine.ChooseTimeSlot(userID, strings.TrimPrefix(data, callbackTimePrefix))
	case data == callbackConfirm:
		return h.machine.Confirm(ctx, userID)
	case data == callbackCancel:
		return h.machine.RejectConfirmation(userID)
	default:
		return nil
	}
}

func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) []intake.Reply {
	cmd, err := commands.NewRegisterUserCommand(
		msg.From.ID,
		msg.From.UserName,
		msg.From.FirstName,
		msg.From.LastName,
	)
	if err != nil {
		h.logger.Error("invalid register user command", slog.Any("error", err))
		return []intake.Reply{{Text: textGreeting, Keyboard: intake.KeyboardMainMenu}}
	}

	if _, err := h.registerUser.Handle(ctx, cmd); err != nil {
		// Registration failure must not block the menu.
		h.logger.Error("user registration failed",
			slog.Int64("user_id", msg.From.ID), slog.Any("error", err))
	}

	return []intake.Reply{{Text: textGreeting, Keyboard: intake.KeyboardMainMenu}}
}

func (h *Handler) handleMyOrders(ctx context.Context, userID int64) []intake.Reply {
	query, err := queries.NewGetUserOrdersQuery(userID, queries.DefaultUserOrdersLimit)
	if err != nil {
		h.logger.Error("invalid user orders query", slog.Any("error", err))
		return []intake.Reply{{Text: textOrdersFailed}}
	}

	orders, err := h.userOrders.Handle(ctx, query)
	if err != nil {
		h.logger.Error("listing user orders failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
		return []intake.Reply{{Text: textOrdersFailed}}
	}

	if len(orders) == 0 {
		return []intake.Reply{{Text: textNoOrders}}
	}

	return []intake.Reply{{Text: formatOrderList(orders)}}
}

func formatOrderList(orders []queries.OrderSummary) string {
	var b strings.Builder
	b.WriteString("📦 <b>Ваши заказы:</b>\n\n")

	for _, o := range orders {
		fmt.Fprintf(&b, "%s <b>Заказ #%s</b> — %s\n",
			o.Status.Emoji(), intake.OrderRef(o.ID), o.Status.DisplayText())
		fmt.Fprintf(&b, "📍 Откуда: %s\n", previewAddress(o.PickupAddress))
		fmt.Fprintf(&b, "📍 Куда: %s\n", previewAddress(o.DropoffAddress))
		fmt.Fprintf(&b, "📏 Расстояние: %s км\n", intake.FormatQuantity(o.DistanceKm))
		fmt.Fprintf(&b, "⚖️ Вес: %s кг\n", intake.FormatQuantity(o.WeightKg))
		fmt.Fprintf(&b, "💰 Стоимость: %d ₽\n", o.PriceRub)
		fmt.Fprintf(&b, "📅 Создан: %s\n\n", o.CreatedAt.Format("02.01.2006 15:04"))
	}

	return b.String()
}

func previewAddress(address string) string {
	runes := []rune(address)
	if len(runes) <= maxAddressPreview {
		return address
	}
	return string(runes[:maxAddressPreview]) + "..."
}
