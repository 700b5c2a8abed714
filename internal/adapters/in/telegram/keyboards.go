package telegram

import (
	"fmt"
	"time"

	"sibcargo/internal/core/application/intake"
	intakemodel "sibcargo/internal/core/domain/model/intake"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main menu button captions.
const (
	ButtonNewOrder = "🚚 Оформить перевозку"
	ButtonAbout    = "ℹ️ О нас"
	ButtonMyOrders = "📦 Мои заказы"
)

// Callback data prefixes and values for inline keyboards.
const (
	callbackDatePrefix = "date_"
	callbackTimePrefix = "time_"
	callbackConfirm    = "confirm_order"
	callbackCancel     = "cancel_order"

	dateLayout = "2006-01-02"
)

// calendarDays is how many upcoming days the date keyboard offers.
const calendarDays = 14

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonNewOrder),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonAbout),
			tgbotapi.NewKeyboardButton(ButtonMyOrders),
		),
	)
	keyboard.ResizeKeyboard = true
	keyboard.InputFieldPlaceholder = "Выберите действие"
	return keyboard
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(intake.CancelButtonText),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// calendarKeyboard offers the upcoming days as inline buttons, two per row.
func calendarKeyboard(now time.Time) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for i := 0; i < calendarDays; i++ {
		day := now.AddDate(0, 0, i)
		label := day.Format("02.01")
		if i == 0 {
			label = "Сегодня"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			label,
			callbackDatePrefix+day.Format(dateLayout),
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// timeSlotsKeyboard lays out the fixed hourly slots, three per row.
func timeSlotsKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, slot := range intakemodel.TimeSlots() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			slot,
			fmt.Sprintf("%s%s", callbackTimePrefix, slot),
		))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", callbackConfirm),
			tgbotapi.NewInlineKeyboardButtonData(intake.CancelButtonText, callbackCancel),
		),
	)
}
