package intake

import (
	"fmt"
	"strings"
	"time"

	intakemodel "sibcargo/internal/core/domain/model/intake"
)

// CancelButtonText is the fixed cancel button caption. The state machine
// recognises it in every text-driven step.
const CancelButtonText = "❌ Отменить"

const textStartIntake = "🚚 <b>Оформление заказа на перевозку</b>\n\n" +
	"Давайте начнём! Я задам вам несколько вопросов.\n\n" +
	"📅 <b>Шаг 1 из 5: Дата загрузки</b>\n" +
	"Выберите дату, когда нужно забрать груз:"

const textPastDate = "❌ Нельзя выбрать прошедшую дату"

const textBadTimeSlot = "❌ Выберите время с помощью кнопок ниже"

const textPickupAddressHint = "<b>⚠️ ВАЖНО: Укажите город и улицу с номером дома!</b>\n\n" +
	"<b>✅ Примеры правильного ввода:</b>\n" +
	"  • <code>Новосибирск улица Ленина 1</code>\n" +
	"  • <code>Барнаул Ленина 10</code>\n" +
	"  • <code>Томск Кирова 50</code>\n" +
	"  • <code>Кемерово Весенняя 20</code>"

const textWeightNotANumber = "❌ Неверный формат. Введите число (например: 500):"

const textWeightTooSmall = "❌ Вес должен быть больше 0. Попробуйте ещё раз:"

const textWeightTooLarge = "❌ Вес слишком большой. Максимум 10000 кг. Попробуйте ещё раз:"

const textIntakeCancelled = "❌ Оформление заказа отменено"

const textOrderRejected = "❌ Заказ отменён"

const textChooseAction = "Выберите действие:"

const textNoActiveIntake = "❌ Нет активного оформления заказа"

const textConfirmFailed = "❌ Произошла ошибка при создании заказа"

func textDateChosen(date time.Time) string {
	return fmt.Sprintf(
		"✅ Дата загрузки: <b>%s</b>\n\n"+
			"⏰ <b>Шаг 2 из 5: Время загрузки</b>\n"+
			"Выберите удобное время:",
		date.Format("02.01.2006"))
}

func textTimeChosen(pickupAt time.Time) string {
	return fmt.Sprintf(
		"✅ Дата и время: <b>%s</b>\n\n"+
			"📍 <b>Шаг 3 из 5: Адрес загрузки</b>\n"+
			"Откуда нужно забрать груз?",
		pickupAt.Format("02.01.2006 15:04"))
}

func textPickupResolved(address string) string {
	return fmt.Sprintf(
		"✅ Адрес загрузки: <b>%s</b>\n\n"+
			"📍 <b>Шаг 4 из 5: Адрес выгрузки</b>\n"+
			"Куда нужно доставить груз?\n\n"+
			"<b>✅ Примеры:</b>\n"+
			"  • <code>Барнаул Ленина 10</code>\n"+
			"  • <code>Томск Кирова 50</code>\n"+
			"  • <code>Кемерово Весенняя 20</code>",
		address)
}

func textDropoffResolved(address string, latitude, longitude float64) string {
	return fmt.Sprintf(
		"✅ Адрес выгрузки: <b>%s</b>\n"+
			"📍 Координаты: %.6f, %.6f\n\n"+
			"⚖️ <b>Шаг 5 из 5: Вес груза</b>\n"+
			"Укажите вес груза в килограммах (например: 500):",
		address, latitude, longitude)
}

func textAddressNotFound(address string) string {
	return fmt.Sprintf(
		"❌ Не удалось найти адрес: <b>%s</b>\n\n"+
			"💡 <b>Советы для точного поиска:</b>\n"+
			"• Укажите улицу полностью: «улица Кирова 10» или «Кирова 10»\n"+
			"• Для дробных номеров: «Островского 195/3»\n"+
			"• Если не находит, попробуйте без дроби: «Островского 195»\n"+
			"• Или укажите город: «Новосибирск, Кирова 10»",
		address)
}

func textSummary(draft *intakemodel.Draft, pickupAt time.Time) string {
	distance := FormatQuantity(draft.DistanceKm())
	if draft.DistanceIsApproximate() {
		distance += " (примерно)"
	}

	return fmt.Sprintf(
		"📋 <b>Проверьте данные заказа:</b>\n\n"+
			"📅 Дата и время: <b>%s</b>\n"+
			"📍 Откуда: <b>%s</b>\n"+
			"📍 Куда: <b>%s</b>\n"+
			"📏 Расстояние: <b>%s км</b>\n"+
			"⚖️ Вес: <b>%s кг</b>\n\n"+
			"💰 <b>Примерная стоимость: %d ₽</b>\n\n"+
			"Подтверждаете заказ?",
		pickupAt.Format("02.01.2006 15:04"),
		draft.Pickup().Address,
		draft.Dropoff().Address,
		distance,
		FormatQuantity(draft.WeightKg()),
		draft.PriceRub())
}

func textOrderCreated(orderRef string) string {
	return fmt.Sprintf(
		"✅ <b>Заказ #%s успешно создан!</b>\n\n"+
			"Наш менеджер свяжется с вами в ближайшее время для подтверждения.\n\n"+
			"Вы можете посмотреть свои заказы в разделе «📦 Мои заказы»",
		orderRef)
}

// FormatQuantity renders a distance or weight with one decimal place and the
// trailing ".0" trimmed, so whole numbers read as "500" rather than "500.0".
func FormatQuantity(value float64) string {
	s := fmt.Sprintf("%.1f", value)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
