package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmsavelev/caloriebot/internal/domain"
)

// Fixed menu vocabulary. Menu labels are matched exactly, case-sensitively.
const (
	ButtonTotal         = "📊 Итог"
	ButtonReset         = "🔄 Сбросить"
	ButtonAddProduct    = "➕ Добавить продукт"
	ButtonRemoveProduct = "❌ Удалить продукт"
	ButtonWeeklyChart   = "📈 График за неделю"
	ButtonTopProducts   = "🥧 Топ продуктов"
	ButtonHistory       = "📜 История"
	ButtonHelp          = "❓ Помощь"
	ButtonMainMenu      = "🏠 Главное меню"
	ButtonYes           = "Да"
	ButtonNo            = "Нет"
)

// MainMenu builds the top-level keyboard: catalog products two per row,
// then the fixed action rows.
func MainMenu(products []domain.Product) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton

	var row []tgbotapi.KeyboardButton
	for _, p := range products {
		row = append(row, tgbotapi.NewKeyboardButton(p.Name))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows,
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonTotal),
			tgbotapi.NewKeyboardButton(ButtonReset),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonAddProduct),
			tgbotapi.NewKeyboardButton(ButtonRemoveProduct),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonWeeklyChart),
			tgbotapi.NewKeyboardButton(ButtonTopProducts),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonHistory),
			tgbotapi.NewKeyboardButton(ButtonHelp),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonMainMenu),
		),
	)

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// BackToMenu builds the single-button keyboard shown in pending states.
func BackToMenu() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonMainMenu),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// ReplaceConfirm builds the yes/no keyboard for the replace prompt.
func ReplaceConfirm() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonYes),
			tgbotapi.NewKeyboardButton(ButtonNo),
			tgbotapi.NewKeyboardButton(ButtonMainMenu),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// ProductList builds the removal keyboard: one product per row plus the
// way back to the menu.
func ProductList(products []domain.Product) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(products)+1)
	for _, p := range products {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(p.Name)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(ButtonMainMenu)))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}
