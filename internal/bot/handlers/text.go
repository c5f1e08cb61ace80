package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmsavelev/caloriebot/internal/bot/keyboards"
	"github.com/dmsavelev/caloriebot/internal/bot/state"
	"github.com/dmsavelev/caloriebot/internal/domain"
	apperrors "github.com/dmsavelev/caloriebot/internal/errors"
	"github.com/dmsavelev/caloriebot/internal/logger"
	"github.com/dmsavelev/caloriebot/internal/services"
)

const helpText = `🍎 Помощь по боту-калькулятору калорий:

1. Выберите продукт из списка и укажите количество в граммах
2. Добавляйте свои продукты через меню
3. Просматривайте статистику и графики

Доступные команды:
📊 Итог - общее количество калорий
🔄 Сбросить - обнулить данные
📈 График - статистика за неделю
🥧 Топ - самые калорийные продукты
📜 История - последние записи

Для начала работы нажмите /start`

// menuSynonyms are matched case-insensitively in the add-product and
// remove-product pending states and route back to the main menu.
var menuSynonyms = map[string]bool{
	"меню":            true,
	"назад":           true,
	"🏠 главное меню": true,
}

// TextHandler is the conversation controller: it resolves an incoming
// text against the user's pending state, or against the top-level menu
// vocabulary when nothing is pending.
type TextHandler struct {
	messenger    Messenger
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(messenger Messenger, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		messenger:    messenger,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	pending := h.stateManager.GetUserState(chatID)

	switch pending.State {
	case state.WaitingForAmount:
		return h.handleAmount(ctx, message, pending)
	case state.WaitingForNewProduct:
		return h.handleNewProduct(ctx, message)
	case state.WaitingForReplaceConfirm:
		return h.handleReplaceConfirm(ctx, message, pending)
	case state.WaitingForProductToRemove:
		return h.handleRemoveProduct(ctx, message)
	default:
		return h.handleMenu(ctx, message)
	}
}

// handleMenu dispatches top-level menu input.
func (h *TextHandler) handleMenu(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	userID := userKey(chatID)

	switch message.Text {
	case keyboards.ButtonMainMenu:
		return sendMainMenu(ctx, h.messenger, h.deps, h.stateManager, chatID)

	case keyboards.ButtonTotal:
		total := h.deps.Ledger.GetTotal(ctx, userID)
		return h.messenger.SendMessage(chatID,
			fmt.Sprintf("📊 Всего потреблено калорий: %d ккал", total),
			mainKeyboard(ctx, h.deps))

	case keyboards.ButtonReset:
		h.deps.Ledger.Reset(ctx, userID)
		return h.messenger.SendMessage(chatID, "🔄 Данные сброшены!", mainKeyboard(ctx, h.deps))

	case keyboards.ButtonWeeklyChart:
		return h.sendWeeklyChart(ctx, chatID, userID)

	case keyboards.ButtonTopProducts:
		return h.sendTopProducts(ctx, chatID, userID)

	case keyboards.ButtonHistory:
		return h.sendHistory(ctx, chatID, userID)

	case keyboards.ButtonHelp:
		return h.messenger.SendMessage(chatID, helpText, mainKeyboard(ctx, h.deps))

	case keyboards.ButtonAddProduct:
		h.stateManager.SetUserState(chatID, state.Pending{State: state.WaitingForNewProduct})
		return h.messenger.SendMessage(chatID,
			"Введите название продукта и калорийность в формате:\nНазвание:калорийность_на_100г\nПример: Банан:95",
			keyboards.BackToMenu())

	case keyboards.ButtonRemoveProduct:
		products := h.deps.Catalog.List(ctx)
		if len(products) == 0 {
			return h.messenger.SendMessage(chatID, "Список продуктов пуст", mainKeyboard(ctx, h.deps))
		}
		h.stateManager.SetUserState(chatID, state.Pending{State: state.WaitingForProductToRemove})
		return h.messenger.SendMessage(chatID, "Выберите продукт для удаления:", keyboards.ProductList(products))
	}

	// A product name from the keyboard starts the amount dialog.
	if _, err := h.deps.Catalog.Get(ctx, message.Text); err == nil {
		product := domain.NormalizeName(message.Text)
		h.stateManager.SetUserState(chatID, state.Pending{State: state.WaitingForAmount, Product: product})
		return h.messenger.SendMessage(chatID,
			fmt.Sprintf("Введите количество продукта '%s' в граммах:", product),
			keyboards.BackToMenu())
	}

	return h.messenger.SendMessage(chatID, "Выберите действие из меню:", mainKeyboard(ctx, h.deps))
}

// handleAmount consumes the grams input for a previously chosen product.
// The pending step is never retried: any outcome returns to the menu.
func (h *TextHandler) handleAmount(ctx context.Context, message *tgbotapi.Message, pending state.Pending) error {
	chatID := message.Chat.ID
	h.stateManager.ClearUserState(chatID)

	amount, err := strconv.Atoi(strings.TrimSpace(message.Text))
	if err != nil {
		return h.messenger.SendMessage(chatID, "❌ Пожалуйста, введите число!", mainKeyboard(ctx, h.deps))
	}

	kcal, err := h.deps.Catalog.Get(ctx, pending.Product)
	if err != nil {
		return h.messenger.SendMessage(chatID, "❌ Продукт не найден", mainKeyboard(ctx, h.deps))
	}

	calories := kcal * amount / 100
	total, err := h.deps.Ledger.Append(ctx, userKey(chatID), pending.Product, amount, calories, domain.Today())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAmount) {
			return h.messenger.SendMessage(chatID, "❌ Количество должно быть больше нуля!", mainKeyboard(ctx, h.deps))
		}
		return err
	}

	return h.messenger.SendMessage(chatID,
		fmt.Sprintf("✅ Добавлено: %s - %dг (%d ккал)\nВсего: %d ккал", pending.Product, amount, calories, total),
		mainKeyboard(ctx, h.deps))
}

// handleNewProduct consumes a "name:kcal" spec. A collision with an
// existing product asks for replace confirmation instead of overwriting.
func (h *TextHandler) handleNewProduct(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	if menuSynonyms[strings.ToLower(strings.TrimSpace(message.Text))] {
		return sendMainMenu(ctx, h.messenger, h.deps, h.stateManager, chatID)
	}

	h.stateManager.ClearUserState(chatID)

	name, kcal, err := parseProductSpec(message.Text)
	if err != nil {
		return h.messenger.SendMessage(chatID,
			"❌ Неверный формат. Используйте: Название:калорийность",
			mainKeyboard(ctx, h.deps))
	}

	err = h.deps.Catalog.Add(ctx, name, kcal)
	if errors.Is(err, apperrors.ErrProductExists) {
		current, _ := h.deps.Catalog.Get(ctx, name)
		h.stateManager.SetUserState(chatID, state.Pending{
			State:   state.WaitingForReplaceConfirm,
			Product: name,
			Kcal:    kcal,
		})
		return h.messenger.SendMessage(chatID,
			fmt.Sprintf("⚠️ Продукт '%s' уже есть!\nТекущая калорийность: %d ккал\nЗаменить? (Да/Нет)", name, current),
			keyboards.ReplaceConfirm())
	}
	if err != nil {
		return err
	}

	return h.messenger.SendMessage(chatID,
		fmt.Sprintf("✅ '%s' (%d ккал/100г) добавлен!", name, kcal),
		mainKeyboard(ctx, h.deps))
}

// handleReplaceConfirm consumes the yes/no answer; anything but "да"
// cancels.
func (h *TextHandler) handleReplaceConfirm(ctx context.Context, message *tgbotapi.Message, pending state.Pending) error {
	chatID := message.Chat.ID
	h.stateManager.ClearUserState(chatID)

	if !strings.EqualFold(strings.TrimSpace(message.Text), keyboards.ButtonYes) {
		return h.messenger.SendMessage(chatID, "Отмена изменения", mainKeyboard(ctx, h.deps))
	}

	if err := h.deps.Catalog.Replace(ctx, pending.Product, pending.Kcal); err != nil {
		return err
	}
	return h.messenger.SendMessage(chatID,
		fmt.Sprintf("✅ '%s' обновлён! Новая калорийность: %d ккал/100г", pending.Product, pending.Kcal),
		mainKeyboard(ctx, h.deps))
}

// handleRemoveProduct consumes the product choice for removal.
func (h *TextHandler) handleRemoveProduct(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	if message.Text == keyboards.ButtonMainMenu {
		return sendMainMenu(ctx, h.messenger, h.deps, h.stateManager, chatID)
	}

	h.stateManager.ClearUserState(chatID)

	name := domain.NormalizeName(message.Text)
	err := h.deps.Catalog.Remove(ctx, name)
	if errors.Is(err, apperrors.ErrProductNotFound) {
		return h.messenger.SendMessage(chatID, "❌ Продукт не найден", mainKeyboard(ctx, h.deps))
	}
	if err != nil {
		return err
	}
	return h.messenger.SendMessage(chatID,
		fmt.Sprintf("✅ Продукт '%s' удалён!", name),
		mainKeyboard(ctx, h.deps))
}

func (h *TextHandler) sendWeeklyChart(ctx context.Context, chatID int64, userID string) error {
	history := h.deps.Ledger.GetHistory(ctx, userID, 0)
	totals := h.deps.Stats.DailyTotals(history)
	if len(totals) == 0 {
		return h.messenger.SendMessage(chatID, "❌ Нет данных для построения графика", mainKeyboard(ctx, h.deps))
	}

	image, err := h.deps.Charts.WeeklyChart(totals)
	if err != nil {
		logger.Error("Failed to render weekly chart", "error", err, "chat_id", chatID)
		return h.messenger.SendMessage(chatID, "⚠️ Ошибка генерации графика", mainKeyboard(ctx, h.deps))
	}
	return h.messenger.SendPhoto(chatID, image, "📈 Ваша статистика за неделю", mainKeyboard(ctx, h.deps))
}

func (h *TextHandler) sendTopProducts(ctx context.Context, chatID int64, userID string) error {
	history := h.deps.Ledger.GetHistory(ctx, userID, 0)
	totals := h.deps.Stats.TopProducts(history, services.TopProductsLimit)
	if len(totals) == 0 {
		return h.messenger.SendMessage(chatID, "❌ Нет данных для построения графика", mainKeyboard(ctx, h.deps))
	}

	image, err := h.deps.Charts.TopProductsChart(totals)
	if err != nil {
		logger.Error("Failed to render top products chart", "error", err, "chat_id", chatID)
		return h.messenger.SendMessage(chatID, "⚠️ Ошибка генерации диаграммы", mainKeyboard(ctx, h.deps))
	}
	return h.messenger.SendPhoto(chatID, image, "🥧 Топ потребляемых продуктов", mainKeyboard(ctx, h.deps))
}

func (h *TextHandler) sendHistory(ctx context.Context, chatID int64, userID string) error {
	entries := h.deps.Ledger.GetHistory(ctx, userID, 10)
	if len(entries) == 0 {
		return h.messenger.SendMessage(chatID, "История пуста", mainKeyboard(ctx, h.deps))
	}

	var sb strings.Builder
	sb.WriteString("📜 История потребления:\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "📅 %s\n🍏 %s: %dг (%d ккал)\n\n", e.Date, e.Product, e.Amount, e.Calories)
	}
	return h.messenger.SendMessage(chatID, sb.String(), mainKeyboard(ctx, h.deps))
}

// sendMainMenu ensures the account exists, clears any pending step and
// shows the top-level keyboard.
func sendMainMenu(ctx context.Context, messenger Messenger, deps Dependencies, stateManager state.StateManager, chatID int64) error {
	deps.Ledger.EnsureAccount(ctx, userKey(chatID))
	stateManager.ClearUserState(chatID)
	return messenger.SendMessage(chatID,
		"🍎 Бот-калькулятор калорий\nВыберите продукт или добавьте свой:",
		mainKeyboard(ctx, deps))
}

func mainKeyboard(ctx context.Context, deps Dependencies) tgbotapi.ReplyKeyboardMarkup {
	return keyboards.MainMenu(deps.Catalog.List(ctx))
}

// userKey maps a chat to its ledger identity.
func userKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// parseProductSpec parses "name:kcal". The name is normalized and must be
// non-empty; kcal must be a non-negative integer.
func parseProductSpec(text string) (string, int, error) {
	parts := strings.SplitN(text, ":", 2)
	if len(parts) != 2 {
		return "", 0, apperrors.ErrInvalidSpec
	}
	name := domain.NormalizeName(parts[0])
	if name == "" {
		return "", 0, apperrors.ErrInvalidSpec
	}
	kcal, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || kcal < 0 {
		return "", 0, apperrors.ErrInvalidSpec
	}
	return name, kcal, nil
}
