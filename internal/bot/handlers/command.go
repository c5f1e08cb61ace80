package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmsavelev/caloriebot/internal/bot/state"
	"github.com/dmsavelev/caloriebot/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	messenger    Messenger
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(messenger Messenger, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		messenger:    messenger,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	logger.Infof("Handling command %s from chat %d", message.Command(), message.Chat.ID)

	switch message.Command() {
	case "start", "help":
		return sendMainMenu(ctx, h.messenger, h.deps, h.stateManager, message.Chat.ID)
	default:
		return h.messenger.SendMessage(message.Chat.ID,
			"Неизвестная команда. Нажмите /start для вызова меню.",
			mainKeyboard(ctx, h.deps))
	}
}
