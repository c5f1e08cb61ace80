package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmsavelev/caloriebot/internal/bot/state"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	commandHandler *CommandHandler
	textHandler    *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(messenger Messenger, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	return &UpdateHandler{
		commandHandler: NewCommandHandler(messenger, deps, stateManager),
		textHandler:    NewTextHandler(messenger, deps, stateManager),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message)
	}
	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message)
	}
	return nil
}
