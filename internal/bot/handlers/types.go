package handlers

import (
	"github.com/dmsavelev/caloriebot/internal/interfaces"
)

// Messenger delivers replies to the chat platform. The keyboard argument
// is any tgbotapi reply-markup value or nil.
type Messenger interface {
	SendMessage(chatID int64, text string, keyboard interface{}) error
	SendPhoto(chatID int64, image []byte, caption string, keyboard interface{}) error
}

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Catalog interfaces.CatalogServiceInterface
	Ledger  interfaces.LedgerServiceInterface
	Stats   interfaces.StatsServiceInterface
	Charts  interfaces.ChartRendererInterface
}
