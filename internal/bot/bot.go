package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "github.com/dmsavelev/caloriebot/internal/errors"
	"github.com/dmsavelev/caloriebot/internal/logger"
)

const (
	webhookRetries    = 3
	webhookRetryDelay = 5 * time.Second
)

// Bot wraps the Telegram API: outbound text and photo delivery with reply
// keyboards, plus webhook self-registration.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot authorizes against the Telegram API.
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)
	return &Bot{api: api}, nil
}

// SendMessage delivers a text reply with an optional reply keyboard.
func (b *Bot) SendMessage(chatID int64, text string, keyboard interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		return apperrors.NewTransportError(err)
	}
	return nil
}

// SendPhoto delivers an image reply with a caption and an optional reply
// keyboard.
func (b *Bot) SendPhoto(chatID int64, image []byte, caption string, keyboard interface{}) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: image})
	photo.Caption = caption
	photo.ReplyMarkup = keyboard
	if _, err := b.api.Send(photo); err != nil {
		return apperrors.NewTransportError(err)
	}
	return nil
}

// RegisterWebhook points Telegram at the given URL, retrying transient
// failures a few times before giving up.
func (b *Bot) RegisterWebhook(url string) error {
	var lastErr error
	for attempt := 1; attempt <= webhookRetries; attempt++ {
		if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			logger.Warningf("Attempt %d: failed to remove old webhook: %v", attempt, err)
		}

		wh, err := tgbotapi.NewWebhook(url)
		if err != nil {
			return fmt.Errorf("invalid webhook URL %q: %w", url, err)
		}
		if _, err := b.api.Request(wh); err != nil {
			lastErr = err
			logger.Warningf("Attempt %d: failed to set webhook: %v", attempt, err)
			time.Sleep(webhookRetryDelay)
			continue
		}

		info, err := b.api.GetWebhookInfo()
		if err != nil {
			lastErr = err
			logger.Warningf("Attempt %d: failed to read webhook info: %v", attempt, err)
			time.Sleep(webhookRetryDelay)
			continue
		}
		logger.Info("Webhook registered", "url", info.URL, "pending_updates", info.PendingUpdateCount)
		return nil
	}
	return fmt.Errorf("failed to register webhook after %d attempts: %w", webhookRetries, lastErr)
}
