package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/jmroz/inquiry-desk/internal/models"
)

// TelegramNotifier pushes inquiry lifecycle events to a reviewer chat.
// Delivery failures are logged and never surfaced to the caller; the
// inquiry flow must not depend on Telegram being reachable.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) InquiryReceived(inquiry models.Inquiry) {
	text := fmt.Sprintf("Nowe zapytanie od %s (%s)\nTemat: %s\nKategoria: %s, pewność sugestii: %d%%",
		inquiry.CustomerName, inquiry.Email, inquiry.Subject, inquiry.Category, inquiry.Confidence)
	n.send(text)
}

func (n *TelegramNotifier) InquiryResolved(inquiry models.Inquiry) {
	text := fmt.Sprintf("Zapytanie %s od %s: %s",
		inquiry.ID, inquiry.CustomerName, inquiry.Status)
	n.send(text)
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("Failed to send Telegram notification", zap.Error(err))
	}
}
