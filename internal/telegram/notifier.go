package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers texts, survey prompts and files over the Bot API.
type Notifier struct {
	api *tgbotapi.BotAPI
}

func NewNotifier(api *tgbotapi.BotAPI) *Notifier {
	return &Notifier{api: api}
}

func (n *Notifier) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to %d: %w", chatID, err)
	}

	return nil
}

// SendSurvey sends the prompt with the mood keyboard attached.
func (n *Notifier) SendSurvey(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = MoodKeyboard()
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send survey to %d: %w", chatID, err)
	}

	return nil
}

func (n *Notifier) SendDocument(chatID int64, path, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	if _, err := n.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send document to %d: %w", chatID, err)
	}

	return nil
}
