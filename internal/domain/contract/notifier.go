package contract

// Notifier is the outbound side of the chat transport. Implementations are
// fallible per recipient; callers tally failures and keep going.
type Notifier interface {
	// SendText sends a plain text message.
	SendText(chatID int64, text string) error

	// SendSurvey sends a message with the mood answer keyboard attached.
	SendSurvey(chatID int64, text string) error

	// SendDocument uploads a local file with a caption.
	SendDocument(chatID int64, path, caption string) error
}
