package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	verr := domain.NewValidationError("Неверный формат", "Используйте ЧЧ:ММ")
	assert.True(t, domain.IsValidation(verr))
	assert.False(t, domain.IsNotFound(verr))
	assert.Equal(t, "[validation] Неверный формат", verr.Error())

	nferr := domain.NewNotFoundError("Ответ не найден")
	assert.True(t, domain.IsNotFound(nferr))
	assert.False(t, domain.IsValidation(nferr))

	// Kind checks see through wrapping.
	wrapped := fmt.Errorf("handling update: %w", verr)
	assert.True(t, domain.IsValidation(wrapped))

	assert.False(t, domain.IsValidation(errors.New("plain")))
}

func TestUserMessage(t *testing.T) {
	withHint := domain.NewValidationError("Неверный формат", "Используйте ЧЧ:ММ")
	assert.Equal(t, "❌ Неверный формат\n\nИспользуйте ЧЧ:ММ", domain.UserMessage(withHint))

	noHint := domain.NewNotFoundError("Ответ не найден")
	assert.Equal(t, "❌ Ответ не найден", domain.UserMessage(noHint))

	// Internal errors never leak their text to chat.
	internal := errors.New("sql: database is locked")
	msg := domain.UserMessage(internal)
	assert.NotContains(t, msg, "sql")
	assert.Contains(t, msg, "Произошла ошибка")
}
