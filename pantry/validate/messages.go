package validate

import (
	"fmt"
	"strings"
	"sync"
)

// MessageProvider provides validation error messages per locale.
type MessageProvider struct {
	mu       sync.RWMutex
	messages map[string]map[string]string // locale -> rule -> message
	fallback string
}

// NewMessageProvider creates an empty provider that falls back to fallback.
func NewMessageProvider(fallback string) *MessageProvider {
	return &MessageProvider{
		messages: make(map[string]map[string]string),
		fallback: fallback,
	}
}

// DefaultMessages returns a provider with Brazilian Portuguese and English
// messages, falling back to Portuguese.
func DefaultMessages() *MessageProvider {
	m := NewMessageProvider("pt-BR")
	m.RegisterLocale("pt-BR", portugueseMessages)
	m.RegisterLocale("en", englishMessages)
	return m
}

// RegisterLocale registers messages for a locale.
func (m *MessageProvider) RegisterLocale(locale string, messages map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[locale] = messages
}

// AddMessage adds or updates a message for a locale.
func (m *MessageProvider) AddMessage(locale, rule, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.messages[locale] == nil {
		m.messages[locale] = make(map[string]string)
	}
	m.messages[locale][rule] = message
}

// Get retrieves the message for rule in locale.
// It supports placeholders: {field} for field name, {param} for parameter.
func (m *MessageProvider) Get(locale, rule, field, param string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range []string{locale, m.fallback} {
		if msgs, ok := m.messages[l]; ok {
			if msg, ok := msgs[rule]; ok {
				return format(msg, field, param)
			}
			if msg, ok := msgs["default"]; ok {
				return format(msg, field, param)
			}
		}
	}

	return fmt.Sprintf("%s validation failed for %s", rule, field)
}

func format(msg, field, param string) string {
	msg = strings.ReplaceAll(msg, "{field}", field)
	return strings.ReplaceAll(msg, "{param}", param)
}

var englishMessages = map[string]string{
	"default":     "{field} is invalid",
	"required":    "{field} is required",
	"alpha":       "{field} must contain only letters",
	"len":         "{field} must be exactly {param} characters",
	"max":         "{field} must be at most {param} characters",
	"email_loose": "{field} must be a valid email address",
	"action":      "{field} must be one of [{param}]",
}

var portugueseMessages = map[string]string{
	"default":     "{field} é inválido",
	"required":    "{field} é obrigatório",
	"alpha":       "{field} deve conter apenas letras",
	"len":         "{field} deve ter exatamente {param} caracteres",
	"max":         "{field} deve ter no máximo {param} caracteres",
	"email_loose": "{field} deve ser um email válido",
	"action":      "{field} deve ser um de [{param}]",
}
