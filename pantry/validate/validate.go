// Package validate checks form structs using struct tags and renders
// failures as localized, human-readable messages.
//
// It wraps github.com/go-playground/validator/v10 and adds the "email_loose"
// rule (see EmailValid) plus allow-list rules registered at runtime:
//
//	v := validate.New()
//	v.RegisterSet("action", []string{"ADD", "REMOVE"})
//
//	type Form struct {
//	    Action  string `form:"action" validate:"required,action"`
//	    Country string `form:"country" validate:"omitempty,alpha,len=2"`
//	}
//
//	if errs := v.Struct(form); errs.HasErrors() {
//	    fmt.Println(errs.First().Message)
//	}
package validate

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator validates struct fields using tags.
type Validator struct {
	mu       sync.RWMutex
	v        *validator.Validate
	messages *MessageProvider
	sets     map[string][]string
}

// Option configures the validator.
type Option func(*Validator)

// WithMessages sets a custom message provider.
func WithMessages(m *MessageProvider) Option {
	return func(v *Validator) {
		v.messages = m
	}
}

// New creates a validator with the default messages and the email_loose rule.
func New(opts ...Option) *Validator {
	inner := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name so messages match what the user saw.
	inner.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.Split(f.Tag.Get(tag), ",")[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	_ = inner.RegisterValidation("email_loose", func(fl validator.FieldLevel) bool {
		return EmailValid(fl.Field().String())
	})

	v := &Validator{
		v:        inner,
		messages: DefaultMessages(),
		sets:     make(map[string][]string),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RegisterSet registers a rule named tag that accepts only the given values
// (exact match). Registering the same tag again replaces the allowed values.
func (v *Validator) RegisterSet(tag string, allowed []string) error {
	v.mu.Lock()
	v.sets[tag] = append([]string(nil), allowed...)
	v.mu.Unlock()

	return v.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		v.mu.RLock()
		defer v.mu.RUnlock()
		for _, a := range v.sets[tag] {
			if s == a {
				return true
			}
		}
		return false
	})
}

// Struct validates s and returns the failures, or nil when s is valid.
// Messages are rendered in locale (falling back to the provider default).
func (v *Validator) Struct(s any, locale string) Errors {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		param := fe.Param()
		v.mu.RLock()
		if allowed, ok := v.sets[fe.Tag()]; ok {
			param = strings.Join(allowed, ", ")
		}
		v.mu.RUnlock()

		out = append(out, &Error{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   param,
			Value:   fe.Value(),
			Message: v.messages.Get(locale, fe.Tag(), fe.Field(), param),
		})
	}
	return out
}

// Error represents a validation error.
type Error struct {
	Field   string
	Rule    string
	Param   string
	Value   any
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errors is a collection of validation errors.
type Errors []*Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any errors.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// First returns the first error or nil.
func (e Errors) First() *Error {
	if len(e) > 0 {
		return e[0]
	}
	return nil
}

// String renders the errors for logs.
func (e Errors) String() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, fmt.Sprintf("%s:%s", err.Field, err.Rule))
	}
	return strings.Join(parts, ",")
}
