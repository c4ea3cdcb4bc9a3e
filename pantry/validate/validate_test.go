package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"first.last+tag@sub.example.com.br", true},
		{"a@b", false},
		{"a.b.com", false},
		{"a@@b.com", false},
		{"a b@c.com", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a@b.", false},
		{"", false},
		{" a@b.com", false},
		{"a\u00a0b@c.com", false},
		{"a@b\u2028c.com", false},
		{"a@b.c\u3000m", false},
		{"a\ufeff@b.com", false},
		{"a\vb@c.com", false},
		{"ação@exemplo.com.br", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EmailValid(tt.in))
		})
	}
}

type testForm struct {
	Action  string `form:"action" validate:"required,action"`
	Country string `form:"country" validate:"omitempty,alpha,len=2"`
	Contact string `form:"contact" validate:"omitempty,email_loose"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()
	require.NoError(t, v.RegisterSet("action", []string{"ADD", "REMOVE"}))

	assert.Nil(t, v.Struct(testForm{Action: "ADD"}, "en"))
	assert.Nil(t, v.Struct(testForm{Action: "REMOVE", Country: "br", Contact: "a@b.com"}, "en"))

	errs := v.Struct(testForm{Action: "DROP", Country: "BRA"}, "en")
	require.Len(t, errs, 2)
	assert.Equal(t, "action", errs[0].Field)
	assert.Equal(t, "action must be one of [ADD, REMOVE]", errs[0].Message)
	assert.Equal(t, "country", errs[1].Field)
	assert.Equal(t, "len", errs[1].Rule)

	errs = v.Struct(testForm{}, "pt-BR")
	require.Len(t, errs, 1)
	assert.Equal(t, "action é obrigatório", errs.First().Message)

	errs = v.Struct(testForm{Action: "ADD", Contact: "a@b"}, "fr")
	require.Len(t, errs, 1)
	assert.Equal(t, "contact deve ser um email válido", errs.First().Message, "unknown locale falls back to pt-BR")
}

func TestValidator_RegisterSetReplaces(t *testing.T) {
	v := New()
	require.NoError(t, v.RegisterSet("action", []string{"ADD"}))
	require.NoError(t, v.RegisterSet("action", []string{"REMOVE"}))

	assert.NotNil(t, v.Struct(testForm{Action: "ADD"}, "en"))
	assert.Nil(t, v.Struct(testForm{Action: "REMOVE"}, "en"))
}
