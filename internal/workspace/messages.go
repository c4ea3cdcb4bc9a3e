package workspace

import "github.com/dalemusser/vendorgrid/pantry/i18n"

// Message keys for every banner the workspace shows.
const (
	MsgIdentifiersRequired = "identifiers.required"
	MsgEmailsRequired      = "emails.required"
	MsgIdentifiersInvalid  = "identifiers.invalid"
	MsgEmailsInvalid       = "emails.invalid"
	MsgIdentifiersNone     = "identifiers.none"
	MsgEmailsNone          = "emails.none"
	MsgGenerated           = "generate.success"
	MsgExportEmpty         = "export.empty"
	MsgExported            = "export.success"
)

var portuguese = map[string]string{
	MsgIdentifiersRequired: "Por favor, insira pelo menos um CNPJ.",
	MsgEmailsRequired:      "Por favor, insira pelo menos um email.",
	MsgIdentifiersInvalid:  "CNPJs inválidos encontrados: %s",
	MsgEmailsInvalid:       "Emails inválidos encontrados: %s",
	MsgIdentifiersNone:     "Nenhum CNPJ válido encontrado.",
	MsgEmailsNone:          "Nenhum email válido encontrado.",
	MsgGenerated:           "%d registros gerados com sucesso!",
	MsgExportEmpty:         "Nenhum dado para exportar.",
	MsgExported:            "Arquivo %s baixado com sucesso!",

	"page.title":          "Gerador de Acessos por CNPJ",
	"form.identifiers":    "CNPJs (um por linha)",
	"form.emails":         "Emails (um por linha)",
	"form.action":         "Ação",
	"form.vendor_name":    "Nome do Vendor",
	"form.country":        "País",
	"form.generate":       "Gerar Dados",
	"form.export_csv":     "Exportar CSV",
	"form.export_tsv":     "Exportar Excel",
	"table.empty":         "Nenhum registro gerado ainda.",
	"table.count":         "%d registros",
	"error.bad_request":   "Requisição inválida.",
	"error.not_found":     "Página não encontrada.",
	"error.method":        "Método não permitido.",
	"error.internal":      "Erro interno. Tente novamente.",
	"locale.switch_label": "Idioma",
}

var english = map[string]string{
	MsgIdentifiersRequired: "Please enter at least one CNPJ.",
	MsgEmailsRequired:      "Please enter at least one email.",
	MsgIdentifiersInvalid:  "Invalid CNPJs found: %s",
	MsgEmailsInvalid:       "Invalid emails found: %s",
	MsgIdentifiersNone:     "No valid CNPJ found.",
	MsgEmailsNone:          "No valid email found.",
	MsgGenerated:           "%d records generated successfully!",
	MsgExportEmpty:         "No data to export.",
	MsgExported:            "File %s downloaded successfully!",

	"page.title":          "CNPJ Access Generator",
	"form.identifiers":    "CNPJs (one per line)",
	"form.emails":         "Emails (one per line)",
	"form.action":         "Action",
	"form.vendor_name":    "Vendor name",
	"form.country":        "Country",
	"form.generate":       "Generate",
	"form.export_csv":     "Export CSV",
	"form.export_tsv":     "Export Excel",
	"table.empty":         "No records generated yet.",
	"table.count":         "%d records",
	"error.bad_request":   "Bad request.",
	"error.not_found":     "Page not found.",
	"error.method":        "Method not allowed.",
	"error.internal":      "Internal error. Please try again.",
	"locale.switch_label": "Language",
}

// NewMessages returns the bundle with Brazilian Portuguese and English
// translations. defaultLocale must be one of the two; anything else falls
// back to pt-BR.
func NewMessages(defaultLocale string) *i18n.Bundle {
	if defaultLocale != "en" {
		defaultLocale = "pt-BR"
	}
	b := i18n.NewBundle(defaultLocale)
	b.AddLocale("pt-BR", portuguese)
	b.AddLocale("en", english)
	return b
}
