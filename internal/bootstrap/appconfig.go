// Package bootstrap wires config, state and routes into the app hooks.
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/vendorgrid/config"
	"github.com/dalemusser/vendorgrid/internal/notify"
	"github.com/dalemusser/vendorgrid/internal/records"
	"github.com/dalemusser/vendorgrid/internal/workspace"
	"github.com/dalemusser/vendorgrid/pantry/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppName labels logs.
const AppName = "vendorgrid"

// AppKeys are vendorgrid's own settings, loaded with the same precedence
// as the core ones (flags > env > config file > defaults).
var AppKeys = []config.AppKey{
	{Name: "vendor_id", Default: records.DefaultVendorID, Desc: "Vendor id stamped on every record (UUID)"},
	{Name: "default_vendor_name", Default: records.DefaultVendorName, Desc: "Vendor name used when the form leaves it blank"},
	{Name: "default_country", Default: records.DefaultCountry, Desc: "Two-letter country used when the form leaves it blank"},
	{Name: "actions", Default: workspace.DefaultActions, Desc: "Selectable actions; the first one is preselected"},
	{Name: "banner_ttl", Default: notify.DefaultTTL, Desc: "How long a banner stays visible"},
	{Name: "csv_filename", Default: workspace.DefaultCSVFilename, Desc: "Download name of the CSV export"},
	{Name: "tsv_filename", Default: workspace.DefaultTSVFilename, Desc: "Download name of the spreadsheet export"},
	{Name: "default_locale", Default: "pt-BR", Desc: `Language used when the browser states no preference ("pt-BR" or "en")`},
}

// AppConfig is the validated app configuration.
type AppConfig struct {
	VendorID          string        `json:"vendor_id"`
	DefaultVendorName string        `json:"default_vendor_name" validate:"max=100"`
	DefaultCountry    string        `json:"default_country" validate:"omitempty,alpha,len=2"`
	Actions           []string      `json:"actions" validate:"min=1,unique,dive,required"`
	BannerTTL         time.Duration `json:"banner_ttl"`
	CSVFilename       string        `json:"csv_filename" validate:"required"`
	TSVFilename       string        `json:"tsv_filename" validate:"required"`
	DefaultLocale     string        `json:"default_locale" validate:"oneof=pt-BR en"`
}

// FromValues copies the loaded values into an AppConfig, trimming strings.
func FromValues(v config.AppConfigValues) AppConfig {
	actions := make([]string, 0, len(v.StringSlice("actions")))
	for _, a := range v.StringSlice("actions") {
		actions = append(actions, strings.TrimSpace(a))
	}
	return AppConfig{
		VendorID:          strings.TrimSpace(v.String("vendor_id")),
		DefaultVendorName: strings.TrimSpace(v.String("default_vendor_name")),
		DefaultCountry:    strings.TrimSpace(v.String("default_country")),
		Actions:           actions,
		BannerTTL:         v.Duration("banner_ttl", notify.DefaultTTL),
		CSVFilename:       strings.TrimSpace(v.String("csv_filename")),
		TSVFilename:       strings.TrimSpace(v.String("tsv_filename")),
		DefaultLocale:     strings.TrimSpace(v.String("default_locale")),
	}
}

// Validate checks c and canonicalizes the vendor id.
func (c *AppConfig) Validate() error {
	var invalid []string

	if id, err := uuid.Parse(c.VendorID); err != nil {
		invalid = append(invalid, fmt.Sprintf("vendor_id must be a UUID (%v)", err))
	} else {
		c.VendorID = id.String()
	}
	if c.BannerTTL <= 0 {
		invalid = append(invalid, "banner_ttl must be > 0")
	}
	for _, e := range validate.New().Struct(*c, "en") {
		invalid = append(invalid, e.Message)
	}

	if len(invalid) == 0 {
		return nil
	}
	return fmt.Errorf("app configuration errors: invalid: %s", strings.Join(invalid, ", "))
}

// LoadConfig is the LoadConfig hook.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	core, vals, err := config.LoadWithAppConfig(logger, config.EnvPrefix, AppKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}
	cfg := FromValues(vals)
	if err := cfg.Validate(); err != nil {
		return nil, AppConfig{}, err
	}
	return core, cfg, nil
}
