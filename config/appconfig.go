// config/appconfig.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AppKey defines a configuration key owned by the application rather than
// the core. It is loaded with the same precedence as core keys.
type AppKey struct {
	// Name is used as-is for config files and flags. The env var is the
	// upper-cased name with the app prefix, e.g. VENDORGRID_VENDOR_ID.
	Name string

	// Default is the value used when nothing else sets the key.
	// Supported types: string, int, int64, bool, time.Duration, []string.
	Default any

	// Desc is shown in --help.
	Desc string
}

// AppConfigValues holds the loaded values keyed by AppKey.Name.
type AppConfigValues map[string]any

// String returns a string value or "" if not found/wrong type.
func (a AppConfigValues) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Int returns an int value or 0. Handles int and int64.
func (a AppConfigValues) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// Bool returns a bool value or false.
func (a AppConfigValues) Bool(key string) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return false
}

// StringSlice returns a []string value or nil.
func (a AppConfigValues) StringSlice(key string) []string {
	if v, ok := a[key].([]string); ok {
		return v
	}
	return nil
}

// Duration parses "5s"-style strings or numeric seconds, returning def when
// the key is unset or invalid.
func (a AppConfigValues) Duration(key string, def time.Duration) time.Duration {
	raw := a[key]
	if raw == nil {
		return def
	}
	dur, err := parseDurationFlexible(raw, def)
	if err != nil {
		return def
	}
	return dur
}

// loadAppConfig resolves keys against a child viper that uses envPrefix.
// Values from config files come from v; explicit flags come from fs.
func loadAppConfig(logger *zap.Logger, v *viper.Viper, fs *pflag.FlagSet, envPrefix string, keys []AppKey) (AppConfigValues, error) {
	result := make(AppConfigValues, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	appV := viper.New()
	appV.SetEnvPrefix(envPrefix)
	appV.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	appV.AutomaticEnv()

	for _, key := range keys {
		def := key.Default
		if d, ok := def.(time.Duration); ok {
			def = d.String()
		}
		// A config file value takes the place of the default so env and
		// flags still win over it.
		if v.InConfig(key.Name) {
			def = v.Get(key.Name)
		}
		appV.SetDefault(key.Name, def)
		_ = appV.BindEnv(key.Name)

		if f := fs.Lookup(key.Name); f != nil && f.Changed {
			_ = appV.BindPFlag(key.Name, f)
		}
	}

	for _, key := range keys {
		val := appV.Get(key.Name)
		if _, ok := key.Default.([]string); ok {
			list, err := normalizeListValue(key.Name, val)
			if err != nil {
				return nil, err
			}
			val = list
		}
		result[key.Name] = val
	}

	if logger != nil {
		fields := make([]zap.Field, 0, len(keys))
		for _, key := range keys {
			nameLower := strings.ToLower(key.Name)
			if strings.Contains(nameLower, "secret") ||
				strings.Contains(nameLower, "password") ||
				strings.Contains(nameLower, "token") {
				fields = append(fields, zap.String(key.Name, "[REDACTED]"))
			} else {
				fields = append(fields, zap.Any(key.Name, result[key.Name]))
			}
		}
		logger.Info("app config loaded", fields...)
	}
	return result, nil
}

// registerAppFlags registers flags for keys on fs. Must run before Parse.
func registerAppFlags(fs *pflag.FlagSet, keys []AppKey) error {
	for _, key := range keys {
		if fs.Lookup(key.Name) != nil {
			return fmt.Errorf("config key %q conflicts with existing flag", key.Name)
		}

		switch d := key.Default.(type) {
		case string:
			fs.String(key.Name, d, key.Desc)
		case int:
			fs.Int(key.Name, d, key.Desc)
		case int64:
			fs.Int64(key.Name, d, key.Desc)
		case bool:
			fs.Bool(key.Name, d, key.Desc)
		case time.Duration:
			fs.String(key.Name, d.String(), key.Desc)
		case []string:
			fs.String(key.Name, "", key.Desc+" (JSON array)")
		default:
			return fmt.Errorf("config key %q has unsupported default type %T", key.Name, key.Default)
		}
	}
	return nil
}
