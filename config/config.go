// config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every environment variable, e.g. VENDORGRID_HTTP_PORT.
const EnvPrefix = "VENDORGRID"

// HTTPConfig groups listener settings. The tool serves plain HTTP only.
type HTTPConfig struct {
	Host            string        `mapstructure:"http_host"`
	Port            int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"-"`
	WriteTimeout    time.Duration `mapstructure:"-"`
	ShutdownTimeout time.Duration `mapstructure:"-"`
}

// CoreConfig holds the process-level configuration.
type CoreConfig struct {
	Env      string `mapstructure:"env"`       // "dev" | "prod"
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error

	HTTP HTTPConfig `mapstructure:",squash"`

	MaxRequestBodyBytes   int64 `mapstructure:"max_request_body_bytes"`
	EnableCompression     bool  `mapstructure:"enable_compression"`
	CompressionLevel      int   `mapstructure:"compression_level"`
	EnableSecurityHeaders bool  `mapstructure:"enable_security_headers"`
}

// Addr is the listen address.
func (c CoreConfig) Addr() string {
	return net.JoinHostPort(c.HTTP.Host, strconv.Itoa(c.HTTP.Port))
}

// Dump returns the config as indented JSON for debug logging.
func (c CoreConfig) Dump() string {
	b, _ := json.MarshalIndent(c, "", "  ")
	return string(b)
}

// Load reads the core config only.
func Load(logger *zap.Logger) (*CoreConfig, error) {
	cfg, _, err := LoadWithAppConfig(logger, EnvPrefix, nil)
	return cfg, err
}

// LoadWithAppConfig merges defaults, config.* files, env vars and explicit
// flags into the core config plus the values of the app's own keys.
// Precedence (highest wins): flags > env > config file > defaults.
func LoadWithAppConfig(logger *zap.Logger, appEnvPrefix string, keys []AppKey) (*CoreConfig, AppConfigValues, error) {
	return loadFrom(logger, pflag.CommandLine, os.Args[1:], appEnvPrefix, keys)
}

func loadFrom(logger *zap.Logger, fs *pflag.FlagSet, args []string, appEnvPrefix string, keys []AppKey) (*CoreConfig, AppConfigValues, error) {
	// .env never overrides the real environment.
	if err := godotenv.Load(); err == nil && logger != nil {
		logger.Info("loaded .env file")
	}

	registerCoreFlags(fs)
	if err := registerAppFlags(fs, keys); err != nil {
		return nil, nil, err
	}
	if !fs.Parsed() {
		if err := fs.Parse(args); err != nil {
			return nil, nil, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range coreKeys {
		_ = v.BindEnv(k)
	}

	mergeConfigFiles(logger, v)
	setDefaults(v)

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	var cfg CoreConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unable to decode core config: %w", err)
	}

	var invalid []string
	for _, d := range []struct {
		key string
		dst *time.Duration
		def time.Duration
	}{
		{"read_timeout", &cfg.HTTP.ReadTimeout, 15 * time.Second},
		{"write_timeout", &cfg.HTTP.WriteTimeout, 30 * time.Second},
		{"shutdown_timeout", &cfg.HTTP.ShutdownTimeout, 10 * time.Second},
	} {
		dur, err := parseDurationFlexible(v.Get(d.key), d.def)
		if err != nil {
			invalid = append(invalid, fmt.Sprintf("%s: %v", d.key, err))
		}
		*d.dst = dur
	}

	if err := validateCoreConfig(cfg, invalid); err != nil {
		return nil, nil, err
	}

	app, err := loadAppConfig(logger, v, fs, appEnvPrefix, keys)
	if err != nil {
		return nil, nil, err
	}
	return &cfg, app, nil
}

var coreKeys = []string{
	"env", "log_level",
	"http_host", "http_port",
	"read_timeout", "write_timeout", "shutdown_timeout",
	"max_request_body_bytes",
	"enable_compression", "compression_level",
	"enable_security_headers",
}

func registerCoreFlags(fs *pflag.FlagSet) {
	if fs.Lookup("env") != nil {
		return
	}
	fs.String("env", "dev", `Runtime environment "dev"|"prod"`)
	fs.String("log_level", "info", "Log level")
	fs.String("http_host", "127.0.0.1", "Listen host")
	fs.Int("http_port", 8080, "Listen port")
	fs.String("read_timeout", "15s", "HTTP read timeout")
	fs.String("write_timeout", "30s", "HTTP write timeout")
	fs.String("shutdown_timeout", "10s", "Graceful shutdown timeout")
	fs.Int64("max_request_body_bytes", 1<<20, "Max HTTP request body size in bytes (0 = unlimited)")
	fs.Bool("enable_compression", true, "Enable gzip compression")
	fs.Int("compression_level", 5, "gzip level 1..9")
	fs.Bool("enable_security_headers", true, "Send security headers and CSP")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_host", "127.0.0.1")
	v.SetDefault("http_port", 8080)
	v.SetDefault("read_timeout", "15s")
	v.SetDefault("write_timeout", "30s")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("max_request_body_bytes", int64(1<<20))
	v.SetDefault("enable_compression", true)
	v.SetDefault("compression_level", 5)
	v.SetDefault("enable_security_headers", true)
}

// mergeConfigFiles merges config.{yaml,yml,json,toml} from the working
// directory, in that order. Unreadable files are logged and skipped.
func mergeConfigFiles(logger *zap.Logger, v *viper.Viper) {
	for _, ext := range [...]string{"yaml", "yml", "json", "toml"} {
		file := "config." + ext
		b, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		v.SetConfigType(ext)
		if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
			if logger != nil {
				logger.Warn("cannot decode config file", zap.String("file", file), zap.Error(err))
			}
			continue
		}
		if logger != nil {
			logger.Info("loaded config file", zap.String("file", file))
		}
	}
}

// normalizeListValue coerces a JSON array string or a decoded list into
// []string.
func normalizeListValue(key string, val any) ([]string, error) {
	switch t := val.(type) {
	case nil:
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, fmt.Sprint(e))
		}
		return out, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return nil, fmt.Errorf("config key %q expects a JSON array string, got %q: %w", key, s, err)
		}
		return arr, nil
	}
	return nil, fmt.Errorf("config key %q expects a list, got %T", key, val)
}

func validateCoreConfig(cfg CoreConfig, invalid []string) error {
	var missing []string

	switch cfg.Env {
	case "dev", "prod":
	default:
		invalid = append(invalid, `env must be "dev" or "prod"`)
	}
	if strings.TrimSpace(cfg.HTTP.Host) == "" {
		missing = append(missing, EnvPrefix+"_HTTP_HOST (or --http_host)")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		invalid = append(invalid, "http_port must be in 1..65535")
	}
	if cfg.MaxRequestBodyBytes < 0 {
		invalid = append(invalid, "max_request_body_bytes must be >= 0")
	}
	if cfg.EnableCompression && (cfg.CompressionLevel < 1 || cfg.CompressionLevel > 9) {
		invalid = append(invalid, "compression_level must be in 1..9")
	}

	return joinProblems("core", missing, invalid)
}

// joinProblems folds missing and invalid lists into one error, or nil.
func joinProblems(scope string, missing, invalid []string) error {
	if len(missing) == 0 && len(invalid) == 0 {
		return nil
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(invalid, ", "))
	}
	return fmt.Errorf("%s configuration errors: %s", scope, strings.Join(parts, " | "))
}
