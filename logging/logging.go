// logging/logging.go
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BootstrapLogger returns a console logger for use before config is loaded.
func BootstrapLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// IsValidLogLevel reports whether level is one of ValidLogLevels, ignoring case.
func IsValidLogLevel(level string) bool {
	level = strings.ToLower(level)
	for _, valid := range ValidLogLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// BuildLogger builds the process logger: JSON when env is "prod", console
// otherwise. An unknown level falls back to info with a warning on stderr.
func BuildLogger(level, env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if err := cfg.Level.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		_, _ = os.Stderr.WriteString("WARNING: invalid log level \"" + level +
			"\"; valid levels are: " + strings.Join(ValidLogLevels, ", ") + ". Defaulting to \"info\".\n")
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// ForApp tags every entry with the application name and version.
func ForApp(logger *zap.Logger, name, version string) *zap.Logger {
	return logger.With(zap.String("app", name), zap.String("version", version))
}
