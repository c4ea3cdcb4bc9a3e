// app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/vendorgrid/config"
	"github.com/dalemusser/vendorgrid/logging"
	"github.com/dalemusser/vendorgrid/metrics"
	"github.com/dalemusser/vendorgrid/pantry/version"
	"github.com/dalemusser/vendorgrid/server"
	"go.uber.org/zap"
)

// Hooks are the integration points an application provides to Run.
// C is the app config, S the process state the handler serves.
type Hooks[C any, S any] struct {
	// Name is used for logging only.
	Name string

	// LoadConfig returns the core config and the validated app config.
	LoadConfig func(logger *zap.Logger) (*config.CoreConfig, C, error)

	// NewState builds the in-memory state shared by every request.
	NewState func(core *config.CoreConfig, appCfg C, logger *zap.Logger) (S, error)

	// BuildHandler constructs the router, middleware and routes.
	BuildHandler func(core *config.CoreConfig, appCfg C, state S, logger *zap.Logger) (http.Handler, error)
}

// Run executes the startup sequence and blocks until shutdown:
//
//  1. bootstrap logger
//  2. core + app config (Hooks.LoadConfig)
//  3. final logger from the core config
//  4. default metrics
//  5. state (Hooks.NewState)
//  6. shutdown signals
//  7. handler (Hooks.BuildHandler)
//  8. HTTP server
func Run[C any, S any](ctx context.Context, hooks Hooks[C, S]) error {
	bootstrap := logging.BootstrapLogger()
	defer bootstrap.Sync()
	bootstrap.Info("bootstrap logger initialized", zap.String("app", hooks.Name))

	coreCfg, appCfg, err := hooks.LoadConfig(bootstrap)
	if err != nil {
		bootstrap.Error("config load failed", zap.Error(err))
		return fmt.Errorf("load config: %w", err)
	}
	bootstrap.Info("config loaded",
		zap.String("env", coreCfg.Env),
		zap.String("log_level", coreCfg.LogLevel),
	)

	logger, err := logging.BuildLogger(coreCfg.LogLevel, coreCfg.Env)
	if err != nil {
		bootstrap.Error("logger build failed", zap.Error(err))
		return fmt.Errorf("build logger: %w", err)
	}
	logger = logging.ForApp(logger, hooks.Name, version.String())
	defer logger.Sync()
	logger.Debug("effective core config", zap.String("config", coreCfg.Dump()))

	metrics.RegisterDefault(logger)

	state, err := hooks.NewState(coreCfg, appCfg, logger)
	if err != nil {
		logger.Error("state init failed", zap.Error(err))
		return fmt.Errorf("init state: %w", err)
	}

	ctx, cancel := server.WithShutdownSignals(ctx, logger)
	defer cancel()

	handler, err := hooks.BuildHandler(coreCfg, appCfg, state, logger)
	if err != nil {
		logger.Error("handler build failed", zap.Error(err))
		return fmt.Errorf("build handler: %w", err)
	}

	if err := server.ListenAndServeWithContext(ctx, coreCfg, handler, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
