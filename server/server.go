// server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/vendorgrid/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WithShutdownSignals returns a context canceled on SIGINT or SIGTERM. The
// cancel func also stops signal delivery.
func WithShutdownSignals(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			if logger != nil {
				logger.Info("shutdown signal received", zap.Any("signal", sig))
			}
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// ListenAndServeWithContext listens on cfg.Addr() and serves handler over
// plain HTTP until ctx is canceled.
func ListenAndServeWithContext(ctx context.Context, cfg *config.CoreConfig, handler http.Handler, logger *zap.Logger) error {
	if cfg == nil {
		return errors.New("ListenAndServeWithContext: cfg is nil")
	}
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen http %s: %w", cfg.Addr(), err)
	}
	return Serve(ctx, ln, cfg, handler, logger)
}

// Serve runs the server on ln and blocks until ctx is canceled (graceful
// shutdown bounded by cfg.HTTP.ShutdownTimeout) or the server fails.
// ln is closed on return.
func Serve(ctx context.Context, ln net.Listener, cfg *config.CoreConfig, handler http.Handler, logger *zap.Logger) error {
	if cfg == nil {
		return errors.New("Serve: cfg is nil")
	}
	if handler == nil {
		return errors.New("Serve: handler is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       2 * cfg.HTTP.WriteTimeout,
	}
	if stdlog, err := zap.NewStdLogAt(logger, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = stdlog
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()
	logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))

	select {
	case <-ctx.Done():
		logger.Info("shutting down server…")
		// ctx is already done, so the shutdown window gets a fresh parent.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = ln.Close()
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped gracefully")
		return nil

	case err := <-serveErr:
		_ = ln.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
