package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/vendorgrid/config"
	"github.com/dalemusser/vendorgrid/httputil"
	"github.com/dalemusser/vendorgrid/internal/notify"
	"github.com/dalemusser/vendorgrid/internal/web"
	"github.com/dalemusser/vendorgrid/internal/workspace"
	"github.com/dalemusser/vendorgrid/metrics"
	"github.com/dalemusser/vendorgrid/pantry/health"
	"github.com/dalemusser/vendorgrid/pantry/version"
	"github.com/dalemusser/vendorgrid/router"
	"go.uber.org/zap"
)

// State is the process-wide state served by every request.
type State struct {
	Controller *workspace.Controller
	Notifier   *notify.Notifier
}

// NewState is the NewState hook. Banner and run counters feed the
// Prometheus registry.
func NewState(_ *config.CoreConfig, cfg AppConfig, logger *zap.Logger) (*State, error) {
	var domain metrics.Domain

	n := notify.New(cfg.BannerTTL, logger.Named("notify"),
		notify.WithObserver(func(b notify.Banner) { domain.BannerShown(string(b.Kind)) }))

	ctrl, err := workspace.New(workspace.Options{
		VendorID:    cfg.VendorID,
		Actions:     cfg.Actions,
		CSVFilename: cfg.CSVFilename,
		TSVFilename: cfg.TSVFilename,
		VendorName:  cfg.DefaultVendorName,
		Country:     cfg.DefaultCountry,
		Notifier:    n,
		Messages:    workspace.NewMessages(cfg.DefaultLocale),
		Metrics:     domain,
		Logger:      logger.Named("workspace"),
	})
	if err != nil {
		return nil, err
	}
	return &State{Controller: ctrl, Notifier: n}, nil
}

// quietPaths are polled or scraped and logged at debug.
var quietPaths = []string{"/banner", "/api/banner", "/health", "/metrics"}

// BuildHandler is the BuildHandler hook.
func BuildHandler(core *config.CoreConfig, _ AppConfig, st *State, logger *zap.Logger) (http.Handler, error) {
	httputil.SetJSONLogger(logger)

	engine, err := web.Boot(logger)
	if err != nil {
		return nil, fmt.Errorf("boot templates: %w", err)
	}

	h := web.New(st.Controller, logger)
	r := router.New(core, logger, router.Options{
		ErrorPage:  h.ErrorPage,
		QuietPaths: quietPaths,
		Middleware: []func(http.Handler) http.Handler{h.Localize()},
	})

	health.Mount(r, map[string]health.Check{
		"templates": func(context.Context) error {
			if !engine.Has("index") || !engine.Has("error") {
				return errors.New("pages not compiled")
			}
			return nil
		},
	}, logger)
	version.Mount(r)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	h.Routes(r)
	return r, nil
}
