package app

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/vendorgrid/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testCfg struct{ name string }

func TestRun_StopsOnHookErrors(t *testing.T) {
	core := &config.CoreConfig{Env: "dev", LogLevel: "error"}
	errBoom := errors.New("boom")

	tests := []struct {
		name  string
		hooks Hooks[testCfg, int]
	}{
		{"config", Hooks[testCfg, int]{
			LoadConfig: func(*zap.Logger) (*config.CoreConfig, testCfg, error) {
				return nil, testCfg{}, errBoom
			},
		}},
		{"state", Hooks[testCfg, int]{
			LoadConfig: func(*zap.Logger) (*config.CoreConfig, testCfg, error) {
				return core, testCfg{name: "x"}, nil
			},
			NewState: func(*config.CoreConfig, testCfg, *zap.Logger) (int, error) {
				return 0, errBoom
			},
		}},
		{"handler", Hooks[testCfg, int]{
			LoadConfig: func(*zap.Logger) (*config.CoreConfig, testCfg, error) {
				return core, testCfg{name: "x"}, nil
			},
			NewState: func(_ *config.CoreConfig, c testCfg, _ *zap.Logger) (int, error) {
				assert.Equal(t, "x", c.name)
				return 7, nil
			},
			BuildHandler: func(_ *config.CoreConfig, _ testCfg, s int, _ *zap.Logger) (http.Handler, error) {
				assert.Equal(t, 7, s)
				return nil, errBoom
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.hooks.Name = "test"
			err := Run(context.Background(), tt.hooks)
			assert.ErrorIs(t, err, errBoom)
		})
	}
}
