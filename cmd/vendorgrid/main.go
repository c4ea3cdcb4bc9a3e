// Command vendorgrid serves the vendor-access generator.
package main

import (
	"context"
	"os"

	"github.com/dalemusser/vendorgrid/app"
	"github.com/dalemusser/vendorgrid/internal/bootstrap"
)

func main() {
	err := app.Run(context.Background(), app.Hooks[bootstrap.AppConfig, *bootstrap.State]{
		Name:         bootstrap.AppName,
		LoadConfig:   bootstrap.LoadConfig,
		NewState:     bootstrap.NewState,
		BuildHandler: bootstrap.BuildHandler,
	})
	if err != nil {
		os.Exit(1)
	}
}
