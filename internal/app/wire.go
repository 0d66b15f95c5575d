//go:build wireinject

package app

import (
	"github.com/google/wire"
	"github/chapool/wallet-core/internal/config"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

var appSet = wire.NewSet(
	newAppWithComponents,
	NewRegistry,
	NewPrometheusRegistry,
	NewMetrics,
	NewDispatcher,
)

// InitNewApp returns a new App instance.
func InitNewApp(
	_ config.Config,
) (*App, error) {
	wire.Build(appSet)
	return new(App), nil
}
