// Package app wires the coinctl components together.
package app

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github/chapool/wallet-core/internal/config"
	"github/chapool/wallet-core/internal/dispatch"
	"github/chapool/wallet-core/internal/registry"
)

// App is a central struct keeping all the dependencies.
// It is initialized with wire. To add a new component, declare it here, add
// a provider below and list the provider in wire.Build in wire.go.
type App struct {
	Config     config.Config
	Registry   *registry.Registry
	Prometheus *prometheus.Registry
	Metrics    *dispatch.Metrics
	Dispatcher *dispatch.Dispatcher
}

func newAppWithComponents(
	cfg config.Config,
	reg *registry.Registry,
	promRegistry *prometheus.Registry,
	metrics *dispatch.Metrics,
	dispatcher *dispatch.Dispatcher,
) *App {
	return &App{
		Config:     cfg,
		Registry:   reg,
		Prometheus: promRegistry,
		Metrics:    metrics,
		Dispatcher: dispatcher,
	}
}

func NewRegistry(cfg config.Config) (*registry.Registry, error) {
	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load coin registry")
	}
	return reg, nil
}

func NewPrometheusRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func NewMetrics(promRegistry *prometheus.Registry) *dispatch.Metrics {
	return dispatch.NewMetrics(promRegistry)
}

func NewDispatcher(reg *registry.Registry, metrics *dispatch.Metrics) *dispatch.Dispatcher {
	return dispatch.New(reg, dispatch.WithMetrics(metrics))
}

// WriteMetrics writes the collected metrics in the prometheus text format.
func (a *App) WriteMetrics(w io.Writer) error {
	families, err := a.Prometheus.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return errors.Wrap(err, "failed to encode metrics")
		}
	}
	return nil
}
