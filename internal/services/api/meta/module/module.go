// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "fixred/internal/modkit"
	"fixred/internal/modkit/httpkit"

	metahttp "fixred/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	cache     metahttp.Sizer
	startedAt time.Time
}

// New constructs a meta module. WithPorts may carry a metahttp.Sizer to report cache size
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	sz, _ := b.Ports.(metahttp.Sizer)
	return &Module{deps: deps, built: b, cache: sz, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: "fixred-api",
			StartedAt:   m.startedAt,
			Cache:       m.cache,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return m.built.Prefix }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
