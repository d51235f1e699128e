// Package module implements the fixer module
package module

import (
	"net/http"

	"fixred/internal/adapters/files"
	"fixred/internal/adapters/redirect"
	"fixred/internal/core/filter"
	"fixred/internal/modkit"
	"fixred/internal/modkit/httpkit"
	"fixred/internal/services/fixer/cache"
	"fixred/internal/services/fixer/domain"
	"fixred/internal/services/fixer/service"
)

// Ports exposed by the fixer module
type Ports struct {
	Fixer     domain.FixerPort
	Transport domain.Transport
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// Overrides are per-run values that win over config (typically CLI flags)
type Overrides struct {
	Workers int
	Filter  filter.Config
}

// New constructs the fixer module for one run: one resolver, one cache, one filter.
// Invalid options are returned as a Validation error
func New(deps modkit.Deps, ov Overrides, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("fixer")}, opts...)...)

	o := FromConfig(deps.Cfg)
	if ov.Workers != 0 {
		o.Workers = ov.Workers
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	// a caller may inject its own transport (tests, a memoized api transport)
	t, _ := b.Ports.(domain.Transport)
	if t == nil {
		t = NewTransport(o)
	}

	fx := service.New(
		service.NewResolver(t, cache.NewSharded()),
		files.NewWalker(),
		files.NewStore(),
		service.Config{Workers: o.Workers, Filter: ov.Filter},
	)

	return &Module{
		deps:  deps,
		opts:  o,
		ports: Ports{Fixer: fx, Transport: t},
	}, nil
}

// NewTransport builds the http redirect client from Options
func NewTransport(o Options) *redirect.Client {
	return redirect.NewClient(redirect.Options{
		UserAgent:  o.UserAgent,
		Timeout:    o.Timeout,
		MaxHops:    o.MaxHops,
		MaxRetries: o.MaxRetries,
		RetryBase:  o.RetryBase,
		Cookies:    o.Cookies,
	})
}

// Options returns the effective options
func (m *Module) Options() Options { return m.opts }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "fixer" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module, the fixer has no routes of its own
func (m *Module) MountRoutes(_ httpkit.Router) {}
