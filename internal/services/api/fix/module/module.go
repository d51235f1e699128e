// Package module wires the fix endpoints into the API
package module

import (
	"net/http"

	"fixred/internal/modkit"
	"fixred/internal/modkit/httpkit"
	fixhttp "fixred/internal/services/api/fix/http"
	fixdom "fixred/internal/services/fixer/domain"
)

// Ports are the dependencies injected into the fix module
type Ports struct {
	Transport fixdom.Transport // required
	Workers   int
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports Ports
}

// New constructs the fix module, it needs WithPorts(fix/module.Ports)
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("fix")}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok {
		panic("fix module: expected WithPorts(fix/module.Ports)")
	}
	if ports.Transport == nil {
		panic("fix module: Ports missing Transport")
	}
	return &Module{deps: deps, built: b, ports: ports}
}

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		fixhttp.Register(rr, fixhttp.Deps{Transport: m.ports.Transport, Workers: m.ports.Workers})
	})
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return m.built.Prefix }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }
