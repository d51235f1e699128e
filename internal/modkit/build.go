package modkit

import (
	"net/http"

	"fixred/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	Subrouter func(httpkit.Router) httpkit.Router
}

// Build applies Option funcs and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Subrouter: c.subrouter,
	}
}

// Mount mounts routes under b.Prefix with b.Mw applied, or directly on r when no prefix is set
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	r = b.Subrouter(r)
	if b.Prefix == "" {
		if len(b.Mw) == 0 {
			routes(r)
			return
		}
		r.Group(func(g httpkit.Router) {
			g.Use(b.Mw...)
			routes(g)
		})
		return
	}
	httpkit.MountUnder(r, b.Prefix, b.Mw, routes)
}
