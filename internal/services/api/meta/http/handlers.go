// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"fixred/internal/core/version"
	"fixred/internal/modkit/httpkit"
)

// Sizer is satisfied by caches that report their size
type Sizer interface {
	Len() int
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Cache       Sizer // optional
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name         string `json:"name"`
	Started      string `json:"started"`
	Uptime       int64  `json:"uptime"`
	CacheEntries int    `json:"cache_entries"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}
	if h.deps.Cache != nil {
		out.CacheEntries = h.deps.Cache.Len()
	}
	return out, nil
}
