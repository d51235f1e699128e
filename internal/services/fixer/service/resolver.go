// Package service implements the fixer service
package service

import (
	"context"
	"strings"

	"fixred/internal/core/filter"
	"fixred/internal/platform/logger"
	"fixred/internal/services/fixer/domain"

	"golang.org/x/sync/singleflight"
)

// Resolver implements domain.Resolver over a Transport and a Cache.
// The cache is keyed by URL only, so one Resolver serves one filter.Config
type Resolver struct {
	transport domain.Transport
	cache     domain.Cache
	flight    singleflight.Group
}

// NewResolver constructs a Resolver
func NewResolver(t domain.Transport, c domain.Cache) *Resolver {
	return &Resolver{transport: t, cache: c}
}

// Resolve implements domain.Resolver
func (r *Resolver) Resolve(ctx context.Context, url string, cfg filter.Config) (string, bool) {
	if e, ok := r.cache.Get(url); ok {
		logger.C(ctx).Debug().Str("url", url).Bool("changed", e.OK).Msg("cache hit")
		return e.URL, e.OK
	}

	v, _, _ := r.flight.Do(url, func() (any, error) {
		// a finished flight may have filled the cache between Get and Do
		if e, ok := r.cache.Get(url); ok {
			return e, nil
		}
		e := r.lookup(ctx, url, cfg)
		r.cache.Put(url, e)
		return e, nil
	})
	e := v.(domain.Entry)
	return e.URL, e.OK
}

func (r *Resolver) lookup(ctx context.Context, url string, cfg filter.Config) domain.Entry {
	log := logger.C(ctx)
	if !cfg.Eligible(url) {
		log.Debug().Str("url", url).Msg("filtered out")
		return domain.None
	}

	got, err := r.transport.Follow(ctx, url, cfg.Shallow)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Str("mode", cfg.Mode()).Msg("could not resolve redirect")
		return domain.None
	}
	if got == "" {
		return domain.None
	}

	base, frag := splitFragment(url)
	if gotBase, _ := splitFragment(got); gotBase == base {
		return domain.None
	}
	if frag != "" && !strings.Contains(got, "#") {
		got += "#" + frag
	}
	log.Debug().Str("url", url).Str("to", got).Str("mode", cfg.Mode()).Msg("resolved")
	return domain.Entry{URL: got, OK: true}
}

// splitFragment returns the URL without its fragment and the fragment itself
func splitFragment(u string) (string, string) {
	if i := strings.IndexByte(u, '#'); i >= 0 {
		return u[:i], u[i+1:]
	}
	return u, ""
}

// ResolverFunc adapts a function to domain.Resolver
type ResolverFunc func(ctx context.Context, url string, cfg filter.Config) (string, bool)

// Resolve implements domain.Resolver
func (f ResolverFunc) Resolve(ctx context.Context, url string, cfg filter.Config) (string, bool) {
	return f(ctx, url, cfg)
}

// TransportFunc adapts a function to domain.Transport
type TransportFunc func(ctx context.Context, url string, shallow bool) (string, error)

// Follow implements domain.Transport
func (f TransportFunc) Follow(ctx context.Context, url string, shallow bool) (string, error) {
	return f(ctx, url, shallow)
}
