// Package api provides the HTTP API for the application
package api

import (
	"time"

	"fixred/internal/adapters/redirect"
	"fixred/internal/platform/config"
	"fixred/internal/platform/logger"
	phttp "fixred/internal/platform/net/http"

	"fixred/internal/modkit"
	"fixred/internal/modkit/httpkit"
	"fixred/internal/modkit/module"

	fixmod "fixred/internal/services/api/fix/module"
	metamod "fixred/internal/services/api/meta/module"
	"fixred/internal/services/fixer/cache"
	fixerdom "fixred/internal/services/fixer/domain"
	fixermod "fixred/internal/services/fixer/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger

	// Transport replaces the http redirect client, mostly for tests
	Transport fixerdom.Transport
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	} else {
		deps.Log = *logger.Named("api")
	}

	fo := fixermod.FromConfig(deps.Cfg)
	if err := fo.Validate(); err != nil {
		return err
	}

	ac := deps.Cfg.Prefix("CORE_API_")
	memo := cache.NewLRU(ac.MayInt("CACHE_SIZE", 4096), ac.MayDuration("CACHE_TTL", time.Hour))

	t := opt.Transport
	if t == nil {
		t = fixermod.NewTransport(fo)
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(memo)),
		fixmod.New(deps, modkit.WithPorts(fixmod.Ports{
			Transport: redirect.NewMemo(t, memo),
			Workers:   fo.Workers,
		})),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: ac.MayCSV("CORS_ORIGINS", nil),
		Timeout:     ac.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
		Slow:        ac.MayDuration("SLOW_REQUEST", 5*time.Second),
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			deps.Log.Debug().Str("module", m.Name()).Msg("mounting module")
			m.MountRoutes(api)
		}
	})
	return nil
}
