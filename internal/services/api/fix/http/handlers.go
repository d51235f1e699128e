// Package http provides the fix and scan endpoints
package http

import (
	stdhttp "net/http"

	"fixred/internal/core/filter"
	"fixred/internal/core/urlscan"
	"fixred/internal/modkit/httpkit"
	"fixred/internal/platform/logger"
	"fixred/internal/services/api/fix/domain"
	"fixred/internal/services/fixer/cache"
	fixdom "fixred/internal/services/fixer/domain"
	"fixred/internal/services/fixer/service"
)

// Deps are the handler dependencies
type Deps struct {
	Transport fixdom.Transport // shared across requests
	Workers   int
}

// Register mounts the fix routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	opts := httpkit.JSONOptions{MaxBytes: 6 * domain.MaxText, DisallowUnknown: true}
	httpkit.PostJSON(r, "/fix", h.fix, opts)
	httpkit.PostJSON(r, "/scan", h.scan, opts)
}

type handlers struct{ deps Deps }

// fix resolves every URL in the text with a cache scoped to this request,
// so one caller's filters never leak into another's results
func (h *handlers) fix(r *stdhttp.Request, in domain.FixInput) (any, error) {
	cfg, err := filter.Compile(in.Extract, in.Ignore, in.Shallow)
	if err != nil {
		return nil, err
	}
	fx := service.New(
		service.NewResolver(h.deps.Transport, cache.NewSharded()),
		nil, nil,
		service.Config{Workers: h.deps.Workers, Filter: cfg},
	)
	text, n, err := fx.FixString(r.Context(), in.Text)
	if err != nil {
		return nil, err
	}
	logger.C(r.Context()).Info().Int("links", n).Str("mode", cfg.Mode()).Msg("fixed text")
	return domain.FixOutput{Text: text, Count: n}, nil
}

func (h *handlers) scan(_ *stdhttp.Request, in domain.ScanInput) (any, error) {
	spans := urlscan.FindAll(in.Text)
	out := domain.ScanOutput{URLs: make([]domain.ScanURL, len(spans))}
	for i, sp := range spans {
		out.URLs[i] = domain.ScanURL{Start: sp.Start, End: sp.End, URL: sp.In(in.Text)}
	}
	return out, nil
}
