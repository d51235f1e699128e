package service

import (
	"bytes"
	"context"
	"io"
	"strings"

	"fixred/internal/adapters/files"
	"fixred/internal/core/filter"
	"fixred/internal/core/replace"
	"fixred/internal/core/urlscan"
	perr "fixred/internal/platform/errors"
	"fixred/internal/services/fixer/domain"

	"golang.org/x/sync/errgroup"
)

// Config for the fixer service
type Config struct {
	Workers int
	Filter  filter.Config
}

// Fixer implements domain.FixerPort
type Fixer struct {
	Res   domain.Resolver
	List  domain.Lister
	Store domain.FileStore
	Cfg   Config
}

// New constructs a new Fixer. List and Store may be nil when FixFiles is never called
func New(res domain.Resolver, list domain.Lister, store domain.FileStore, cfg Config) *Fixer {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Fixer{Res: res, List: list, Store: store, Cfg: cfg}
}

// Fix implements domain.FixerPort
func (f *Fixer) Fix(ctx context.Context, w io.Writer, text string) (int, error) {
	reps, err := f.Plan(ctx, text)
	if err != nil {
		return 0, err
	}
	if err := replace.Apply(w, text, reps); err != nil {
		return 0, err
	}
	return len(reps), nil
}

// FixString implements domain.FixerPort
func (f *Fixer) FixString(ctx context.Context, text string) (string, int, error) {
	var b strings.Builder
	b.Grow(len(text))
	n, err := f.Fix(ctx, &b, text)
	if err != nil {
		return "", 0, err
	}
	return b.String(), n, nil
}

// FixStream implements domain.FixerPort
func (f *Fixer) FixStream(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, perr.IOf(err, "read", "stdin")
	}
	text, err := files.DecodeUTF8(raw)
	if err != nil {
		return 0, perr.WithOp(err, "stdin")
	}
	return f.Fix(ctx, w, text)
}

// Plan scans text and resolves every URL, returning the replacements in text order
func (f *Fixer) Plan(ctx context.Context, text string) ([]replace.Replacement, error) {
	spans := urlscan.FindAll(text)
	if len(spans) == 0 {
		return nil, nil
	}

	type result struct {
		url string
		ok  bool
	}
	out := make([]result, len(spans))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.Cfg.Workers)
	for i, sp := range spans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i].url, out[i].ok = f.Res.Resolve(gctx, sp.In(text), f.Cfg.Filter)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "resolution interrupted")
	}

	reps := make([]replace.Replacement, 0, len(spans))
	for i, sp := range spans {
		if !out[i].ok {
			continue
		}
		reps = append(reps, replace.Replacement{Start: sp.Start, End: sp.End, Text: out[i].url})
	}
	return reps, nil
}

// render runs Fix into a fresh buffer
func (f *Fixer) render(ctx context.Context, text string) ([]byte, int, error) {
	var buf bytes.Buffer
	buf.Grow(len(text))
	n, err := f.Fix(ctx, &buf, text)
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), n, nil
}
