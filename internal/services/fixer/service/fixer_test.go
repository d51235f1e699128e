package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fixred/internal/core/filter"
	perr "fixred/internal/platform/errors"
	"fixred/internal/services/fixer/cache"
	"fixred/internal/services/fixer/domain"
)

var _ domain.FixerPort = (*Fixer)(nil)

func newFixer(ft domain.Transport, cfg filter.Config, workers int) *Fixer {
	return New(NewResolver(ft, cache.NewSharded()), nil, nil, Config{Workers: workers, Filter: cfg})
}

func TestFix_Table(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		cfg   filter.Config
		want  string
		wantN int
	}{
		{"empty", "", filter.Config{}, "", 0},
		{"no url", "foo bar baz", filter.Config{}, "foo bar baz", 0},
		{"deep", "see https://foo.example.", filter.Config{}, "see https://piyo.example.", 1},
		{"shallow", "see https://foo.example.", filter.Config{Shallow: true}, "see https://bar.example.", 1},
		{"unchanged url", "see https://example.com", filter.Config{}, "see https://example.com", 0},
		{"error leaves url", "x https://error.foo y", filter.Config{}, "x https://error.foo y", 0},
		{
			"mixed", "[a](https://foo.example/1) and https://example.com and http://foo.example/2!",
			filter.Config{},
			"[a](https://piyo.example/1) and https://example.com and http://piyo.example/2!", 2,
		},
		{"unicode around", "日本語 https://foo.example/日本 です", filter.Config{}, "日本語 https://piyo.example/日本 です", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixer(newFooTransport(), tc.cfg, 4)
			got, n, err := f.FixString(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("fix: %v", err)
			}
			if got != tc.want || n != tc.wantN {
				t.Fatalf("got (%q, %d), want (%q, %d)", got, n, tc.want, tc.wantN)
			}
		})
	}
}

func TestFix_FilterComposition(t *testing.T) {
	in := "https://foo.example/a https://foo.github.com/b https://foo.other.org/c"
	cases := []struct {
		extract, ignore string
		want            string
	}{
		{"example", "", "https://piyo.example/a https://foo.github.com/b https://foo.other.org/c"},
		{"", "github", "https://piyo.example/a https://foo.github.com/b https://piyo.other.org/c"},
		{"\\.(example|org)", "org", "https://piyo.example/a https://foo.github.com/b https://foo.other.org/c"},
	}
	for _, tc := range cases {
		f := newFixer(newFooTransport(), mustFilter(t, tc.extract, tc.ignore, false), 2)
		got, _, err := f.FixString(context.Background(), in)
		if err != nil || got != tc.want {
			t.Fatalf("extract=%q ignore=%q: got %q, %v", tc.extract, tc.ignore, got, err)
		}
	}
}

func TestFix_DuplicateURLsResolveOnce(t *testing.T) {
	ft := newFooTransport()
	ft.delay = 20 * time.Millisecond
	f := newFixer(ft, filter.Config{}, 8)
	in := strings.Repeat("https://foo.example/x ", 10)
	got, n, err := f.FixString(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 || strings.Contains(got, "foo") {
		t.Fatalf("got %q n=%d", got, n)
	}
	if c := ft.count("https://foo.example/x"); c != 1 {
		t.Fatalf("transport calls = %d, want 1", c)
	}
}

func TestFix_OrderIndependentOfWorkers(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("line https://foo.example/")
		b.WriteString(strings.Repeat("z", i%7+1))
		b.WriteString(" end\n")
	}
	in := b.String()
	want, _, _ := newFixer(newFooTransport(), filter.Config{}, 1).FixString(context.Background(), in)
	got, _, _ := newFixer(newFooTransport(), filter.Config{}, 16).FixString(context.Background(), in)
	if got != want {
		t.Fatalf("worker count changed output")
	}
}

func TestFix_ResolverFuncDouble(t *testing.T) {
	res := ResolverFunc(func(_ context.Context, url string, _ filter.Config) (string, bool) {
		return strings.ToUpper(url), true
	})
	f := New(res, nil, nil, Config{Workers: 2})
	got, n, err := f.FixString(context.Background(), "a http://x.y b")
	if err != nil || got != "a HTTP://X.Y b" || n != 1 {
		t.Fatalf("got %q %d %v", got, n, err)
	}
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func TestFix_SinkErrorIsFatal(t *testing.T) {
	f := newFixer(newFooTransport(), filter.Config{}, 1)
	_, err := f.Fix(context.Background(), errWriter{}, "https://foo.example")
	if !perr.IsCode(err, perr.ErrorCodeIO) {
		t.Fatalf("want IO error, got %v", err)
	}
}

func TestFix_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newFixer(newFooTransport(), filter.Config{}, 1)
	if _, _, err := f.FixString(ctx, "https://foo.example"); err == nil {
		t.Fatalf("cancelled context should abort resolution")
	}
}

func TestFixStream(t *testing.T) {
	f := newFixer(newFooTransport(), filter.Config{}, 2)
	var out bytes.Buffer
	n, err := f.FixStream(context.Background(), strings.NewReader("go https://foo.example/#x now"), &out)
	if err != nil || n != 1 || out.String() != "go https://piyo.example/#x now" {
		t.Fatalf("got %q %d %v", out.String(), n, err)
	}

	out.Reset()
	_, err = f.FixStream(context.Background(), bytes.NewReader([]byte{0xff, 'a'}), &out)
	if !perr.IsCode(err, perr.ErrorCodeDecode) {
		t.Fatalf("non UTF-8 stdin must be a decode error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on decode failure")
	}
}
