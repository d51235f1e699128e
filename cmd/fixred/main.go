// Command fixred rewrites http(s) links in text to the targets they redirect to.
//
//	fixred [-s] [-e REGEX] [-r REGEX] [--workers N] [PATH...]
//
// With no PATH the text is read from stdin and the result written to stdout.
// Directories are walked recursively and every regular file is fixed in place.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fixred/internal/core/filter"
	"fixred/internal/core/version"
	"fixred/internal/modkit"
	"fixred/internal/modkit/module"
	"fixred/internal/platform/logger"
	fixerdom "fixred/internal/services/fixer/domain"
	fixermod "fixred/internal/services/fixer/module"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	opt := logger.FromEnv()
	opt.Service = "fixred"
	opt.StaticFields = map[string]string{"run_id": uuid.NewString()}
	logger.Init(opt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process globals; extra options reach the fixer module
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, opts ...modkit.Option) int {
	fs := flag.NewFlagSet("fixred", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		shallow bool
		extract string
		ignore  string
		workers int
		showVer bool
	)
	fs.BoolVar(&shallow, "shallow", false, "resolve a single redirect hop only")
	fs.BoolVar(&shallow, "s", false, "shorthand for --shallow")
	fs.StringVar(&extract, "extract", "", "only resolve URLs matching this regex")
	fs.StringVar(&extract, "e", "", "shorthand for --extract")
	fs.StringVar(&ignore, "ignore", "", "never resolve URLs matching this regex")
	fs.StringVar(&ignore, "r", "", "shorthand for --ignore")
	fs.IntVar(&workers, "workers", 0, "concurrent resolutions (default CORE_FIXER_WORKERS or 16)")
	fs.BoolVar(&showVer, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: fixred [flags] [PATH...]  (flags may follow paths, -- ends flags)")
		fs.PrintDefaults()
	}
	paths, err := parseInterspersed(fs, args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if showVer {
		fmt.Fprintln(stdout, version.Info().String())
		return 0
	}

	cfg, err := filter.Compile(extract, ignore, shallow)
	if err != nil {
		return fail(stderr, err)
	}

	mod, err := fixermod.New(modkit.NewDeps(), fixermod.Overrides{Workers: workers, Filter: cfg}, opts...)
	if err != nil {
		return fail(stderr, err)
	}
	fx := module.MustPortsOf[fixerdom.FixerPort](mod)

	l := logger.Named("cli")
	var n int
	if len(paths) == 0 {
		l.Debug().Str("mode", cfg.Mode()).Msg("fixing stdin")
		n, err = fx.FixStream(ctx, stdin, stdout)
	} else {
		l.Debug().Str("mode", cfg.Mode()).Strs("paths", paths).Msg("fixing files")
		res, ferr := fx.FixFiles(ctx, paths)
		n, err = res.Fixed, ferr
		l.Info().Int("files", res.Files).Int("written", res.Written).Int("skipped", res.Skipped).Msg("done")
	}
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintf(stderr, "Fixed %d link(s)\n", n)
	return 0
}

// parseInterspersed lets flags appear after positional paths; everything after "--" is a path
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var paths []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if used := len(args) - len(rest); used > 0 && args[used-1] == "--" {
			return append(paths, rest...), nil
		}
		if len(rest) == 0 {
			return paths, nil
		}
		paths = append(paths, rest[0])
		args = rest[1:]
	}
}

func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
