package main

import (
	"bytes"
	"context"
	"flag"
	"reflect"
	"strings"
	"testing"

	"fixred/internal/modkit"
	"fixred/internal/platform/testkit"
	fixerdom "fixred/internal/services/fixer/domain"
)

type fooTransport struct{}

func (fooTransport) Follow(_ context.Context, url string, shallow bool) (string, error) {
	base, _, _ := strings.Cut(url, "#")
	if !strings.Contains(base, "foo") {
		return "", nil
	}
	if shallow {
		return strings.ReplaceAll(base, "foo", "bar"), nil
	}
	return strings.ReplaceAll(base, "foo", "piyo"), nil
}

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	var tr fixerdom.Transport = fooTransport{}
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errb, modkit.WithPorts(tr))
	return code, out.String(), errb.String()
}

func TestRun_Stdin(t *testing.T) {
	code, out, errs := runCLI(t, "go https://foo.example/x#top now\n")
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, errs)
	}
	if out != "go https://piyo.example/x#top now\n" {
		t.Fatalf("stdout %q", out)
	}
	testkit.MustContain(t, errs, "Fixed 1 link(s)")
}

func TestRun_ShortFlags(t *testing.T) {
	code, out, _ := runCLI(t, "https://foo.a https://foo.b", "-s", "-r", `foo\.b`)
	if code != 0 {
		t.Fatalf("code %d", code)
	}
	if out != "https://bar.a https://foo.b" {
		t.Fatalf("stdout %q", out)
	}
}

func TestRun_Files(t *testing.T) {
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{
		"a.md":     "[x](https://foo.example/a)",
		"sub/b.md": "no links here",
	})
	code, out, errs := runCLI(t, "", "--extract", "example", root)
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, errs)
	}
	if out != "" {
		t.Fatalf("stdout must stay empty, got %q", out)
	}
	if got := testkit.ReadFile(t, root, "a.md"); got != "[x](https://piyo.example/a)" {
		t.Fatalf("a.md = %q", got)
	}
	testkit.MustContain(t, errs, "Fixed 1 link(s)")
}

func TestRun_Errors(t *testing.T) {
	code, _, errs := runCLI(t, "", "-e", "(")
	if code != 1 {
		t.Fatalf("bad pattern code %d", code)
	}
	testkit.MustContain(t, errs, "error:")

	code, _, errs = runCLI(t, "", t.TempDir()+"/missing")
	if code != 1 {
		t.Fatalf("missing path code %d", code)
	}
	testkit.MustContain(t, errs, "walk")

	code, _, _ = runCLI(t, "", "--nope")
	if code != 2 {
		t.Fatalf("unknown flag code %d", code)
	}
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "", "--version")
	if code != 0 {
		t.Fatalf("code %d", code)
	}
	testkit.MustContain(t, out, "fixred")
}

func TestRun_FlagsAfterPaths(t *testing.T) {
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{"a.md": "https://foo.example/a"})
	code, _, errs := runCLI(t, "", root, "-s")
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, errs)
	}
	if got := testkit.ReadFile(t, root, "a.md"); got != "https://bar.example/a" {
		t.Fatalf("a.md = %q", got)
	}

}

func TestParseInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	shallow := fs.Bool("s", false, "")
	extract := fs.String("e", "", "")

	paths, err := parseInterspersed(fs, []string{"a.md", "-s", "docs", "-e", "x", "--", "-r", "b.md"})
	if err != nil {
		t.Fatal(err)
	}
	if !*shallow || *extract != "x" {
		t.Fatalf("flags not parsed: s=%v e=%q", *shallow, *extract)
	}
	want := []string{"a.md", "docs", "-r", "b.md"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths %v want %v", paths, want)
	}
}
