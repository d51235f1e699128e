// Package replace splices replacement strings into text by byte range
package replace

import (
	"bufio"
	"io"
	"strings"

	perr "fixred/internal/platform/errors"
)

// Replacement swaps text[Start:End] for Text
type Replacement struct {
	Start int
	End   int
	Text  string
}

// Validate checks that reps are in range, ascending and pairwise disjoint for a text of length n
func Validate(reps []Replacement, n int) error {
	prev := 0
	for i, r := range reps {
		if r.Start < prev || r.End < r.Start || r.End > n {
			return perr.InvalidArgf("replacement %d [%d,%d) out of order or range (len %d)", i, r.Start, r.End, n)
		}
		prev = r.End
	}
	return nil
}

// Apply writes text to w with every replacement spliced in.
// reps must be ascending and disjoint. Write errors are returned as they happen
func Apply(w io.Writer, text string, reps []Replacement) error {
	out := bufio.NewWriter(w)
	cur := 0
	for _, r := range reps {
		if _, err := out.WriteString(text[cur:r.Start]); err != nil {
			return sinkErr(err)
		}
		if _, err := out.WriteString(r.Text); err != nil {
			return sinkErr(err)
		}
		cur = r.End
	}
	if _, err := out.WriteString(text[cur:]); err != nil {
		return sinkErr(err)
	}
	if err := out.Flush(); err != nil {
		return sinkErr(err)
	}
	return nil
}

// ApplyString is Apply into a string, reps are validated first
func ApplyString(text string, reps []Replacement) (string, error) {
	if err := Validate(reps, len(text)); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(text))
	if err := Apply(&b, text, reps); err != nil {
		return "", err
	}
	return b.String(), nil
}

func sinkErr(err error) error {
	return perr.IOf(err, "output", "write failed")
}
