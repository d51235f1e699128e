// Package filter decides which URLs are eligible for redirect resolution
package filter

import (
	"regexp"

	perr "fixred/internal/platform/errors"
)

// Pattern is anything that can match a string, *regexp.Regexp satisfies it
type Pattern interface {
	MatchString(s string) bool
}

// Config is the immutable per-run resolution policy
// A nil Extract matches everything; a nil Ignore matches nothing
type Config struct {
	Extract Pattern
	Ignore  Pattern
	Shallow bool
}

// Compile builds a Config from raw expressions; empty strings leave the filter unset
func Compile(extract, ignore string, shallow bool) (Config, error) {
	cfg := Config{Shallow: shallow}
	if extract != "" {
		re, err := regexp.Compile(extract)
		if err != nil {
			return Config{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "invalid extract pattern %q", extract), "extract")
		}
		cfg.Extract = re
	}
	if ignore != "" {
		re, err := regexp.Compile(ignore)
		if err != nil {
			return Config{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "invalid ignore pattern %q", ignore), "ignore")
		}
		cfg.Ignore = re
	}
	return cfg, nil
}

// Eligible reports whether url passes both filters
func (c Config) Eligible(url string) bool {
	if c.Extract != nil && !c.Extract.MatchString(url) {
		return false
	}
	if c.Ignore != nil && c.Ignore.MatchString(url) {
		return false
	}
	return true
}

// Mode names the redirect mode for logs
func (c Config) Mode() string {
	if c.Shallow {
		return "shallow"
	}
	return "deep"
}
