package module

import (
	"time"

	"fixred/internal/core/version"
	"fixred/internal/platform/config"
	"fixred/internal/platform/validate"
)

// Options holds configuration settings for the fixer module
type Options struct {
	Workers    int           `json:"workers" validate:"min=1,max=1024"`
	Timeout    time.Duration `json:"timeout" validate:"min=0"`
	UserAgent  string        `json:"user_agent" validate:"required"`
	MaxHops    int           `json:"max_hops" validate:"min=1,max=100"`
	MaxRetries int           `json:"max_retries" validate:"min=0,max=10"`
	RetryBase  time.Duration `json:"retry_base" validate:"min=0"`
	Cookies    bool          `json:"cookies"`
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	fc := cfg.Prefix("CORE_FIXER_")
	return Options{
		Workers:    fc.MayInt("WORKERS", 16),
		Timeout:    fc.MayDuration("TIMEOUT", 15*time.Second),
		UserAgent:  fc.MayString("USER_AGENT", version.UserAgent()),
		MaxHops:    fc.MayInt("MAX_HOPS", 20),
		MaxRetries: fc.MayInt("MAX_RETRIES", 1),
		RetryBase:  fc.MayDuration("RETRY_BASE", 300*time.Millisecond),
		Cookies:    fc.MayBool("COOKIES", true),
	}
}

// Validate reports the first invalid option as a Validation error
func (o Options) Validate() error { return validate.Struct(o) }
