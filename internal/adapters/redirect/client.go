// Package redirect resolves where an http(s) URL redirects to
package redirect

import (
	"context"
	stderrs "errors"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"fixred/internal/core/version"
	perr "fixred/internal/platform/errors"
	"fixred/internal/platform/logger"

	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultMaxHops   = 20
	defaultRetryBase = 300 * time.Millisecond
	maxBackoff       = 30 * time.Second
)

var errTooManyHops = stderrs.New("too many redirects")

// Options configures the Client
type Options struct {
	UserAgent string
	Timeout   time.Duration
	MaxHops   int

	// Retry config for transient and rate limited responses; 0 disables retries
	MaxRetries int
	RetryBase  time.Duration

	// Cookies keeps a per lookup cookie jar so consent redirects that set a cookie resolve
	Cookies bool

	// Transport overrides the round tripper, nil uses a clone of http.DefaultTransport
	Transport http.RoundTripper
}

// Client implements domain.Transport over net/http
type Client struct {
	opts  Options
	rt    http.RoundTripper
	log   logger.Logger
	sleep func(context.Context, time.Duration) error
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = version.UserAgent()
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxHops <= 0 {
		o.MaxHops = defaultMaxHops
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	rt := o.Transport
	if rt == nil {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}
	return &Client{
		opts:  o,
		rt:    rt,
		log:   *logger.Named("redirect"),
		sleep: sleepCtx,
	}
}

// Follow implements domain.Transport.
// Deep mode returns the final URL of the chain, shallow mode the first Location.
// An empty string means the URL does not redirect
func (c *Client) Follow(ctx context.Context, rawURL string, shallow bool) (string, error) {
	target, _, _ := strings.Cut(rawURL, "#")

	var jar http.CookieJar
	if c.opts.Cookies {
		j, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeUnknown, "cookie jar")
		}
		jar = j
	}

	method := http.MethodHead
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		res, err := c.once(ctx, jar, method, target, shallow)
		if err != nil {
			if attempts < c.opts.MaxRetries && perr.Retryable(err) {
				back := c.backoff(attempts)
				c.log.Warn().Err(err).Str("url", target).Dur("retry_in", back).Int("attempt", attempts).Msg("transport error retrying")
				if err := c.sleep(ctx, back); err != nil {
					return "", err
				}
				attempts++
				continue
			}
			return "", err
		}

		switch res.status {
		case http.StatusMethodNotAllowed, http.StatusNotImplemented:
			if method == http.MethodHead {
				c.log.Debug().Str("url", target).Int("status", res.status).Msg("HEAD refused, retrying with GET")
				method = http.MethodGet
				continue
			}
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if attempts < c.opts.MaxRetries {
				wait := res.retryAfter
				if wait <= 0 || wait > maxBackoff {
					wait = c.backoff(attempts)
				}
				c.log.Warn().Str("url", target).Int("status", res.status).Dur("retry_in", wait).Msg("transient answer retrying")
				if err := c.sleep(ctx, wait); err != nil {
					return "", err
				}
				attempts++
				continue
			}
			return "", perr.Newf(perr.FromStatus(res.status), "%s answered %d", target, res.status)
		}
		return res.location, nil
	}
}

type answer struct {
	status     int
	location   string
	retryAfter time.Duration
}

// once issues one request, following redirects in deep mode
func (c *Client) once(ctx context.Context, jar http.CookieJar, method, target string, shallow bool) (answer, error) {
	hops := 0
	hc := &http.Client{
		Transport: c.rt,
		Timeout:   c.opts.Timeout,
		Jar:       jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if shallow {
				return http.ErrUseLastResponse
			}
			if len(via) > c.opts.MaxHops {
				return errTooManyHops
			}
			hops = len(via)
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return answer{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad url %q", target)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return answer{}, perr.FromTransport(err, method+" "+target)
	}
	defer drainAndClose(resp.Body)

	c.log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("hops", hops).
		Dur("latency", time.Since(start)).
		Msg("redirect http response")

	out := answer{status: resp.StatusCode, retryAfter: parseRetryAfter(resp.Header)}
	if shallow {
		if resp.StatusCode < 300 || resp.StatusCode > 399 {
			return out, nil
		}
		loc := resp.Header.Get("Location")
		if loc == "" {
			return out, nil
		}
		u, err := resp.Request.URL.Parse(loc)
		if err != nil {
			return answer{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "bad Location %q from %s", loc, target)
		}
		out.location = u.String()
		return out, nil
	}
	if hops > 0 {
		out.location = resp.Request.URL.String()
	}
	return out, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	if attempt > 16 {
		return maxBackoff
	}
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
