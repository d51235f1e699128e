package redirect

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// parseRetryAfter reads a delay-seconds Retry-After header; HTTP dates are ignored
func parseRetryAfter(h http.Header) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func drainAndClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	_ = rc.Close()
}
