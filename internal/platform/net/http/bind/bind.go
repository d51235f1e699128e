// Package bind provides JSON bind and validation helpers for handlers
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "fixred/internal/platform/errors"
	"fixred/internal/platform/logger"
	"fixred/internal/platform/validate"
)

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 2MiB
	DisallowUnknown bool  // default true
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 2 << 20, DisallowUnknown: true}
}

// ParseJSON decodes JSON into T, validates it, and maps failures to project errors
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("failed to close request body")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	}

	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return zero, perr.JSONErrf("empty body")
		case errors.As(err, &tooBig):
			return zero, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		default:
			return zero, perr.JSONErrf("invalid JSON: %v", err)
		}
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := validate.Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
