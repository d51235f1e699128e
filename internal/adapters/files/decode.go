// Package files reads, walks and atomically rewrites files on the local file system
package files

import (
	perr "fixred/internal/platform/errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DecodeUTF8 returns b as a string when it is valid UTF-8 and a Decode error otherwise
func DecodeUTF8(b []byte) (string, error) {
	if _, n, err := transform.Bytes(encoding.UTF8Validator, b); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeDecode, "not valid UTF-8 at byte %d", n)
	}
	return string(b), nil
}
