package connector

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// decodeText validates b as UTF-8 and returns it as a string. A multi-byte
// sequence cut off at the end of b counts as invalid.
func decodeText(b []byte) (string, error) {
	out, n, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", fmt.Errorf("invalid UTF-8 near byte %d of %d: %w", n, len(b), err)
	}
	return string(out), nil
}
