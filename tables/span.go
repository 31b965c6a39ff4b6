package tables

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedSpan is returned when a rowspan or colspan value is not an
// integer.
var ErrMalformedSpan = errors.New("malformed span value")

// MaxSpan bounds a single span value, matching the HTML colspan limit.
const MaxSpan = 1000

// ParseSpan parses a rowspan/colspan attribute value.
func ParseSpan(val string) (int, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSpan, val)
	}
	if n < 1 {
		return 1, nil
	}
	if n > MaxSpan {
		return MaxSpan, nil
	}
	return n, nil
}
