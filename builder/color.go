package builder

import (
	"strconv"
	"strings"
)

// Color is an RGB color with channels normalized to the 0-1 range.
type Color struct {
	R, G, B float64
}

// ParseHex parses a hex color token like "#1a2b3c" or "fff". Three-digit
// shorthand expands by doubling each digit. The second return value is
// false for anything that is not exactly 3 or 6 hex digits after an
// optional leading '#'; callers treat that as "draw nothing", not black.
func ParseHex(token string) (Color, bool) {
	s := strings.TrimPrefix(token, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{
		R: float64(v>>16&0xFF) / 255,
		G: float64(v>>8&0xFF) / 255,
		B: float64(v&0xFF) / 255,
	}, true
}
