package ass

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA color; A is transparency as stored by ASS (0 = opaque)
type Color struct {
	R, G, B, A uint8
}

// &HBBGGRR, the SSA v4 style field form
func (c Color) SSAFormatted() string {
	return fmt.Sprintf("&H%02X%02X%02X", c.B, c.G, c.R)
}

// &HAABBGGRR, the ASS v4+ style field form
func (c Color) ASSFormatted() string {
	return fmt.Sprintf("&H%02X%02X%02X%02X", c.A, c.B, c.G, c.R)
}

// ParseColor accepts &H hex (with or without a trailing &) and the plain
// decimal integers written by SSA v4 tools. Both encode AABBGGRR.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)

	var (
		v   uint64
		err error
	)
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "&H") {
		hex := strings.TrimSuffix(upper[2:], "&")
		v, err = strconv.ParseUint(hex, 16, 32)
	} else {
		var n int64
		n, err = strconv.ParseInt(s, 10, 64)
		v = uint64(uint32(n))
	}
	if err != nil || s == "" {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	return Color{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}, nil
}
