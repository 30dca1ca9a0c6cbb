// Package utils provides colour parsing and Windows helper functions.
package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#RGB", "#RRGGBB" or "#AARRGGBB".
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("colour %q must start with #", s)
	}
	hex := s[1:]

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("colour %q has invalid length", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// FormatHexColor renders c as "#RRGGBB", or "#AARRGGBB" when translucent.
func FormatHexColor(c color.NRGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
