package config

import (
	"fmt"
	"strings"

	"f3os/internal/errors"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color parsed from a "#rrggbb" or "#rgb" setting
type Color struct {
	R, G, B uint8
}

// ParseColor parses a hex color string. The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.NewConfigError("invalid color", s, errors.InvalidColor, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex renders the color as "#rrggbb"
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// MarshalText lets snapshots and saved files carry the hex form
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func isColorKey(key string) bool {
	return strings.Contains(key, "color")
}
