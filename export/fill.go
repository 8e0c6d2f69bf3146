package export

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/colornames"
)

// ErrInvalidFill is returned for fills that are neither hex colours nor SVG colour names.
var ErrInvalidFill = errors.New("export: 无效的填充色")

// ParseFill resolves an SVG fill value: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// an SVG 1.1 colour keyword ("red", "steelblue") or "transparent". An empty
// fill means DefaultFill.
func ParseFill(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = DefaultFill
	}
	if strings.HasPrefix(s, "#") {
		if !isHexColor(s[1:]) {
			return color.RGBA{}, fmt.Errorf("%w %q", ErrInvalidFill, s)
		}
		return canvas.Hex(s), nil
	}
	name := strings.ToLower(s)
	if name == "transparent" {
		return canvas.Transparent, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w %q", ErrInvalidFill, s)
}

func isHexColor(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9', 'a' <= r && r <= 'f', 'A' <= r && r <= 'F':
		default:
			return false
		}
	}
	return true
}
