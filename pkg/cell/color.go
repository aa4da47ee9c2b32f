package cell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal color: either a normalized "#rrggbb" value or an ANSI
// palette index such as "213". The empty Color means the host default.
type Color string

// ParseColor validates a color string. Hex colors are normalized to lower
// case six digit form; numeric values must be ANSI 256 palette indexes.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return "", fmt.Errorf("cell: invalid color %q: %w", s, err)
		}
		return Color(c.Hex()), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return "", fmt.Errorf("cell: invalid color %q", s)
	}
	return Color(s), nil
}

// IsHex reports whether the color is a "#rrggbb" value.
func (c Color) IsHex() bool {
	return strings.HasPrefix(string(c), "#")
}
