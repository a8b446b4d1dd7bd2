package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB triple with an opacity in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// String formats the color as rgba(r, g, b, a).
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Hex formats the RGB channels as #rrggbb, ignoring opacity.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Channels returns r, g, b widened to int.
func (c Color) Channels() [3]int {
	return [3]int{int(c.R), int(c.G), int(c.B)}
}

// Blend composites c over an opaque background and returns an opaque color.
func (c Color) Blend(bg Color) Color {
	a := clampFloat(c.A, 0, 1)
	mix := func(fg, back uint8) uint8 {
		return uint8(clamp(int(math.Round(a*float64(fg)+(1-a)*float64(back))), 0, 255))
	}
	return RGB(mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B))
}

// Distance is the Euclidean distance between the RGB channels of two colors.
func (c Color) Distance(other Color) float64 {
	dr := float64(c.R) - float64(other.R)
	dg := float64(c.G) - float64(other.G)
	db := float64(c.B) - float64(other.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ParseColor accepts #RRGGBB or rgb(...)/rgba(...) with comma separated
// numeric channels. The first three channels are r, g, b; an optional fourth
// is the opacity, defaulting to 1.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseFunctional(s)
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
}

func parseHex(s string) (Color, error) {
	if len(s) != 7 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func parseFunctional(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: channel %d of %q", ErrInvalidColorFormat, i, s)
		}
		ch[i] = uint8(math.Round(v))
	}

	c := Color{R: ch[0], G: ch[1], B: ch[2], A: 1}
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || math.IsNaN(a) || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("%w: alpha of %q", ErrInvalidColorFormat, s)
		}
		c.A = a
	}
	return c, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
