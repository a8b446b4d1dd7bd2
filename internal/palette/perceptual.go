package palette

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colorful converts the RGB channels to a go-colorful color. Opacity is
// dropped; blend first when it matters.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColorful clamps a go-colorful color back to 8-bit channels with the
// given opacity.
func FromColorful(cc colorful.Color, alpha float64) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: alpha}
}

// Perceptual is the CIEDE2000 difference between two colors. Unlike
// Distance it weighs hue and lightness the way the eye does; 0 means
// identical and values near 1 are very different.
func (c Color) Perceptual(other Color) float64 {
	return c.Colorful().DistanceCIEDE2000(other.Colorful())
}

// Lerp interpolates from c to other in CIE L*a*b*, t in [0, 1]. The result
// takes c's opacity.
func (c Color) Lerp(other Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	return FromColorful(c.Colorful().BlendLab(other.Colorful(), t), c.A)
}
