package palette

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator produces the next color of a sequence from the previous one.
// It is not safe for concurrent use; each traversal owns its own generator.
type Generator struct {
	coherence float64
	opacity   float64
	rng       *rand.Rand
}

// NewGenerator validates coherence and opacity and seeds the random source.
func NewGenerator(coherence, opacity float64, seed int64) (*Generator, error) {
	if math.IsNaN(coherence) || coherence < 0 || coherence > 1 {
		return nil, fmt.Errorf("%w: coherence %v", ErrParameterBounds, coherence)
	}
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("%w: opacity %v", ErrParameterBounds, opacity)
	}
	return &Generator{
		coherence: coherence,
		opacity:   opacity,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

func (g *Generator) Coherence() float64 { return g.coherence }
func (g *Generator) Opacity() float64   { return g.opacity }

// MaxDeviation is the largest per-channel step away from the previous color.
func (g *Generator) MaxDeviation() float64 {
	return (1 - g.coherence) * 255
}

// Next returns a color near prev. With no previous color, or with coherence
// 0, every channel is drawn uniformly from [0, 255].
func (g *Generator) Next(prev *Color) Color {
	if prev == nil || g.coherence == 0 {
		return Color{
			R: uint8(g.rng.Intn(256)),
			G: uint8(g.rng.Intn(256)),
			B: uint8(g.rng.Intn(256)),
			A: g.opacity,
		}
	}
	return Color{
		R: g.walk(prev.R),
		G: g.walk(prev.G),
		B: g.walk(prev.B),
		A: g.opacity,
	}
}

// NextFrom parses prev and returns the color that follows it. A malformed
// prev is returned as an error rather than replaced by a random color.
func (g *Generator) NextFrom(prev string) (Color, error) {
	c, err := ParseColor(prev)
	if err != nil {
		return Color{}, err
	}
	return g.Next(&c), nil
}

// walk keeps the rounded channel inside [c-dev, c+dev] as well as [0, 255].
func (g *Generator) walk(channel uint8) uint8 {
	c, dev := float64(channel), g.MaxDeviation()
	variation := (g.rng.Float64()*2 - 1) * dev
	lo := int(math.Max(0, math.Ceil(c-dev)))
	hi := int(math.Min(255, math.Floor(c+dev)))
	return uint8(clamp(int(math.Round(c+variation)), lo, hi))
}
