// Package palette generates coherent color sequences.
//
// A [Generator] produces each new color as a bounded random walk from the
// previous one:
//
//   - coherence 1 keeps every channel identical to the previous color
//   - coherence 0 draws every channel uniformly from [0, 255]
//   - values in between bound the per-channel deviation by (1-coherence)*255
//
// Colors are kept structured internally. [Color.String] and [ParseColor]
// convert to and from the rgba(...) and #rrggbb string forms used by sinks.
package palette
