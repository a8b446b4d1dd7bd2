package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/chromafill/internal/fill"
)

// ChannelSeries splits the colors of a fill into r, g, b series in step order.
func ChannelSeries(assignments []fill.Assignment) [3][]float64 {
	var out [3][]float64
	for ch := range out {
		out[ch] = make([]float64, len(assignments))
	}
	for i, a := range assignments {
		for ch, v := range a.Color.Channels() {
			out[ch][i] = float64(v)
		}
	}
	return out
}

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data. The mean is removed and the series zero padded to a power of two, so
// bin 0 carries no offset.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, max(n/2, 1))
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// Dominant returns the strongest non-zero bin of ps and its period in steps.
// A spectrum with no energy reports bin 0 and period 0.
func Dominant(ps []float64) (bin int, period float64) {
	best := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, bin = ps[i], i
		}
	}
	if bin == 0 {
		return 0, 0
	}
	return bin, float64(2*len(ps)) / float64(bin)
}

// DriftByDepth is the mean color distance between successive assignments,
// grouped by the depth of the later one. Index d holds the mean for ring d;
// ring 0 has no predecessor and stays zero.
func DriftByDepth(assignments []fill.Assignment) []float64 {
	if len(assignments) == 0 {
		return nil
	}

	maxDepth := 0
	for _, a := range assignments {
		maxDepth = max(maxDepth, a.Depth)
	}

	sums := make([]float64, maxDepth+1)
	counts := make([]int, maxDepth+1)
	for i := 1; i < len(assignments); i++ {
		d := assignments[i].Depth
		sums[d] += assignments[i-1].Color.Distance(assignments[i].Color)
		counts[d]++
	}

	for d := range sums {
		if counts[d] > 0 {
			sums[d] /= float64(counts[d])
		}
	}
	return sums
}
