// Package analysis looks at a finished fill as a signal.
//
// The fill order turns each color channel into a series indexed by step.
// [PowerSpectrum] and [Dominant] find periodic structure in that series, and
// [DriftByDepth] shows how smoothly colors change from one breadth-first ring
// to the next.
package analysis
