package compose

import (
	"github.com/mattrunyon/deephaven-plugins/pkg/errors"
)

// unitSpan is the domain of a whole, uncomposed canvas. Inputs are assumed
// to span it in both directions; nesting an already-composed figure is
// rejected before resizing ever runs.
var unitSpan = []float64{0, 1}

// normalizePosition maps position into [0, 1] relative to the domain
// starting at start with width rng. A zero-width domain has no defined
// mapping and is rejected rather than producing Inf or NaN.
func normalizePosition(position, start, rng float64) (float64, error) {
	if rng == 0 {
		return 0, errors.New(errors.ErrCodeInvalidDomain, "cannot normalize position %v within a zero-width domain", position)
	}
	return (position - start) / rng, nil
}

// Remap maps each position from chartDomain into newDomain.
//
// Every position is first normalized to [0, 1] against chartDomain, then
// scaled onto newDomain: a position at 0.5 with chartDomain [0, 1] and
// newDomain [0, 0.6] lands at 0.3. Remap is the single source of truth for
// all spatial remapping during composition.
func Remap(newDomain, positions, chartDomain []float64) ([]float64, error) {
	newRange := newDomain[1] - newDomain[0]
	chartRange := chartDomain[1] - chartDomain[0]

	out := make([]float64, len(positions))
	for i, position := range positions {
		normalized, err := normalizePosition(position, chartDomain[0], chartRange)
		if err != nil {
			return nil, err
		}
		out[i] = newDomain[0] + normalized*newRange
	}
	return out, nil
}

// RemapScalar maps a single position from chartDomain into newDomain.
func RemapScalar(newDomain []float64, position float64, chartDomain []float64) (float64, error) {
	mapped, err := Remap(newDomain, []float64{position}, chartDomain)
	if err != nil {
		return 0, err
	}
	return mapped[0], nil
}
