package errors

import (
	"unicode"
)

// ValidateDomainSpan validates a [lo, hi] canvas-fraction span.
// Spans express sub-regions of the unit canvas, so both endpoints must fall
// in [0, 1] and the span must be exactly two values. A zero-width span is
// rejected because it has no defined affine mapping.
func ValidateDomainSpan(span []float64) error {
	if len(span) != 2 {
		return New(ErrCodeInvalidDomain, "domain span must have exactly 2 values, got %d", len(span))
	}

	lo, hi := span[0], span[1]
	if lo < 0 || lo > 1 || hi < 0 || hi > 1 {
		return New(ErrCodeInvalidDomain, "domain span [%v, %v] must be within [0, 1]", lo, hi)
	}

	if lo == hi {
		return New(ErrCodeInvalidDomain, "domain span [%v, %v] has zero width", lo, hi)
	}

	return nil
}

// ValidateColumnName validates a data-source column name.
// Column names travel into legend entries and axis titles, so control
// characters are rejected outright.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "column name cannot be empty")
	}

	const maxColumnNameLength = 256
	if len(name) > maxColumnNameLength {
		return New(ErrCodeInvalidInput, "column name too long (max %d characters)", maxColumnNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name contains invalid control characters")
		}
	}

	return nil
}
