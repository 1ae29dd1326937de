package validation

import (
	"math"
	"strings"

	"github.com/diewo77/supplier-demand/internal/apperr"
)

// Violations maps a JSON field name to a short reason code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Err returns nil when there are no violations.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &apperr.ValidationError{Violations: v}
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Present flags a numeric field the client omitted.
func Present(field string, val *float64, v Violations) bool {
	if val == nil {
		v[field] = "required"
		return false
	}
	return true
}

func Finite(field string, val float64, v Violations) bool {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		v[field] = "must_be_finite"
		return false
	}
	return true
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if !Finite(field, val, v) {
		return
	}
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

// Fraction accepts shares expressed as 0..1.
func Fraction(field string, val float64, v Violations) {
	if !Finite(field, val, v) {
		return
	}
	RangeFloat(field, val, 0, 1, v)
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}
