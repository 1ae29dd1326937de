package demand

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFiniteQuantity is returned when a forecast quantity or a share is
// NaN or infinite.
var ErrNonFiniteQuantity = errors.New("non-finite forecast quantity or share")

// Line is the demand of one material for one supplier. Demand figures are
// whole numbers carried as float64 so that large forecasts do not overflow.
type Line struct {
	Material             string  `json:"material"`
	Description          string  `json:"description"`
	Unit                 string  `json:"unit"`
	CurrentMonthDemand   float64 `json:"currentMonthDemand"`
	NextMonthDemand      float64 `json:"nextMonthDemand"`
	NextNextMonthDemand  float64 `json:"nextNextMonthDemand"`
	AllocationPercentage float64 `json:"allocationPercentage"`
}

// ComputeDemand applies each row's share to its three forecast months.
// Each figure is the float product rounded to zero places, halves away from
// zero; the share itself is reported unrounded. Order is kept.
func ComputeDemand(rows []JoinedRow) ([]Line, error) {
	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		f := row.Forecast
		for _, v := range []float64{f.CurrentMonthQty, f.NextMonthQty, f.NextNextMonthQty, row.Percentage} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("material %s: %w", row.Allocation.Material, ErrNonFiniteQuantity)
			}
		}
		lines = append(lines, Line{
			Material:             row.Allocation.Material,
			Description:          row.Allocation.Description,
			Unit:                 f.Unit,
			CurrentMonthDemand:   apply(f.CurrentMonthQty, row.Percentage),
			NextMonthDemand:      apply(f.NextMonthQty, row.Percentage),
			NextNextMonthDemand:  apply(f.NextNextMonthQty, row.Percentage),
			AllocationPercentage: row.Percentage,
		})
	}
	return lines, nil
}

func apply(qty, share float64) float64 {
	return math.Round(qty * share)
}
