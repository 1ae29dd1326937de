// Package demand derives supplier-specific material demand from allocation
// shares and three-month forecasts.
package demand

import (
	"context"

	"github.com/diewo77/supplier-demand/internal/models"
)

//go:generate mockgen -source=resolver.go -destination=mocks/repository.go -package=mocks

// Repository is the read side of the record store used by this package.
type Repository interface {
	GetSupplierByCode(ctx context.Context, code string) (*models.Supplier, error)
	AllocationsForSupplier(ctx context.Context, code string) ([]models.MaterialAllocation, error)
	ForecastsForMaterials(ctx context.Context, materials []string) (map[string]models.MaterialForecast, error)
}

// JoinedRow is one allocation matched with its forecast and the share that
// applies to the requested supplier.
type JoinedRow struct {
	Allocation models.MaterialAllocation
	Forecast   models.MaterialForecast
	Percentage float64
}

// EffectivePercentage returns the share of code in the allocation: the share
// with the lowest slot naming code wins, so with the two-slot layout
// supplier A takes precedence over supplier B when both hold the same code.
// An allocation not naming code yields 0.
func EffectivePercentage(a models.MaterialAllocation, code string) float64 {
	best, found := 0, false
	pct := 0.0
	for _, s := range a.Shares {
		if s.SupplierCode != code {
			continue
		}
		if !found || s.Slot < best {
			best, pct, found = s.Slot, s.Percentage, true
		}
	}
	return pct
}

// Resolver finds the allocations of a supplier and joins them with forecasts.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver { return &Resolver{repo: repo} }

// Resolve returns one row per allocation naming code that has a forecast.
// Allocations without a forecast are dropped. Rows keep the repository order
// (material ascending).
func (r *Resolver) Resolve(ctx context.Context, code string) ([]JoinedRow, error) {
	allocs, err := r.repo.AllocationsForSupplier(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(allocs) == 0 {
		return []JoinedRow{}, nil
	}
	materials := make([]string, 0, len(allocs))
	for _, a := range allocs {
		materials = append(materials, a.Material)
	}
	forecasts, err := r.repo.ForecastsForMaterials(ctx, materials)
	if err != nil {
		return nil, err
	}
	rows := make([]JoinedRow, 0, len(allocs))
	for _, a := range allocs {
		f, ok := forecasts[a.Material]
		if !ok {
			continue
		}
		rows = append(rows, JoinedRow{Allocation: a, Forecast: f, Percentage: EffectivePercentage(a, code)})
	}
	return rows, nil
}
