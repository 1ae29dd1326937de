package demand

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/diewo77/supplier-demand/internal/apperr"
	"github.com/diewo77/supplier-demand/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	suppliers   map[string]models.Supplier
	allocations []models.MaterialAllocation
	forecasts   map[string]models.MaterialForecast
	err         error
}

func (f *fakeRepo) GetSupplierByCode(_ context.Context, code string) (*models.Supplier, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.suppliers[code]
	if !ok {
		return nil, apperr.NotFound("supplier", code)
	}
	return &s, nil
}

func (f *fakeRepo) AllocationsForSupplier(_ context.Context, code string) ([]models.MaterialAllocation, error) {
	var out []models.MaterialAllocation
	for _, a := range f.allocations {
		for _, s := range a.Shares {
			if s.SupplierCode == code {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ForecastsForMaterials(_ context.Context, materials []string) (map[string]models.MaterialForecast, error) {
	out := map[string]models.MaterialForecast{}
	for _, m := range materials {
		if fc, ok := f.forecasts[m]; ok {
			out[m] = fc
		}
	}
	return out, nil
}

func alloc(material, a string, pa float64, b string, pb float64) models.MaterialAllocation {
	return models.MaterialAllocation{Material: material, Description: material + " part", PlanningIndicator: "PD", Plant: "1000",
		Shares: models.NewTwoSlotShares(a, pa, b, pb)}
}

func forecast(material string, c, n, nn float64, unit string) models.MaterialForecast {
	return models.MaterialForecast{Material: material, CurrentMonthQty: c, NextMonthQty: n, NextNextMonthQty: nn, Unit: unit}
}

func sampleRepo() *fakeRepo {
	return &fakeRepo{
		suppliers: map[string]models.Supplier{
			"S1": {SupplierCode: "S1", SupplierName: "Northwind"},
			"S2": {SupplierCode: "S2", SupplierName: "Contoso"},
			"S3": {SupplierCode: "S3", SupplierName: "Idle"},
		},
		allocations: []models.MaterialAllocation{
			alloc("M1", "S1", 0.6, "S2", 0.4),
			alloc("M2", "S2", 0.75, "S1", 0.25),
		},
		forecasts: map[string]models.MaterialForecast{
			"M1": forecast("M1", 100, 200, 300, "KG"),
			"M2": forecast("M2", 1000, 1200, 900, "PC"),
		},
	}
}

func TestSupplierDemandScenario(t *testing.T) {
	svc := NewService(sampleRepo())

	rep, err := svc.SupplierDemand(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", rep.SupplierCode)
	assert.Equal(t, "Northwind", rep.SupplierName)
	assert.Equal(t, 2, rep.TotalMaterials)
	require.Len(t, rep.Demand, 2)
	assert.Equal(t, Line{Material: "M1", Description: "M1 part", Unit: "KG",
		CurrentMonthDemand: 60, NextMonthDemand: 120, NextNextMonthDemand: 180, AllocationPercentage: 0.6}, rep.Demand[0])
	assert.Equal(t, Line{Material: "M2", Description: "M2 part", Unit: "PC",
		CurrentMonthDemand: 250, NextMonthDemand: 300, NextNextMonthDemand: 225, AllocationPercentage: 0.25}, rep.Demand[1])
}

func TestSupplierDemandUsesPercentBForSecondSlot(t *testing.T) {
	rep, err := NewService(sampleRepo()).SupplierDemand(context.Background(), "S2")
	require.NoError(t, err)
	require.Len(t, rep.Demand, 2)
	assert.Equal(t, 0.4, rep.Demand[0].AllocationPercentage)
	assert.EqualValues(t, 40, rep.Demand[0].CurrentMonthDemand)
	assert.Equal(t, 0.75, rep.Demand[1].AllocationPercentage)
	assert.EqualValues(t, 675, rep.Demand[1].NextNextMonthDemand)
}

func TestSupplierDemandUnknownSupplier(t *testing.T) {
	_, err := NewService(sampleRepo()).SupplierDemand(context.Background(), "ZZ")
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ZZ", nf.Key)
}

func TestSupplierDemandBlankCodeIsValidation(t *testing.T) {
	_, err := NewService(sampleRepo()).SupplierDemand(context.Background(), "")
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Violations["supplierCode"])
	var nf *apperr.NotFoundError
	assert.False(t, errors.As(err, &nf))
}

func TestSupplierDemandThirdShareUsesOwnPercentage(t *testing.T) {
	repo := sampleRepo()
	repo.allocations = append(repo.allocations, models.MaterialAllocation{Material: "M4", Description: "Bracket",
		Shares: []models.AllocationShare{
			{Slot: 0, SupplierCode: "S1", Percentage: 0.5},
			{Slot: 1, SupplierCode: "S2", Percentage: 0.3},
			{Slot: 2, SupplierCode: "S3", Percentage: 0.2},
		}})
	repo.forecasts["M4"] = forecast("M4", 100, 50, 33, "PC")

	rep, err := NewService(repo).SupplierDemand(context.Background(), "S3")
	require.NoError(t, err)
	require.Equal(t, 1, rep.TotalMaterials)
	assert.Equal(t, Line{Material: "M4", Description: "Bracket", Unit: "PC",
		CurrentMonthDemand: 20, NextMonthDemand: 10, NextNextMonthDemand: 7, AllocationPercentage: 0.2}, rep.Demand[0])
}

func TestSupplierDemandKnownSupplierWithoutAllocations(t *testing.T) {
	rep, err := NewService(sampleRepo()).SupplierDemand(context.Background(), "S3")
	require.NoError(t, err)
	assert.Zero(t, rep.TotalMaterials)
	assert.NotNil(t, rep.Demand)
	assert.Empty(t, rep.Demand)
}

func TestSupplierDemandPropagatesRepositoryErrors(t *testing.T) {
	repo := sampleRepo()
	repo.err = apperr.Storage("get supplier by code", errors.New("connection refused"))
	_, err := NewService(repo).SupplierDemand(context.Background(), "S1")
	var se *apperr.StorageError
	assert.ErrorAs(t, err, &se)
}

func TestResolveDropsAllocationsWithoutForecast(t *testing.T) {
	repo := sampleRepo()
	repo.allocations = append(repo.allocations, alloc("M3", "S1", 1, "S9", 0))
	rows, err := NewResolver(repo).Resolve(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.NotEqual(t, "M3", r.Allocation.Material)
	}
}

func TestEffectivePercentage(t *testing.T) {
	cases := []struct {
		name  string
		alloc models.MaterialAllocation
		code  string
		want  float64
	}{
		{"slot A", alloc("M", "S1", 0.6, "S2", 0.4), "S1", 0.6},
		{"slot B", alloc("M", "S1", 0.6, "S2", 0.4), "S2", 0.4},
		{"same code in both slots takes A", alloc("M", "S1", 0.3, "S1", 0.7), "S1", 0.3},
		{"absent", alloc("M", "S1", 0.6, "S2", 0.4), "S9", 0},
		{"lowest slot wins regardless of order", models.MaterialAllocation{Shares: []models.AllocationShare{
			{Slot: 2, SupplierCode: "S1", Percentage: 0.1},
			{Slot: 1, SupplierCode: "S1", Percentage: 0.2},
			{Slot: 0, SupplierCode: "S2", Percentage: 0.7},
		}}, "S1", 0.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EffectivePercentage(tc.alloc, tc.code))
		})
	}
}

func TestComputeDemandRounding(t *testing.T) {
	rows := []JoinedRow{
		{Allocation: models.MaterialAllocation{Material: "H"}, Forecast: forecast("H", 5, 15, 1, "PC"), Percentage: 0.5},
		{Allocation: models.MaterialAllocation{Material: "Z"}, Forecast: forecast("Z", 0, 0, 0, "PC"), Percentage: 0.33},
		{Allocation: models.MaterialAllocation{Material: "F"}, Forecast: forecast("F", 10.4, 3, 7, "KG"), Percentage: 1},
		// 100*0.145 is 14.499999999999998 in binary floating point
		{Allocation: models.MaterialAllocation{Material: "P"}, Forecast: forecast("P", 100, 200, 0, "KG"), Percentage: 0.145},
	}
	lines, err := ComputeDemand(rows)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	// 2.5 and 7.5 round away from zero, 0.5 as well.
	assert.EqualValues(t, 3, lines[0].CurrentMonthDemand)
	assert.EqualValues(t, 8, lines[0].NextMonthDemand)
	assert.EqualValues(t, 1, lines[0].NextNextMonthDemand)
	assert.Zero(t, lines[1].CurrentMonthDemand)
	assert.EqualValues(t, 10, lines[2].CurrentMonthDemand)
	assert.EqualValues(t, 14, lines[3].CurrentMonthDemand)
	assert.EqualValues(t, 29, lines[3].NextMonthDemand)
	assert.Equal(t, []string{"H", "Z", "F", "P"}, []string{lines[0].Material, lines[1].Material, lines[2].Material, lines[3].Material})
}

func TestComputeDemandLargeQuantities(t *testing.T) {
	lines, err := ComputeDemand([]JoinedRow{
		{Allocation: models.MaterialAllocation{Material: "B"}, Forecast: forecast("B", 1e19, 1e20, 9.5e18, "PC"), Percentage: 1},
		{Allocation: models.MaterialAllocation{Material: "C"}, Forecast: forecast("C", 1e20, 0, 0, "PC"), Percentage: 0.6},
	})
	require.NoError(t, err)
	assert.Equal(t, 1e19, lines[0].CurrentMonthDemand)
	assert.Equal(t, 1e20, lines[0].NextMonthDemand)
	assert.Equal(t, 9.5e18, lines[0].NextNextMonthDemand)
	assert.InEpsilon(t, 6e19, lines[1].CurrentMonthDemand, 1e-12)
	assert.Positive(t, lines[1].CurrentMonthDemand)
}

func TestComputeDemandRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ComputeDemand([]JoinedRow{{Allocation: models.MaterialAllocation{Material: "M"}, Forecast: forecast("M", v, 1, 1, "KG"), Percentage: 0.5}})
		assert.ErrorIs(t, err, ErrNonFiniteQuantity)
	}
	_, err := ComputeDemand([]JoinedRow{{Forecast: forecast("M", 1, 1, 1, "KG"), Percentage: math.NaN()}})
	assert.ErrorIs(t, err, ErrNonFiniteQuantity)
}

func TestComputeDemandEmpty(t *testing.T) {
	lines, err := ComputeDemand(nil)
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}
