package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/supplier-demand/internal/models"
	"gorm.io/gorm"
)

// Seed inserts a small demo data set. Rows whose natural key already exists
// are left untouched, so running it twice is harmless.
func Seed(gdb *gorm.DB) error {
	suppliers := []models.Supplier{
		{SupplierCode: "S1", SupplierName: "Northwind Components"},
		{SupplierCode: "S2", SupplierName: "Contoso Metals"},
	}
	for _, s := range suppliers {
		var existing models.Supplier
		err := gdb.Where("supplier_code = ?", s.SupplierCode).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(&s).Error; err != nil {
				return fmt.Errorf("seed supplier %s: %w", s.SupplierCode, err)
			}
		} else if err != nil {
			return fmt.Errorf("seed supplier %s: %w", s.SupplierCode, err)
		}
	}

	allocations := []models.MaterialAllocation{
		{Material: "M1", Description: "Steel bracket", PlanningIndicator: "PD", Plant: "1000",
			Shares: models.NewTwoSlotShares("S1", 0.6, "S2", 0.4)},
		{Material: "M2", Description: "Hex bolt M8", PlanningIndicator: "PD", Plant: "1000",
			Shares: models.NewTwoSlotShares("S2", 0.75, "S1", 0.25)},
	}
	for _, a := range allocations {
		var existing models.MaterialAllocation
		err := gdb.Where("material = ?", a.Material).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(&a).Error; err != nil {
				return fmt.Errorf("seed allocation %s: %w", a.Material, err)
			}
		} else if err != nil {
			return fmt.Errorf("seed allocation %s: %w", a.Material, err)
		}
	}

	forecasts := []models.MaterialForecast{
		{Material: "M1", CurrentMonthQty: 100, NextMonthQty: 200, NextNextMonthQty: 300, Unit: "KG"},
		{Material: "M2", CurrentMonthQty: 1000, NextMonthQty: 1200, NextNextMonthQty: 900, Unit: "PC"},
	}
	for _, f := range forecasts {
		var existing models.MaterialForecast
		err := gdb.Where("material = ?", f.Material).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(&f).Error; err != nil {
				return fmt.Errorf("seed forecast %s: %w", f.Material, err)
			}
		} else if err != nil {
			return fmt.Errorf("seed forecast %s: %w", f.Material, err)
		}
	}
	return nil
}
