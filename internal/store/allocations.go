package store

import (
	"context"
	"errors"

	"github.com/diewo77/supplier-demand/internal/models"
	"gorm.io/gorm"
)

func (s *Store) ListAllocations(ctx context.Context) ([]models.MaterialAllocation, error) {
	var out []models.MaterialAllocation
	if err := s.db.WithContext(ctx).Preload("Shares", orderBySlot).Order("id ASC").Find(&out).Error; err != nil {
		return nil, classify("list allocations", EntityAllocation, "", err)
	}
	return out, nil
}

func (s *Store) GetAllocation(ctx context.Context, id uint) (*models.MaterialAllocation, error) {
	var a models.MaterialAllocation
	if err := s.db.WithContext(ctx).Preload("Shares", orderBySlot).First(&a, id).Error; err != nil {
		return nil, classify("get allocation", EntityAllocation, idKey(id), err)
	}
	return &a, nil
}

func (s *Store) GetAllocationByMaterial(ctx context.Context, material string) (*models.MaterialAllocation, error) {
	var a models.MaterialAllocation
	err := s.db.WithContext(ctx).Preload("Shares", orderBySlot).Where("material = ?", material).First(&a).Error
	if err != nil {
		return nil, classify("get allocation by material", EntityAllocation, material, err)
	}
	return &a, nil
}

// CreateAllocation inserts the allocation together with its shares.
func (s *Store) CreateAllocation(ctx context.Context, a *models.MaterialAllocation) (uint, error) {
	a.ID = 0
	a.SortShares()
	for i := range a.Shares {
		a.Shares[i].ID, a.Shares[i].AllocationID = 0, 0
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return 0, classify("create allocation", EntityAllocation, "material "+a.Material, err)
	}
	return a.ID, nil
}

// UpdateAllocation overwrites the allocation columns and replaces its shares
// in one transaction. The returned count covers the allocation row only.
func (s *Store) UpdateAllocation(ctx context.Context, id uint, in models.MaterialAllocation) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MaterialAllocation{}).Where("id = ?", id).Updates(map[string]any{
			"material":           in.Material,
			"description":        in.Description,
			"planning_indicator": in.PlanningIndicator,
			"plant":              in.Plant,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNotFound
		}
		affected = res.RowsAffected
		if err := tx.Where("allocation_id = ?", id).Delete(&models.AllocationShare{}).Error; err != nil {
			return err
		}
		if len(in.Shares) == 0 {
			return nil
		}
		shares := make([]models.AllocationShare, len(in.Shares))
		for i, sh := range in.Shares {
			shares[i] = models.AllocationShare{AllocationID: id, Slot: sh.Slot, SupplierCode: sh.SupplierCode, Percentage: sh.Percentage}
		}
		return tx.Create(&shares).Error
	})
	if err != nil {
		key := "material " + in.Material
		if errors.Is(err, errNotFound) {
			key = idKey(id)
		}
		return 0, classify("update allocation", EntityAllocation, key, err)
	}
	return affected, nil
}

// DeleteAllocation removes the allocation and its shares.
func (s *Store) DeleteAllocation(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("allocation_id = ?", id).Delete(&models.AllocationShare{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.MaterialAllocation{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNotFound
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, classify("delete allocation", EntityAllocation, idKey(id), err)
	}
	return affected, nil
}

// AllocationsForSupplier returns every allocation with a share naming code,
// shares included and ordered by slot, sorted by material.
func (s *Store) AllocationsForSupplier(ctx context.Context, code string) ([]models.MaterialAllocation, error) {
	db := s.db.WithContext(ctx)
	owners := db.Model(&models.AllocationShare{}).Select("allocation_id").Where("supplier_code = ?", code)
	var out []models.MaterialAllocation
	err := db.Preload("Shares", orderBySlot).Where("id IN (?)", owners).Order("material ASC").Find(&out).Error
	if err != nil {
		return nil, classify("allocations for supplier", EntityAllocation, code, err)
	}
	return out, nil
}
