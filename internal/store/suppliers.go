package store

import (
	"context"

	"github.com/diewo77/supplier-demand/internal/models"
)

func (s *Store) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var out []models.Supplier
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, classify("list suppliers", EntitySupplier, "", err)
	}
	return out, nil
}

func (s *Store) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	var sup models.Supplier
	if err := s.db.WithContext(ctx).First(&sup, id).Error; err != nil {
		return nil, classify("get supplier", EntitySupplier, idKey(id), err)
	}
	return &sup, nil
}

func (s *Store) GetSupplierByCode(ctx context.Context, code string) (*models.Supplier, error) {
	var sup models.Supplier
	if err := s.db.WithContext(ctx).Where("supplier_code = ?", code).First(&sup).Error; err != nil {
		return nil, classify("get supplier by code", EntitySupplier, code, err)
	}
	return &sup, nil
}

// CreateSupplier inserts sup and returns the generated id.
func (s *Store) CreateSupplier(ctx context.Context, sup *models.Supplier) (uint, error) {
	sup.ID = 0
	if err := s.db.WithContext(ctx).Create(sup).Error; err != nil {
		return 0, classify("create supplier", EntitySupplier, "supplierCode "+sup.SupplierCode, err)
	}
	return sup.ID, nil
}

// UpdateSupplier overwrites code and name of the supplier with the given id.
func (s *Store) UpdateSupplier(ctx context.Context, id uint, in models.Supplier) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Supplier{}).Where("id = ?", id).Updates(map[string]any{
		"supplier_code": in.SupplierCode,
		"supplier_name": in.SupplierName,
	})
	if res.Error != nil {
		return 0, classify("update supplier", EntitySupplier, "supplierCode "+in.SupplierCode, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, classify("update supplier", EntitySupplier, idKey(id), errNotFound)
	}
	return res.RowsAffected, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return 0, classify("delete supplier", EntitySupplier, idKey(id), res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, classify("delete supplier", EntitySupplier, idKey(id), errNotFound)
	}
	return res.RowsAffected, nil
}

// CountSupplierReferences counts allocation shares naming code in any slot.
func (s *Store) CountSupplierReferences(ctx context.Context, code string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.AllocationShare{}).Where("supplier_code = ?", code).Count(&n).Error
	if err != nil {
		return 0, classify("count supplier references", EntitySupplier, code, err)
	}
	return n, nil
}
