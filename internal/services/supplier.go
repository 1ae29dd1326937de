package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/supplier-demand/internal/apperr"
	"github.com/diewo77/supplier-demand/internal/models"
	"github.com/diewo77/supplier-demand/internal/store"
)

// SupplierService applies the cross-table rules of supplier writes on top of
// the record store.
type SupplierService struct {
	store *store.Store
}

func NewSupplierService(s *store.Store) *SupplierService {
	return &SupplierService{store: s}
}

// Create registers a new supplier. A taken code is a conflict; the unique
// index catches a concurrent insert the pre-check misses.
func (s *SupplierService) Create(ctx context.Context, sup *models.Supplier) (uint, error) {
	if err := s.codeAvailable(ctx, sup.SupplierCode, 0); err != nil {
		return 0, err
	}
	return s.store.CreateSupplier(ctx, sup)
}

// Update overwrites code and name. Renaming a code that allocation shares
// still reference is refused, as the shares would point at nothing.
func (s *SupplierService) Update(ctx context.Context, id uint, in models.Supplier) (int64, error) {
	cur, err := s.store.GetSupplier(ctx, id)
	if err != nil {
		return 0, err
	}
	if cur.SupplierCode != in.SupplierCode {
		if err := s.codeAvailable(ctx, in.SupplierCode, id); err != nil {
			return 0, err
		}
		refs, err := s.store.CountSupplierReferences(ctx, cur.SupplierCode)
		if err != nil {
			return 0, err
		}
		if refs > 0 {
			return 0, apperr.Conflict(store.EntitySupplier,
				fmt.Sprintf("supplierCode %s is referenced by %d allocation share(s)", cur.SupplierCode, refs))
		}
	}
	return s.store.UpdateSupplier(ctx, id, in)
}

// Delete removes a supplier no allocation references. The check and the
// delete are separate statements: an allocation created in between is not
// detected.
func (s *SupplierService) Delete(ctx context.Context, id uint) (int64, error) {
	cur, err := s.store.GetSupplier(ctx, id)
	if err != nil {
		return 0, err
	}
	refs, err := s.store.CountSupplierReferences(ctx, cur.SupplierCode)
	if err != nil {
		return 0, err
	}
	if refs > 0 {
		return 0, apperr.Conflict(store.EntitySupplier,
			fmt.Sprintf("supplierCode %s is referenced by %d allocation share(s)", cur.SupplierCode, refs))
	}
	return s.store.DeleteSupplier(ctx, id)
}

// codeAvailable fails with a conflict when code belongs to a supplier other
// than self.
func (s *SupplierService) codeAvailable(ctx context.Context, code string, self uint) error {
	other, err := s.store.GetSupplierByCode(ctx, code)
	var nf *apperr.NotFoundError
	switch {
	case errors.As(err, &nf):
		return nil
	case err != nil:
		return err
	case other.ID != self:
		return apperr.Conflict(store.EntitySupplier, "supplierCode "+code+" already exists")
	}
	return nil
}
