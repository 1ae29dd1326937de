// Package store is the gorm-backed record store for suppliers, material
// allocations and material forecasts. Every method takes a context and
// returns errors classified with package apperr.
package store

import (
	"errors"
	"strconv"

	"github.com/diewo77/supplier-demand/internal/apperr"
	"gorm.io/gorm"
)

// Entity names used in NotFound and Conflict errors.
const (
	EntitySupplier   = "supplier"
	EntityAllocation = "material allocation"
	EntityForecast   = "material forecast"
)

// Store holds the connection pool; it has no other state and is safe for
// concurrent use.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// classify maps gorm errors onto the application error taxonomy.
func classify(op, entity, key string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity, key)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(entity, key+" already exists")
	default:
		return apperr.Storage(op, err)
	}
}

// errNotFound marks updates and deletes that matched no row.
var errNotFound = gorm.ErrRecordNotFound

func idKey(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func orderBySlot(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }
