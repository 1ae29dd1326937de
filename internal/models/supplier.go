package models

import "time"

// Supplier is identified externally by its code; ID is the surrogate key.
type Supplier struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SupplierCode string    `gorm:"size:64;not null;uniqueIndex" json:"supplierCode"`
	SupplierName string    `gorm:"size:255;not null" json:"supplierName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
