package models

import (
	"encoding/json"
	"sort"
	"time"
)

// Slot positions of the historical two-supplier layout.
const (
	SlotA = 0
	SlotB = 1
)

// MaterialAllocation splits the demand of one material between suppliers.
// Shares are ordered by Slot; slot 0 and 1 are exposed as supplier A and B.
type MaterialAllocation struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	Material          string            `gorm:"size:64;not null;uniqueIndex" json:"material"`
	Description       string            `gorm:"size:255;not null" json:"description"`
	PlanningIndicator string            `gorm:"size:32;not null" json:"planningIndicator"`
	Plant             string            `gorm:"size:32;not null" json:"plant"`
	Shares            []AllocationShare `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"shares"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// AllocationShare is the fraction (0..1) of a material's demand assigned to
// one supplier code.
type AllocationShare struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	AllocationID uint    `gorm:"not null;index;uniqueIndex:idx_allocation_slot,priority:1" json:"-"`
	Slot         int     `gorm:"not null;uniqueIndex:idx_allocation_slot,priority:2" json:"-"`
	SupplierCode string  `gorm:"size:64;not null;index" json:"supplierCode"`
	Percentage   float64 `gorm:"not null" json:"percentage"`
}

// NewTwoSlotShares builds the share list of the classic A/B allocation.
func NewTwoSlotShares(supplierA string, percentA float64, supplierB string, percentB float64) []AllocationShare {
	return []AllocationShare{
		{Slot: SlotA, SupplierCode: supplierA, Percentage: percentA},
		{Slot: SlotB, SupplierCode: supplierB, Percentage: percentB},
	}
}

// SortShares orders shares by slot in place.
func (a *MaterialAllocation) SortShares() {
	sort.SliceStable(a.Shares, func(i, j int) bool { return a.Shares[i].Slot < a.Shares[j].Slot })
}

// ShareAt returns the share stored in the given slot.
func (a MaterialAllocation) ShareAt(slot int) (AllocationShare, bool) {
	for _, s := range a.Shares {
		if s.Slot == slot {
			return s, true
		}
	}
	return AllocationShare{}, false
}

type allocationJSON struct {
	ID                uint              `json:"id"`
	Material          string            `json:"material"`
	Description       string            `json:"description"`
	SupplierA         string            `json:"supplierA,omitempty"`
	PercentA          *float64          `json:"percentA,omitempty"`
	SupplierB         string            `json:"supplierB,omitempty"`
	PercentB          *float64          `json:"percentB,omitempty"`
	PlanningIndicator string            `json:"planningIndicator"`
	Plant             string            `json:"plant"`
	Shares            []AllocationShare `json:"shares"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// MarshalJSON keeps the supplierA/percentA/supplierB/percentB fields that
// clients of the two-slot layout read.
func (a MaterialAllocation) MarshalJSON() ([]byte, error) {
	out := allocationJSON{
		ID:                a.ID,
		Material:          a.Material,
		Description:       a.Description,
		PlanningIndicator: a.PlanningIndicator,
		Plant:             a.Plant,
		Shares:            a.Shares,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if out.Shares == nil {
		out.Shares = []AllocationShare{}
	}
	if s, ok := a.ShareAt(SlotA); ok {
		pct := s.Percentage
		out.SupplierA, out.PercentA = s.SupplierCode, &pct
	}
	if s, ok := a.ShareAt(SlotB); ok {
		pct := s.Percentage
		out.SupplierB, out.PercentB = s.SupplierCode, &pct
	}
	return json.Marshal(out)
}
