package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/supplier-demand/internal/httpx"
	"github.com/diewo77/supplier-demand/internal/models"
	"github.com/diewo77/supplier-demand/internal/store"
	"github.com/diewo77/supplier-demand/internal/validation"
)

type AllocationHandler struct {
	store *store.Store
	log   *zap.Logger
}

func NewAllocationHandler(s *store.Store, log *zap.Logger) *AllocationHandler {
	return &AllocationHandler{store: s, log: log}
}

func (h *AllocationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /material-supplier", h.Create)
	mux.HandleFunc("GET /material-supplier", h.List)
	mux.HandleFunc("GET /material-supplier/{id}", h.Get)
	mux.HandleFunc("PUT /material-supplier/{id}", h.Update)
	mux.HandleFunc("DELETE /material-supplier/{id}", h.Delete)
}

type shareInput struct {
	SupplierCode string   `json:"supplierCode"`
	Percentage   *float64 `json:"percentage"`
}

// allocationInput accepts either the two-slot fields or a shares list.
// A non-empty shares list takes precedence.
type allocationInput struct {
	Material          string       `json:"material"`
	Description       string       `json:"description"`
	SupplierA         string       `json:"supplierA"`
	PercentA          *float64     `json:"percentA"`
	SupplierB         string       `json:"supplierB"`
	PercentB          *float64     `json:"percentB"`
	PlanningIndicator string       `json:"planningIndicator"`
	Plant             string       `json:"plant"`
	Shares            []shareInput `json:"shares"`
}

func (in allocationInput) toModel() (models.MaterialAllocation, error) {
	a := models.MaterialAllocation{
		Material:          strings.TrimSpace(in.Material),
		Description:       strings.TrimSpace(in.Description),
		PlanningIndicator: strings.TrimSpace(in.PlanningIndicator),
		Plant:             strings.TrimSpace(in.Plant),
	}
	v := make(validation.Violations)
	validation.Required("material", a.Material, v)
	validation.Required("description", a.Description, v)
	validation.Required("planningIndicator", a.PlanningIndicator, v)
	validation.Required("plant", a.Plant, v)

	if len(in.Shares) > 0 {
		for i, s := range in.Shares {
			code := strings.TrimSpace(s.SupplierCode)
			prefix := fmt.Sprintf("shares[%d].", i)
			validation.Required(prefix+"supplierCode", code, v)
			if validation.Present(prefix+"percentage", s.Percentage, v) {
				validation.Fraction(prefix+"percentage", *s.Percentage, v)
				a.Shares = append(a.Shares, models.AllocationShare{Slot: i, SupplierCode: code, Percentage: *s.Percentage})
			}
		}
		return a, v.Err()
	}

	supplierA, supplierB := strings.TrimSpace(in.SupplierA), strings.TrimSpace(in.SupplierB)
	validation.Required("supplierA", supplierA, v)
	validation.Required("supplierB", supplierB, v)
	if validation.Present("percentA", in.PercentA, v) {
		validation.Fraction("percentA", *in.PercentA, v)
	}
	if validation.Present("percentB", in.PercentB, v) {
		validation.Fraction("percentB", *in.PercentB, v)
	}
	if err := v.Err(); err != nil {
		return a, err
	}
	a.Shares = models.NewTwoSlotShares(supplierA, *in.PercentA, supplierB, *in.PercentB)
	return a, nil
}

func (h *AllocationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListAllocations(r.Context())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if list == nil {
		list = []models.MaterialAllocation{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Count: len(list), Data: list})
}

func (h *AllocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	a, err := h.store.GetAllocation(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in allocationInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		invalidJSON(w, err)
		return
	}
	a, err := in.toModel()
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if _, err := h.store.CreateAllocation(r.Context(), &a); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, createdResponse{Message: "Material Supplier created successfully", Data: a})
}

func (h *AllocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	var in allocationInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		invalidJSON(w, err)
		return
	}
	a, err := in.toModel()
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	n, err := h.store.UpdateAllocation(r.Context(), id, a)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	updated, err := h.store.GetAllocation(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, changedResponse{Message: "Material Supplier updated successfully", Changes: n, Data: updated})
}

func (h *AllocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	n, err := h.store.DeleteAllocation(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, changedResponse{Message: "Material Supplier deleted successfully", Changes: n})
}
