package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/supplier-demand/internal/apperr"
	"github.com/diewo77/supplier-demand/internal/httpx"
	"github.com/diewo77/supplier-demand/internal/models"
	"github.com/diewo77/supplier-demand/internal/services"
	"github.com/diewo77/supplier-demand/internal/store"
	"github.com/diewo77/supplier-demand/internal/validation"
)

type SupplierHandler struct {
	store *store.Store
	svc   *services.SupplierService
	log   *zap.Logger
}

func NewSupplierHandler(s *store.Store, svc *services.SupplierService, log *zap.Logger) *SupplierHandler {
	return &SupplierHandler{store: s, svc: svc, log: log}
}

func (h *SupplierHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /suppliers", h.Create)
	mux.HandleFunc("GET /suppliers", h.List)
	mux.HandleFunc("GET /suppliers/{id}", h.Get)
	mux.HandleFunc("GET /suppliers/code/{supplierCode}", h.GetByCode)
	mux.HandleFunc("PUT /suppliers/{id}", h.Update)
	mux.HandleFunc("DELETE /suppliers/{id}", h.Delete)
}

type supplierInput struct {
	SupplierCode string `json:"supplierCode"`
	SupplierName string `json:"supplierName"`
}

func (in supplierInput) toModel() (models.Supplier, error) {
	sup := models.Supplier{
		SupplierCode: strings.TrimSpace(in.SupplierCode),
		SupplierName: strings.TrimSpace(in.SupplierName),
	}
	v := make(validation.Violations)
	validation.Required("supplierCode", sup.SupplierCode, v)
	validation.Required("supplierName", sup.SupplierName, v)
	return sup, v.Err()
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListSuppliers(r.Context())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if list == nil {
		list = []models.Supplier{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Count: len(list), Data: list})
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	sup, err := h.store.GetSupplier(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sup)
}

func (h *SupplierHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.PathValue("supplierCode"))
	if code == "" {
		writeError(h.log, w, r, &apperr.ValidationError{Violations: map[string]string{"supplierCode": "required"}})
		return
	}
	sup, err := h.store.GetSupplierByCode(r.Context(), code)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sup)
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in supplierInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		invalidJSON(w, err)
		return
	}
	sup, err := in.toModel()
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if _, err := h.svc.Create(r.Context(), &sup); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, createdResponse{Message: "Supplier created successfully", Data: sup})
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	var in supplierInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		invalidJSON(w, err)
		return
	}
	sup, err := in.toModel()
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	n, err := h.svc.Update(r.Context(), id, sup)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	updated, err := h.store.GetSupplier(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, changedResponse{Message: "Supplier updated successfully", Changes: n, Data: updated})
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	n, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, changedResponse{Message: "Supplier deleted successfully", Changes: n})
}
