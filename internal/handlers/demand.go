package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/supplier-demand/internal/apperr"
	"github.com/diewo77/supplier-demand/internal/demand"
	"github.com/diewo77/supplier-demand/internal/httpx"
)

type DemandHandler struct {
	svc *demand.Service
	log *zap.Logger
}

func NewDemandHandler(svc *demand.Service, log *zap.Logger) *DemandHandler {
	return &DemandHandler{svc: svc, log: log}
}

func (h *DemandHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /supplier-demand/{supplierCode}", h.SupplierDemand)
	// blank code
	mux.HandleFunc("GET /supplier-demand/{$}", h.SupplierDemand)
}

// SupplierDemand serves GET /supplier-demand/{supplierCode}.
func (h *DemandHandler) SupplierDemand(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.PathValue("supplierCode"))
	if code == "" {
		writeError(h.log, w, r, &apperr.ValidationError{Violations: map[string]string{"supplierCode": "required"}})
		return
	}
	rep, err := h.svc.SupplierDemand(r.Context(), code)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}
