package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/supplier-demand/internal/httpx"
	"github.com/diewo77/supplier-demand/internal/models"
	"github.com/diewo77/supplier-demand/internal/store"
	"github.com/diewo77/supplier-demand/internal/validation"
)

type ForecastHandler struct {
	store *store.Store
	log   *zap.Logger
}

func NewForecastHandler(s *store.Store, log *zap.Logger) *ForecastHandler {
	return &ForecastHandler{store: s, log: log}
}

func (h *ForecastHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /material-pr", h.Create)
	mux.HandleFunc("GET /material-pr", h.List)
	mux.HandleFunc("GET /material-pr/{id}", h.Get)
	mux.HandleFunc("PUT /material-pr/{id}", h.Update)
	mux.HandleFunc("DELETE /material-pr/{id}", h.Delete)
}

// forecastInput also accepts the short month names older clients send
// (currentMonth, nextMonth, nextNextMonth).
type forecastInput struct {
	Material         string   `json:"material"`
	CurrentMonthQty  *float64 `json:"currentMonthQty"`
	NextMonthQty     *float64 `json:"nextMonthQty"`
	NextNextMonthQty *float64 `json:"nextNextMonthQty"`
	CurrentMonth     *float64 `json:"currentMonth"`
	NextMonth        *float64 `json:"nextMonth"`
	NextNextMonth    *float64 `json:"nextNextMonth"`
	Unit             string   `json:"unit"`
}

func firstSet(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func (in forecastInput) toModel() (models.MaterialForecast, error) {
	f := models.MaterialForecast{
		Material: strings.TrimSpace(in.Material),
		Unit:     strings.TrimSpace(in.Unit),
	}
	v := make(validation.Violations)
	validation.Required("material", f.Material, v)
	validation.Required("unit", f.Unit, v)

	months := []struct {
		field string
		val   *float64
		dst   *float64
	}{
		{"currentMonthQty", firstSet(in.CurrentMonthQty, in.CurrentMonth), &f.CurrentMonthQty},
		{"nextMonthQty", firstSet(in.NextMonthQty, in.NextMonth), &f.NextMonthQty},
		{"nextNextMonthQty", firstSet(in.NextNextMonthQty, in.NextNextMonth), &f.NextNextMonthQty},
	}
	for _, m := range months {
		if validation.Present(m.field, m.val, v) {
			validation.NonNegativeFloat(m.field, *m.val, v)
			*m.dst = *m.val
		}
	}
	return f, v.Err()
}

func (h *ForecastHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListForecasts(r.Context())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if list == nil {
		list = []models.MaterialForecast{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Count: len(list), Data: list})
}

func (h *ForecastHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	f, err := h.store.GetForecast(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *ForecastHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in forecastInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		invalidJSON(w, err)
		return
	}
	f, err := in.toModel()
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if _, err := h.store.CreateForecast(r.Context(), &f); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, createdResponse{Message: "Material PR created successfully", Data: f})
}

func (h *ForecastHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	var in forecastInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		invalidJSON(w, err)
		return
	}
	f, err := in.toModel()
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	n, err := h.store.UpdateForecast(r.Context(), id, f)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	updated, err := h.store.GetForecast(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, changedResponse{Message: "Material PR updated successfully", Changes: n, Data: updated})
}

func (h *ForecastHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		invalidID(w, r)
		return
	}
	n, err := h.store.DeleteForecast(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, changedResponse{Message: "Material PR deleted successfully", Changes: n})
}
