package server

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/supplier-demand/internal/db"
	"github.com/diewo77/supplier-demand/internal/demand"
	"github.com/diewo77/supplier-demand/internal/handlers"
	"github.com/diewo77/supplier-demand/internal/httpx"
	"github.com/diewo77/supplier-demand/internal/logging"
	"github.com/diewo77/supplier-demand/internal/middleware"
	"github.com/diewo77/supplier-demand/internal/services"
	"github.com/diewo77/supplier-demand/internal/store"
)

// Options configures the root handler.
type Options struct {
	Logger      *zap.Logger
	CORSOrigins []string
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(gdb *gorm.DB, opts Options) http.Handler {
	log := logging.OrNop(opts.Logger)
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.CheckReady(r.Context(), gdb); err != nil {
			log.Warn("readiness check failed", zap.Error(err))
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	st := store.New(gdb)
	handlers.NewDemandHandler(demand.NewService(st), log).Register(mux)
	handlers.NewSupplierHandler(st, services.NewSupplierService(st), log).Register(mux)
	handlers.NewAllocationHandler(st, log).Register(mux)
	handlers.NewForecastHandler(st, log).Register(mux)

	var h http.Handler = mux
	h = middleware.WithCORS(origins, h)
	h = middleware.WithRecover(log, h)
	h = middleware.WithLogging(log, h)
	return middleware.WithRequestID(h)
}
