package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crisil-hrops/preonboarding/common/logging"
	commonmw "github.com/crisil-hrops/preonboarding/common/middleware"
	"github.com/crisil-hrops/preonboarding/internal/handlers"
	"github.com/crisil-hrops/preonboarding/internal/middleware"
)

// NewRouter constructs the service mux. The API routes sit behind trace id,
// audit logging, panic recovery and header auth; health and metrics stay
// open for probes and scrapers.
func NewRouter(h *handlers.Handler, authCfg middleware.AuthConfig, logger *logging.Logger) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/api/v1/pre-onboarding", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Create(w, r)
		case http.MethodGet:
			h.Search(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	api.HandleFunc("/api/v1/pre-onboarding/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.GetByID(w, r)
	})

	protected := middleware.RequireAuth(authCfg)(api)
	protected = middleware.AuditLog(logger)(protected)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/pre-onboarding", protected)
	mux.Handle("/api/v1/pre-onboarding/", protected)

	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)
	mux.Handle("/metrics", promhttp.Handler())

	var root http.Handler = mux
	root = middleware.Recover(logger)(root)
	root = commonmw.TraceID(root)
	return root
}
