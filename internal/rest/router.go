package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/telefonbuch/internal/auth"
	"github.com/mmynk/telefonbuch/internal/middleware"
)

// NewRouter builds the HTTP route table. Entry routes require a valid bearer
// token; auth routes and /metrics do not. Logging, metrics and CORS wrap
// everything.
func NewRouter(h *Handlers, jwtManager *auth.JWTManager) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/signup", h.HandleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", h.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/guest", h.HandleGuestLogin)
	mux.HandleFunc("GET /api/v1/auth/username-available", h.HandleUsernameAvailable)

	requireAuth := middleware.RequireAuth(jwtManager)
	mux.Handle("GET /api/v1/entries", requireAuth(http.HandlerFunc(h.HandleListEntries)))
	mux.Handle("GET /api/v1/entries/search", requireAuth(http.HandlerFunc(h.HandleSearchEntries)))
	mux.Handle("GET /api/v1/entries/duplicate", requireAuth(http.HandlerFunc(h.HandleCheckDuplicate)))
	mux.Handle("POST /api/v1/entries", requireAuth(http.HandlerFunc(h.HandleAddEntry)))

	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Logging(middleware.Metrics(middleware.CORS(mux)))
}
