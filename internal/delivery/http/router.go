package http

import (
	"net/http"

	"github.com/mmuslimabdulj/city-pulse/internal/middleware"
)

// Routes registers every endpoint on a new mux. Auth, API and WebSocket
// routes are rate limited per client IP.
func (h *Handler) Routes(limiters *middleware.Limiters) *http.ServeMux {
	mux := http.NewServeMux()

	// Serve static files
	fs := http.FileServer(http.Dir(h.cfg.StaticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))

	// Page routes
	mux.HandleFunc("GET /{$}", h.HandleHome)
	mux.HandleFunc("GET /auth", h.HandleAuthPage)
	mux.HandleFunc("GET /dashboard", h.HandleDashboard)
	mux.HandleFunc("GET /health", h.HandleHealth)

	// Form routes
	mux.HandleFunc("POST /auth", middleware.RateLimitFunc(limiters.Auth, h.HandleAuthSubmit))
	mux.HandleFunc("POST /auth/field", middleware.RateLimitFunc(limiters.API, h.HandleFieldChange))
	mux.HandleFunc("POST /auth/mode", middleware.RateLimitFunc(limiters.API, h.HandleModeSwitch))
	mux.HandleFunc("GET /auth/status", middleware.RateLimitFunc(limiters.API, h.HandleAuthStatus))

	// API routes
	mux.HandleFunc("GET /api/shapes", middleware.RateLimitFunc(limiters.API, h.HandleShapes))
	mux.HandleFunc("POST /api/validate", middleware.RateLimitFunc(limiters.API, h.HandleValidate))

	// WebSocket route
	mux.HandleFunc("GET /ws", middleware.RateLimitFunc(limiters.WebSocket, h.HandleWebSocket))

	return mux
}
