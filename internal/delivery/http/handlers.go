package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mmuslimabdulj/city-pulse/internal/config"
	"github.com/mmuslimabdulj/city-pulse/internal/dashboard"
	"github.com/mmuslimabdulj/city-pulse/internal/delivery/ws"
	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/internal/session"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
	"github.com/mmuslimabdulj/city-pulse/view/pages"
)

// Deps are the collaborators a Handler serves requests with
type Deps struct {
	Config      *config.Config
	Sessions    *session.Store
	Submitter   *usecase.Submitter
	Hub         *ws.Hub
	Shapes      *usecase.ShapeGenerator
	Backgrounds usecase.BackgroundProvider
	Dashboard   *dashboard.Provider
	Logger      *zap.Logger
}

type Handler struct {
	cfg         *config.Config
	sessions    *session.Store
	submitter   *usecase.Submitter
	hub         *ws.Hub
	shapes      *usecase.ShapeGenerator
	backgrounds usecase.BackgroundProvider
	dashboard   *dashboard.Provider
	logger      *zap.Logger
	upgrader    websocket.Upgrader
}

func NewHandler(d Deps) *Handler {
	cfg := d.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		cfg:         cfg,
		sessions:    d.Sessions,
		submitter:   d.Submitter,
		hub:         d.Hub,
		shapes:      d.Shapes,
		backgrounds: d.Backgrounds,
		dashboard:   d.Dashboard,
		logger:      logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return cfg.IsOriginAllowed(r.Header.Get("Origin"))
		},
	}
	return h
}

// session returns the caller's session, starting one and setting the
// cookie when the request carries none or an expired one
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var token string
	if c, err := r.Cookie(domain.SessionCookieName); err == nil {
		token = c.Value
	}
	sess, created := h.sessions.GetOrCreate(token)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     domain.SessionCookieName,
			Value:    sess.Token,
			Path:     "/",
			MaxAge:   int(h.cfg.SessionTTL.Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// existingSession returns the caller's session without creating one
func (h *Handler) existingSession(r *http.Request) (*session.Session, bool) {
	c, err := r.Cookie(domain.SessionCookieName)
	if err != nil {
		return nil, false
	}
	return h.sessions.Get(c.Value)
}

// background returns the layers for a page; a generator failure renders the
// page without decoration
func (h *Handler) background() domain.Background {
	bg, err := h.backgrounds.Background()
	if err != nil {
		h.logger.Error("generate background", zap.Error(err))
		return domain.Background{}
	}
	return bg
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Pragma", "no-cache")
}

// writeJSON writes data with the given status
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("encode JSON response", zap.Error(err))
	}
}

// writeError writes {"error": ...} with the status mapped from err
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrUnknownMode),
		errors.Is(err, domain.ErrUnknownShapeKind),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errBadRequest marks malformed request bodies and parameters
var errBadRequest = errors.New("invalid request")

// HandleHome serves the landing page
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	noCache(w)
	component := pages.Home(h.dashboard.Snapshot(), h.background())
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Warn("render home", zap.Error(err))
	}
}

// HandleDashboard serves the dashboard with the tab from ?tab=
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	noCache(w)
	tab := domain.ParseDashboardTab(r.URL.Query().Get("tab"))
	component := pages.Dashboard(h.dashboard.Snapshot(), tab, h.background())
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Warn("render dashboard", zap.Error(err))
	}
}

// HandleHealth reports liveness
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.sessions.Count(),
	})
}
