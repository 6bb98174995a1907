package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
	"github.com/mmuslimabdulj/city-pulse/view/pages"
)

// maxFormBytes bounds auth request bodies
const maxFormBytes = 16 << 10

// renderAuth writes the auth page for form with status, consuming the
// pending flash notice
func (h *Handler) renderAuth(w http.ResponseWriter, r *http.Request, status int, form *usecase.AuthForm) {
	noCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	component := pages.Auth(form.Snapshot(), form.TakeNotice(), h.dashboard.Snapshot().Features, h.background())
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Warn("render auth", zap.Error(err))
	}
}

// HandleAuthPage serves the sign-in/sign-up page; ?mode= switches the form
func (h *Handler) HandleAuthPage(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	if raw := r.URL.Query().Get("mode"); raw != "" {
		mode, err := domain.ParseMode(raw)
		if err != nil {
			http.Error(w, "Invalid mode", http.StatusBadRequest)
			return
		}
		if err := sess.Form.SetMode(mode); err != nil {
			h.renderAuth(w, r, http.StatusConflict, sess.Form)
			return
		}
	}

	h.renderAuth(w, r, http.StatusOK, sess.Form)
}

// HandleAuthSubmit takes the posted form values and submits the form.
// The page is re-rendered with errors, or in the submitting state.
func (h *Handler) HandleAuthSubmit(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	form := sess.Form

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if raw := r.PostForm.Get("mode"); raw != "" {
		mode, err := domain.ParseMode(raw)
		if err != nil {
			http.Error(w, "Invalid mode", http.StatusBadRequest)
			return
		}
		if err := form.SetMode(mode); err != nil {
			h.renderAuth(w, r, http.StatusConflict, form)
			return
		}
	}

	values := make(map[domain.Field]string)
	for _, f := range domain.Fields {
		if _, ok := r.PostForm[string(f)]; ok {
			values[f] = r.PostForm.Get(string(f))
		}
	}
	if _, err := form.SetFields(values); err != nil {
		if errors.Is(err, usecase.ErrSubmissionInProgress) {
			h.renderAuth(w, r, http.StatusConflict, form)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.submitter.Submit(r.Context(), form)
	switch {
	case errors.Is(err, usecase.ErrSubmissionInProgress):
		h.renderAuth(w, r, http.StatusConflict, form)
	case err != nil:
		h.logger.Error("submit auth form", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	case !result.Accepted():
		h.renderAuth(w, r, http.StatusUnprocessableEntity, form)
	default:
		h.renderAuth(w, r, http.StatusAccepted, form)
	}
}

type fieldChange struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// HandleFieldChange applies one field edit and returns the form's errors
func (h *Handler) HandleFieldChange(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	var req fieldChange
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	field, err := domain.ParseField(req.Field)
	if err != nil {
		h.writeError(w, err)
		return
	}
	errs, err := sess.Form.SetField(field, req.Value)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"errors": errs.Map()})
}

// HandleModeSwitch flips sign-in/sign-up, or sets the posted mode, and
// sends the browser back to the auth page. The mode cannot change while a
// submission is in flight.
func (h *Handler) HandleModeSwitch(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	var err error
	if raw := r.PostForm.Get("mode"); raw != "" {
		mode, perr := domain.ParseMode(raw)
		if perr != nil {
			http.Error(w, "Invalid mode", http.StatusBadRequest)
			return
		}
		err = sess.Form.SetMode(mode)
	} else {
		_, err = sess.Form.ToggleMode()
	}
	if err != nil {
		h.renderAuth(w, r, http.StatusConflict, sess.Form)
		return
	}

	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

type statusResponse struct {
	State  domain.SubmitState `json:"state"`
	Mode   domain.Mode        `json:"mode"`
	Errors map[string]string  `json:"errors"`
	Notice *domain.Notice     `json:"notice"`
}

// HandleAuthStatus reports the caller's form state for polling clients
func (h *Handler) HandleAuthStatus(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	v := sess.Form.Snapshot()

	noCache(w)
	h.writeJSON(w, http.StatusOK, statusResponse{
		State:  v.State,
		Mode:   v.Mode,
		Errors: v.Errors.Map(),
		Notice: v.Notice,
	})
}
