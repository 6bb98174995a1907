package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmuslimabdulj/city-pulse/internal/config"
	"github.com/mmuslimabdulj/city-pulse/internal/dashboard"
	"github.com/mmuslimabdulj/city-pulse/internal/delivery/ws"
	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/internal/middleware"
	"github.com/mmuslimabdulj/city-pulse/internal/session"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
)

// gateAuth blocks every authentication until Release is called
type gateAuth struct {
	release chan struct{}
	once    sync.Once
}

func (g *gateAuth) Authenticate(context.Context, domain.Mode, domain.FormState) error {
	<-g.release
	return nil
}

func (g *gateAuth) Release() {
	g.once.Do(func() { close(g.release) })
}

type testServer struct {
	handler  *Handler
	mux      http.Handler
	auth     *gateAuth
	sessions *session.Store
	hub      *ws.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.StaticDir = t.TempDir()

	sessions := session.NewStore(time.Hour)
	hub := ws.NewHub(nil)
	go hub.Run()
	sessions.OnExpire(hub.Forget)

	auth := &gateAuth{release: make(chan struct{})}
	submitter := usecase.NewSubmitter(auth, hub, nil)

	gen := usecase.NewSeededShapeGenerator(7)
	dash, err := dashboard.NewProvider("", nil)
	require.NoError(t, err)

	h := NewHandler(Deps{
		Config:      cfg,
		Sessions:    sessions,
		Submitter:   submitter,
		Hub:         hub,
		Shapes:      gen,
		Backgrounds: usecase.NewFreshBackground(gen, usecase.BackgroundCounts{Blobs: 1, Dots: 2}),
		Dashboard:   dash,
	})
	limiters := middleware.NewLimiters(1000, 1000, 1000, nil)

	t.Cleanup(func() {
		auth.Release()
		submitter.Wait()
		hub.Stop()
		sessions.Close()
		limiters.Close()
	})

	return &testServer{
		handler:  h,
		mux:      h.Routes(limiters),
		auth:     auth,
		sessions: sessions,
		hub:      hub,
	}
}

// do sends a request with the optional session cookie
func (s *testServer) do(method, target, contentType, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == domain.SessionCookieName {
			return c
		}
	}
	t.Fatal("Expected session cookie")
	return nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func formBody(values map[string]string) string {
	v := url.Values{}
	for k, val := range values {
		v.Set(k, val)
	}
	return v.Encode()
}

const formType = "application/x-www-form-urlencoded"

func TestHandleHome(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Core Features")
	assert.Contains(t, w.Body.String(), `data-kind="blob"`)
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	w = s.do("GET", "/nope", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAuthPage_SetsSessionCookie(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/auth", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	c := sessionCookie(t, w)
	assert.True(t, c.HttpOnly)
	assert.Len(t, c.Value, 64)
	assert.Contains(t, w.Body.String(), `data-mode="signin"`)

	// Same session on the next request, no new cookie
	w = s.do("GET", "/auth", "", "", c)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, 1, s.sessions.Count())
}

func TestHandleAuthPage_Mode(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/auth?mode=signup", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-mode="signup"`)
	assert.Contains(t, w.Body.String(), `name="confirmPassword"`)

	w = s.do("GET", "/auth?mode=register", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAuthSubmit_Invalid(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.do("GET", "/auth", "", "", nil))

	w := s.do("POST", "/auth", formType, formBody(map[string]string{"email": "a@b", "password": "123"}), cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), usecase.MsgEmailInvalid)
	assert.Contains(t, w.Body.String(), usecase.MsgPasswordShort)
	assert.Contains(t, w.Body.String(), `data-state="idle"`)

	status := decode[statusResponse](t, s.do("GET", "/auth/status", "", "", cookie))
	assert.Equal(t, domain.StateIdle, status.State)
	assert.Equal(t, map[string]string{"email": usecase.MsgEmailInvalid, "password": usecase.MsgPasswordShort}, status.Errors)
}

func TestHandleAuthSubmit_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.do("GET", "/auth", "", "", nil))
	valid := formBody(map[string]string{"email": "a@b.com", "password": "123456"})

	w := s.do("POST", "/auth", formType, valid, cookie)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "Signing in...")

	// A second submit while the first is in flight is rejected
	w = s.do("POST", "/auth", formType, valid, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Field edits are rejected too
	w = s.do("POST", "/auth/field", "application/json", `{"field":"email","value":"x"}`, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	status := decode[statusResponse](t, s.do("GET", "/auth/status", "", "", cookie))
	assert.Equal(t, domain.StateSubmitting, status.State)
	assert.Nil(t, status.Notice)

	s.auth.Release()
	s.handler.submitter.Wait()

	status = decode[statusResponse](t, s.do("GET", "/auth/status", "", "", cookie))
	assert.Equal(t, domain.StateIdle, status.State)
	require.NotNil(t, status.Notice)
	assert.Equal(t, usecase.NoticeSignInOK, status.Notice.Text)

	// The flash notice is shown once
	w = s.do("GET", "/auth", "", "", cookie)
	assert.Contains(t, w.Body.String(), "Login successful!")
	w = s.do("GET", "/auth", "", "", cookie)
	assert.NotContains(t, w.Body.String(), "Login successful!")
}

func TestHandleAuthSubmit_FormFrozenWhileSubmitting(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.do("GET", "/auth", "", "", nil))

	w := s.do("POST", "/auth", formType, formBody(map[string]string{"email": "a@b.com", "password": "123456"}), cookie)
	require.Equal(t, http.StatusAccepted, w.Code)

	// Mode switches are rejected on every path
	w = s.do("POST", "/auth/mode", formType, "", cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do("POST", "/auth/mode", formType, "mode=signup", cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do("GET", "/auth?mode=signup", "", "", cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Signing in...")

	// A resubmit with new values does not touch the running form
	w = s.do("POST", "/auth", formType, formBody(map[string]string{"mode": "signup", "email": "other@b.com"}), cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	status := decode[statusResponse](t, s.do("GET", "/auth/status", "", "", cookie))
	assert.Equal(t, domain.StateSubmitting, status.State)
	assert.Equal(t, domain.ModeSignIn, status.Mode)

	s.auth.Release()
	s.handler.submitter.Wait()

	status = decode[statusResponse](t, s.do("GET", "/auth/status", "", "", cookie))
	assert.Equal(t, domain.ModeSignIn, status.Mode)
	require.NotNil(t, status.Notice)
	assert.Equal(t, usecase.NoticeSignInOK, status.Notice.Text)

	sess, ok := s.sessions.Get(cookie.Value)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", sess.Form.Snapshot().Fields.Email)

	// Idle again, so the switch goes through
	w = s.do("POST", "/auth/mode", formType, "", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, domain.ModeSignUp, decode[statusResponse](t, s.do("GET", "/auth/status", "", "", cookie)).Mode)
}

func TestHandleAuthSubmit_InvalidRole(t *testing.T) {
	s := newTestServer(t)

	w := s.do("POST", "/auth", formType, formBody(map[string]string{"mode": "signup", "role": "mayor"}), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do("POST", "/auth", formType, formBody(map[string]string{"mode": "admin"}), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleFieldChange(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.do("GET", "/auth", "", "", nil))

	s.do("POST", "/auth", formType, formBody(map[string]string{"email": "", "password": ""}), cookie)

	w := s.do("POST", "/auth/field", "application/json", `{"field":"email","value":"x"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]map[string]string](t, w)
	assert.Equal(t, map[string]string{"password": usecase.MsgPasswordRequired}, resp["errors"])

	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"field":"phone","value":"1"}`},
		{"invalid role", `{"field":"role","value":"mayor"}`},
		{"bad json", `{"field":`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do("POST", "/auth/field", "application/json", tc.body, cookie)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestHandleModeSwitch(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.do("GET", "/auth", "", "", nil))

	w := s.do("POST", "/auth/mode", formType, "", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))
	assert.Equal(t, domain.ModeSignUp, decode[statusResponse](t, s.do("GET", "/auth/status", "", "", cookie)).Mode)

	w = s.do("POST", "/auth/mode", formType, "mode=signup", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, domain.ModeSignUp, decode[statusResponse](t, s.do("GET", "/auth/status", "", "", cookie)).Mode)

	w = s.do("POST", "/auth/mode", formType, "mode=x", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleShapes(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/api/shapes", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Kind   string            `json:"kind"`
		Count  int               `json:"count"`
		Shapes []json.RawMessage `json:"shapes"`
	}](t, w)
	assert.Equal(t, "dot", resp.Kind)
	assert.Equal(t, defaultShapeCount, resp.Count)
	assert.Len(t, resp.Shapes, defaultShapeCount)

	w = s.do("GET", "/api/shapes?kind=blob&count=0", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shapes":[]`)

	for _, q := range []string{"count=-1", "count=ten", "kind=star", "count=501", "seed=-3"} {
		w := s.do("GET", "/api/shapes?"+q, "", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestHandleShapes_Seeded(t *testing.T) {
	s := newTestServer(t)

	a := s.do("GET", "/api/shapes?kind=accent&count=5&seed=42", "", "", nil)
	b := s.do("GET", "/api/shapes?kind=accent&count=5&seed=42", "", "", nil)
	require.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestHandleValidate(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		valid  bool
		errors map[string]string
	}{
		{
			"valid signin",
			`{"mode":"signin","fields":{"email":"a@b.com","password":"123456"}}`,
			true, map[string]string{},
		},
		{
			"empty signin",
			`{"fields":{}}`,
			false, map[string]string{"email": usecase.MsgEmailRequired, "password": usecase.MsgPasswordRequired},
		},
		{
			"signup mismatch",
			`{"mode":"signup","fields":{"email":"a@b.com","password":"123456","confirmPassword":"654321","firstName":"A","lastName":"B"}}`,
			false, map[string]string{"confirmPassword": usecase.MsgPasswordMismatch},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do("POST", "/api/validate", "application/json", tc.body, nil)
			require.Equal(t, http.StatusOK, w.Code)
			resp := decode[validateResponse](t, w)
			assert.Equal(t, tc.valid, resp.Valid)
			assert.Equal(t, tc.errors, resp.Errors)
		})
	}

	for _, body := range []string{`{"mode":"login"}`, `{"fields":{"phone":"1"}}`, `{"fields":{"role":"mayor"}}`, `[`} {
		w := s.do("POST", "/api/validate", "application/json", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	// Validation does not create sessions
	assert.Equal(t, 0, s.sessions.Count())
}

func TestHandleDashboard(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/dashboard?tab=reports", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/dashboard?tab=reports" class="tab active"`)

	w = s.do("GET", "/dashboard?tab=bogus", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/dashboard?tab=overview" class="tab active"`)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/health", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	w := s.do("DELETE", "/auth", "", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleWebSocket_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/ws", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleWebSocket_DeliversNotices(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.mux)
	defer srv.Close()

	cookie := sessionCookie(t, s.do("GET", "/auth", "", "", nil))

	header := http.Header{}
	header.Set("Cookie", domain.SessionCookieName+"="+cookie.Value)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	require.NoError(t, err)
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for s.hub.ClientCount(cookie.Value) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, s.hub.ClientCount(cookie.Value))

	w := s.do("POST", "/auth", formType, formBody(map[string]string{"email": "a@b.com", "password": "123456"}), cookie)
	require.Equal(t, http.StatusAccepted, w.Code)
	s.auth.Release()

	var got []domain.Message
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for len(got) < 2 {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		for _, line := range strings.Split(string(data), "\n") {
			var msg domain.Message
			require.NoError(t, json.Unmarshal([]byte(line), &msg))
			got = append(got, msg)
		}
	}

	assert.Equal(t, domain.MessageTypeState, got[0].Type)
	assert.Equal(t, domain.StateSubmitting, got[0].State)
	assert.Equal(t, domain.MessageTypeNotice, got[1].Type)
	require.NotNil(t, got[1].Notice)
	assert.Equal(t, usecase.NoticeSignInOK, got[1].Notice.Text)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{usecase.ErrSubmissionInProgress, http.StatusConflict},
		{fmt.Errorf("wrap: %w", usecase.ErrInvalidArgument), http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrUnknownField, http.StatusBadRequest},
		{domain.ErrUnknownMode, http.StatusBadRequest},
		{domain.ErrUnknownShapeKind, http.StatusBadRequest},
		{errBadRequest, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
