package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(string(f))
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseField("phone"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		err  error
	}{
		{"", ModeSignIn, nil},
		{"signin", ModeSignIn, nil},
		{"signup", ModeSignUp, nil},
		{"login", "", ErrUnknownMode},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if got != tc.want || !errors.Is(err, tc.err) {
			t.Errorf("ParseMode(%q) = %q, %v; want %q, %v", tc.in, got, err, tc.want, tc.err)
		}
	}

	if ModeSignIn.Toggle() != ModeSignUp || ModeSignUp.Toggle() != ModeSignIn {
		t.Error("Toggle should flip between the two modes")
	}
}

func TestFormState_With(t *testing.T) {
	base := NewFormState()
	if base.Role != RoleCitizen {
		t.Errorf("Expected default role citizen, got %s", base.Role)
	}

	next, err := base.With(FieldEmail, "a@b.com")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if base.Email != "" {
		t.Error("With must not modify the receiver")
	}
	if next.Get(FieldEmail) != "a@b.com" {
		t.Errorf("Expected email set, got %q", next.Email)
	}

	if _, err := base.With(FieldRole, "mayor"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Expected ErrInvalidRole, got %v", err)
	}
	if _, err := base.With("phone", "1"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}

	official, _ := base.With(FieldRole, "official")
	if official.Get(FieldRole) != "official" {
		t.Errorf("Expected role official, got %s", official.Role)
	}
}

func TestErrorState(t *testing.T) {
	var e ErrorState
	if !e.Empty() {
		t.Error("Zero ErrorState should be empty")
	}

	e = e.With(FieldEmail, "bad").With(FieldConfirmPassword, "mismatch")
	if e.Empty() {
		t.Error("Expected non-empty ErrorState")
	}
	m := e.Map()
	if len(m) != 2 || m["email"] != "bad" || m["confirmPassword"] != "mismatch" {
		t.Errorf("Unexpected map: %v", m)
	}

	if e.Without(FieldEmail).Get(FieldEmail) != "" {
		t.Error("Without should clear the field")
	}
	if e.Get(FieldEmail) != "bad" {
		t.Error("Without must not modify the receiver")
	}
}

func TestSubmitState_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		State SubmitState `json:"state"`
	}{StateSubmitting})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"state":"submitting"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	var back struct {
		State SubmitState `json:"state"`
	}
	if err := json.Unmarshal(data, &back); err != nil || back.State != StateSubmitting {
		t.Errorf("Expected submitting back, got %v, %v", back.State, err)
	}
	if err := json.Unmarshal([]byte(`{"state":"done"}`), &back); err == nil {
		t.Error("Expected error for unknown state")
	}
}

func TestParseShapeKind(t *testing.T) {
	for _, k := range ShapeKinds {
		if got, err := ParseShapeKind(string(k)); err != nil || got != k {
			t.Errorf("ParseShapeKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseShapeKind("star"); !errors.Is(err, ErrUnknownShapeKind) {
		t.Errorf("Expected ErrUnknownShapeKind, got %v", err)
	}
}

func TestParseDashboardTab(t *testing.T) {
	if ParseDashboardTab("analytics") != TabAnalytics {
		t.Error("Expected analytics tab")
	}
	if ParseDashboardTab("") != TabOverview || ParseDashboardTab("nope") != TabOverview {
		t.Error("Expected fallback to overview")
	}
}
