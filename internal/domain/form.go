package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned for a field name outside the auth form schema
	ErrUnknownField = errors.New("unknown form field")

	// ErrInvalidRole is returned when role is not one of the known roles
	ErrInvalidRole = errors.New("invalid role")

	// ErrUnknownMode is returned for a mode other than signin/signup
	ErrUnknownMode = errors.New("unknown form mode")
)

// Field names one input of the auth form
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldRole            Field = "role"
)

// Fields is the closed set of auth form fields, in display order
var Fields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldConfirmPassword, FieldRole}

// ParseField validates a field name received from the client
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Role is the account type picked on sign-up
type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleReporter Role = "reporter"
	RoleOfficial Role = "official"
)

// DefaultRole is preselected on a fresh form
const DefaultRole = RoleCitizen

// RoleOption describes a role in the sign-up select
type RoleOption struct {
	Role        Role
	Description string
}

// RoleOptions are offered on the sign-up form
var RoleOptions = []RoleOption{
	{RoleCitizen, "Citizen - Report issues and stay informed"},
	{RoleReporter, "Reporter - Professional news and event coverage"},
	{RoleOfficial, "City Official - Manage and respond to reports"},
}

// ParseRole validates a role value
func ParseRole(s string) (Role, error) {
	for _, o := range RoleOptions {
		if string(o.Role) == s {
			return o.Role, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Mode selects which rule set the validator applies
type Mode string

const (
	ModeSignIn Mode = "signin"
	ModeSignUp Mode = "signup"
)

// ParseMode accepts "signin" and "signup"; empty means signin
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSignIn:
		return ModeSignIn, nil
	case ModeSignUp:
		return ModeSignUp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeSignUp {
		return ModeSignIn
	}
	return ModeSignUp
}

// FormState holds the current value of every auth form field.
// It is a value type; With returns a modified copy.
type FormState struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Role            Role   `json:"role"`
}

// NewFormState returns an empty form with the default role
func NewFormState() FormState {
	return FormState{Role: DefaultRole}
}

// Get returns the raw value of field
func (f FormState) Get(field Field) string {
	switch field {
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	case FieldConfirmPassword:
		return f.ConfirmPassword
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldRole:
		return string(f.Role)
	}
	return ""
}

// With returns a copy of f with field replaced by value
func (f FormState) With(field Field, value string) (FormState, error) {
	switch field {
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldConfirmPassword:
		f.ConfirmPassword = value
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldRole:
		role, err := ParseRole(value)
		if err != nil {
			return f, err
		}
		f.Role = role
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return f, nil
}

// ErrorState holds one optional message per field. Empty string = no error.
type ErrorState struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Role            string
}

// Empty reports whether no field has an error
func (e ErrorState) Empty() bool {
	return e == ErrorState{}
}

// Get returns the message for field
func (e ErrorState) Get(field Field) string {
	switch field {
	case FieldEmail:
		return e.Email
	case FieldPassword:
		return e.Password
	case FieldConfirmPassword:
		return e.ConfirmPassword
	case FieldFirstName:
		return e.FirstName
	case FieldLastName:
		return e.LastName
	case FieldRole:
		return e.Role
	}
	return ""
}

// With returns a copy of e with field's message set to msg
func (e ErrorState) With(field Field, msg string) ErrorState {
	switch field {
	case FieldEmail:
		e.Email = msg
	case FieldPassword:
		e.Password = msg
	case FieldConfirmPassword:
		e.ConfirmPassword = msg
	case FieldFirstName:
		e.FirstName = msg
	case FieldLastName:
		e.LastName = msg
	case FieldRole:
		e.Role = msg
	}
	return e
}

// Without returns a copy of e with field's error cleared
func (e ErrorState) Without(field Field) ErrorState {
	return e.With(field, "")
}

// Map returns only the failed fields, keyed by field name
func (e ErrorState) Map() map[string]string {
	m := make(map[string]string)
	for _, f := range Fields {
		if msg := e.Get(f); msg != "" {
			m[string(f)] = msg
		}
	}
	return m
}

// SubmitState is the position of a form in its submission lifecycle
type SubmitState int

const (
	StateIdle SubmitState = iota
	StateSubmitting
)

func (s SubmitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("SubmitState(%d)", int(s))
}

// MarshalText encodes the state by name for JSON
func (s SubmitState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *SubmitState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "submitting":
		*s = StateSubmitting
	default:
		return fmt.Errorf("unknown submit state %q", text)
	}
	return nil
}
