package usecase

import (
	"sync"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

// AuthForm is one visitor's sign-in/sign-up form: field values, field
// errors, the submission lifecycle and the last completion notice.
type AuthForm struct {
	mu        sync.Mutex
	sessionID string
	mode      domain.Mode
	fields    domain.FormState
	errors    domain.ErrorState
	state     domain.SubmitState
	notice    *domain.Notice
}

// AuthFormView is a point-in-time copy of an AuthForm for rendering
type AuthFormView struct {
	SessionID string
	Mode      domain.Mode
	Fields    domain.FormState
	Errors    domain.ErrorState
	State     domain.SubmitState
	Notice    *domain.Notice
}

// Submitting reports whether a submission is in flight
func (v AuthFormView) Submitting() bool {
	return v.State == domain.StateSubmitting
}

// NewAuthForm creates an idle sign-in form with the default role
func NewAuthForm(sessionID string) *AuthForm {
	return &AuthForm{
		sessionID: sessionID,
		mode:      domain.ModeSignIn,
		fields:    domain.NewFormState(),
	}
}

// SessionID returns the visitor session owning this form
func (f *AuthForm) SessionID() string {
	return f.sessionID
}

// SetField replaces one field value and clears that field's error.
// The form is left unchanged if the field or value is rejected, or while a
// submission is in flight (ErrSubmissionInProgress).
func (f *AuthForm) SetField(field domain.Field, value string) (domain.ErrorState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == domain.StateSubmitting {
		return f.errors, ErrSubmissionInProgress
	}
	next, err := f.fields.With(field, value)
	if err != nil {
		return f.errors, err
	}
	f.fields = next
	if f.errors.Get(field) != "" {
		f.errors = f.errors.Without(field)
	}
	return f.errors, nil
}

// SetFields applies several field changes in order, stopping at the first
// rejected one.
func (f *AuthForm) SetFields(values map[domain.Field]string) (domain.ErrorState, error) {
	for _, field := range domain.Fields {
		value, ok := values[field]
		if !ok {
			continue
		}
		if _, err := f.SetField(field, value); err != nil {
			return f.Snapshot().Errors, err
		}
	}
	return f.Snapshot().Errors, nil
}

// SetMode switches between sign-in and sign-up. Switching mode drops
// the errors of the previous mode; field values are kept. The mode is
// frozen while a submission is in flight.
func (f *AuthForm) SetMode(mode domain.Mode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == domain.StateSubmitting {
		return ErrSubmissionInProgress
	}
	if f.mode == mode {
		return nil
	}
	f.mode = mode
	f.errors = domain.ErrorState{}
	return nil
}

// ToggleMode flips the mode and returns the new one
func (f *AuthForm) ToggleMode() (domain.Mode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == domain.StateSubmitting {
		return f.mode, ErrSubmissionInProgress
	}
	f.mode = f.mode.Toggle()
	f.errors = domain.ErrorState{}
	return f.mode, nil
}

// Snapshot returns a copy of the current form
func (f *AuthForm) Snapshot() AuthFormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := AuthFormView{
		SessionID: f.sessionID,
		Mode:      f.mode,
		Fields:    f.fields,
		Errors:    f.errors,
		State:     f.state,
	}
	if f.notice != nil {
		n := *f.notice
		view.Notice = &n
	}
	return view
}

// TakeNotice returns the pending notice once, then forgets it
func (f *AuthForm) TakeNotice() *domain.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.notice
	f.notice = nil
	return n
}

// finish ends a submission cycle: back to idle with the given notice
func (f *AuthForm) finish(n domain.Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = domain.StateIdle
	f.notice = &n
}
