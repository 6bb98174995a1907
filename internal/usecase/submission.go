package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

// ErrSubmissionInProgress is returned when a form is submitted again before
// its previous submission has finished.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// Notice texts
const (
	NoticeSignInOK = "Login successful!"
	NoticeSignUpOK = "Signup successful!"
	NoticeFailed   = "Something went wrong"
)

// Authenticator performs the remote sign-in/sign-up call
type Authenticator interface {
	Authenticate(ctx context.Context, mode domain.Mode, fields domain.FormState) error
}

// SimulatedAuthenticator stands in for a real backend: it waits a fixed
// delay and always succeeds. The wait ignores ctx.
type SimulatedAuthenticator struct {
	Delay time.Duration
}

// Authenticate blocks for Delay and returns nil
func (a SimulatedAuthenticator) Authenticate(_ context.Context, _ domain.Mode, _ domain.FormState) error {
	if a.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(a.Delay)
	defer timer.Stop()
	<-timer.C
	return nil
}

// Notifier delivers lifecycle messages to a visitor's open pages
type Notifier interface {
	Notify(sessionID string, msg domain.Message)
}

// NopNotifier drops every message
type NopNotifier struct{}

func (NopNotifier) Notify(string, domain.Message) {}

// SubmitResult describes what Submit did with the form
type SubmitResult struct {
	// ID identifies an accepted submission; empty when rejected by validation
	ID string

	// Errors holds the validation failures; empty when accepted
	Errors domain.ErrorState

	// Done is closed once the form is idle again. Already closed when the
	// form failed validation.
	Done <-chan struct{}
}

// Accepted reports whether the submission passed validation
func (r SubmitResult) Accepted() bool {
	return r.ID != ""
}

// Submitter drives the Idle -> Submitting -> Idle lifecycle of auth forms
type Submitter struct {
	auth     Authenticator
	notifier Notifier
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewSubmitter creates a Submitter. Nil notifier and logger are replaced
// with no-op implementations.
func NewSubmitter(auth Authenticator, notifier Notifier, logger *zap.Logger) *Submitter {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		auth:     auth,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit validates the form and, if valid, starts the remote call in the
// background. An invalid form stays idle with its errors stored. A form
// that is already submitting is rejected with ErrSubmissionInProgress.
func (s *Submitter) Submit(ctx context.Context, form *AuthForm) (SubmitResult, error) {
	form.mu.Lock()
	if form.state == domain.StateSubmitting {
		form.mu.Unlock()
		return SubmitResult{}, ErrSubmissionInProgress
	}

	errs := Validate(form.fields, form.mode)
	form.errors = errs
	if !errs.Empty() {
		form.mu.Unlock()
		done := make(chan struct{})
		close(done)
		return SubmitResult{Errors: errs, Done: done}, nil
	}

	form.state = domain.StateSubmitting
	form.notice = nil
	mode, fields := form.mode, form.fields
	form.mu.Unlock()

	id := uuid.New().String()
	done := make(chan struct{})

	s.notifier.Notify(form.SessionID(), domain.Message{
		Type:   domain.MessageTypeState,
		State:  domain.StateSubmitting,
		Mode:   mode,
		SentAt: time.Now(),
	})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)

		start := time.Now()
		err := s.authenticate(context.WithoutCancel(ctx), mode, fields)

		notice := domain.Notice{
			ID:        uuid.New().String(),
			Level:     domain.NoticeSuccess,
			Text:      successText(mode),
			CreatedAt: time.Now(),
		}
		if err != nil {
			notice.Level = domain.NoticeError
			notice.Text = NoticeFailed
			s.logger.Warn("submission failed",
				zap.String("submission", id),
				zap.String("mode", string(mode)),
				zap.Error(err))
		} else {
			s.logger.Info("submission completed",
				zap.String("submission", id),
				zap.String("mode", string(mode)),
				zap.Duration("elapsed", time.Since(start)))
		}

		form.finish(notice)
		s.notifier.Notify(form.SessionID(), domain.Message{
			Type:   domain.MessageTypeNotice,
			Notice: &notice,
			State:  domain.StateIdle,
			Mode:   mode,
			SentAt: time.Now(),
		})
	}()

	return SubmitResult{ID: id, Done: done}, nil
}

// Wait blocks until every in-flight submission has finished
func (s *Submitter) Wait() {
	s.wg.Wait()
}

// authenticate calls the authenticator, turning a panic into an error so
// the form always returns to idle.
func (s *Submitter) authenticate(ctx context.Context, mode domain.Mode, fields domain.FormState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("authenticator panic: %v", r)
		}
	}()
	return s.auth.Authenticate(ctx, mode, fields)
}

func successText(mode domain.Mode) string {
	if mode == domain.ModeSignUp {
		return NoticeSignUpOK
	}
	return NoticeSignInOK
}
