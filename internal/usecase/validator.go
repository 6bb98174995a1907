package usecase

import (
	"regexp"
	"unicode/utf8"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

// Validation messages shown under each field
const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email"
	MsgPasswordRequired = "Password required"
	MsgPasswordShort    = "Min 6 characters"
	MsgFirstNameMissing = "First name required"
	MsgLastNameMissing  = "Last name required"
	MsgPasswordMismatch = "Passwords do not match"
)

// MinPasswordLength is counted in characters, not bytes
const MinPasswordLength = 6

// emailRegex requires exactly one @, no whitespace, and a dot inside the
// domain with text on both sides: a@b.com passes, a@b does not.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s matches the accepted email shape
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// Validate checks every applicable rule for mode and returns the failures.
// All fields are checked; an empty result means the form can be submitted.
func Validate(fields domain.FormState, mode domain.Mode) domain.ErrorState {
	var errs domain.ErrorState

	switch {
	case fields.Email == "":
		errs.Email = MsgEmailRequired
	case !IsValidEmail(fields.Email):
		errs.Email = MsgEmailInvalid
	}

	switch {
	case fields.Password == "":
		errs.Password = MsgPasswordRequired
	case utf8.RuneCountInString(fields.Password) < MinPasswordLength:
		errs.Password = MsgPasswordShort
	}

	if mode == domain.ModeSignUp {
		if fields.FirstName == "" {
			errs.FirstName = MsgFirstNameMissing
		}
		if fields.LastName == "" {
			errs.LastName = MsgLastNameMissing
		}
		if fields.Password != fields.ConfirmPassword {
			errs.ConfirmPassword = MsgPasswordMismatch
		}
	}

	return errs
}
