// Package validate holds the pure field-level checks shared by both
// storage backends. Every function is side-effect free and looks only
// at the value it is given; reference checks against the catalog
// (genre and mpa ids) live in the service layer because they need a
// store and raise not-found, not validation, errors.
package validate

import (
	"strings"
	"time"
	"unicode"

	"github.com/iliyamo/film-catalog/internal/model"
)

// Error reports a malformed input field. The caller can always recover
// by correcting the value, so handlers map it to a 400 response.
type Error struct {
	Field  string // which field failed
	Reason string // human-readable explanation
}

func (e *Error) Error() string { return e.Field + ": " + e.Reason }

// maxDescription caps the film synopsis length in characters.
const maxDescription = 200

// earliestRelease is the date of the first public film screening;
// nothing can have been released before it.
var earliestRelease = model.NewDate(1895, time.December, 28)

// Film checks the field-level invariants of a film: non-blank name,
// a description of at most 200 characters, a positive duration and a
// release date no earlier than 1895-12-28.
func Film(f *model.Film) error {
	if strings.TrimSpace(f.Name) == "" {
		return &Error{Field: "name", Reason: "must not be blank"}
	}
	if len([]rune(f.Description)) > maxDescription {
		return &Error{Field: "description", Reason: "must not exceed 200 characters"}
	}
	if f.Duration <= 0 {
		return &Error{Field: "duration", Reason: "must be positive"}
	}
	if f.ReleaseDate.IsZero() {
		return &Error{Field: "releaseDate", Reason: "is required"}
	}
	if f.ReleaseDate.Before(earliestRelease.Time) {
		return &Error{Field: "releaseDate", Reason: "must not be before 1895-12-28"}
	}
	return nil
}

// User checks the field-level invariants of a user: an email with an
// '@', a login without whitespace and a birthday that is not in the
// future.
func User(u *model.User) error {
	if strings.TrimSpace(u.Email) == "" {
		return &Error{Field: "email", Reason: "must not be blank"}
	}
	if !strings.Contains(u.Email, "@") {
		return &Error{Field: "email", Reason: "must contain '@'"}
	}
	if strings.TrimSpace(u.Login) == "" {
		return &Error{Field: "login", Reason: "must not be blank"}
	}
	if strings.IndexFunc(u.Login, unicode.IsSpace) >= 0 {
		return &Error{Field: "login", Reason: "must not contain whitespace"}
	}
	if u.Birthday != nil && u.Birthday.After(time.Now()) {
		return &Error{Field: "birthday", Reason: "must not be in the future"}
	}
	return nil
}

// NormalizeUser substitutes the login for a blank display name. It is
// applied on create and again on any update that blanks the name.
func NormalizeUser(u *model.User) {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}
