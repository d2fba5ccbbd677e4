package model

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for calendar dates.  The API exchanges
// plain dates (no time component) for release dates and birthdays, so
// the usual RFC 3339 timestamp serialization of time.Time does not fit.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component.  It wraps
// time.Time so comparisons and formatting stay available, while JSON
// marshalling produces "YYYY-MM-DD" instead of a full timestamp.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String renders the date in the wire format.
func (d Date) String() string { return d.Format(dateLayout) }

// MarshalJSON renders the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts a quoted "YYYY-MM-DD" string or null.  A null
// value leaves the date at its zero value so optional fields can be
// detected with IsZero.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
