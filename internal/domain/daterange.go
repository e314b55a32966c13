package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the command line and in file names.
const DateLayout = "2006-01-02"

// rangeGrace extends the upper bound of a DateRange to absorb time-of-day skew.
const rangeGrace = 24 * time.Hour

// DateRange is an inclusive range of calendar dates, both at midnight UTC.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange truncates both ends to midnight UTC.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: midnightUTC(from), To: midnightUTC(to)}
}

// UpperBound is the inclusive upper limit used for inclusion tests.
func (r DateRange) UpperBound() time.Time {
	return r.To.Add(rangeGrace)
}

// Contains reports whether t falls within [From, To+1day].
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.UpperBound())
}

// FromString returns the start date as YYYY-MM-DD.
func (r DateRange) FromString() string {
	return r.From.Format(DateLayout)
}

// ToString returns the end date as YYYY-MM-DD.
func (r DateRange) ToString() string {
	return r.To.Format(DateLayout)
}

func (r DateRange) String() string {
	return r.FromString() + " to " + r.ToString()
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Repository identifies the target GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses an "owner/name" string.
func ParseRepository(s string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("%w: repository must be in owner/name form, got %q", ErrConfiguration, s)
	}
	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}
