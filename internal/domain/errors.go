package domain

import "errors"

// Every failure of a run is fatal and falls into one of these classes.
// Wrap them with fmt.Errorf and %w so callers can use errors.Is.
var (
	// ErrConfiguration means a required setting such as the token is missing or malformed.
	ErrConfiguration = errors.New("configuration error")
	// ErrFetch means the issue listing request failed.
	ErrFetch = errors.New("fetch error")
	// ErrParse means a date argument could not be parsed.
	ErrParse = errors.New("parse error")
)
