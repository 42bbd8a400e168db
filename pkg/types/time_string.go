// Package types contains small shared value types.
package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString is returned when a value is not a valid "HH:MM" string.
var ErrInvalidTimeString = errors.New("invalid time string format")

const timeStringLayout = "15:04"

// TimeString is a time of day in "HH:MM" format (e.g. "10:00").
// It is stored and transferred as a plain string, which keeps it
// timezone-free and directly comparable lexicographically.
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeStringLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsBefore reports whether t is strictly earlier than other.
// Valid "HH:MM" strings compare correctly as plain strings.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// The result wraps around midnight, matching time.Time arithmetic.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(timeStringLayout)), nil
}
