package utils

import "time"

func NewString(s string) *string {
	return &s
}

func NewInt(n int) *int {
	return &n
}

// DateOnly drops the time-of-day component, keeping the UTC calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
