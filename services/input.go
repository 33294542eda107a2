package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the form and JSON representation of a bowling date.
const DateLayout = "2006-01-02"

const maxGameScore = 300

// ParseGame parses a game score form value. A blank or non-numeric value
// counts as a missing field.
func ParseGame(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrMissingField, field)
	}
	return v, nil
}

// ParseDate parses a YYYY-MM-DD date. A blank value is a missing field.
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must look like %s", ErrInvalidField, field, DateLayout)
	}
	return d, nil
}

func validateGame(field string, v int) error {
	if v < 0 || v > maxGameScore {
		return fmt.Errorf("%w: %s=%d", ErrInvalidScore, field, v)
	}
	return nil
}
