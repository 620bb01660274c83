package huhforms

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the due date format typed into task forms
const DateLayout = "2006-01-02"

var errInvalidDate = errors.New("use YYYY-MM-DD")

// required rejects blank values with "<field> is required".
func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// ParseDate parses a form due date. Blank means no due date.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, errInvalidDate
	}
	return &t, nil
}

func validDate(s string) error {
	_, err := ParseDate(s)
	return err
}

// FormatDate renders a due date for a form field.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
