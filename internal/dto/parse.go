package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"events-web-app/internal/apperror"
)

const dateLayout = "2006-01-02"

// ParseID parses a uuid received in a query string or body
func ParseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperror.NewValidationError(fmt.Sprintf("field '%s' is required", field))
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewValidationError(fmt.Sprintf("field '%s' must be a valid id", field))
	}
	return id, nil
}

// ParseDate accepts a plain date or an RFC 3339 timestamp
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperror.NewValidationError(fmt.Sprintf("field '%s' is required", field))
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.NewValidationError(
		fmt.Sprintf("field '%s' must be a date (2006-01-02) or an RFC 3339 timestamp", field))
}

// optionalDate parses raw when present and reports a zero time otherwise,
// leaving the required rule to the entity validator
func optionalDate(field, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return ParseDate(field, raw)
}
