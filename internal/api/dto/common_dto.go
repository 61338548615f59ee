package dto

import (
	"strings"
	"time"
)

// MessageResponse is the body of writes that return no record.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is the body of a 201.
type CreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate reads an ISO 8601 date or timestamp. Empty input means no date.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, ValidationFailed(field + " debe ser una fecha ISO 8601")
}

func parseOptionalDate(field string, value OptionalString) (*time.Time, error) {
	if value.Value == nil {
		return nil, nil
	}
	return ParseDate(field, *value.Value)
}
