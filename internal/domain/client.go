package domain

import "time"

// Client is a customer organisation.
type Client struct {
	ID          string
	Name        string
	ContactName string
	Industry    string
	Email       string
	Phone       string
	Notes       string
	Projects    []string
	Active      bool
	CustomData  map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClientPatch is a partial client edit.
type ClientPatch struct {
	Name        *string
	ContactName *string
	Industry    *string
	Email       *string
	Phone       *string
	Notes       *string
	Projects    []string
	CustomData  map[string]any
	Active      *bool
}
