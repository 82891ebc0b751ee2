package model

import (
	"time"

	"github.com/google/uuid"
)

// Entry sources.
const (
	SourceManual  = "manual"
	SourceOutlook = "outlook"
)

// Entry is a single time booking on a project.
type Entry struct {
	// ID is assigned at creation and never changes.
	ID          string  `msgpack:"id" json:"id"`
	Hours       float64 `msgpack:"hours" json:"hours"`
	Description string  `msgpack:"description" json:"description"`
	// Created is stamped at creation and never changes.
	Created time.Time `msgpack:"created" json:"created"`
	Source  string    `msgpack:"source" json:"source"`
	// ExternalID links an imported entry to its origin (e.g. an Outlook
	// event ID) so repeated imports can skip it.
	ExternalID *string `msgpack:"external_id" json:"external_id,omitempty"`
}

// NewEntry creates an entry with a fresh unique ID and the current time
// as creation timestamp. Neither field is settable by callers.
func NewEntry(hours float64, description string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Hours:       hours,
		Description: description,
		Created:     time.Now(),
		Source:      SourceManual,
	}
}
