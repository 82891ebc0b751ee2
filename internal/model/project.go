package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Project groups time entries under a unique name. Entries are owned
// exclusively by their project and keep insertion order.
type Project struct {
	ID          string  `msgpack:"id" json:"id"`
	Name        string  `msgpack:"name" json:"name"`
	Description string  `msgpack:"description" json:"description"`
	Entries     []Entry `msgpack:"entries" json:"entries"`
}

// NewProject creates an empty project.
func NewProject(name, description string) Project {
	return Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
}

// AddEntry appends an entry to the project.
func (p *Project) AddEntry(e Entry) {
	p.Entries = append(p.Entries, e)
}

// Entry returns the entry with the given ID.
func (p *Project) Entry(id string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// HasExternalID reports whether any entry was imported from the given
// external source ID.
func (p *Project) HasExternalID(id string) bool {
	for _, e := range p.Entries {
		if e.ExternalID != nil && *e.ExternalID == id {
			return true
		}
	}
	return false
}

// RemoveEntry deletes the entry with the given ID.
func (p *Project) RemoveEntry(id string) error {
	for i, e := range p.Entries {
		if e.ID == id {
			p.Entries = append(p.Entries[:i], p.Entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry %s in project %q: %w", id, p.Name, ErrNotFound)
}

// TotalHours sums the hours of all entries.
func (p *Project) TotalHours() float64 {
	var total float64
	for _, e := range p.Entries {
		total += e.Hours
	}
	return total
}
