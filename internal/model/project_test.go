package model_test

import (
	"errors"
	"testing"

	"github.com/lindqvst/hourglass/internal/model"
)

func TestNewEntryAssignsIDAndCreated(t *testing.T) {
	a := model.NewEntry(1.5, "review")
	b := model.NewEntry(1.5, "review")
	if a.ID == "" || b.ID == "" {
		t.Fatal("NewEntry must assign an ID")
	}
	if a.ID == b.ID {
		t.Error("two entries share the same ID")
	}
	if a.Created.IsZero() {
		t.Error("NewEntry must stamp the creation time")
	}
	if a.Source != model.SourceManual {
		t.Errorf("source = %q, want %q", a.Source, model.SourceManual)
	}
}

func TestProjectEntries(t *testing.T) {
	p := model.NewProject("ECM", "client work")
	e1 := model.NewEntry(2, "design")
	e2 := model.NewEntry(1.5, "review")
	p.AddEntry(e1)
	p.AddEntry(e2)

	if got := p.TotalHours(); got != 3.5 {
		t.Errorf("TotalHours = %v, want 3.5", got)
	}

	found, ok := p.Entry(e2.ID)
	if !ok {
		t.Fatalf("Entry(%s) not found", e2.ID)
	}
	if found.Description != "review" {
		t.Errorf("entry description = %q, want %q", found.Description, "review")
	}
}

func TestProjectRemoveEntry(t *testing.T) {
	p := model.NewProject("ECM", "")
	e := model.NewEntry(1, "design")
	p.AddEntry(e)

	if err := p.RemoveEntry(e.ID); err != nil {
		t.Fatalf("RemoveEntry: %v", err)
	}
	if len(p.Entries) != 0 {
		t.Errorf("entries after removal = %d, want 0", len(p.Entries))
	}

	err := p.RemoveEntry("no-such-id")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("RemoveEntry on missing ID: err = %v, want ErrNotFound", err)
	}
}

func TestProjectHasExternalID(t *testing.T) {
	p := model.NewProject("Meetings", "")
	id := "outlook-event-1"
	e := model.NewEntry(0.5, "standup")
	e.Source = model.SourceOutlook
	e.ExternalID = &id
	p.AddEntry(e)
	p.AddEntry(model.NewEntry(1, "manual work"))

	if !p.HasExternalID("outlook-event-1") {
		t.Error("HasExternalID = false for imported entry")
	}
	if p.HasExternalID("outlook-event-2") {
		t.Error("HasExternalID = true for unknown external ID")
	}
}
