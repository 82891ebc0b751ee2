package msgraph

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lindqvst/hourglass/internal/model"
)

// parseGraphTime parses a Graph API dateTime string in the given
// timezone. Graph returns times like "2026-02-27T09:00:00.0000000"
// without a zone suffix when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, dt); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// shouldSkip reports whether the event should not be imported:
// cancelled, all-day, private or free-marked events carry no billable
// time.
func shouldSkip(event CalendarEvent) bool {
	if event.IsCancelled || event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

// EntryFromEvent converts a calendar event into a project entry. The
// event's duration becomes the entry hours (minute precision) and the
// event ID becomes the entry's external ID for deduplication.
func EntryFromEvent(event CalendarEvent, timezone string) (model.Entry, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing end time: %w", err)
	}

	description := event.Subject
	if event.Location.DisplayName != "" {
		description += " (" + event.Location.DisplayName + ")"
	}
	description += " [" + start.Format("2006-01-02") + "]"

	minutes := int64(end.Sub(start) / time.Minute)
	externalID := event.ID
	return model.Entry{
		ID:          uuid.NewString(),
		Hours:       float64(minutes) / 60,
		Description: description,
		Created:     time.Now(),
		Source:      model.SourceOutlook,
		ExternalID:  &externalID,
	}, nil
}

// EntriesFromEvents converts fetched events into entries, dropping the
// ones that should not be imported. Conversion errors are collected
// into the returned problem list instead of aborting the whole import.
func EntriesFromEvents(events []CalendarEvent, timezone string) (entries []model.Entry, problems []string) {
	for _, event := range events {
		if shouldSkip(event) {
			continue
		}
		e, err := EntryFromEvent(event, timezone)
		if err != nil {
			subject := strings.TrimSpace(event.Subject)
			problems = append(problems, fmt.Sprintf("%s: %v", subject, err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, problems
}
