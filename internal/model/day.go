package model

import (
	"fmt"
	"time"
)

// Day is a single work day, keyed by its calendar date. Starting and
// ending time are explicit optionals: an unset time is nil, never a
// zero-value sentinel, so the merge engine can tell "unset" from a real
// midnight timestamp.
type Day struct {
	Date         time.Time  `msgpack:"date" json:"date"`
	StartingTime *time.Time `msgpack:"starting_time" json:"starting_time,omitempty"`
	EndingTime   *time.Time `msgpack:"ending_time" json:"ending_time,omitempty"`
	ExtraInfo    *string    `msgpack:"extra_info" json:"extra_info,omitempty"`
	// Hours and Closed are derived from the two times; they are
	// recomputed whenever the day changes.
	Hours  float64 `msgpack:"hours" json:"hours"`
	Closed bool    `msgpack:"closed" json:"closed"`
	// PausedHours is subtracted from the worked duration.
	PausedHours float64   `msgpack:"paused_hours" json:"paused_hours"`
	Created     time.Time `msgpack:"created" json:"created"`
}

// DateOf normalizes a timestamp to its calendar date (midnight UTC),
// the natural key for days.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDay builds a partial day submission for the given date. At least
// one of starting time, ending time or extra info must be provided,
// otherwise ErrInvalidInput is returned. Paused hours are carried on
// the submission even without a starting time; they only take effect
// once both times are known.
func NewDay(date time.Time, start, end *time.Time, extraInfo *string, pausedHours float64) (Day, error) {
	if start == nil && end == nil && extraInfo == nil {
		return Day{}, fmt.Errorf("day submission has no fields set: %w", ErrInvalidInput)
	}
	if start != nil && end != nil && end.Before(*start) {
		return Day{}, fmt.Errorf("ending time %s before starting time %s: %w",
			end.Format("15:04"), start.Format("15:04"), ErrInvalidInput)
	}
	d := Day{
		Date:         DateOf(date),
		StartingTime: start,
		EndingTime:   end,
		ExtraInfo:    extraInfo,
		PausedHours:  pausedHours,
		Created:      time.Now(),
	}
	d.recompute()
	return d, nil
}

// Merge folds an incoming same-date submission into the existing day.
// Fields already set on the existing day are kept; only fields that are
// unset here and set on the incoming day are adopted. It returns the
// merged day and whether anything changed — an unchanged merge is a
// no-op to be reported, not an error.
func (d Day) Merge(incoming Day) (Day, bool) {
	merged := d
	changed := false
	if merged.StartingTime == nil && incoming.StartingTime != nil {
		t := *incoming.StartingTime
		merged.StartingTime = &t
		changed = true
	}
	if merged.EndingTime == nil && incoming.EndingTime != nil {
		t := *incoming.EndingTime
		merged.EndingTime = &t
		changed = true
	}
	if merged.ExtraInfo == nil && incoming.ExtraInfo != nil {
		s := *incoming.ExtraInfo
		merged.ExtraInfo = &s
		changed = true
	}
	if merged.StartingTime != nil && merged.PausedHours == 0 && incoming.PausedHours > 0 {
		merged.PausedHours = incoming.PausedHours
		changed = true
	}
	merged.recompute()
	return merged, changed
}

// recompute derives Closed and Hours from the two times. Hours keep
// minute precision; seconds are truncated.
func (d *Day) recompute() {
	if d.StartingTime == nil || d.EndingTime == nil {
		d.Closed = false
		d.Hours = 0
		return
	}
	d.Closed = true
	minutes := int64(d.EndingTime.Sub(*d.StartingTime) / time.Minute)
	if minutes < 0 {
		// Inverted times can only arise from merging two individually
		// valid submissions; never report negative hours.
		minutes = 0
	}
	worked := float64(minutes) / 60
	net := worked - d.PausedHours
	if net < 0 {
		// More pause than work recorded: ignore the pause rather than
		// report negative hours.
		net = worked
	}
	d.Hours = net
}
