package model

import (
	"fmt"
	"time"
)

// Week is the (year, week number) container owning the days that fall
// into that ISO calendar week. The pair is the key: a week number alone
// recurs every year. At most one day per date.
type Week struct {
	Year        int     `msgpack:"year" json:"year"`
	Number      int     `msgpack:"number" json:"number"`
	TargetHours float64 `msgpack:"target_hours" json:"target_hours"`
	Days        []Day   `msgpack:"days" json:"days"`
}

// NewWeek creates an empty week bucket.
func NewWeek(year, number int, targetHours float64) Week {
	return Week{Year: year, Number: number, TargetHours: targetHours}
}

// DayAt returns the day stored for the given date.
func (w *Week) DayAt(date time.Time) (Day, bool) {
	key := DateOf(date)
	for _, d := range w.Days {
		if d.Date.Equal(key) {
			return d, true
		}
	}
	return Day{}, false
}

// AddDay appends a day. The caller must have checked that no day with
// the same date exists.
func (w *Week) AddDay(d Day) {
	w.Days = append(w.Days, d)
}

// SetDay replaces the stored day with the same date.
func (w *Week) SetDay(d Day) {
	for i := range w.Days {
		if w.Days[i].Date.Equal(d.Date) {
			w.Days[i] = d
			return
		}
	}
	w.Days = append(w.Days, d)
}

// RemoveDay deletes the day with the given date.
func (w *Week) RemoveDay(date time.Time) error {
	key := DateOf(date)
	for i := range w.Days {
		if w.Days[i].Date.Equal(key) {
			w.Days = append(w.Days[:i], w.Days[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("day %s in week %d/%d: %w", key.Format("2006-01-02"), w.Year, w.Number, ErrNotFound)
}

// TotalHours sums the hours of all days in the week.
func (w *Week) TotalHours() float64 {
	var total float64
	for _, d := range w.Days {
		total += d.Hours
	}
	return total
}
