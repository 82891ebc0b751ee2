// Package report turns the stored collections into format-agnostic row
// representations and renders them to JSON, CSV, YAML or HTML files.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/timecalc"
)

// Format selects the report output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("invalid report format %q, expected json, csv, yaml or html", s)
}

// ProjectRow is one entry row of a project report.
type ProjectRow struct {
	Hours       float64 `json:"hours" yaml:"hours"`
	Description string  `json:"description" yaml:"description"`
	Created     string  `json:"created" yaml:"created"`
	ID          string  `json:"id" yaml:"id"`
}

// ProjectReport is the stable in-memory representation of a project's
// entries, consumed by the renderers.
type ProjectReport struct {
	Project     string       `json:"project" yaml:"project"`
	Description string       `json:"description" yaml:"description"`
	Rows        []ProjectRow `json:"entries" yaml:"entries"`
	TotalHours  float64      `json:"total_hours" yaml:"total_hours"`
}

// DayRow is one day row of a week or month report.
type DayRow struct {
	Date      string  `json:"date" yaml:"date"`
	Start     string  `json:"start" yaml:"start"`
	End       string  `json:"end" yaml:"end"`
	Hours     float64 `json:"hours" yaml:"hours"`
	Closed    bool    `json:"closed" yaml:"closed"`
	ExtraInfo string  `json:"extra_info" yaml:"extra_info"`
	// Week is filled for month reports, where rows cross week buckets.
	Week int `json:"week,omitempty" yaml:"week,omitempty"`
}

// WeekReport is the row representation of one week bucket.
type WeekReport struct {
	Year       int      `json:"year" yaml:"year"`
	Week       int      `json:"week" yaml:"week"`
	Rows       []DayRow `json:"days" yaml:"days"`
	TotalHours float64  `json:"total_hours" yaml:"total_hours"`
}

// MonthReport is the row representation of one calendar month. Days are
// collected across all weeks touching the month.
type MonthReport struct {
	Year       int      `json:"year" yaml:"year"`
	Month      int      `json:"month" yaml:"month"`
	Rows       []DayRow `json:"days" yaml:"days"`
	TotalHours float64  `json:"total_hours" yaml:"total_hours"`
}

// BuildProjectReport builds the row representation of a project.
func BuildProjectReport(p model.Project) ProjectReport {
	r := ProjectReport{
		Project:     p.Name,
		Description: p.Description,
		TotalHours:  p.TotalHours(),
	}
	for _, e := range p.Entries {
		r.Rows = append(r.Rows, ProjectRow{
			Hours:       e.Hours,
			Description: e.Description,
			Created:     e.Created.Format("2006-01-02 15:04"),
			ID:          e.ID,
		})
	}
	return r
}

func dayRow(d model.Day) DayRow {
	extra := ""
	if d.ExtraInfo != nil {
		extra = *d.ExtraInfo
	}
	return DayRow{
		Date:      d.Date.Format("2006-01-02"),
		Start:     timecalc.FormatClock(d.StartingTime),
		End:       timecalc.FormatClock(d.EndingTime),
		Hours:     d.Hours,
		Closed:    d.Closed,
		ExtraInfo: extra,
	}
}

// BuildWeekReport builds the row representation of a week bucket.
func BuildWeekReport(w model.Week) WeekReport {
	r := WeekReport{
		Year:       w.Year,
		Week:       w.Number,
		TotalHours: w.TotalHours(),
	}
	for _, d := range w.Days {
		r.Rows = append(r.Rows, dayRow(d))
	}
	return r
}

// BuildMonthReport builds the row representation of a calendar month
// from its days (already filtered and sorted by the caller).
func BuildMonthReport(year int, month int, days []model.Day) MonthReport {
	r := MonthReport{Year: year, Month: month}
	for _, d := range days {
		row := dayRow(d)
		_, row.Week = timecalc.WeekOf(d.Date)
		r.Rows = append(r.Rows, row)
		r.TotalHours += d.Hours
	}
	return r
}

// title and table helpers shared by the CSV and HTML renderers.

func (r ProjectReport) title() string {
	return fmt.Sprintf("Project Report - %s", r.Project)
}

func (r ProjectReport) headers() []string {
	return []string{"hours", "description", "created", "id"}
}

func (r ProjectReport) tableRows() [][]string {
	var rows [][]string
	for _, row := range r.Rows {
		rows = append(rows, []string{
			formatHours(row.Hours), row.Description, row.Created, row.ID,
		})
	}
	return rows
}

func (r WeekReport) title() string {
	return fmt.Sprintf("Week Report - %s", timecalc.WeekLabel(r.Year, r.Week))
}

func (r WeekReport) headers() []string {
	return []string{"date", "start", "end", "hours", "closed", "extra info"}
}

func (r WeekReport) tableRows() [][]string {
	var rows [][]string
	for _, row := range r.Rows {
		rows = append(rows, []string{
			row.Date, row.Start, row.End,
			formatHours(row.Hours), strconv.FormatBool(row.Closed), row.ExtraInfo,
		})
	}
	return rows
}

func (r MonthReport) title() string {
	return fmt.Sprintf("Month Report - %d-%02d", r.Year, r.Month)
}

func (r MonthReport) headers() []string {
	return []string{"date", "week", "start", "end", "hours", "closed", "extra info"}
}

func (r MonthReport) tableRows() [][]string {
	var rows [][]string
	for _, row := range r.Rows {
		rows = append(rows, []string{
			row.Date, strconv.Itoa(row.Week), row.Start, row.End,
			formatHours(row.Hours), strconv.FormatBool(row.Closed), row.ExtraInfo,
		})
	}
	return rows
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
