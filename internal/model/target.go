package model

// Built-in target hours, used when the configuration does not set one.
const (
	DefaultWeekTargetHours  = 40.0
	DefaultMonthTargetHours = 160.0
)

// TargetStatus classifies logged hours against a target.
type TargetStatus string

const (
	TargetReached     TargetStatus = "Reached"
	TargetNotReached  TargetStatus = "NotReached"
	TargetOverReached TargetStatus = "OverReached"
)

// TargetSource records where the target value came from.
type TargetSource string

const (
	TargetFromConfig  TargetSource = "config"
	TargetFromDefault TargetSource = "default"
)

// TargetReport compares logged hours against a target. Delta is signed:
// negative means under target.
type TargetReport struct {
	TargetHours    float64
	LoggedHours    float64
	Delta          float64
	RemainingHours float64
	Percent        int
	Status         TargetStatus
	Source         TargetSource
}

// newTargetReport builds a report for the given logged hours. A zero
// configured target means "not set" and falls back to the default.
func newTargetReport(logged, configured, fallback float64) TargetReport {
	target := fallback
	source := TargetFromDefault
	if configured != 0 {
		target = configured
		source = TargetFromConfig
	}

	percent := int(logged / target * 100)
	status := TargetNotReached
	switch {
	case percent == 100:
		status = TargetReached
	case percent > 100:
		status = TargetOverReached
	}

	return TargetReport{
		TargetHours:    target,
		LoggedHours:    logged,
		Delta:          logged - target,
		RemainingHours: target - logged,
		Percent:        percent,
		Status:         status,
		Source:         source,
	}
}

// WeeklyTarget compares a week's total hours against the weekly target.
func WeeklyTarget(w Week, configuredHours float64) TargetReport {
	return newTargetReport(w.TotalHours(), configuredHours, DefaultWeekTargetHours)
}

// MonthlyTarget compares the total hours of a month's days against the
// monthly target.
func MonthlyTarget(days []Day, configuredHours float64) TargetReport {
	var logged float64
	for _, d := range days {
		logged += d.Hours
	}
	return newTargetReport(logged, configuredHours, DefaultMonthTargetHours)
}
