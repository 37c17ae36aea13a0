package quota

import "time"

// periodLayout formats a time into a calendar-month bucket key.
const periodLayout = "2006-01"

// PeriodAt returns the month bucket key for a point in time, in UTC.
func PeriodAt(t time.Time) string {
	return t.UTC().Format(periodLayout)
}

// CurrentPeriod returns the month bucket key for now.
func CurrentPeriod() string {
	return PeriodAt(time.Now())
}
