// Package billing computes rent cycles from a tenant's due day.
package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// LeadDays 帳單在到期日前幾天產生
const LeadDays = 5

var ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

// Cycle is one billing period evaluated from a given day.
type Cycle struct {
	DueDay int
	// CreationDay is the day of the evaluated month from which the cycle is open.
	CreationDay int
	Year        int
	Month       time.Month
	// DueDate is the payment due day inside the target period.
	DueDate time.Time
	// [PeriodStart, PeriodEnd) covers the target calendar month.
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// CycleFor returns the cycle that a run on today is responsible for.
// When dueDay-LeadDays falls at or before the start of the month the cycle
// rolls back to the previous month, including the January to December year change.
func CycleFor(today time.Time, dueDay int) (Cycle, error) {
	if dueDay < 1 || dueDay > 31 {
		return Cycle{}, fmt.Errorf("%w: %d", ErrInvalidDueDay, dueDay)
	}
	loc := today.Location()
	monthStart := now.With(today).BeginningOfMonth()

	creationDay := dueDay - LeadDays
	year, month := today.Year(), today.Month()
	if creationDay <= 0 {
		previousMonthEnd := monthStart.AddDate(0, 0, -1)
		creationDay = previousMonthEnd.Day() + creationDay
		year, month = previousMonthEnd.Year(), previousMonthEnd.Month()
	}
	// 上月比本月長時（例如二月），產生日不可超過本月最後一天
	if last := DaysIn(today); creationDay > last {
		creationDay = last
	}

	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	dueDate := time.Date(year, month, min(dueDay, DaysIn(periodStart)), 0, 0, 0, 0, loc)

	return Cycle{
		DueDay:      dueDay,
		CreationDay: creationDay,
		Year:        year,
		Month:       month,
		DueDate:     dueDate,
		PeriodStart: periodStart,
		PeriodEnd:   periodStart.AddDate(0, 1, 0),
	}, nil
}

// Open reports whether the cycle may be generated on today. Any day on or after
// the creation day qualifies so a missed run is caught up later in the month.
func (c Cycle) Open(today time.Time) bool {
	return today.Day() >= c.CreationDay
}

// Key is the billing period identifier, e.g. "2025-09".
func (c Cycle) Key() string {
	return PeriodKey(c.Year, c.Month)
}

func PeriodKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return now.With(t).EndOfMonth().Day()
}

// MonthWindow returns [first day of month, first day of next month) in loc.
func MonthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
