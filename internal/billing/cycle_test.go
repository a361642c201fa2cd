package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestCycleForSameMonth(t *testing.T) {
	// 31-day month, due on the 30th
	today := day(2025, time.October, 25)
	cycle, err := CycleFor(today, 30)
	require.NoError(t, err)

	assert.Equal(t, 25, cycle.CreationDay)
	assert.True(t, cycle.Open(today))
	assert.Equal(t, day(2025, time.October, 30), cycle.DueDate)
	assert.Equal(t, "2025-10", cycle.Key())
	assert.Equal(t, day(2025, time.October, 1), cycle.PeriodStart)
	assert.Equal(t, day(2025, time.November, 1), cycle.PeriodEnd)
}

func TestCycleForRollsBackToPreviousMonth(t *testing.T) {
	// 30-day month, due on the 3rd: creation day = 31 + (3-5) = 29 of September
	today := day(2025, time.September, 29)
	cycle, err := CycleFor(today, 3)
	require.NoError(t, err)

	assert.Equal(t, 29, cycle.CreationDay)
	assert.True(t, cycle.Open(today))
	assert.Equal(t, time.August, cycle.Month)
	assert.Equal(t, day(2025, time.August, 3), cycle.DueDate)
	assert.Equal(t, "2025-08", cycle.Key())
}

func TestCycleForJanuaryRollsBackToDecember(t *testing.T) {
	today := day(2026, time.January, 27)
	cycle, err := CycleFor(today, 1)
	require.NoError(t, err)

	assert.Equal(t, 27, cycle.CreationDay)
	assert.Equal(t, 2025, cycle.Year)
	assert.Equal(t, time.December, cycle.Month)
	assert.Equal(t, day(2025, time.December, 1), cycle.DueDate)
}

func TestCycleForClampsCreationDayInShortMonth(t *testing.T) {
	// January has 31 days: 31 + (3-5) = 29 does not exist in February 2025
	cycle, err := CycleFor(day(2025, time.February, 10), 3)
	require.NoError(t, err)

	assert.Equal(t, 28, cycle.CreationDay)
	assert.False(t, cycle.Open(day(2025, time.February, 27)))
	assert.True(t, cycle.Open(day(2025, time.February, 28)))
}

func TestCycleForClampsDueDateToMonthEnd(t *testing.T) {
	cycle, err := CycleFor(day(2025, time.September, 26), 31)
	require.NoError(t, err)

	assert.Equal(t, day(2025, time.September, 30), cycle.DueDate)
	assert.Equal(t, time.September, cycle.DueDate.Month())
}

func TestCycleOpenCatchesUpAfterMissedDay(t *testing.T) {
	cycle, err := CycleFor(day(2025, time.October, 1), 30)
	require.NoError(t, err)

	assert.False(t, cycle.Open(day(2025, time.October, 24)))
	assert.True(t, cycle.Open(day(2025, time.October, 25)))
	assert.True(t, cycle.Open(day(2025, time.October, 28)))
}

func TestCycleForRejectsInvalidDueDay(t *testing.T) {
	for _, due := range []int{0, -1, 32} {
		_, err := CycleFor(day(2025, time.October, 1), due)
		assert.ErrorIs(t, err, ErrInvalidDueDay)
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2024, time.December, time.UTC)
	assert.Equal(t, day(2024, time.December, 1), start)
	assert.Equal(t, day(2025, time.January, 1), end)
}
