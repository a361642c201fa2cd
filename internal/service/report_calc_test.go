package service

import (
	"testing"
	"time"

	"pms/internal/database/mongodb/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRate(t *testing.T) {
	assert.Equal(t, "50.00%", CollectionRate(10000+15000, 50000))
	assert.Equal(t, "0%", CollectionRate(1200, 0))
	assert.Equal(t, "33.33%", CollectionRate(1, 3))
	assert.Equal(t, "0.00%", CollectionRate(0, 50000))
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.0, OccupancyRate(0, 0))
	assert.Equal(t, 66.67, OccupancyRate(2, 3))
	assert.Equal(t, 100.0, OccupancyRate(4, 4))
	assert.Equal(t, OccupancyRate(7, 9), OccupancyRate(7, 9))
}

func TestFillMonthlyTrend(t *testing.T) {
	trend := FillMonthlyTrend([]model.OccupancyBucket{
		{Month: 3, TotalUnits: 4, OccupiedUnits: 3},
		{Month: 11, TotalUnits: 2, OccupiedUnits: 0},
	})

	require.Len(t, trend, 12)
	for i, point := range trend {
		assert.Equal(t, i+1, point.Month)
	}
	assert.Equal(t, "Mar", trend[2].Label)
	assert.Equal(t, 75.0, trend[2].OccupancyRate)
	assert.Equal(t, int64(2), trend[10].TotalUnits)
	assert.Zero(t, trend[10].OccupancyRate)
	assert.Zero(t, trend[0].TotalUnits)
}

func TestFillMonthlyTrend_Empty(t *testing.T) {
	trend := FillMonthlyTrend(nil)
	require.Len(t, trend, 12)
	assert.Equal(t, "Dec", trend[11].Label)
}

func TestBucketByMonth(t *testing.T) {
	date := func(year int, month time.Month) time.Time {
		return time.Date(year, month, 10, 12, 0, 0, 0, time.UTC)
	}
	revenue := []model.DatedAmount{
		{CreatedAt: date(2024, time.January), Amount: 10000},
		{CreatedAt: date(2025, time.January), Amount: 15000},
		{CreatedAt: date(2025, time.June), Amount: 12000},
	}
	expense := []model.DatedAmount{
		{CreatedAt: date(2025, time.January), Amount: 2500},
		{CreatedAt: date(2025, time.December), Amount: 800},
	}

	report, err := BucketByMonth(revenue, expense, time.UTC)
	require.NoError(t, err)
	require.Len(t, report.Months, 12)

	assert.Equal(t, "Jan", report.Months[0].Month)
	assert.Equal(t, 25000.0, report.Months[0].Revenue)
	assert.Equal(t, 2500.0, report.Months[0].Expense)
	assert.Equal(t, 12000.0, report.Months[5].Revenue)
	assert.Equal(t, 800.0, report.Months[11].Expense)
	assert.Equal(t, 37000.0, report.Yearly.Revenue)
	assert.Equal(t, 3300.0, report.Yearly.Expense)
}

func TestBucketByMonth_UsesLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	lateJanuaryUTC := time.Date(2025, time.January, 31, 20, 0, 0, 0, time.UTC)

	report, err := BucketByMonth([]model.DatedAmount{{CreatedAt: lateJanuaryUTC, Amount: 100}}, nil, kolkata)
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.Months[1].Revenue)
}

func TestBucketByMonth_InvalidInput(t *testing.T) {
	_, err := BucketByMonth(nil, []model.DatedAmount{{Amount: 10}}, time.UTC)
	assert.ErrorIs(t, err, ErrMonthOutOfRange)
}
