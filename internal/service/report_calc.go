package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"pms/internal/database/mongodb/model"
	"pms/internal/dto"
)

// ErrMonthOutOfRange 報表輸入的月份索引不在 0..11（含缺少 createdAt 的資料）
var ErrMonthOutOfRange = errors.New("month index out of range")

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// CollectionRate 已收 / 應收，兩位小數百分比字串；應收為 0 時回傳 "0%"
func CollectionRate(collected, expected float64) string {
	if expected == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", collected/expected*100)
}

// OccupancyRate 四捨五入到兩位小數；無單位時為 0
func OccupancyRate(occupied, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*100*100) / 100
}

// FillMonthlyTrend 補滿 1..12 月，無資料的月份為 0
func FillMonthlyTrend(buckets []model.OccupancyBucket) []dto.OccupancyTrendPoint {
	trend := make([]dto.OccupancyTrendPoint, 12)
	for i := range trend {
		trend[i] = dto.OccupancyTrendPoint{Month: i + 1, Label: monthLabels[i]}
	}
	for _, bucket := range buckets {
		if bucket.Month < 1 || bucket.Month > 12 {
			continue
		}
		point := &trend[bucket.Month-1]
		point.TotalUnits += bucket.TotalUnits
		point.OccupiedUnits += bucket.OccupiedUnits
	}
	for i := range trend {
		trend[i].OccupancyRate = OccupancyRate(trend[i].OccupiedUnits, trend[i].TotalUnits)
	}
	return trend
}

// monthIndex createdAt 的 0..11 月份索引；缺值回傳 -1
func monthIndex(createdAt time.Time, loc *time.Location) int {
	if createdAt.IsZero() {
		return -1
	}
	if loc != nil {
		createdAt = createdAt.In(loc)
	}
	return int(createdAt.Month()) - 1
}

// BucketByMonth 不分年份依月份累計收入與支出，並計算全年合計
func BucketByMonth(revenue, expense []model.DatedAmount, loc *time.Location) (dto.MonthlyReport, error) {
	var buckets [12]dto.MonthBucket
	for i := range buckets {
		buckets[i].Month = monthLabels[i]
	}
	yearly := dto.MonthBucket{Month: "Yearly"}

	accumulate := func(entries []model.DatedAmount, add func(*dto.MonthBucket, float64)) error {
		for _, entry := range entries {
			index := monthIndex(entry.CreatedAt, loc)
			if index < 0 || index >= len(buckets) {
				return fmt.Errorf("%w: %d", ErrMonthOutOfRange, index)
			}
			add(&buckets[index], entry.Amount)
			add(&yearly, entry.Amount)
		}
		return nil
	}
	if err := accumulate(revenue, func(b *dto.MonthBucket, v float64) { b.Revenue += v }); err != nil {
		return dto.MonthlyReport{}, err
	}
	if err := accumulate(expense, func(b *dto.MonthBucket, v float64) { b.Expense += v }); err != nil {
		return dto.MonthlyReport{}, err
	}
	return dto.MonthlyReport{Months: buckets[:], Yearly: yearly}, nil
}
