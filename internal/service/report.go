package service

import (
	"context"
	"errors"
	"time"

	"pms/config"
	"pms/internal/clock"
	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	"pms/internal/database/mongodb/repository"
	"pms/internal/dto"
	cErr "pms/internal/pkg/error"
	"pms/internal/telemetry"

	"github.com/jinzhu/now"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SearchLimit 全域搜尋每個集合最多回傳筆數
const SearchLimit = 5

// ReportStore 報表所需的唯讀聚合
type ReportStore interface {
	CountPropertiesByType(ctx context.Context) ([]model.TypeCount, error)
	CountLands(ctx context.Context) (int64, error)
	CountTenants(ctx context.Context) (int64, error)
	CountTenantsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountLeasesEndingBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumTenantRent(ctx context.Context) (float64, error)
	SumRentByStatus(ctx context.Context, statuses []core.RentStatus, window repository.DueWindow) (float64, error)
	PaidRevenueByMonth(ctx context.Context, timezone string) ([]model.MonthTotal, error)
	PaidRevenueByYear(ctx context.Context, timezone string) ([]model.YearTotal, error)
	CountRentsByStatus(ctx context.Context, window repository.DueWindow) ([]model.StatusCount, error)
	RentAmounts(ctx context.Context) ([]model.DatedAmount, error)
	UnitOccupancy(ctx context.Context) (model.UnitOccupancy, error)
	UnitOccupancyByMonth(ctx context.Context, from, to time.Time, timezone string) ([]model.OccupancyBucket, error)
	MaintenanceExpense(ctx context.Context, timezone string) (model.ExpenseFacets, error)
	MaintenanceAmounts(ctx context.Context) ([]model.DatedAmount, error)
	LeaseStats(ctx context.Context, today, monthEnd time.Time) (model.LeaseStats, error)
	ListLeases(ctx context.Context) ([]*model.Tenant, error)
	Search(ctx context.Context, query string, limit int64) (*model.SearchResults, error)
}

type ReportService struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	config *config.Configuration
	clock  clock.Clock
	store  ReportStore
}

func NewReportService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	clock clock.Clock,
	store ReportStore,
) *ReportService {
	return &ReportService{logger: logger, trace: trace, config: config, clock: clock, store: store}
}

func (s *ReportService) location() *time.Location {
	return s.config.Scheduler.Location()
}

// timezone 傳給 $year/$month；未設定時使用 UTC
func (s *ReportService) timezone() string {
	return s.config.Scheduler.Timezone
}

// Dashboard 各聚合彼此獨立，並行查詢；任一失敗整個請求失敗
func (s *ReportService) Dashboard(ctx context.Context) (_ *dto.DashboardReport, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()
	s.trace.ApplyTraceAttributes(span, core.TraceReportMeta{Report: "dashboard"})

	current := now.With(s.clock.Now().In(s.location()))
	today := current.BeginningOfDay()
	monthStart := current.BeginningOfMonth()
	monthEnd := monthStart.AddDate(0, 1, 0)
	yearStart := current.BeginningOfYear()
	yearEnd := yearStart.AddDate(1, 0, 0)
	monthWindow := repository.DueWindow{From: &monthStart, To: &monthEnd}
	yearWindow := repository.DueWindow{From: &yearStart, To: &yearEnd}
	paid := []core.RentStatus{core.RentStatusPaid}
	tz := s.timezone()

	report := &dto.DashboardReport{}
	var (
		byType          []model.TypeCount
		statusCounts    []model.StatusCount
		rentAmounts     []model.DatedAmount
		maintenanceCost []model.DatedAmount
	)

	group, groupCtx := errgroup.WithContext(ctx)
	run := func(step string, fn func(context.Context) error) {
		group.Go(func() error {
			if err := fn(groupCtx); err != nil {
				s.logger.Error("dashboard aggregation failed", zap.String("step", step), zap.Error(err))
				return err
			}
			return nil
		})
	}

	run("properties_by_type", func(ctx context.Context) (err error) {
		byType, err = s.store.CountPropertiesByType(ctx)
		return err
	})
	run("lands", func(ctx context.Context) (err error) {
		report.Properties.Lands, err = s.store.CountLands(ctx)
		return err
	})
	run("tenants", func(ctx context.Context) (err error) {
		report.Tenants.Total, err = s.store.CountTenants(ctx)
		return err
	})
	run("new_tenants", func(ctx context.Context) (err error) {
		report.Tenants.NewThisMonth, err = s.store.CountTenantsCreatedBetween(ctx, monthStart, monthEnd)
		return err
	})
	run("leases_expiring", func(ctx context.Context) (err error) {
		soonEnd := today.AddDate(0, 0, s.config.Scheduler.SoonWindowDays())
		report.Tenants.LeasesExpiringSoon, err = s.store.CountLeasesEndingBetween(ctx, today, soonEnd)
		return err
	})
	run("monthly_revenue", func(ctx context.Context) (err error) {
		report.Revenue.TotalMonthlyRevenue, err = s.store.SumRentByStatus(ctx, paid, monthWindow)
		return err
	})
	run("monthly_pending", func(ctx context.Context) (err error) {
		unpaid := []core.RentStatus{core.RentStatusPending, core.RentStatusOverdue}
		report.Revenue.TotalMonthlyPending, err = s.store.SumRentByStatus(ctx, unpaid, monthWindow)
		return err
	})
	run("expected", func(ctx context.Context) (err error) {
		report.Revenue.TotalExpected, err = s.store.SumTenantRent(ctx)
		return err
	})
	run("yearly_revenue", func(ctx context.Context) (err error) {
		report.Revenue.YearlyRevenue, err = s.store.SumRentByStatus(ctx, paid, yearWindow)
		return err
	})
	run("overall_revenue", func(ctx context.Context) (err error) {
		report.Revenue.OverallRevenue, err = s.store.SumRentByStatus(ctx, paid, repository.DueWindow{})
		return err
	})
	run("revenue_by_month", func(ctx context.Context) (err error) {
		report.Revenue.Monthly, err = s.store.PaidRevenueByMonth(ctx, tz)
		return err
	})
	run("revenue_by_year", func(ctx context.Context) (err error) {
		report.Revenue.Yearly, err = s.store.PaidRevenueByYear(ctx, tz)
		return err
	})
	run("occupancy", func(ctx context.Context) (err error) {
		occupancy, err := s.occupancy(ctx, current.Time)
		if err == nil {
			report.Occupancy = *occupancy
		}
		return err
	})
	run("payment_status", func(ctx context.Context) (err error) {
		statusCounts, err = s.store.CountRentsByStatus(ctx, monthWindow)
		return err
	})
	run("maintenance_expense", func(ctx context.Context) (err error) {
		report.Maintenance, err = s.store.MaintenanceExpense(ctx, tz)
		return err
	})
	run("rent_amounts", func(ctx context.Context) (err error) {
		rentAmounts, err = s.store.RentAmounts(ctx)
		return err
	})
	run("maintenance_amounts", func(ctx context.Context) (err error) {
		maintenanceCost, err = s.store.MaintenanceAmounts(ctx)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, cErr.DatabaseError("database Dashboard error")
	}

	report.Properties.ByType = nonNil(byType)
	for _, row := range byType {
		report.Properties.Total += row.Count
	}
	report.Revenue.CollectionRate = CollectionRate(report.Revenue.TotalMonthlyRevenue, report.Revenue.TotalExpected)
	report.Revenue.Monthly = nonNil(report.Revenue.Monthly)
	report.Revenue.Yearly = nonNil(report.Revenue.Yearly)
	report.Maintenance.Monthly = nonNil(report.Maintenance.Monthly)
	report.Maintenance.Yearly = nonNil(report.Maintenance.Yearly)
	report.PaymentStatus = paymentStatusBreakdown(statusCounts)

	monthly, err := BucketByMonth(rentAmounts, maintenanceCost, s.location())
	if err != nil {
		// 只有月報表區塊失效
		s.logger.Error("month bucket report rejected input", zap.Error(err))
		appErr := cErr.InternalServer(err.Error())
		if errors.Is(err, ErrMonthOutOfRange) {
			appErr = cErr.InvalidReportInput(err.Error())
		}
		report.Report = dto.MonthlyReport{Months: []dto.MonthBucket{}}
		report.ReportError = &dto.SectionError{Code: appErr.ErrorCode(), Message: appErr.ErrorDesc()}
		return report, nil
	}
	report.Report = monthly
	return report, nil
}

// Occupancy 全部單位的入住率與本年度月趨勢
func (s *ReportService) Occupancy(ctx context.Context) (_ *dto.OccupancyReport, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()
	s.trace.ApplyTraceAttributes(span, core.TraceReportMeta{Report: "occupancy"})

	occupancy, err := s.occupancy(ctx, s.clock.Now().In(s.location()))
	if err != nil {
		return nil, cErr.DatabaseError("database Occupancy error")
	}
	return occupancy, nil
}

func (s *ReportService) occupancy(ctx context.Context, current time.Time) (*dto.OccupancyReport, error) {
	overall, err := s.store.UnitOccupancy(ctx)
	if err != nil {
		return nil, err
	}
	yearStart := now.With(current).BeginningOfYear()
	buckets, err := s.store.UnitOccupancyByMonth(ctx, yearStart, yearStart.AddDate(1, 0, 0), s.timezone())
	if err != nil {
		return nil, err
	}
	return &dto.OccupancyReport{
		Year: current.Year(),
		Overall: dto.OccupancyOverview{
			TotalUnits:    overall.TotalUnits,
			OccupiedUnits: overall.OccupiedUnits,
			VacantUnits:   overall.TotalUnits - overall.OccupiedUnits,
			OccupancyRate: OccupancyRate(overall.OccupiedUnits, overall.TotalUnits),
		},
		Monthly: FillMonthlyTrend(buckets),
	}, nil
}

// LeaseStats 租約統計與租約清單
func (s *ReportService) LeaseStats(ctx context.Context) (_ *dto.LeaseStatsResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	current := now.With(s.clock.Now().In(s.location()))
	stats, err := s.store.LeaseStats(ctx, current.BeginningOfDay(), current.EndOfMonth())
	if err != nil {
		return nil, cErr.DatabaseError("database LeaseStats error")
	}
	leases, err := s.store.ListLeases(ctx)
	if err != nil {
		return nil, cErr.DatabaseError("database ListLeases error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceReportMeta{Report: "lease_stats", Rows: len(leases)})
	return &dto.LeaseStatsResponse{LeaseStats: stats, Leases: nonNil(leases)}, nil
}

// GlobalSearch 土地、物業、租戶名稱的字面比對（不分大小寫）
func (s *ReportService) GlobalSearch(ctx context.Context, query string) (_ *model.SearchResults, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()
	s.trace.ApplyTraceAttributes(span, core.TraceReportMeta{Report: "search", Query: query})

	results, err := s.store.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, cErr.DatabaseError("database GlobalSearch error")
	}
	results.Lands = nonNil(results.Lands)
	results.Properties = nonNil(results.Properties)
	results.Tenants = nonNil(results.Tenants)
	return results, nil
}

// paymentStatusBreakdown 三種狀態都會出現
func paymentStatusBreakdown(counts []model.StatusCount) map[string]int64 {
	breakdown := make(map[string]int64, len(core.RentStatuses))
	for _, status := range core.RentStatuses {
		breakdown[string(status)] = 0
	}
	for _, row := range counts {
		breakdown[row.Status] += row.Count
	}
	return breakdown
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
