package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pms/config"
	"pms/internal/clock"
	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	redisRepository "pms/internal/database/redis/repository"
	"pms/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TenantStore 排程讀寫租戶
type TenantStore interface {
	ListActiveByType(ctx context.Context, tenantType core.TenantType) ([]*model.Tenant, error)
	MarkBilled(ctx context.Context, tenantID primitive.ObjectID, period string) error
}

type RentStore interface {
	ExistsForPeriod(ctx context.Context, tenantID primitive.ObjectID, from, to time.Time) (bool, error)
	Create(ctx context.Context, rent *model.Rent) (*model.Rent, error)
}

type PremisesStore interface {
	Resolve(ctx context.Context, unitType core.UnitType, reference primitive.ObjectID) (*model.Premises, error)
}

// NotificationDispatcher 送出通知，不等待推播結果
type NotificationDispatcher interface {
	Deliver(ctx context.Context, notice core.Notice) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, activity core.Activity) error
}

// RunLock 跨實例互斥；已被持有時 Acquire 回傳 redis repository.ErrLockHeld
type RunLock interface {
	Acquire(ctx context.Context, job string, ttl time.Duration) (func(context.Context) error, error)
}

type Pass string

const (
	PassRent  Pass = "rent"
	PassLease Pass = "lease"
)

const schedulerJob = "daily"

var ErrSchedulerBusy = errors.New("scheduler run already in progress")

// PassReport 單一 pass 的結果計數
type PassReport struct {
	Scanned  int  `json:"scanned"`
	Created  int  `json:"created"`
	Notified int  `json:"notified"`
	Skipped  int  `json:"skipped"`
	Failed   int  `json:"failed"`
	Aborted  bool `json:"aborted"`
}

type RunReport struct {
	Today string      `json:"today"`
	Rent  *PassReport `json:"rent,omitempty"`
	Lease *PassReport `json:"lease,omitempty"`
}

type SchedulerService struct {
	logger     *zap.Logger
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	config     *config.Configuration
	clock      clock.Clock
	tenants    TenantStore
	rents      RentStore
	premises   PremisesStore
	dispatcher NotificationDispatcher
	activities ActivityRecorder
	lock       RunLock
}

func NewSchedulerService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	clock clock.Clock,
	tenants TenantStore,
	rents RentStore,
	premises PremisesStore,
	dispatcher NotificationDispatcher,
	activities ActivityRecorder,
	lock RunLock,
) *SchedulerService {
	return &SchedulerService{
		logger:     logger.Named("scheduler"),
		trace:      trace,
		metric:     metric,
		config:     config,
		clock:      clock,
		tenants:    tenants,
		rents:      rents,
		premises:   premises,
		dispatcher: dispatcher,
		activities: activities,
		lock:       lock,
	}
}

// Run 依序執行各 pass（預設 rent 再 lease）。
// 某個 pass 因儲存錯誤中止時，後續 pass 仍會執行；已完成的寫入不回滾。
func (s *SchedulerService) Run(ctx context.Context, passes ...Pass) (_ *RunReport, returnedError error) {
	if len(passes) == 0 {
		passes = []Pass{PassRent, PassLease}
	}
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanSchedulerRun))
	defer func() { end(returnedError) }()

	release, err := s.lock.Acquire(ctx, schedulerJob, s.config.Scheduler.LockTimeToLive())
	switch {
	case errors.Is(err, redisRepository.ErrLockHeld):
		s.logger.Warn("scheduler lock held by another run", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSchedulerBusy, err)
	case err != nil:
		// 鎖服務不可用時照常執行，重複帳單由 (tenantId, billingPeriod) 唯一索引擋下
		s.logger.Warn("scheduler lock unavailable, running unlocked", zap.Error(err))
		release = nil
	}
	if release != nil {
		defer func() {
			// 原 ctx 可能已逾時，釋放鎖改用獨立 context
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if releaseErr := release(releaseCtx); releaseErr != nil {
				s.logger.Warn("scheduler lock release failed", zap.Error(releaseErr))
			}
		}()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Scheduler.RunTimeout())
	defer cancel()

	today := s.today()
	report := &RunReport{Today: today.Format(time.DateOnly)}
	var errs []error
	for _, pass := range passes {
		started := time.Now()
		var (
			passReport *PassReport
			passErr    error
		)
		switch pass {
		case PassRent:
			passReport, passErr = s.GenerateRents(ctx, today)
			report.Rent = passReport
		case PassLease:
			passReport, passErr = s.NotifyLeases(ctx, today)
			report.Lease = passReport
		default:
			passErr = fmt.Errorf("unknown scheduler pass %q", pass)
		}

		status := "success"
		if passErr != nil {
			status = "failed"
			errs = append(errs, fmt.Errorf("%s pass: %w", pass, passErr))
			s.logger.Error("scheduler pass aborted", zap.String("pass", string(pass)), zap.Error(passErr))
		}
		s.metric.ObserveSchedulerPass(string(pass), status, time.Since(started))
		if passReport != nil {
			s.trace.ApplyTraceAttributes(span, core.TraceSchedulerMeta{
				Job:      string(pass),
				Today:    report.Today,
				Scanned:  passReport.Scanned,
				Created:  passReport.Created,
				Notified: passReport.Notified,
				Skipped:  passReport.Skipped,
				Aborted:  passReport.Aborted,
			})
		}
	}

	return report, errors.Join(errs...)
}

// today 設定時區下的當日零時
func (s *SchedulerService) today() time.Time {
	current := s.clock.Now().In(s.config.Scheduler.Location())
	return time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, current.Location())
}

// notify 通知失敗只記錄，不中止
func (s *SchedulerService) notify(ctx context.Context, notice core.Notice) bool {
	if err := s.dispatcher.Deliver(ctx, notice); err != nil {
		s.logger.Warn("notification dispatch failed",
			zap.String("tenant_id", notice.TenantID),
			zap.String("title", notice.Title),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (s *SchedulerService) record(ctx context.Context, activity core.Activity) {
	if err := s.activities.Record(ctx, activity); err != nil {
		s.logger.Warn("activity record failed", zap.String("title", activity.Title), zap.Error(err))
	}
}
