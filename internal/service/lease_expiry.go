package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	"pms/internal/database/mongodb/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type LeaseWindow int

const (
	LeaseNone LeaseWindow = iota
	LeaseEndsToday
	LeaseExpiringSoon
	LeaseExpired
)

// ClassifyLease 依結束日分到互斥的窗口：
// [today, tomorrow) 今日到期；(tomorrow, today+soonDays] 即將到期；早於 today 已到期。
// 剛好等於明日零時的結束日不屬於任何窗口。
func ClassifyLease(end, today time.Time, soonDays int) LeaseWindow {
	tomorrow := today.AddDate(0, 0, 1)
	soonEnd := today.AddDate(0, 0, soonDays)
	switch {
	case end.Before(today):
		return LeaseExpired
	case end.Before(tomorrow):
		return LeaseEndsToday
	case end.After(tomorrow) && !end.After(soonEnd):
		return LeaseExpiringSoon
	default:
		return LeaseNone
	}
}

// NotifyLeases 每個符合窗口的租約每次執行通知一次（不去重）
func (s *SchedulerService) NotifyLeases(ctx context.Context, today time.Time) (_ *PassReport, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanLeasePass))
	defer func() { end(returnedError) }()

	report := &PassReport{}
	tenants, err := s.tenants.ListActiveByType(ctx, core.TenantTypeLease)
	if err != nil {
		report.Aborted = true
		return report, fmt.Errorf("list lease tenants: %w", err)
	}

	soonDays := s.config.Scheduler.SoonWindowDays()
	for _, tenant := range tenants {
		report.Scanned++
		if tenant.LeaseDuration.EndDate == nil {
			report.Skipped++
			continue
		}
		endDate := tenant.LeaseDuration.EndDate.In(today.Location())
		window := ClassifyLease(endDate, today, soonDays)
		if window == LeaseNone {
			report.Skipped++
			continue
		}

		premises, err := s.premises.Resolve(ctx, tenant.UnitType, tenant.Unit)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrUnknownUnitType) {
				s.logger.Warn("lease unit not resolvable, skip notification",
					zap.String("tenant_id", tenant.ID.Hex()), zap.Error(err))
				report.Skipped++
				continue
			}
			report.Failed++
			report.Aborted = true
			s.trace.ApplyTraceAttributes(span, core.TraceSchedulerMeta{Job: string(PassLease), Aborted: true})
			return report, fmt.Errorf("tenant %s: resolve unit: %w", tenant.ID.Hex(), err)
		}

		if s.notify(ctx, leaseNotice(window, tenant, premises, endDate)) {
			report.Notified++
		} else {
			report.Failed++
		}
	}

	s.logger.Info("lease pass finished",
		zap.String("today", today.Format(time.DateOnly)),
		zap.Int("scanned", report.Scanned),
		zap.Int("notified", report.Notified),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

func leaseNotice(window LeaseWindow, tenant *model.Tenant, premises *model.Premises, endDate time.Time) core.Notice {
	subject := fmt.Sprintf("%s's lease for %s at %s", tenant.PersonalInformation.FullName, premises.UnitName, premises.PropertyName)
	date := endDate.Format("Mon Jan 02 2006")

	notice := core.Notice{
		NotifyType: core.NotifyTypeLease,
		Action:     core.ActionUpdate,
		TenantID:   tenant.ID.Hex(),
	}
	switch window {
	case LeaseEndsToday:
		notice.Title = "Lease Ends Today"
		notice.Description = fmt.Sprintf("%s ends today (%s).", subject, date)
	case LeaseExpiringSoon:
		notice.Title = "Lease Expiring Soon"
		notice.Description = fmt.Sprintf("%s will expire on %s.", subject, date)
	case LeaseExpired:
		notice.Title = "Lease Expired"
		notice.Description = fmt.Sprintf("%s expired on %s.", subject, date)
	}
	return notice
}
