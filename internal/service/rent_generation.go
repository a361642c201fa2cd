package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pms/internal/billing"
	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	"pms/internal/database/mongodb/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// GenerateRents 為帳期已開放、尚未產生租金的 rent 型租戶建立待繳紀錄。
// 儲存錯誤中止本 pass；找不到單位等資料問題只跳過該租戶。
func (s *SchedulerService) GenerateRents(ctx context.Context, today time.Time) (_ *PassReport, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanRentPass))
	defer func() { end(returnedError) }()

	report := &PassReport{}
	tenants, err := s.tenants.ListActiveByType(ctx, core.TenantTypeRent)
	if err != nil {
		report.Aborted = true
		return report, fmt.Errorf("list rent tenants: %w", err)
	}

	for _, tenant := range tenants {
		report.Scanned++
		created, err := s.generateRent(ctx, tenant, today)
		if err != nil {
			report.Failed++
			report.Aborted = true
			s.trace.ApplyTraceAttributes(span, core.TraceSchedulerMeta{Job: string(PassRent), Aborted: true})
			return report, fmt.Errorf("tenant %s: %w", tenant.ID.Hex(), err)
		}
		if created == nil {
			report.Skipped++
			continue
		}
		report.Created++
		if s.notifyRentDue(ctx, tenant, created) {
			report.Notified++
		}
	}

	s.logger.Info("rent pass finished",
		zap.String("today", today.Format(time.DateOnly)),
		zap.Int("scanned", report.Scanned),
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// rentDue 產生成功的租金與通知文案需要的資料
type rentDue struct {
	rent     *model.Rent
	premises *model.Premises
}

// generateRent 回傳 nil 代表跳過
func (s *SchedulerService) generateRent(ctx context.Context, tenant *model.Tenant, today time.Time) (*rentDue, error) {
	log := s.logger.With(zap.String("tenant_id", tenant.ID.Hex()))

	cycle, err := billing.CycleFor(today, tenant.LeaseDuration.DueDate)
	if err != nil {
		log.Warn("tenant has invalid due day", zap.Error(err))
		return nil, nil
	}
	if !cycle.Open(today) {
		return nil, nil
	}
	period := cycle.Key()
	if tenant.LastBilledPeriod >= period {
		return nil, nil
	}

	exists, err := s.rents.ExistsForPeriod(ctx, tenant.ID, cycle.PeriodStart, cycle.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("check existing rent: %w", err)
	}
	if exists {
		s.markBilled(ctx, tenant, period)
		return nil, nil
	}

	premises, err := s.premises.Resolve(ctx, tenant.UnitType, tenant.Unit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrUnknownUnitType) {
			log.Warn("tenant unit not resolvable, skip rent", zap.Error(err))
			return nil, nil
		}
		return nil, fmt.Errorf("resolve unit: %w", err)
	}

	rent, err := s.rents.Create(ctx, &model.Rent{
		UUID:          uuid.NewString(),
		TenantID:      tenant.ID,
		PaymentDueDay: cycle.DueDate,
		BillingPeriod: period,
		Status:        core.RentStatusPending,
		IsActive:      true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRentExists) {
			// 另一個執行個體已建立
			s.markBilled(ctx, tenant, period)
			return nil, nil
		}
		return nil, fmt.Errorf("create rent: %w", err)
	}

	s.metric.IncRentsGenerated()
	s.markBilled(ctx, tenant, period)
	log.Info("rent created",
		zap.String("period", period),
		zap.String("receipt_id", rent.ReceiptID),
		zap.Time("due", rent.PaymentDueDay),
	)
	return &rentDue{rent: rent, premises: premises}, nil
}

// markBilled 失敗時下次執行仍會被唯一索引或存在檢查擋下
func (s *SchedulerService) markBilled(ctx context.Context, tenant *model.Tenant, period string) {
	if err := s.tenants.MarkBilled(ctx, tenant.ID, period); err != nil {
		s.logger.Warn("mark tenant billed failed",
			zap.String("tenant_id", tenant.ID.Hex()),
			zap.String("period", period),
			zap.Error(err),
		)
	}
}

func (s *SchedulerService) notifyRentDue(ctx context.Context, tenant *model.Tenant, due *rentDue) bool {
	name := tenant.PersonalInformation.FullName
	dueDate := due.rent.PaymentDueDay
	amount := strconv.FormatFloat(tenant.Rent, 'f', -1, 64)

	notified := s.notify(ctx, core.Notice{
		Title: "Rent Due Reminder " + dueDate.Format("January 2006"),
		Description: fmt.Sprintf(
			"%s, your rent amount of ₹%s for %s (%s) is due on %s. Please make the payment on time to avoid penalties.",
			name, amount, due.premises.UnitName, due.premises.PropertyName, dueDate.Format("Mon Jan 02 2006"),
		),
		NotifyType: core.NotifyTypeRent,
		Action:     core.ActionCreate,
		TenantID:   tenant.ID.Hex(),
	})
	s.record(ctx, core.Activity{
		Title:        "Rent payment due is created",
		Details:      fmt.Sprintf("%s %s has rent due %s (₹%s)", name, due.premises.UnitName, dueDate.Format(time.DateOnly), amount),
		Action:       core.ActionCreate,
		ActivityType: core.ActivityTypeRent,
	})
	return notified
}
