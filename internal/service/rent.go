package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pms/config"
	"pms/internal/billing"
	"pms/internal/clock"
	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	"pms/internal/dto"
	cErr "pms/internal/pkg/error"
	"pms/internal/telemetry"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type RentLedgerStore interface {
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*model.RentWithTenant, error)
	UpdateStatusByUUID(ctx context.Context, rentUUID string, status core.RentStatus) (*model.Rent, error)
	NextReceiptID(ctx context.Context) (string, error)
}

// TenantTotals 租戶欄位加總
type TenantTotals interface {
	SumField(ctx context.Context, field string) (float64, error)
}

type RentService struct {
	logger     *zap.Logger
	trace      *telemetry.Trace
	config     *config.Configuration
	clock      clock.Clock
	rents      RentLedgerStore
	tenants    TenantTotals
	activities ActivityRecorder
}

func NewRentService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	clock clock.Clock,
	rents RentLedgerStore,
	tenants TenantTotals,
	activities ActivityRecorder,
) *RentService {
	return &RentService{
		logger:     logger.Named("rent"),
		trace:      trace,
		config:     config,
		clock:      clock,
		rents:      rents,
		tenants:    tenants,
		activities: activities,
	}
}

// ListRents 指定月份到期的租金；month/year 為 0 時取當月
func (s *RentService) ListRents(ctx context.Context, month, year int) (_ *dto.RentListResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	current := s.clock.Now().In(s.config.Scheduler.Location())
	if month == 0 {
		month = int(current.Month())
	}
	if year == 0 {
		year = current.Year()
	}
	s.trace.ApplyTraceAttributes(span, core.TraceRentMeta{Op: "list", Month: month, Year: year})

	from, to := billing.MonthWindow(year, time.Month(month), current.Location())
	rents, err := s.rents.ListDueBetween(ctx, from, to)
	if err != nil {
		return nil, cErr.DatabaseError("database ListRents error")
	}
	deposit, err := s.tenants.SumField(ctx, "deposit")
	if err != nil {
		return nil, cErr.DatabaseError("database SumDeposit error")
	}

	response := &dto.RentListResponse{Rents: nonNil(rents), Month: month, Year: year, TotalDeposit: deposit}
	for _, rent := range rents {
		// 租戶已刪除或不存在時不列入金額
		if rent.Tenant == nil || rent.Tenant.IsDeleted {
			continue
		}
		amount := rent.Tenant.Rent
		response.TotalDueAmount += amount
		switch rent.Status {
		case core.RentStatusPaid:
			response.TotalPaidThisMonth += amount
		case core.RentStatusPending:
			response.TotalPendingThisMonth += amount
		}
	}
	return response, nil
}

// UpdateStatus 變更租金狀態並留下稽核紀錄
func (s *RentService) UpdateStatus(
	ctx context.Context,
	actorID string,
	rentUUID string,
	status core.RentStatus,
) (_ *model.Rent, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if !status.Valid() {
		return nil, cErr.ValidateErr(fmt.Sprintf("invalid rent status %q", status))
	}
	rent, err := s.rents.UpdateStatusByUUID(ctx, rentUUID, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("rent not found")
		}
		return nil, cErr.DatabaseError("database UpdateRentStatus error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceRentMeta{
		Op:        "update_status",
		RentUUID:  rent.UUID,
		Status:    string(rent.Status),
		ReceiptID: rent.ReceiptID,
	})

	if err := s.activities.Record(ctx, core.Activity{
		ActorID:      actorID,
		Title:        "Rent status updated",
		Details:      fmt.Sprintf("Rent %s marked as %s", rent.ReceiptID, rent.Status),
		Action:       core.ActionUpdate,
		ActivityType: core.ActivityTypeRent,
	}); err != nil {
		s.logger.Warn("activity record failed", zap.String("rent_uuid", rent.UUID), zap.Error(err))
	}
	return rent, nil
}

func (s *RentService) NextReceiptID(ctx context.Context) (_ string, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	receiptID, err := s.rents.NextReceiptID(ctx)
	if err != nil {
		return "", cErr.DatabaseError("database NextReceiptID error")
	}
	return receiptID, nil
}
