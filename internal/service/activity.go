package service

import (
	"context"
	"errors"

	"pms/internal/core"
	fluentdModel "pms/internal/database/fluentd/model"
	"pms/internal/database/mongodb/model"
	"pms/internal/dto"
	cErr "pms/internal/pkg/error"
	"pms/internal/telemetry"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ActivityStore interface {
	Create(ctx context.Context, activity *model.ActivityLog) (*model.ActivityLog, error)
	GetByUUID(ctx context.Context, activityUUID string) (*model.ActivityLog, error)
	List(ctx context.Context, listOptions core.ListOptions) ([]*model.ActivityLog, int64, error)
}

// ActivityMirror 稽核紀錄的外部鏡像（fluentd）
type ActivityMirror interface {
	LogActivity(ctx context.Context, activity fluentdModel.ActivityLog) error
}

type ActivityService struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	store  ActivityStore
	mirror ActivityMirror
}

func NewActivityService(logger *zap.Logger, trace *telemetry.Trace, store ActivityStore, mirror ActivityMirror) *ActivityService {
	return &ActivityService{logger: logger.Named("activity"), trace: trace, store: store, mirror: mirror}
}

// Record 寫入 Mongo 後鏡像到 fluentd；鏡像失敗只記錄
func (s *ActivityService) Record(ctx context.Context, activity core.Activity) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	entry := &model.ActivityLog{
		UUID:         uuid.NewString(),
		Title:        activity.Title,
		Details:      activity.Details,
		Action:       activity.Action,
		ActivityType: activity.ActivityType,
	}
	if actorID, err := primitive.ObjectIDFromHex(activity.ActorID); err == nil {
		entry.UserID = &actorID
	}

	created, err := s.store.Create(ctx, entry)
	if err != nil {
		return err
	}
	s.trace.ApplyTraceAttributes(span, core.TraceActivityMeta{
		Op:           "record",
		ActivityType: string(activity.ActivityType),
		Sequence:     created.Sequence,
	})

	if s.mirror != nil {
		mirrorErr := s.mirror.LogActivity(ctx, fluentdModel.ActivityLog{
			UUID:         created.UUID,
			Sequence:     created.Sequence,
			ActorID:      activity.ActorID,
			Title:        created.Title,
			Details:      created.Details,
			Action:       string(created.Action),
			ActivityType: string(created.ActivityType),
		})
		if mirrorErr != nil {
			s.logger.Warn("activity mirror failed", zap.String("uuid", created.UUID), zap.Error(mirrorErr))
		}
	}
	return nil
}

func (s *ActivityService) List(ctx context.Context, page, perPage int64) (_ *dto.ActivityListResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if page <= 0 {
		page = defaultPage
	}
	if perPage <= 0 {
		perPage = defaultPageLimit
	}
	items, total, err := s.store.List(ctx, core.ListOptions{Page: page, Size: perPage})
	if err != nil {
		return nil, cErr.DatabaseError("database ListActivities error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceActivityMeta{Op: "list", Page: page, Size: perPage})
	return &dto.ActivityListResponse{Items: nonNil(items), Total: total, Page: page, PerPage: perPage}, nil
}

func (s *ActivityService) GetByUUID(ctx context.Context, activityUUID string) (_ *model.ActivityLog, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	activity, err := s.store.GetByUUID(ctx, activityUUID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("activity not found")
		}
		return nil, cErr.DatabaseError("database GetActivity error")
	}
	return activity, nil
}
