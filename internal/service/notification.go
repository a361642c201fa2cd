package service

import (
	"context"
	"errors"
	"slices"

	"pms/config"
	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	"pms/internal/dto"
	cErr "pms/internal/pkg/error"
	"pms/internal/telemetry"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	defaultPage      int64 = 1
	defaultPageLimit int64 = 20
)

type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) (*model.Notification, error)
	List(ctx context.Context, listOptions core.ListOptions) ([]*model.Notification, int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (int64, error)
	MarkAllRead(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// RecipientStore 找出預設收件人
type RecipientStore interface {
	ListIDsByRoles(ctx context.Context, roles ...core.Role) ([]primitive.ObjectID, error)
}

// Pusher 即時推播給線上使用者，回傳送達的連線數；不可阻塞
type Pusher interface {
	Push(userID string, message any) int
}

// Viewer 查詢通知的登入者
type Viewer struct {
	ID   string
	Role core.Role
}

type NotificationService struct {
	logger     *zap.Logger
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	config     *config.Configuration
	store      NotificationStore
	recipients RecipientStore
	pusher     Pusher
}

func NewNotificationService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	store NotificationStore,
	recipients RecipientStore,
	pusher Pusher,
) *NotificationService {
	return &NotificationService{
		logger:     logger.Named("notification"),
		trace:      trace,
		metric:     metric,
		config:     config,
		store:      store,
		recipients: recipients,
		pusher:     pusher,
	}
}

// Deliver 寫入一筆通知並推播給線上收件人；推播不等待確認
func (s *NotificationService) Deliver(ctx context.Context, notice core.Notice) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	users, err := s.resolveRecipients(ctx, notice.RecipientIDs)
	if err != nil {
		return err
	}

	action := notice.Action
	if action == "" {
		action = core.ActionCreate
	}
	notification := &model.Notification{
		UUID:        uuid.NewString(),
		Title:       notice.Title,
		Description: notice.Description,
		NotifyType:  notice.NotifyType,
		Action:      action,
		IsActive:    true,
		Users:       users,
	}
	if tenantID, parseErr := primitive.ObjectIDFromHex(notice.TenantID); parseErr == nil {
		notification.TenantID = &tenantID
	}

	created, err := s.store.Create(ctx, notification)
	if err != nil {
		return err
	}
	s.metric.IncNotificationsSent(notice.NotifyType)

	online := 0
	if s.pusher != nil {
		for _, user := range users {
			online += s.pusher.Push(user.Hex(), created)
		}
	}
	s.trace.ApplyTraceAttributes(span, core.TraceNotificationMeta{
		Op:         "deliver",
		NotifyType: string(notice.NotifyType),
		Recipients: len(users),
		Online:     online,
	})
	return nil
}

// resolveRecipients 明確指定 > 設定檔 > owner/admin 使用者
func (s *NotificationService) resolveRecipients(ctx context.Context, explicit []string) ([]primitive.ObjectID, error) {
	ids := explicit
	if len(ids) == 0 {
		ids = s.config.Notification.RecipientIDs
	}
	if len(ids) > 0 {
		users := make([]primitive.ObjectID, 0, len(ids))
		for _, id := range ids {
			objectID, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				s.logger.Warn("ignore invalid recipient id", zap.String("recipient_id", id))
				continue
			}
			users = append(users, objectID)
		}
		return users, nil
	}
	return s.recipients.ListIDsByRoles(ctx, core.RoleOwner, core.RoleAdmin)
}

func (s *NotificationService) privileged(viewer Viewer) bool {
	return viewer.Role.Privileged() || slices.Contains(s.config.Notification.PrivilegedIDs, viewer.ID)
}

// List 新到舊；非特權使用者看不到 action=delete 的通知
func (s *NotificationService) List(ctx context.Context, viewer Viewer, page, limit int64) (_ *dto.NotificationListResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	filter := bson.M{}
	if !s.privileged(viewer) {
		filter["action"] = bson.M{"$ne": core.ActionDelete}
	}

	items, total, err := s.store.List(ctx, core.ListOptions{Filter: filter, Page: page, Size: limit})
	if err != nil {
		return nil, cErr.DatabaseError("database ListNotifications error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceNotificationMeta{Op: "list", Page: page, Size: limit, Count: len(items)})
	return &dto.NotificationListResponse{Items: nonNil(items), Total: total, Page: page, Limit: limit}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	matched, err := s.store.MarkRead(ctx, id)
	return matchedOrNotFound(matched, err, "notification not found", "database MarkRead error")
}

func (s *NotificationService) MarkAllRead(ctx context.Context) (_ *dto.MarkAllReadResponse, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	modified, err := s.store.MarkAllRead(ctx)
	if err != nil {
		return nil, cErr.DatabaseError("database MarkAllRead error")
	}
	return &dto.MarkAllReadResponse{Modified: modified}, nil
}

// Delete 軟刪除
func (s *NotificationService) Delete(ctx context.Context, id primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	matched, err := s.store.SoftDelete(ctx, id)
	return matchedOrNotFound(matched, err, "notification not found", "database DeleteNotification error")
}

func matchedOrNotFound(matched int64, err error, notFound, dbError string) error {
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound(notFound)
		}
		return cErr.DatabaseError(dbError)
	}
	if matched == 0 {
		return cErr.NotFound(notFound)
	}
	return nil
}
