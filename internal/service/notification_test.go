package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	cErr "pms/internal/pkg/error"
	"pms/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeNotificationStore struct {
	created     []*model.Notification
	lastOptions core.ListOptions
	matched     int64
	err         error
}

func (f *fakeNotificationStore) Create(_ context.Context, notification *model.Notification) (*model.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	notification.ID = primitive.NewObjectID()
	f.created = append(f.created, notification)
	return notification, nil
}

func (f *fakeNotificationStore) List(_ context.Context, listOptions core.ListOptions) ([]*model.Notification, int64, error) {
	f.lastOptions = listOptions
	return f.created, int64(len(f.created)), f.err
}

func (f *fakeNotificationStore) MarkRead(context.Context, primitive.ObjectID) (int64, error) {
	return f.matched, f.err
}

func (f *fakeNotificationStore) MarkAllRead(context.Context) (int64, error) {
	return f.matched, f.err
}

func (f *fakeNotificationStore) SoftDelete(context.Context, primitive.ObjectID) (int64, error) {
	return f.matched, f.err
}

type fakeRecipients struct {
	ids   []primitive.ObjectID
	roles []core.Role
}

func (f *fakeRecipients) ListIDsByRoles(_ context.Context, roles ...core.Role) ([]primitive.ObjectID, error) {
	f.roles = roles
	return f.ids, nil
}

type fakePusher struct {
	mu     sync.Mutex
	online map[string]bool
	pushed []string
}

func (f *fakePusher) Push(userID string, _ any) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online[userID] {
		return 0
	}
	f.pushed = append(f.pushed, userID)
	return 1
}

func newNotificationFixture() (*NotificationService, *fakeNotificationStore, *fakeRecipients, *fakePusher) {
	store := &fakeNotificationStore{}
	recipients := &fakeRecipients{ids: []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}}
	pusher := &fakePusher{online: map[string]bool{}}
	service := NewNotificationService(zap.NewNop(), &telemetry.Trace{}, nil, testConfig(), store, recipients, pusher)
	return service, store, recipients, pusher
}

func TestDeliver_DefaultsToOwnersAndAdmins(t *testing.T) {
	service, store, recipients, pusher := newNotificationFixture()
	pusher.online[recipients.ids[1].Hex()] = true
	tenantID := primitive.NewObjectID()

	err := service.Deliver(context.Background(), core.Notice{
		Title:      "Lease Expired",
		NotifyType: core.NotifyTypeLease,
		TenantID:   tenantID.Hex(),
	})

	require.NoError(t, err)
	assert.Equal(t, []core.Role{core.RoleOwner, core.RoleAdmin}, recipients.roles)
	require.Len(t, store.created, 1)
	created := store.created[0]
	assert.Equal(t, recipients.ids, created.Users)
	assert.Equal(t, core.ActionCreate, created.Action)
	assert.True(t, created.IsActive)
	require.NotNil(t, created.TenantID)
	assert.Equal(t, tenantID, *created.TenantID)
	assert.Equal(t, []string{recipients.ids[1].Hex()}, pusher.pushed)
}

func TestDeliver_ExplicitRecipientsSkipInvalidIDs(t *testing.T) {
	service, store, recipients, _ := newNotificationFixture()
	valid := primitive.NewObjectID()

	err := service.Deliver(context.Background(), core.Notice{RecipientIDs: []string{valid.Hex(), "not-an-id"}})

	require.NoError(t, err)
	assert.Nil(t, recipients.roles)
	assert.Equal(t, []primitive.ObjectID{valid}, store.created[0].Users)
	assert.Nil(t, store.created[0].TenantID)
}

func TestDeliver_StoreErrorIsReturned(t *testing.T) {
	service, store, _, pusher := newNotificationFixture()
	store.err = errors.New("insert failed")

	err := service.Deliver(context.Background(), core.Notice{Title: "x"})

	assert.Error(t, err)
	assert.Empty(t, pusher.pushed)
}

func TestList_HidesDeleteActionsFromNonPrivilegedViewers(t *testing.T) {
	service, store, _, _ := newNotificationFixture()

	_, err := service.List(context.Background(), Viewer{ID: "u1", Role: core.RoleManager}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"action": bson.M{"$ne": core.ActionDelete}}, store.lastOptions.Filter)
	assert.Equal(t, int64(1), store.lastOptions.Page)
	assert.Equal(t, int64(20), store.lastOptions.Size)

	_, err = service.List(context.Background(), Viewer{ID: "u2", Role: core.RoleAdmin}, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, store.lastOptions.Filter)
}

func TestList_ConfiguredPrivilegedViewer(t *testing.T) {
	service, store, _, _ := newNotificationFixture()
	service.config.Notification.PrivilegedIDs = []string{"finance-lead"}

	response, err := service.List(context.Background(), Viewer{ID: "finance-lead", Role: core.RoleFinance}, 1, 5)

	require.NoError(t, err)
	assert.Empty(t, store.lastOptions.Filter)
	assert.NotNil(t, response.Items)
	assert.Equal(t, int64(5), response.Limit)
}

func TestMarkReadAndDelete_NotFound(t *testing.T) {
	service, store, _, _ := newNotificationFixture()
	id := primitive.NewObjectID()

	var appErr *cErr.Error
	require.ErrorAs(t, service.MarkRead(context.Background(), id), &appErr)
	assert.Equal(t, cErr.NOT_FOUND, appErr.ErrorCode())
	require.ErrorAs(t, service.Delete(context.Background(), id), &appErr)
	assert.Equal(t, cErr.NOT_FOUND, appErr.ErrorCode())

	store.matched = 1
	assert.NoError(t, service.MarkRead(context.Background(), id))
	assert.NoError(t, service.Delete(context.Background(), id))

	response, err := service.MarkAllRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), response.Modified)
}
