package service

import (
	"context"
	"errors"
	"testing"

	"pms/internal/core"
	fluentdModel "pms/internal/database/fluentd/model"
	"pms/internal/database/mongodb/model"
	cErr "pms/internal/pkg/error"
	"pms/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeActivityStore struct {
	created []*model.ActivityLog
	seq     int64
}

func (f *fakeActivityStore) Create(_ context.Context, activity *model.ActivityLog) (*model.ActivityLog, error) {
	f.seq++
	activity.Sequence = f.seq
	f.created = append(f.created, activity)
	return activity, nil
}

func (f *fakeActivityStore) GetByUUID(_ context.Context, activityUUID string) (*model.ActivityLog, error) {
	for _, activity := range f.created {
		if activity.UUID == activityUUID {
			return activity, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeActivityStore) List(_ context.Context, listOptions core.ListOptions) ([]*model.ActivityLog, int64, error) {
	return f.created, int64(len(f.created)), nil
}

type fakeMirror struct {
	logged []fluentdModel.ActivityLog
	err    error
}

func (f *fakeMirror) LogActivity(_ context.Context, activity fluentdModel.ActivityLog) error {
	f.logged = append(f.logged, activity)
	return f.err
}

func TestRecord_PersistsAndMirrors(t *testing.T) {
	store := &fakeActivityStore{}
	mirror := &fakeMirror{err: errors.New("fluentd offline")}
	service := NewActivityService(zap.NewNop(), &telemetry.Trace{}, store, mirror)
	actor := primitive.NewObjectID()

	err := service.Record(context.Background(), core.Activity{
		ActorID:      actor.Hex(),
		Title:        "Rent status updated",
		Action:       core.ActionUpdate,
		ActivityType: core.ActivityTypeRent,
	})
	require.NoError(t, err)
	require.NoError(t, service.Record(context.Background(), core.Activity{Title: "system"}))

	require.Len(t, store.created, 2)
	assert.Equal(t, actor, *store.created[0].UserID)
	assert.Nil(t, store.created[1].UserID)
	require.Len(t, mirror.logged, 2)
	assert.Equal(t, int64(1), mirror.logged[0].Sequence)
	assert.Equal(t, "update", mirror.logged[0].Action)
	assert.Equal(t, store.created[0].UUID, mirror.logged[0].UUID)
}

func TestActivityListAndGet(t *testing.T) {
	store := &fakeActivityStore{}
	service := NewActivityService(zap.NewNop(), &telemetry.Trace{}, store, nil)
	require.NoError(t, service.Record(context.Background(), core.Activity{Title: "one"}))

	list, err := service.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, int64(20), list.PerPage)

	found, err := service.GetByUUID(context.Background(), store.created[0].UUID)
	require.NoError(t, err)
	assert.Equal(t, "one", found.Title)

	_, err = service.GetByUUID(context.Background(), "missing")
	var appErr *cErr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, cErr.NOT_FOUND, appErr.ErrorCode())
}
