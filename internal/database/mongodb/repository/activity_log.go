package repository

import (
	"context"
	"time"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityLogRepository struct {
	collection *mongo.Collection
	counters   *CounterRepository
}

func NewActivityLogRepository(mongoClient *client.MongoClient, counters *CounterRepository) *ActivityLogRepository {
	repository := &ActivityLogRepository{
		collection: mongoClient.Collection(core.MongoCollectionActivityLogs),
		counters:   counters,
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.ActivityLogIndexes)
	return repository
}

// Create 以 activityId 計數器配發遞增序號後寫入
func (repository *ActivityLogRepository) Create(
	contextValue context.Context,
	activity *model.ActivityLog,
) (_ *model.ActivityLog, returnedError error) {

	seq, counterError := repository.counters.Next(contextValue, core.CounterActivityID)
	if counterError != nil {
		return nil, counterError
	}
	nowUTC := time.Now().UTC()
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	activity.Sequence = seq
	activity.CreatedAt = nowUTC
	activity.UpdatedAt = nowUTC

	if _, returnedError = repository.collection.InsertOne(contextValue, activity); returnedError != nil {
		return nil, returnedError
	}
	return activity, nil
}

func (repository *ActivityLogRepository) GetByUUID(contextValue context.Context, activityUUID string) (_ *model.ActivityLog, returnedError error) {
	var activity model.ActivityLog
	filter := bson.M{"uuid": activityUUID, "is_delete": bson.M{"$ne": true}}
	if returnedError = repository.collection.FindOne(contextValue, filter).Decode(&activity); returnedError != nil {
		return nil, returnedError
	}
	return &activity, nil
}

// List 新到舊；page 由 1 起算
func (repository *ActivityLogRepository) List(
	contextValue context.Context,
	listOptions core.ListOptions,
) (_ []*model.ActivityLog, total int64, returnedError error) {

	filter := bson.M{"is_delete": bson.M{"$ne": true}}
	total, returnedError = repository.collection.CountDocuments(contextValue, filter)
	if returnedError != nil {
		return nil, 0, returnedError
	}

	findOptions := options.Find().
		SetSkip(listOptions.Skip()).
		SetLimit(listOptions.Size).
		SetSort(bson.M{"createdAt": -1})
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions)
	if findError != nil {
		return nil, 0, findError
	}
	defer cursor.Close(contextValue)

	activities := []*model.ActivityLog{}
	if returnedError = cursor.All(contextValue, &activities); returnedError != nil {
		return nil, 0, returnedError
	}
	return activities, total, nil
}
