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

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(mongoClient *client.MongoClient) *NotificationRepository {
	repository := &NotificationRepository{
		collection: mongoClient.Collection(core.MongoCollectionNotifications),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.NotificationIndexes)
	return repository
}

func (repository *NotificationRepository) Create(
	contextValue context.Context,
	notification *model.Notification,
) (_ *model.Notification, returnedError error) {

	nowUTC := time.Now().UTC()
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if notification.Users == nil {
		notification.Users = []primitive.ObjectID{}
	}
	notification.CreatedAt = nowUTC
	notification.UpdatedAt = nowUTC

	if _, returnedError = repository.collection.InsertOne(contextValue, notification); returnedError != nil {
		return nil, returnedError
	}
	return notification, nil
}

// List 新到舊；page 由 1 起算
func (repository *NotificationRepository) List(
	contextValue context.Context,
	listOptions core.ListOptions,
) (_ []*model.Notification, total int64, returnedError error) {

	filter := notDeleted(listOptions.Filter)
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

	notifications := []*model.Notification{}
	if returnedError = cursor.All(contextValue, &notifications); returnedError != nil {
		return nil, 0, returnedError
	}
	return notifications, total, nil
}

func (repository *NotificationRepository) MarkRead(contextValue context.Context, identifier primitive.ObjectID) (_ int64, returnedError error) {
	return repository.updateOne(contextValue, identifier, bson.M{"is_read": true})
}

func (repository *NotificationRepository) MarkAllRead(contextValue context.Context) (_ int64, returnedError error) {
	result, updateError := repository.collection.UpdateMany(
		contextValue,
		notDeleted(bson.M{"is_read": false}),
		withUpdatedAt(bson.M{"$set": bson.M{"is_read": true}}),
	)
	if updateError != nil {
		return 0, updateError
	}
	return result.ModifiedCount, nil
}

// SoftDelete 只翻旗標
func (repository *NotificationRepository) SoftDelete(contextValue context.Context, identifier primitive.ObjectID) (_ int64, returnedError error) {
	return repository.updateOne(contextValue, identifier, bson.M{"is_deleted": true})
}

func (repository *NotificationRepository) updateOne(
	contextValue context.Context,
	identifier primitive.ObjectID,
	setFields bson.M,
) (_ int64, returnedError error) {

	update := bson.M{"$set": setFields}
	result, updateError := repository.collection.UpdateOne(contextValue, notDeleted(bson.M{"_id": identifier}), withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}
