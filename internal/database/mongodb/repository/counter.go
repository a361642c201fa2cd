package repository

import (
	"context"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CounterRepository struct {
	collection *mongo.Collection
}

func NewCounterRepository(mongoClient *client.MongoClient) *CounterRepository {
	repository := &CounterRepository{
		collection: mongoClient.Collection(core.MongoCollectionCounters),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *CounterRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateOne(contextValue, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("uniq_name").SetUnique(true),
	})
	return nil
}

// Next 原子遞增並回傳新值；不存在時 upsert 從 1 開始
func (repository *CounterRepository) Next(
	contextValue context.Context,
	name core.CounterName,
) (_ int64, returnedError error) {

	findOptions := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter model.Counter
	returnedError = repository.collection.FindOneAndUpdate(
		contextValue,
		bson.M{"name": string(name)},
		bson.M{"$inc": bson.M{"seq": 1}},
		findOptions,
	).Decode(&counter)
	if returnedError != nil {
		return 0, returnedError
	}
	return counter.Seq, nil
}
