package repository

import (
	"context"
	"regexp"
	"time"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TenantRepository struct {
	collection *mongo.Collection
}

func NewTenantRepository(mongoClient *client.MongoClient) *TenantRepository {
	repository := &TenantRepository{
		collection: mongoClient.Collection(core.MongoCollectionTenants),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *TenantRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.TenantIndexes)
	return nil
}

// ListActiveByType 排程掃描對象：啟用且未刪除
func (repository *TenantRepository) ListActiveByType(
	contextValue context.Context,
	tenantType core.TenantType,
) (_ []*model.Tenant, returnedError error) {

	filter := notDeleted(bson.M{"tenant_type": tenantType, "is_active": true})
	return repository.find(contextValue, filter, options.Find().SetSort(bson.M{"createdAt": 1}))
}

// MarkBilled 記錄最近一次已產生的帳期
func (repository *TenantRepository) MarkBilled(
	contextValue context.Context,
	tenantIdentifier primitive.ObjectID,
	period string,
) (returnedError error) {

	update := bson.M{"$set": bson.M{"last_billed_period": period}}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": tenantIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return updateError
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListLeases 租約型租戶（新到舊）
func (repository *TenantRepository) ListLeases(contextValue context.Context) (_ []*model.Tenant, returnedError error) {
	filter := notDeleted(bson.M{"tenant_type": core.TenantTypeLease})
	return repository.find(contextValue, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
}

// SearchByName 不分大小寫的字面比對
func (repository *TenantRepository) SearchByName(contextValue context.Context, query string, limit int64) (_ []*model.Tenant, returnedError error) {
	filter := notDeleted(bson.M{
		"personal_information.full_name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"},
	})
	return repository.find(contextValue, filter, options.Find().SetLimit(limit))
}

func (repository *TenantRepository) Count(contextValue context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(contextValue, notDeleted(filter))
}

// CountCreatedBetween [from, to)
func (repository *TenantRepository) CountCreatedBetween(contextValue context.Context, from, to time.Time) (int64, error) {
	return repository.Count(contextValue, bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}})
}

// CountLeaseEndingBetween [from, to]
func (repository *TenantRepository) CountLeaseEndingBetween(contextValue context.Context, from, to time.Time) (int64, error) {
	return repository.Count(contextValue, bson.M{"lease_duration.end_date": bson.M{"$gte": from, "$lte": to}})
}

// SumField 未刪除租戶的欄位加總（rent / deposit）
func (repository *TenantRepository) SumField(contextValue context.Context, field string) (_ float64, returnedError error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notDeleted(nil)}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$" + field}}}},
	}
	return aggregateTotal(contextValue, repository.collection, pipeline)
}

func (repository *TenantRepository) find(
	contextValue context.Context,
	filter bson.M,
	findOptions ...*options.FindOptions,
) (_ []*model.Tenant, returnedError error) {

	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.Tenant
	for cursor.Next(contextValue) {
		var tenant model.Tenant
		if decodeError := cursor.Decode(&tenant); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &tenant)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

// aggregateTotal 讀取 {_id: null, total} 單列結果；無資料回傳 0
func aggregateTotal(contextValue context.Context, collection *mongo.Collection, pipeline mongo.Pipeline) (float64, error) {
	cursor, err := collection.Aggregate(contextValue, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(contextValue)

	var row struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(contextValue) {
		if err := cursor.Decode(&row); err != nil {
			return 0, err
		}
	}
	return row.Total, cursor.Err()
}
