package repository

import (
	"context"
	"fmt"
	"time"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReceiptFormat 收據編號格式
const ReceiptFormat = "RCPT-%04d"

type RentRepository struct {
	collection *mongo.Collection
	counters   *CounterRepository
}

func NewRentRepository(mongoClient *client.MongoClient, counters *CounterRepository) *RentRepository {
	repository := &RentRepository{
		collection: mongoClient.Collection(core.MongoCollectionRents),
		counters:   counters,
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *RentRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.RentIndexes)
	return nil
}

// NextReceiptID 由 counters 原子遞增產生，不重複、不回收
func (repository *RentRepository) NextReceiptID(contextValue context.Context) (string, error) {
	seq, err := repository.counters.Next(contextValue, core.CounterReceiptID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(ReceiptFormat, seq), nil
}

// Create 插入租金紀錄；未指定收據編號時自動配發。
// (tenantId, billingPeriod) 重複時回傳 ErrRentExists。
// 先確認帳期未開立才取號，只有並行插入撞到唯一索引時才會跳號。
func (repository *RentRepository) Create(
	contextValue context.Context,
	rent *model.Rent,
) (_ *model.Rent, returnedError error) {

	if rent.BillingPeriod != "" {
		billed, billedError := repository.billedForPeriod(contextValue, rent.TenantID, rent.BillingPeriod)
		if billedError != nil {
			return nil, billedError
		}
		if billed {
			return nil, ErrRentExists
		}
	}
	if rent.ReceiptID == "" {
		receiptID, receiptError := repository.NextReceiptID(contextValue)
		if receiptError != nil {
			return nil, fmt.Errorf("next receipt id: %w", receiptError)
		}
		rent.ReceiptID = receiptID
	}
	nowUTC := time.Now().UTC()
	if rent.ID.IsZero() {
		rent.ID = primitive.NewObjectID()
	}
	rent.CreatedAt = nowUTC
	rent.UpdatedAt = nowUTC

	if _, insertError := repository.collection.InsertOne(contextValue, rent); insertError != nil {
		if isDuplicateKey(insertError) {
			return nil, ErrRentExists
		}
		return nil, insertError
	}
	return rent, nil
}

// billedForPeriod 與 uniq_tenant_period 相同條件，含已刪除文件
func (repository *RentRepository) billedForPeriod(
	contextValue context.Context,
	tenantIdentifier primitive.ObjectID,
	period string,
) (bool, error) {
	filter := bson.M{"tenantId": tenantIdentifier, "billingPeriod": period}
	count, countError := repository.collection.CountDocuments(contextValue, filter, options.Count().SetLimit(1))
	if countError != nil {
		return false, countError
	}
	return count > 0, nil
}

// ExistsForPeriod 租戶在 [from, to) 內是否已有到期的租金紀錄
func (repository *RentRepository) ExistsForPeriod(
	contextValue context.Context,
	tenantIdentifier primitive.ObjectID,
	from, to time.Time,
) (_ bool, returnedError error) {

	filter := notDeleted(bson.M{
		"tenantId":      tenantIdentifier,
		"paymentDueDay": bson.M{"$gte": from, "$lt": to},
	})
	count, countError := repository.collection.CountDocuments(contextValue, filter, options.Count().SetLimit(1))
	if countError != nil {
		return false, countError
	}
	return count > 0, nil
}

func (repository *RentRepository) GetByUUID(contextValue context.Context, rentUUID string) (_ *model.Rent, returnedError error) {
	var rent model.Rent
	if returnedError = repository.collection.FindOne(contextValue, notDeleted(bson.M{"uuid": rentUUID})).Decode(&rent); returnedError != nil {
		return nil, returnedError
	}
	return &rent, nil
}

// UpdateStatusByUUID 回傳更新後文件
func (repository *RentRepository) UpdateStatusByUUID(
	contextValue context.Context,
	rentUUID string,
	status core.RentStatus,
) (_ *model.Rent, returnedError error) {

	var rent model.Rent
	returnedError = repository.collection.FindOneAndUpdate(
		contextValue,
		notDeleted(bson.M{"uuid": rentUUID}),
		withUpdatedAt(bson.M{"$set": bson.M{"status": status}}),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rent)
	if returnedError != nil {
		return nil, returnedError
	}
	return &rent, nil
}

// ListDueBetween [from, to) 內到期的租金，附帶租戶資料
func (repository *RentRepository) ListDueBetween(
	contextValue context.Context,
	from, to time.Time,
) (_ []*model.RentWithTenant, returnedError error) {

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notDeleted(bson.M{"paymentDueDay": bson.M{"$gte": from, "$lt": to}})}},
		lookupTenantStage(),
		{{Key: "$unwind", Value: bson.M{"path": "$tenant", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$sort", Value: bson.D{{Key: "paymentDueDay", Value: 1}, {Key: "createdAt", Value: 1}}}},
	}
	cursor, aggregateError := repository.collection.Aggregate(contextValue, pipeline)
	if aggregateError != nil {
		return nil, aggregateError
	}
	defer cursor.Close(contextValue)

	results := []*model.RentWithTenant{}
	if returnedError = cursor.All(contextValue, &results); returnedError != nil {
		return nil, returnedError
	}
	return results, nil
}

func lookupTenantStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         string(core.MongoCollectionTenants),
		"localField":   "tenantId",
		"foreignField": "_id",
		"as":           "tenant",
	}}}
}
