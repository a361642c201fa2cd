package repository

import (
	"context"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(mongoClient *client.MongoClient) *UserRepository {
	repository := &UserRepository{
		collection: mongoClient.Collection(core.MongoCollectionUsers),
	}
	// 啟動時建立常用索引（冪等、存在即跳過）
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *UserRepository) ensureIndexes(contextValue context.Context) error {
	indexModels := []mongo.IndexModel{
		{ // JWT 以 uuid 識別
			Keys:    bson.D{{Key: "uuid", Value: 1}},
			Options: options.Index().SetName("idx_uuid"),
		},
		{ // 依角色找通知收件人
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_role"),
		},
	}
	_, _ = repository.collection.Indexes().CreateMany(contextValue, indexModels)
	return nil
}

// GetByUUID 未刪除的使用者
func (repository *UserRepository) GetByUUID(
	contextValue context.Context,
	userUUID string,
) (_ *model.User, returnedError error) {

	var user model.User
	filter := bson.M{"uuid": userUUID, "is_delete": bson.M{"$ne": true}}
	if returnedError = repository.collection.FindOne(contextValue, filter).Decode(&user); returnedError != nil {
		return nil, returnedError
	}
	return &user, nil
}

// ListIDsByRoles 啟用中、指定角色的使用者 _id
func (repository *UserRepository) ListIDsByRoles(
	contextValue context.Context,
	roles ...core.Role,
) (_ []primitive.ObjectID, returnedError error) {

	filter := bson.M{
		"role":      bson.M{"$in": roles},
		"is_active": true,
		"is_delete": bson.M{"$ne": true},
	}
	cursor, findError := repository.collection.Find(contextValue, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var identifiers []primitive.ObjectID
	for cursor.Next(contextValue) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if decodeError := cursor.Decode(&row); decodeError != nil {
			return nil, decodeError
		}
		identifiers = append(identifiers, row.ID)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}
	return identifiers, nil
}
