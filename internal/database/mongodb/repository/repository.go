package repository

import (
	"errors"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewCounterRepository,
	NewTenantRepository,
	NewPremisesRepository,
	NewRentRepository,
	NewNotificationRepository,
	NewActivityLogRepository,
	NewUserRepository,
	NewReportRepository,
)

// ErrRentExists 同一租戶同一帳期已有租金紀錄
var ErrRentExists = errors.New("rent already exists for billing period")

// ErrUnknownUnitType 租戶 unit_type 非 unit / land
var ErrUnknownUnitType = errors.New("unknown unit_type")

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}

// notDeleted 軟刪除過濾；舊資料可能缺欄位，以 $ne 判斷
func notDeleted(filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	filter["is_deleted"] = bson.M{"$ne": true}
	return filter
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
