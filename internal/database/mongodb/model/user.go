package model

import (
	"pms/internal/core"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`                // 使用者唯一識別碼
	UUID      string             `json:"uuid" bson:"uuid"`             // 對外識別碼（JWT 內使用）
	FirstName string             `json:"first_name" bson:"first_name"` // 名
	LastName  string             `json:"last_name" bson:"last_name"`   // 姓
	Email     string             `json:"email,omitempty" bson:"email"` // 使用者信箱
	Role      core.Role          `json:"role" bson:"role"`             // 使用者角色
	IsActive  bool               `json:"is_active" bson:"is_active"`   // 是否啟用
	IsDelete  bool               `json:"is_delete" bson:"is_delete"`   // 軟刪除
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`   // 建立時間
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`   // 更新時間
}
