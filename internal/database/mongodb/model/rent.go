package model

import (
	"time"

	"pms/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Rent struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	UUID          string             `json:"uuid" bson:"uuid"`
	TenantID      primitive.ObjectID `json:"tenantId" bson:"tenantId"`
	ReceiptID     string             `json:"receiptId" bson:"receiptId"`
	PaymentDueDay time.Time          `json:"paymentDueDay" bson:"paymentDueDay"`
	BillingPeriod string             `json:"billingPeriod,omitempty" bson:"billingPeriod,omitempty"`
	Status        core.RentStatus    `json:"status" bson:"status"`
	ReminderShown bool               `json:"reminderShown" bson:"reminderShown"`
	IsActive      bool               `json:"is_active" bson:"is_active"`
	IsDeleted     bool               `json:"is_deleted" bson:"is_deleted"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var RentIndexes = []mongo.IndexModel{
	{
		// 同一租戶同一帳期只能有一筆（舊資料沒有 billingPeriod，不納入）
		Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "billingPeriod", Value: 1}},
		Options: options.Index().
			SetName("uniq_tenant_period").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"billingPeriod": bson.M{"$type": "string"}}),
	},
	{
		Keys:    bson.D{{Key: "paymentDueDay", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_due_status"),
	},
	{
		Keys:    bson.D{{Key: "uuid", Value: 1}},
		Options: options.Index().SetName("idx_uuid"),
	},
}

// RentWithTenant 列表用：帶出租戶姓名與租金
type RentWithTenant struct {
	Rent   `bson:",inline"`
	Tenant *Tenant `json:"tenant,omitempty" bson:"tenant,omitempty"`
}

type Counter struct {
	Name string `json:"name" bson:"name"`
	Seq  int64  `json:"seq" bson:"seq"`
}
