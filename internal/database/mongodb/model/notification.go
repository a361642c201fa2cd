package model

import (
	"time"

	"pms/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Notification struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id"`
	UUID        string               `json:"uuid" bson:"uuid"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	NotifyType  core.NotifyType      `json:"notify_type" bson:"notify_type"`
	Action      core.Action          `json:"action" bson:"action"`
	IsRead      bool                 `json:"is_read" bson:"is_read"`
	IsActive    bool                 `json:"is_active" bson:"is_active"`
	IsDeleted   bool                 `json:"is_deleted" bson:"is_deleted"`
	Users       []primitive.ObjectID `json:"user" bson:"user"`
	TenantID    *primitive.ObjectID  `json:"tenantId,omitempty" bson:"tenantId,omitempty"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

var NotificationIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "is_deleted", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_deleted_createdAt"),
	},
}

type ActivityLog struct {
	ID           primitive.ObjectID  `json:"_id" bson:"_id"`
	Sequence     int64               `json:"id" bson:"id"`
	UUID         string              `json:"uuid" bson:"uuid"`
	UserID       *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Title        string              `json:"title" bson:"title"`
	Details      string              `json:"details" bson:"details"`
	Action       core.Action         `json:"action" bson:"action"`
	ActivityType core.ActivityType   `json:"activity_type" bson:"activity_type"`
	IsDelete     bool                `json:"is_delete" bson:"is_delete"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

var ActivityLogIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "uuid", Value: 1}},
		Options: options.Index().SetName("idx_uuid"),
	},
	{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_createdAt_desc"),
	},
}
