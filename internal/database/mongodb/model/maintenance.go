package model

import (
	"time"

	"pms/internal/core"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Maintenance struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	UUID        string             `json:"uuid" bson:"uuid"`
	UnitID      primitive.ObjectID `json:"unitId" bson:"unitId"`
	FullName    string             `json:"full_name" bson:"full_name"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	// 既有資料欄位名稱為 estmate_cost
	EstimateCost float64                `json:"estimate_cost" bson:"estmate_cost"`
	Category     string                 `json:"category" bson:"category"`
	Scheduled    *time.Time             `json:"scheduled,omitempty" bson:"scheduled,omitempty"`
	Status       core.MaintenanceStatus `json:"status" bson:"status"`
	IsDelete     bool                   `json:"is_delete" bson:"is_delete"`
	CreatedAt    time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt" bson:"updatedAt"`
}
