package model

import (
	"time"

	"pms/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PersonalInformation struct {
	FullName string `json:"full_name" bson:"full_name"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`
}

type LeaseDuration struct {
	StartDate *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	// 每月繳款日（1-31）
	DueDate int `json:"due_date" bson:"due_date"`
}

type FinancialInformation struct {
	Rent        float64 `json:"rent" bson:"rent"`
	CGST        float64 `json:"cgst" bson:"cgst"`
	SGST        float64 `json:"sgst" bson:"sgst"`
	TDS         float64 `json:"tds" bson:"tds"`
	Maintenance float64 `json:"maintenance" bson:"maintenance"`
}

type Tenant struct {
	ID                   primitive.ObjectID   `json:"id" bson:"_id"`
	UUID                 string               `json:"uuid" bson:"uuid"`
	PersonalInformation  PersonalInformation  `json:"personal_information" bson:"personal_information"`
	LeaseDuration        LeaseDuration        `json:"lease_duration" bson:"lease_duration"`
	TenantType           core.TenantType      `json:"tenant_type" bson:"tenant_type"`
	UnitType             core.UnitType        `json:"unit_type" bson:"unit_type"`
	Unit                 primitive.ObjectID   `json:"unit" bson:"unit,omitempty"`
	Rent                 float64              `json:"rent" bson:"rent"`
	Deposit              float64              `json:"deposit" bson:"deposit"`
	FinancialInformation FinancialInformation `json:"financial_information" bson:"financial_information"`
	// 最近一次產生租金的帳期（YYYY-MM）
	LastBilledPeriod string    `json:"last_billed_period,omitempty" bson:"last_billed_period,omitempty"`
	IsActive         bool      `json:"is_active" bson:"is_active"`
	IsDeleted        bool      `json:"is_deleted" bson:"is_deleted"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`
}

var TenantIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "tenant_type", Value: 1}, {Key: "is_active", Value: 1}, {Key: "is_deleted", Value: 1}},
		Options: options.Index().SetName("idx_type_active"),
	},
	{
		Keys:    bson.D{{Key: "lease_duration.end_date", Value: 1}},
		Options: options.Index().SetName("idx_lease_end"),
	},
	{
		Keys:    bson.D{{Key: "uuid", Value: 1}},
		Options: options.Index().SetName("idx_uuid"),
	},
}
