package model

import (
	"time"

	"pms/internal/core"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OwnerInformation struct {
	FullName string `json:"full_name" bson:"full_name"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`
}

type Unit struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	UUID        string             `json:"uuid" bson:"uuid"`
	PropertyID  primitive.ObjectID `json:"propertyId" bson:"propertyId"`
	UnitName    string             `json:"unit_name" bson:"unit_name"`
	UnitSqft    float64            `json:"unit_sqft" bson:"unit_sqft"`
	UnitAddress string             `json:"unit_address" bson:"unit_address"`
	Status      core.UnitStatus    `json:"status" bson:"status"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	IsDeleted   bool               `json:"is_deleted" bson:"is_deleted"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Property struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	UUID             string             `json:"uuid" bson:"uuid"`
	PropertyName     string             `json:"property_name" bson:"property_name"`
	PropertyType     core.PropertyType  `json:"property_type" bson:"property_type"`
	SquareFeet       float64            `json:"square_feet" bson:"square_feet"`
	PropertyAddress  string             `json:"property_address" bson:"property_address"`
	OwnerInformation OwnerInformation   `json:"owner_information" bson:"owner_information"`
	IsActive         bool               `json:"is_active" bson:"is_active"`
	IsDeleted        bool               `json:"is_deleted" bson:"is_deleted"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Land struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	UUID             string             `json:"uuid" bson:"uuid"`
	LandName         string             `json:"land_name" bson:"land_name"`
	SquareFeet       float64            `json:"square_feet" bson:"square_feet"`
	Acre             float64            `json:"acre" bson:"acre"`
	Cent             float64            `json:"cent" bson:"cent"`
	LandAddress      string             `json:"land_address" bson:"land_address"`
	OwnerInformation OwnerInformation   `json:"owner_information" bson:"owner_information"`
	IsActive         bool               `json:"is_active" bson:"is_active"`
	IsDeleted        bool               `json:"is_deleted" bson:"is_deleted"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Premises 租戶所在的單位或土地（通知文案用）
type Premises struct {
	UnitType     core.UnitType `json:"unit_type" bson:"unit_type"`
	UnitName     string        `json:"unit_name" bson:"unit_name"`
	PropertyName string        `json:"property_name" bson:"property_name"`
}
