package repository

import (
	"context"
	"fmt"
	"regexp"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PremisesRepository 單位 / 物業 / 土地的讀取
type PremisesRepository struct {
	units      *mongo.Collection
	properties *mongo.Collection
	lands      *mongo.Collection
}

func NewPremisesRepository(mongoClient *client.MongoClient) *PremisesRepository {
	return &PremisesRepository{
		units:      mongoClient.Collection(core.MongoCollectionUnits),
		properties: mongoClient.Collection(core.MongoCollectionProperties),
		lands:      mongoClient.Collection(core.MongoCollectionLands),
	}
}

// Resolve 依 unit_type 解析租戶參照；找不到回傳 mongo.ErrNoDocuments
func (repository *PremisesRepository) Resolve(
	contextValue context.Context,
	unitType core.UnitType,
	reference primitive.ObjectID,
) (_ *model.Premises, returnedError error) {

	if reference.IsZero() {
		return nil, mongo.ErrNoDocuments
	}
	switch unitType {
	case core.UnitTypeLand:
		var land model.Land
		if returnedError = repository.lands.FindOne(contextValue, notDeleted(bson.M{"_id": reference})).Decode(&land); returnedError != nil {
			return nil, returnedError
		}
		return &model.Premises{UnitType: core.UnitTypeLand, UnitName: land.LandName, PropertyName: land.LandName}, nil
	case core.UnitTypeUnit, "":
		return repository.resolveUnit(contextValue, reference)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnitType, unitType)
	}
}

// resolveUnit 單位 + 所屬物業名稱，一次 $lookup
func (repository *PremisesRepository) resolveUnit(
	contextValue context.Context,
	reference primitive.ObjectID,
) (_ *model.Premises, returnedError error) {

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notDeleted(bson.M{"_id": reference})}},
		{{Key: "$lookup", Value: bson.M{
			"from":         string(core.MongoCollectionProperties),
			"localField":   "propertyId",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$property", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"unit_type":     string(core.UnitTypeUnit),
			"unit_name":     "$unit_name",
			"property_name": "$property.property_name",
		}}},
		{{Key: "$limit", Value: 1}},
	}
	cursor, aggregateError := repository.units.Aggregate(contextValue, pipeline)
	if aggregateError != nil {
		return nil, aggregateError
	}
	defer cursor.Close(contextValue)

	if !cursor.Next(contextValue) {
		if cursorError := cursor.Err(); cursorError != nil {
			return nil, cursorError
		}
		return nil, mongo.ErrNoDocuments
	}
	var premises model.Premises
	if returnedError = cursor.Decode(&premises); returnedError != nil {
		return nil, returnedError
	}
	return &premises, nil
}

func (repository *PremisesRepository) SearchProperties(contextValue context.Context, query string, limit int64) (_ []*model.Property, returnedError error) {
	filter := notDeleted(bson.M{"property_name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}})
	cursor, findError := repository.properties.Find(contextValue, filter, options.Find().SetLimit(limit))
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	results := []*model.Property{}
	if returnedError = cursor.All(contextValue, &results); returnedError != nil {
		return nil, returnedError
	}
	return results, nil
}

func (repository *PremisesRepository) SearchLands(contextValue context.Context, query string, limit int64) (_ []*model.Land, returnedError error) {
	filter := notDeleted(bson.M{"land_name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}})
	cursor, findError := repository.lands.Find(contextValue, filter, options.Find().SetLimit(limit))
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	results := []*model.Land{}
	if returnedError = cursor.All(contextValue, &results); returnedError != nil {
		return nil, returnedError
	}
	return results, nil
}
