package repository

import (
	"context"
	"time"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportRepository 儀表板聚合查詢（唯讀）
type ReportRepository struct {
	tenants      *TenantRepository
	premises     *PremisesRepository
	rents        *mongo.Collection
	maintenances *mongo.Collection
}

func NewReportRepository(
	mongoClient *client.MongoClient,
	tenants *TenantRepository,
	premises *PremisesRepository,
) *ReportRepository {
	return &ReportRepository{
		tenants:      tenants,
		premises:     premises,
		rents:        mongoClient.Collection(core.MongoCollectionRents),
		maintenances: mongoClient.Collection(core.MongoCollectionMaintenances),
	}
}

// DueWindow nil 代表不限
type DueWindow struct {
	From *time.Time
	To   *time.Time
}

// ─── Properties / Lands / Tenants ──────────────────────────────────────────────

func (repository *ReportRepository) CountPropertiesByType(contextValue context.Context) (_ []model.TypeCount, returnedError error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notDeleted(nil)}},
		{{Key: "$group", Value: bson.M{"_id": "$property_type", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	results := []model.TypeCount{}
	returnedError = aggregateAll(contextValue, repository.premises.properties, pipeline, &results)
	return results, returnedError
}

func (repository *ReportRepository) CountLands(contextValue context.Context) (int64, error) {
	return repository.premises.lands.CountDocuments(contextValue, notDeleted(nil))
}

func (repository *ReportRepository) CountTenants(contextValue context.Context) (int64, error) {
	return repository.tenants.Count(contextValue, nil)
}

func (repository *ReportRepository) CountTenantsCreatedBetween(contextValue context.Context, from, to time.Time) (int64, error) {
	return repository.tenants.CountCreatedBetween(contextValue, from, to)
}

func (repository *ReportRepository) CountLeasesEndingBetween(contextValue context.Context, from, to time.Time) (int64, error) {
	return repository.tenants.CountLeaseEndingBetween(contextValue, from, to)
}

func (repository *ReportRepository) SumTenantRent(contextValue context.Context) (float64, error) {
	return repository.tenants.SumField(contextValue, "rent")
}

// LeaseStats 以 $facet 一次計算租約統計
func (repository *ReportRepository) LeaseStats(contextValue context.Context, today, monthEnd time.Time) (_ model.LeaseStats, returnedError error) {
	countStage := bson.D{{Key: "$count", Value: "n"}}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notDeleted(bson.M{"tenant_type": core.TenantTypeLease})}},
		{{Key: "$facet", Value: bson.M{
			"activeLeases": bson.A{
				bson.M{"$match": bson.M{"is_active": true, "lease_duration.end_date": bson.M{"$gte": today}}},
				countStage,
			},
			"expiredLeases": bson.A{
				bson.M{"$match": bson.M{"lease_duration.end_date": bson.M{"$lt": today}}},
				countStage,
			},
			"expiringSoonThisMonth": bson.A{
				bson.M{"$match": bson.M{"lease_duration.end_date": bson.M{"$gte": today, "$lte": monthEnd}}},
				countStage,
			},
			"totalDeposit": bson.A{
				bson.M{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$deposit"}}},
			},
		}}},
	}

	type counted struct {
		N int64 `bson:"n"`
	}
	var facets struct {
		Active       []counted `bson:"activeLeases"`
		Expired      []counted `bson:"expiredLeases"`
		ExpiringSoon []counted `bson:"expiringSoonThisMonth"`
		Deposit      []struct {
			Total float64 `bson:"total"`
		} `bson:"totalDeposit"`
	}
	cursor, aggregateError := repository.tenants.collection.Aggregate(contextValue, pipeline)
	if aggregateError != nil {
		return model.LeaseStats{}, aggregateError
	}
	defer cursor.Close(contextValue)
	if cursor.Next(contextValue) {
		if returnedError = cursor.Decode(&facets); returnedError != nil {
			return model.LeaseStats{}, returnedError
		}
	}
	if returnedError = cursor.Err(); returnedError != nil {
		return model.LeaseStats{}, returnedError
	}

	stats := model.LeaseStats{}
	if len(facets.Active) > 0 {
		stats.ActiveLeases = facets.Active[0].N
	}
	if len(facets.Expired) > 0 {
		stats.ExpiredLeases = facets.Expired[0].N
	}
	if len(facets.ExpiringSoon) > 0 {
		stats.ExpiringSoonThisMonth = facets.ExpiringSoon[0].N
	}
	if len(facets.Deposit) > 0 {
		stats.TotalDepositAmount = facets.Deposit[0].Total
	}
	return stats, nil
}

func (repository *ReportRepository) ListLeases(contextValue context.Context) ([]*model.Tenant, error) {
	return repository.tenants.ListLeases(contextValue)
}

// Search 三個集合各取 limit 筆
func (repository *ReportRepository) Search(contextValue context.Context, query string, limit int64) (_ *model.SearchResults, returnedError error) {
	results := &model.SearchResults{}
	if results.Lands, returnedError = repository.premises.SearchLands(contextValue, query, limit); returnedError != nil {
		return nil, returnedError
	}
	if results.Properties, returnedError = repository.premises.SearchProperties(contextValue, query, limit); returnedError != nil {
		return nil, returnedError
	}
	if results.Tenants, returnedError = repository.tenants.SearchByName(contextValue, query, limit); returnedError != nil {
		return nil, returnedError
	}
	if results.Tenants == nil {
		results.Tenants = []*model.Tenant{}
	}
	return results, nil
}

// ─── Rents ─────────────────────────────────────────────────────────────────────

// SumRentByStatus 依租金狀態與到期窗口加總租戶租金
func (repository *ReportRepository) SumRentByStatus(
	contextValue context.Context,
	statuses []core.RentStatus,
	window DueWindow,
) (float64, error) {
	pipeline := append(rentWithTenantStages(statuses, window),
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$tenant.rent"}}}},
	)
	return aggregateTotal(contextValue, repository.rents, pipeline)
}

// PaidRevenueByMonth 已繳租金依 (year, month) 分組，升冪；無資料的月份不出現
func (repository *ReportRepository) PaidRevenueByMonth(contextValue context.Context, timezone string) (_ []model.MonthTotal, returnedError error) {
	pipeline := append(rentWithTenantStages([]core.RentStatus{core.RentStatusPaid}, DueWindow{}),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"year": datePart("$year", "$paymentDueDay", timezone), "month": datePart("$month", "$paymentDueDay", timezone)},
			"total": bson.M{"$sum": "$tenant.rent"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "year": "$_id.year", "month": "$_id.month", "total": 1}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}}},
	)
	results := []model.MonthTotal{}
	returnedError = aggregateAll(contextValue, repository.rents, pipeline, &results)
	return results, returnedError
}

func (repository *ReportRepository) PaidRevenueByYear(contextValue context.Context, timezone string) (_ []model.YearTotal, returnedError error) {
	pipeline := append(rentWithTenantStages([]core.RentStatus{core.RentStatusPaid}, DueWindow{}),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   datePart("$year", "$paymentDueDay", timezone),
			"total": bson.M{"$sum": "$tenant.rent"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "year": "$_id", "total": 1}}},
		bson.D{{Key: "$sort", Value: bson.M{"year": 1}}},
	)
	results := []model.YearTotal{}
	returnedError = aggregateAll(contextValue, repository.rents, pipeline, &results)
	return results, returnedError
}

// CountRentsByStatus 窗口內租金筆數（依狀態）
func (repository *ReportRepository) CountRentsByStatus(contextValue context.Context, window DueWindow) (_ []model.StatusCount, returnedError error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notDeleted(dueWindowFilter(window))}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	results := []model.StatusCount{}
	returnedError = aggregateAll(contextValue, repository.rents, pipeline, &results)
	return results, returnedError
}

// RentAmounts 全部租金紀錄（含租戶租金），供 month-bucket 報表
func (repository *ReportRepository) RentAmounts(contextValue context.Context) (_ []model.DatedAmount, returnedError error) {
	pipeline := append(rentWithTenantStages(nil, DueWindow{}),
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "createdAt": 1, "amount": "$tenant.rent"}}},
	)
	results := []model.DatedAmount{}
	returnedError = aggregateAll(contextValue, repository.rents, pipeline, &results)
	return results, returnedError
}

// ─── Units ─────────────────────────────────────────────────────────────────────

func (repository *ReportRepository) UnitOccupancy(contextValue context.Context) (_ model.UnitOccupancy, returnedError error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notDeleted(nil)}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalUnits":    bson.M{"$sum": 1},
			"occupiedUnits": bson.M{"$sum": occupiedCase()},
		}}},
	}
	var rows []model.UnitOccupancy
	if returnedError = aggregateAll(contextValue, repository.premises.units, pipeline, &rows); returnedError != nil {
		return model.UnitOccupancy{}, returnedError
	}
	if len(rows) == 0 {
		return model.UnitOccupancy{}, nil
	}
	return rows[0], nil
}

// UnitOccupancyByMonth 指定年份內依單位建立月份分組
func (repository *ReportRepository) UnitOccupancyByMonth(
	contextValue context.Context,
	from, to time.Time,
	timezone string,
) (_ []model.OccupancyBucket, returnedError error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notDeleted(bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}})}},
		{{Key: "$group", Value: bson.M{
			"_id":           datePart("$month", "$createdAt", timezone),
			"totalUnits":    bson.M{"$sum": 1},
			"occupiedUnits": bson.M{"$sum": occupiedCase()},
		}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "month": "$_id", "totalUnits": 1, "occupiedUnits": 1}}},
		{{Key: "$sort", Value: bson.M{"month": 1}}},
	}
	results := []model.OccupancyBucket{}
	returnedError = aggregateAll(contextValue, repository.premises.units, pipeline, &results)
	return results, returnedError
}

// ─── Maintenance ───────────────────────────────────────────────────────────────

// MaintenanceExpense 同一來源兩個 facet：月與年
func (repository *ReportRepository) MaintenanceExpense(contextValue context.Context, timezone string) (_ model.ExpenseFacets, returnedError error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_delete": bson.M{"$ne": true}}}},
		{{Key: "$facet", Value: bson.M{
			"monthly": bson.A{
				bson.M{"$group": bson.M{
					"_id":   bson.M{"year": datePart("$year", "$createdAt", timezone), "month": datePart("$month", "$createdAt", timezone)},
					"total": bson.M{"$sum": "$estmate_cost"},
				}},
				bson.M{"$project": bson.M{"_id": 0, "year": "$_id.year", "month": "$_id.month", "total": 1}},
				bson.M{"$sort": bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}},
			},
			"yearly": bson.A{
				bson.M{"$group": bson.M{"_id": datePart("$year", "$createdAt", timezone), "total": bson.M{"$sum": "$estmate_cost"}}},
				bson.M{"$project": bson.M{"_id": 0, "year": "$_id", "total": 1}},
				bson.M{"$sort": bson.M{"year": 1}},
			},
		}}},
	}
	var rows []model.ExpenseFacets
	if returnedError = aggregateAll(contextValue, repository.maintenances, pipeline, &rows); returnedError != nil {
		return model.ExpenseFacets{}, returnedError
	}
	facets := model.ExpenseFacets{Monthly: []model.MonthTotal{}, Yearly: []model.YearTotal{}}
	if len(rows) > 0 {
		if rows[0].Monthly != nil {
			facets.Monthly = rows[0].Monthly
		}
		if rows[0].Yearly != nil {
			facets.Yearly = rows[0].Yearly
		}
	}
	return facets, nil
}

func (repository *ReportRepository) MaintenanceAmounts(contextValue context.Context) (_ []model.DatedAmount, returnedError error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_delete": bson.M{"$ne": true}}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "createdAt": 1, "amount": "$estmate_cost"}}},
	}
	results := []model.DatedAmount{}
	returnedError = aggregateAll(contextValue, repository.maintenances, pipeline, &results)
	return results, returnedError
}

// ─── helpers ───────────────────────────────────────────────────────────────────

// rentWithTenantStages 過濾租金並帶入未刪除的租戶
func rentWithTenantStages(statuses []core.RentStatus, window DueWindow) mongo.Pipeline {
	match := notDeleted(dueWindowFilter(window))
	if len(statuses) > 0 {
		match["status"] = bson.M{"$in": statuses}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		lookupTenantStage(),
		{{Key: "$unwind", Value: "$tenant"}},
		{{Key: "$match", Value: bson.M{"tenant.is_deleted": bson.M{"$ne": true}}}},
	}
}

func dueWindowFilter(window DueWindow) bson.M {
	filter := bson.M{}
	due := bson.M{}
	if window.From != nil {
		due["$gte"] = *window.From
	}
	if window.To != nil {
		due["$lt"] = *window.To
	}
	if len(due) > 0 {
		filter["paymentDueDay"] = due
	}
	return filter
}

func datePart(operator, field, timezone string) bson.M {
	if timezone == "" {
		return bson.M{operator: field}
	}
	return bson.M{operator: bson.M{"date": field, "timezone": timezone}}
}

func occupiedCase() bson.M {
	return bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", string(core.UnitStatusOccupied)}}, 1, 0}}
}

func aggregateAll(contextValue context.Context, collection *mongo.Collection, pipeline mongo.Pipeline, results any) error {
	cursor, err := collection.Aggregate(contextValue, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(contextValue)
	return cursor.All(contextValue, results)
}
