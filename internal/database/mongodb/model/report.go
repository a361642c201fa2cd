package model

import "time"

// 聚合查詢結果（reporting 用）

type TypeCount struct {
	Type  string `json:"type" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

type StatusCount struct {
	Status string `json:"status" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

type MonthTotal struct {
	Year  int     `json:"year" bson:"year"`
	Month int     `json:"month" bson:"month"`
	Total float64 `json:"total" bson:"total"`
}

type YearTotal struct {
	Year  int     `json:"year" bson:"year"`
	Total float64 `json:"total" bson:"total"`
}

type ExpenseFacets struct {
	Monthly []MonthTotal `json:"monthly" bson:"monthly"`
	Yearly  []YearTotal  `json:"yearly" bson:"yearly"`
}

// UnitOccupancy 依 status 實際計數，不信任快取旗標以外的資料
type UnitOccupancy struct {
	TotalUnits    int64 `json:"totalUnits" bson:"totalUnits"`
	OccupiedUnits int64 `json:"occupiedUnits" bson:"occupiedUnits"`
}

type OccupancyBucket struct {
	Month         int   `json:"month" bson:"month"`
	TotalUnits    int64 `json:"totalUnits" bson:"totalUnits"`
	OccupiedUnits int64 `json:"occupiedUnits" bson:"occupiedUnits"`
}

// DatedAmount month-bucket 報表輸入：建立時間與金額
type DatedAmount struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Amount    float64   `json:"amount" bson:"amount"`
}

type LeaseStats struct {
	ActiveLeases          int64   `json:"activeLeases" bson:"activeLeases"`
	ExpiredLeases         int64   `json:"expiredLeases" bson:"expiredLeases"`
	ExpiringSoonThisMonth int64   `json:"expiringSoonThisMonth" bson:"expiringSoonThisMonth"`
	TotalDepositAmount    float64 `json:"totalDepositAmount" bson:"totalDepositAmount"`
}

type SearchResults struct {
	Lands      []*Land     `json:"lands"`
	Properties []*Property `json:"properties"`
	Tenants    []*Tenant   `json:"tenants"`
}
