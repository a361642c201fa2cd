package dto

import "pms/internal/database/mongodb/model"

// 儀表板報表

type PropertySummary struct {
	Total  int64             `json:"total"`
	ByType []model.TypeCount `json:"byType"`
	Lands  int64             `json:"lands"`
}

type TenantSummary struct {
	Total              int64 `json:"total"`
	NewThisMonth       int64 `json:"newThisMonth"`
	LeasesExpiringSoon int64 `json:"leasesExpiringSoon"`
}

type RevenueSummary struct {
	TotalMonthlyRevenue float64            `json:"totalMonthlyRevenue"`
	TotalMonthlyPending float64            `json:"totalMonthlyPending"`
	TotalExpected       float64            `json:"totalExpected"`
	CollectionRate      string             `json:"collectionRate"`
	YearlyRevenue       float64            `json:"yearlyRevenue"`
	OverallRevenue      float64            `json:"overallRevenue"`
	Monthly             []model.MonthTotal `json:"monthly"`
	Yearly              []model.YearTotal  `json:"yearly"`
}

type OccupancyOverview struct {
	TotalUnits    int64   `json:"totalUnits"`
	OccupiedUnits int64   `json:"occupiedUnits"`
	VacantUnits   int64   `json:"vacantUnits"`
	OccupancyRate float64 `json:"occupancyRate"`
}

type OccupancyTrendPoint struct {
	Month         int     `json:"month"`
	Label         string  `json:"label"`
	TotalUnits    int64   `json:"totalUnits"`
	OccupiedUnits int64   `json:"occupiedUnits"`
	OccupancyRate float64 `json:"occupancyRate"`
}

type OccupancyReport struct {
	Year    int                   `json:"year"`
	Overall OccupancyOverview     `json:"overall"`
	Monthly []OccupancyTrendPoint `json:"monthly"`
}

// MonthBucket 單月收支
type MonthBucket struct {
	Month   string  `json:"month"`
	Expense float64 `json:"expense"`
	Revenue float64 `json:"revenue"`
}

type MonthlyReport struct {
	Months []MonthBucket `json:"months"`
	Yearly MonthBucket   `json:"yearly"`
}

type DashboardReport struct {
	Properties    PropertySummary     `json:"properties"`
	Tenants       TenantSummary       `json:"tenants"`
	Revenue       RevenueSummary      `json:"revenue"`
	Occupancy     OccupancyReport     `json:"occupancy"`
	PaymentStatus map[string]int64    `json:"paymentStatus"`
	Maintenance   model.ExpenseFacets `json:"maintenanceExpense"`
	Report        MonthlyReport       `json:"report"`
	ReportError   *SectionError       `json:"reportError,omitempty"`
}

// SectionError 單一區塊計算失敗，其餘區塊照常回傳
type SectionError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LeaseStatsResponse struct {
	model.LeaseStats
	Leases []*model.Tenant `json:"leases"`
}

type SearchQueryDto struct {
	Query string `form:"query" binding:"required,max=100"`
}
