package dto

import (
	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	"pms/internal/pkg/request"
)

type RentQueryDto struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

type RentListResponse struct {
	Rents                 []*model.RentWithTenant `json:"rents"`
	Month                 int                     `json:"month"`
	Year                  int                     `json:"year"`
	TotalDueAmount        float64                 `json:"totalDueAmount"`
	TotalPaidThisMonth    float64                 `json:"totalPaidThisMonth"`
	TotalPendingThisMonth float64                 `json:"totalPendingThisMonth"`
	TotalDeposit          float64                 `json:"totalDeposit"`
}

// 修改租金狀態
type UpdateRentStatusDto struct {
	Status core.RentStatus `json:"status" binding:"required,oneof=pending paid overdue"`
}

func (UpdateRentStatusDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Status.required": "status is required",
		"Status.oneof":    "status must be one of pending, paid, overdue",
	}
}
