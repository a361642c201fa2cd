package dto

import "pms/internal/database/mongodb/model"

type ActivityQueryDto struct {
	Page    int64 `form:"page" binding:"omitempty,min=1"`
	PerPage int64 `form:"perpage" binding:"omitempty,min=1,max=100"`
}

type ActivityListResponse struct {
	Items   []*model.ActivityLog `json:"activities"`
	Total   int64                `json:"total"`
	Page    int64                `json:"page"`
	PerPage int64                `json:"perpage"`
}
