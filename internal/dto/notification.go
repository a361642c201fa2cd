package dto

import "pms/internal/database/mongodb/model"

// 分頁參數（page 由 1 起算）
type PageQueryDto struct {
	Page  int64 `form:"page" binding:"omitempty,min=1"`
	Limit int64 `form:"limit" binding:"omitempty,min=1,max=100"`
}

type NotificationListResponse struct {
	Items []*model.Notification `json:"notifications"`
	Total int64                 `json:"total"`
	Page  int64                 `json:"page"`
	Limit int64                 `json:"limit"`
}

type MarkAllReadResponse struct {
	Modified int64 `json:"modified"`
}
