package model

// ActivityLog 稽核鏡像；Mongo 為主，fluentd 僅供集中查詢
type ActivityLog struct {
	UUID         string `json:"uuid"`
	Sequence     int64  `json:"id"`
	ActorID      string `json:"user_id,omitempty"`
	Title        string `json:"title"`
	Details      string `json:"details"`
	Action       string `json:"action"`
	ActivityType string `json:"activity_type"`
	Version      string `json:"version,omitempty"`
	LoggedAt     string `json:"logged_at"`
}
