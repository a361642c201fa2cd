package dto

type RunSchedulerDto struct {
	// 空值代表兩個 pass 都跑
	Pass string `json:"pass" binding:"omitempty,oneof=rent lease"`
}
