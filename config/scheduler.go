package config

import "time"

type Scheduler struct {
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// cron 表達式（含秒），預設每日 00:00:00
	Spec string `mapstructure:"SPEC" json:"spec" yaml:"spec"`
	// IANA 時區，例如 Asia/Kolkata；空值使用主機時區
	Timezone string `mapstructure:"TIMEZONE" json:"timezone" yaml:"timezone"`
	// 單次執行上限
	Timeout time.Duration `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
	// 分散式鎖存活時間
	LockTTL time.Duration `mapstructure:"LOCK_TTL" json:"lock_ttl" yaml:"lock_ttl"`
	// 租約即將到期的天數窗口
	ExpiringSoonDays int `mapstructure:"EXPIRING_SOON_DAYS" json:"expiring_soon_days" yaml:"expiring_soon_days"`
}

const (
	DefaultSchedulerSpec    = "0 0 0 * * *"
	DefaultSchedulerTimeout = 30 * time.Minute
	DefaultExpiringSoonDays = 30
)

func (s Scheduler) CronSpec() string {
	if s.Spec == "" {
		return DefaultSchedulerSpec
	}
	return s.Spec
}

func (s Scheduler) RunTimeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultSchedulerTimeout
	}
	return s.Timeout
}

// LockTimeToLive 未設定時與 RunTimeout 相同，避免執行中鎖先過期
func (s Scheduler) LockTimeToLive() time.Duration {
	if s.LockTTL <= 0 {
		return s.RunTimeout()
	}
	return s.LockTTL
}

func (s Scheduler) SoonWindowDays() int {
	if s.ExpiringSoonDays <= 0 {
		return DefaultExpiringSoonDays
	}
	return s.ExpiringSoonDays
}

// Location 解析失敗時回傳 time.Local
func (s Scheduler) Location() *time.Location {
	if s.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
