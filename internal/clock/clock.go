package clock

import (
	"time"

	"pms/config"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewClock)

// Clock 所有日期窗口計算的時間來源
type Clock interface {
	Now() time.Time
}

type System struct {
	location *time.Location
}

// NewClock 依 SCHEDULER__TIMEZONE 回傳系統時鐘
func NewClock(conf *config.Configuration) Clock {
	return System{location: conf.Scheduler.Location()}
}

func (s System) Now() time.Time {
	if s.location == nil {
		return time.Now()
	}
	return time.Now().In(s.location)
}

// Fixed 測試用固定時間
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
