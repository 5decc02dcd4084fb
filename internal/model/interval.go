package model

import (
	"fmt"
	"time"

	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ErrInvalidInterval 开始时间不早于结束时间（含零时长）
var ErrInvalidInterval = fmt.Errorf("结束时间必须晚于开始时间: %w", pkgerrors.ErrValidation)

// TimeInterval 某个日历日内的半开时间段 [StartTime, EndTime)
// 所有比较都假定同一个学生本地日历日，不做时区换算
type TimeInterval struct {
	ScheduledDate time.Time `gorm:"column:scheduled_date;type:date;not null"      json:"scheduled_date"`
	StartTime     ClockTime `gorm:"column:scheduled_start_time;type:time;not null" json:"scheduled_start_time"`
	EndTime       ClockTime `gorm:"column:scheduled_end_time;type:time;not null"   json:"scheduled_end_time"`
}

// NewInterval 构造时间段，日期截断为日历日
func NewInterval(date time.Time, start, end ClockTime) TimeInterval {
	return TimeInterval{ScheduledDate: DateOf(date), StartTime: start, EndTime: end}
}

// Validate 拒绝零时长与负时长
func (iv TimeInterval) Validate() error {
	if iv.ScheduledDate.IsZero() {
		return fmt.Errorf("日期不能为空: %w", pkgerrors.ErrValidation)
	}
	if iv.StartTime < 0 || iv.EndTime > secondsPerDay {
		return fmt.Errorf("时间超出范围: %w", pkgerrors.ErrValidation)
	}
	if iv.StartTime >= iv.EndTime {
		return ErrInvalidInterval
	}
	return nil
}

// SameDay 是否同一日历日
func (iv TimeInterval) SameDay(other TimeInterval) bool {
	y1, m1, d1 := iv.ScheduledDate.Date()
	y2, m2, d2 := other.ScheduledDate.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overlaps 同日且 a.start < b.end && b.start < a.end；首尾相接不算重叠
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.SameDay(other) && iv.StartTime < other.EndTime && other.StartTime < iv.EndTime
}

// Equals 日期、开始、结束完全一致
func (iv TimeInterval) Equals(other TimeInterval) bool {
	return iv.SameDay(other) && iv.StartTime == other.StartTime && iv.EndTime == other.EndTime
}

// StartsAfter 本时间段的起点是否严格晚于 other 的起点
func (iv TimeInterval) StartsAfter(other TimeInterval) bool {
	return iv.StartAt(time.UTC).After(other.StartAt(time.UTC))
}

// StartAt 起始时间点
func (iv TimeInterval) StartAt(loc *time.Location) time.Time {
	return iv.StartTime.On(iv.ScheduledDate, loc)
}

// EndAt 结束时间点
func (iv TimeInterval) EndAt(loc *time.Location) time.Time {
	return iv.EndTime.On(iv.ScheduledDate, loc)
}

// Duration 时长
func (iv TimeInterval) Duration() time.Duration {
	return time.Duration(iv.EndTime-iv.StartTime) * time.Second
}

// Date 日期字符串
func (iv TimeInterval) Date() string {
	return iv.ScheduledDate.Format(DateLayout)
}

func (iv TimeInterval) String() string {
	return fmt.Sprintf("%s %s-%s", iv.Date(), iv.StartTime, iv.EndTime)
}
