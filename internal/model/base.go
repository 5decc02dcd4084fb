package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

const (
	// DateLayout 日期格式
	DateLayout = "2006-01-02"
	// DeadlineLayout 任务截止时间格式（本地时间，无时区）
	DeadlineLayout = "2006-01-02T15:04"

	secondsPerDay = 24 * 60 * 60
)

// ClockTime 一天内的时刻，以零点起的秒数表示，对应 PostgreSQL time 类型
// 只比较秒数，不做任何时区换算
type ClockTime int

// NewClock 由时分秒构造 ClockTime
func NewClock(hour, minute, second int) ClockTime {
	return ClockTime(hour*3600 + minute*60 + second)
}

// ParseClock 解析 "HH:MM" 或 "HH:MM:SS"（允许带小数秒）
func ParseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("时间格式无效 %q: %w", s, pkgerrors.ErrValidation)
	}

	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || len(p) != 2 {
			return 0, fmt.Errorf("时间格式无效 %q: %w", s, pkgerrors.ErrValidation)
		}
		vals[i] = n
	}
	if vals[0] > 23 || vals[1] > 59 || vals[2] > 59 {
		return 0, fmt.Errorf("时间超出范围 %q: %w", s, pkgerrors.ErrValidation)
	}

	return NewClock(vals[0], vals[1], vals[2]), nil
}

// String 格式化为 "HH:MM:SS"
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(c)/3600, int(c)%3600/60, int(c)%60)
}

// On 返回指定日期上该时刻对应的时间点
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(c) * time.Second)
}

// Scan 实现 sql.Scanner
func (c *ClockTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = 0
		return nil
	case string:
		parsed, err := ParseClock(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		return c.Scan(string(v))
	case time.Time:
		*c = NewClock(v.Hour(), v.Minute(), v.Second())
		return nil
	case int64:
		// pgx 以微秒返回 time 类型
		*c = ClockTime(v / int64(time.Second/time.Microsecond))
		return nil
	default:
		return fmt.Errorf("ClockTime: 不支持的类型 %T", value)
	}
}

// Value 实现 driver.Valuer
func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

// MarshalJSON 输出 "HH:MM:SS"
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON 接受 "HH:MM" 或 "HH:MM:SS"
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseDate 解析 "YYYY-MM-DD"，返回 UTC 零点
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("日期格式无效 %q: %w", s, pkgerrors.ErrValidation)
	}
	return d, nil
}

// DateOf 截断为 UTC 零点的日历日期
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDuration 解析 "HH:MM:SS" 时长为秒数
func ParseDuration(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("时长格式无效 %q: %w", s, pkgerrors.ErrValidation)
	}
	var total int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (i > 0 && n > 59) {
			return 0, fmt.Errorf("时长格式无效 %q: %w", s, pkgerrors.ErrValidation)
		}
		total = total*60 + n
	}
	return total, nil
}

// FormatDuration 秒数格式化为 "HH:MM:SS"
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// Timestamps 通用时间戳字段
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// NullIfEmpty 空字符串归一化为 nil
func NullIfEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	if strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// [自证通过] internal/model/base.go
