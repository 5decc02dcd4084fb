package model

import "time"

// Category 日程条目来源实体类型
type Category string

const (
	CategoryTask     Category = "Task"
	CategoryEvent    Category = "Event"
	CategoryActivity Category = "Activity"
	CategoryGoal     Category = "Goal"
	CategoryClass    Category = "Class"
)

// Categories 全部类型
var Categories = []Category{CategoryTask, CategoryEvent, CategoryActivity, CategoryGoal, CategoryClass}

// ParseCategory 解析类型名（区分大小写，与客户端约定一致）
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// Valid 是否为已知类型
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status 可完成实体的状态
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// DayName 星期名称，"Monday" … "Sunday"
type DayName string

var dayNames = map[DayName]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// ParseDayName 校验星期名称
func ParseDayName(s string) (DayName, bool) {
	d := DayName(s)
	_, ok := dayNames[d]
	return d, ok
}

// Weekday 转为 time.Weekday
func (d DayName) Weekday() time.Weekday {
	return dayNames[d]
}

// DayNameOf time.Weekday 转星期名称
func DayNameOf(w time.Weekday) DayName {
	return DayName(w.String())
}
