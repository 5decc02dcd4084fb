package model

import "time"

// ClassSchedule 每周课程模板，对应 class_schedules
// 没有单一时间段：学期内每个 DayOfWeek 对应的日期都各占一条日程条目
type ClassSchedule struct {
	ClassSchedID string    `gorm:"column:classsched_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"classsched_id"`
	StudentID    string    `gorm:"type:uuid;not null"                                                  json:"student_id"`
	SubjectID    string    `gorm:"type:uuid;not null;index"                                            json:"subject_id"`
	DayOfWeek    DayName   `gorm:"type:varchar(10);not null"                                           json:"day_of_week"`
	StartTime    ClockTime `gorm:"column:scheduled_start_time;type:time;not null"                      json:"scheduled_start_time"`
	EndTime      ClockTime `gorm:"column:scheduled_end_time;type:time;not null"                        json:"scheduled_end_time"`
	Room         *string   `gorm:"type:varchar(100)"                                                   json:"room"`
	Subject      *Subject  `gorm:"foreignKey:SubjectID;references:SubjectID"                           json:"subject,omitempty"`
	Timestamps
}

// TableName 指定表名
func (ClassSchedule) TableName() string { return "class_schedules" }

// Ref 投影引用
func (c *ClassSchedule) Ref() EntryRef {
	return EntryRef{Category: CategoryClass, ReferenceID: c.ClassSchedID}
}

// OccurrenceOn 某个日期上的一次课
func (c *ClassSchedule) OccurrenceOn(date time.Time) TimeInterval {
	return NewInterval(date, c.StartTime, c.EndTime)
}

// Describe 课程以科目代码展示，无状态
func (c *ClassSchedule) Describe() RelatedInfo {
	if c.Subject == nil {
		return UnknownInfo()
	}
	return RelatedInfo{Name: c.Subject.SubjectCode}
}
