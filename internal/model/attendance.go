package model

import "time"

// 课程出勤状态
const (
	AttendanceDidNotAttend = "Did Not Attend"
	AttendanceAttended     = "Attended"
	AttendanceExcused      = "Excused"
)

// AttendedEvent 事件出勤，对应 attended_events，每个事件每个学生一条
type AttendedEvent struct {
	AttEventsID string    `gorm:"column:att_events_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"att_events_id"`
	StudentID   string    `gorm:"type:uuid;not null"                                                  json:"student_id"`
	EventID     string    `gorm:"type:uuid;not null"                                                  json:"event_id"`
	Date        time.Time `gorm:"type:date;not null"                                                  json:"date"`
	HasAttended bool      `gorm:"not null;default:false"                                              json:"has_attended"`
	Event       *Event    `gorm:"foreignKey:EventID;references:EventID"                               json:"event,omitempty"`
	Timestamps
}

// TableName 指定表名
func (AttendedEvent) TableName() string { return "attended_events" }

// AttendedClass 课程出勤，对应 attended_classes，每次课一条
type AttendedClass struct {
	AttendanceID   string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                     json:"attendance_id"`
	StudentID      string         `gorm:"type:uuid;not null"                                                 json:"student_id"`
	ClassSchedID   string         `gorm:"column:classsched_id;type:uuid;not null"                            json:"classsched_id"`
	AttendanceDate time.Time      `gorm:"type:date;not null"                                                 json:"attendance_date"`
	Status         string         `gorm:"type:varchar(20);not null;default:'Did Not Attend'"                 json:"status"`
	ClassSchedule  *ClassSchedule `gorm:"foreignKey:ClassSchedID;references:ClassSchedID"             json:"class_schedule,omitempty"`
	Timestamps
}

// TableName 指定表名
func (AttendedClass) TableName() string { return "attended_classes" }
