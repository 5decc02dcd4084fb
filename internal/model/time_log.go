package model

import "time"

// TaskTimeLog 任务计时记录，对应 task_time_logs，每个任务每天至多一条
type TaskTimeLog struct {
	TaskLogID       string    `gorm:"column:tasklog_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"tasklog_id"`
	StudentID       string    `gorm:"type:uuid;not null"                                               json:"student_id"`
	TaskID          string    `gorm:"type:uuid;not null"                                               json:"task_id"`
	StartTime       ClockTime `gorm:"type:time;not null"                                               json:"start_time"`
	EndTime         ClockTime `gorm:"type:time;not null"                                               json:"end_time"`
	DurationSeconds int       `gorm:"not null"                                                         json:"duration_seconds"`
	DateLogged      time.Time `gorm:"type:date;not null"                                               json:"date_logged"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime"                                          json:"created_at"`
}

// TableName 指定表名
func (TaskTimeLog) TableName() string { return "task_time_logs" }

// ActivityTimeLog 活动计时记录，对应 activity_time_logs
type ActivityTimeLog struct {
	ActivityLogID   string    `gorm:"column:activitylog_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"activitylog_id"`
	StudentID       string    `gorm:"type:uuid;not null"                                                   json:"student_id"`
	ActivityID      string    `gorm:"type:uuid;not null"                                                   json:"activity_id"`
	StartTime       ClockTime `gorm:"type:time;not null"                                                   json:"start_time"`
	EndTime         ClockTime `gorm:"type:time;not null"                                                   json:"end_time"`
	DurationSeconds int       `gorm:"not null"                                                             json:"duration_seconds"`
	DateLogged      time.Time `gorm:"type:date;not null"                                                   json:"date_logged"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime"                                              json:"created_at"`
}

// TableName 指定表名
func (ActivityTimeLog) TableName() string { return "activity_time_logs" }

// GoalProgress 目标进度记录，对应 goal_progress，每个目标时段每天至多一条
type GoalProgress struct {
	GoalProgressID   string    `gorm:"column:goalprogress_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"goalprogress_id"`
	StudentID        string    `gorm:"type:uuid;not null"                                                    json:"student_id"`
	GoalID           string    `gorm:"type:uuid;not null"                                                    json:"goal_id"`
	GoalScheduleID   string    `gorm:"column:goalschedule_id;type:uuid;not null"                             json:"goalschedule_id"`
	SessionDate      time.Time `gorm:"type:date;not null"                                                    json:"session_date"`
	SessionStartTime ClockTime `gorm:"type:time;not null"                                                    json:"session_start_time"`
	SessionEndTime   ClockTime `gorm:"type:time;not null"                                                    json:"session_end_time"`
	DurationSeconds  int       `gorm:"not null"                                                              json:"duration_seconds"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime"                                               json:"created_at"`
}

// TableName 指定表名
func (GoalProgress) TableName() string { return "goal_progress" }

// SleepLog 睡眠记录，对应 sleep_logs
type SleepLog struct {
	SleepLogID      string    `gorm:"column:sleeplog_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"sleeplog_id"`
	StudentID       string    `gorm:"type:uuid;not null"                                                json:"student_id"`
	StartTime       ClockTime `gorm:"type:time;not null"                                                json:"start_time"`
	EndTime         ClockTime `gorm:"type:time;not null"                                                json:"end_time"`
	DurationSeconds int       `gorm:"not null"                                                          json:"duration_seconds"`
	DateLogged      time.Time `gorm:"type:date;not null"                                                json:"date_logged"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime"                                           json:"created_at"`
}

// TableName 指定表名
func (SleepLog) TableName() string { return "sleep_logs" }
