package model

import "time"

// Task 任务，对应 tasks
type Task struct {
	TaskID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	StudentID string  `gorm:"type:uuid;not null"                             json:"student_id"`
	SubjectID string  `gorm:"type:uuid;not null"                             json:"subject_id"`
	TaskName  string  `gorm:"type:varchar(255);not null"                     json:"task_name"`
	TaskDesc  *string `gorm:"type:text"                                      json:"task_desc"`
	TimeInterval
	Deadline     time.Time `gorm:"type:timestamptz;not null"                  json:"deadline"`
	Status       Status    `gorm:"type:varchar(10);not null;default:'Pending'" json:"status"`
	ReminderSent bool      `gorm:"not null;default:false"                     json:"reminder_sent"`
	Subject      *Subject  `gorm:"foreignKey:SubjectID;references:SubjectID"  json:"subject,omitempty"`
	Timestamps
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

func (t *Task) Ref() EntryRef        { return EntryRef{Category: CategoryTask, ReferenceID: t.TaskID} }
func (t *Task) OwnerID() string      { return t.StudentID }
func (t *Task) Slot() TimeInterval   { return t.TimeInterval }
func (t *Task) IsReminderSent() bool { return t.ReminderSent }
func (t *Task) ClearReminder()       { t.ReminderSent = false }

// Describe 任务名 + 状态
func (t *Task) Describe() RelatedInfo {
	return RelatedInfo{Name: t.TaskName, Status: statusPtr(t.Status)}
}
