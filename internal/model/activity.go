package model

// Activity 活动，对应 activities
type Activity struct {
	ActivityID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_id"`
	StudentID    string  `gorm:"type:uuid;not null"                             json:"student_id"`
	ActivityName string  `gorm:"type:varchar(255);not null"                     json:"activity_name"`
	ActivityDesc *string `gorm:"type:text"                                      json:"activity_desc"`
	TimeInterval
	Status       Status `gorm:"type:varchar(10);not null;default:'Pending'" json:"status"`
	ReminderSent bool   `gorm:"not null;default:false"                     json:"reminder_sent"`
	Timestamps
}

// TableName 指定表名
func (Activity) TableName() string { return "activities" }

func (a *Activity) Ref() EntryRef {
	return EntryRef{Category: CategoryActivity, ReferenceID: a.ActivityID}
}
func (a *Activity) OwnerID() string      { return a.StudentID }
func (a *Activity) Slot() TimeInterval   { return a.TimeInterval }
func (a *Activity) IsReminderSent() bool { return a.ReminderSent }
func (a *Activity) ClearReminder()       { a.ReminderSent = false }

// Describe 活动名 + 状态
func (a *Activity) Describe() RelatedInfo {
	return RelatedInfo{Name: a.ActivityName, Status: statusPtr(a.Status)}
}
