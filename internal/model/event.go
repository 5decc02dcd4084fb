package model

// Event 自定义事件，对应 events
type Event struct {
	EventID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	StudentID string  `gorm:"type:uuid;not null"                             json:"student_id"`
	EventName string  `gorm:"type:varchar(255);not null"                     json:"event_name"`
	EventDesc *string `gorm:"type:text"                                      json:"event_desc"`
	Location  string  `gorm:"type:varchar(255);not null"                     json:"location"`
	EventType string  `gorm:"type:varchar(20);not null"                      json:"event_type"` // Academic | Personal
	TimeInterval
	ReminderSent bool `gorm:"not null;default:false" json:"reminder_sent"`
	Timestamps
}

// TableName 指定表名
func (Event) TableName() string { return "events" }

func (e *Event) Ref() EntryRef        { return EntryRef{Category: CategoryEvent, ReferenceID: e.EventID} }
func (e *Event) OwnerID() string      { return e.StudentID }
func (e *Event) Slot() TimeInterval   { return e.TimeInterval }
func (e *Event) IsReminderSent() bool { return e.ReminderSent }
func (e *Event) ClearReminder()       { e.ReminderSent = false }

// Describe 事件没有状态
func (e *Event) Describe() RelatedInfo {
	return RelatedInfo{Name: e.EventName}
}
