package model

// ScheduleEntry 统一日程投影表，对应 schedule_entries
// 每个带时间段的源实体对应一行；课程表按学期内每个匹配日期各一行
type ScheduleEntry struct {
	EntryID      string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	StudentID    string   `gorm:"type:uuid;not null"                             json:"student_id"`
	CategoryType Category `gorm:"type:varchar(10);not null"                      json:"category_type"`
	ReferenceID  string   `gorm:"type:uuid;not null"                             json:"reference_id"`
	TimeInterval
	Timestamps
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// Ref 条目引用的源实体
func (e *ScheduleEntry) Ref() EntryRef {
	return EntryRef{Category: e.CategoryType, ReferenceID: e.ReferenceID}
}

// EntryRef (category, reference_id) 二元组
type EntryRef struct {
	Category    Category `json:"category_type"`
	ReferenceID string   `json:"reference_id"`
}

// Schedulable 拥有单一时间段、需要同步到投影表的源实体
type Schedulable interface {
	Ref() EntryRef
	OwnerID() string
	Slot() TimeInterval
}

// Remindable 带 reminder_sent 标记的实体；时间段后移时需要重新提醒
type Remindable interface {
	IsReminderSent() bool
	ClearReminder()
}

// NewScheduleEntry 由源实体生成投影行
func NewScheduleEntry(s Schedulable) *ScheduleEntry {
	ref := s.Ref()
	return &ScheduleEntry{
		StudentID:    s.OwnerID(),
		CategoryType: ref.Category,
		ReferenceID:  ref.ReferenceID,
		TimeInterval: s.Slot(),
	}
}

// RelatedInfo 日程条目关联实体的展示信息
type RelatedInfo struct {
	Name   string  `json:"name"`
	Status *string `json:"status"`
}

// UnknownInfo 引用已失效时的占位
func UnknownInfo() RelatedInfo {
	return RelatedInfo{Name: "Unknown"}
}

// Describer 可被日程视图反查展示信息的源实体
type Describer interface {
	Describe() RelatedInfo
}

func statusPtr(s Status) *string {
	v := string(s)
	return &v
}
