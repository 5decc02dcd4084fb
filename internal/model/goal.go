package model

// 目标类型
const (
	GoalTypeAcademic = "Academic" // 必须关联学期
	GoalTypePersonal = "Personal" // 不得关联学期
)

// Goal 目标，对应 goals
type Goal struct {
	GoalID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"goal_id"`
	StudentID   string  `gorm:"type:uuid;not null"                             json:"student_id"`
	GoalName    string  `gorm:"type:varchar(255);not null"                     json:"goal_name"`
	GoalDesc    string  `gorm:"type:text;not null"                             json:"goal_desc"`
	Timeframe   string  `gorm:"type:varchar(10);not null"                      json:"timeframe"` // Daily | Weekly | Monthly
	TargetHours float64 `gorm:"type:numeric(6,2);not null"                     json:"target_hours"`
	GoalType    string  `gorm:"type:varchar(10);not null"                      json:"goal_type"`
	SemesterID  *string `gorm:"type:uuid"                                      json:"semester_id"`
	Timestamps
}

// TableName 指定表名
func (Goal) TableName() string { return "goals" }

// GoalSchedule 目标时段，对应 goal_schedules
type GoalSchedule struct {
	GoalScheduleID string `gorm:"column:goalschedule_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"goalschedule_id"`
	StudentID      string `gorm:"type:uuid;not null"                                                    json:"student_id"`
	GoalID         string `gorm:"type:uuid;not null;index"                                              json:"goal_id"`
	TimeInterval
	Status Status `gorm:"type:varchar(10);not null;default:'Pending'" json:"status"`
	Goal   *Goal  `gorm:"foreignKey:GoalID;references:GoalID"         json:"goal,omitempty"`
	Timestamps
}

// TableName 指定表名
func (GoalSchedule) TableName() string { return "goal_schedules" }

func (g *GoalSchedule) Ref() EntryRef {
	return EntryRef{Category: CategoryGoal, ReferenceID: g.GoalScheduleID}
}
func (g *GoalSchedule) OwnerID() string    { return g.StudentID }
func (g *GoalSchedule) Slot() TimeInterval { return g.TimeInterval }

// Describe 以所属目标名展示，状态取时段自身
func (g *GoalSchedule) Describe() RelatedInfo {
	if g.Goal == nil {
		return RelatedInfo{Name: "Unknown", Status: statusPtr(g.Status)}
	}
	return RelatedInfo{Name: g.Goal.GoalName, Status: statusPtr(g.Status)}
}
