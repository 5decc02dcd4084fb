package dto

// ── 目标模块 DTO ──

// CreateGoalRequest 创建目标请求；Academic 目标必须提供 semester_id，Personal 不得提供
type CreateGoalRequest struct {
	GoalName    string  `json:"goal_name"    binding:"required,max=255"`
	GoalDesc    string  `json:"goal_desc"    binding:"required,max=5000"`
	Timeframe   string  `json:"timeframe"    binding:"required,oneof=Daily Weekly Monthly"`
	TargetHours float64 `json:"target_hours" binding:"required,gt=0,lte=9999"`
	GoalType    string  `json:"goal_type"    binding:"required,oneof=Academic Personal"`
	SemesterID  *string `json:"semester_id"  binding:"omitempty,uuid"`
}

// UpdateGoalRequest 更新目标请求
type UpdateGoalRequest struct {
	GoalName    *string  `json:"goal_name"    binding:"omitempty,min=1,max=255"`
	GoalDesc    *string  `json:"goal_desc"    binding:"omitempty,max=5000"`
	Timeframe   *string  `json:"timeframe"    binding:"omitempty,oneof=Daily Weekly Monthly"`
	TargetHours *float64 `json:"target_hours" binding:"omitempty,gt=0,lte=9999"`
	GoalType    *string  `json:"goal_type"    binding:"omitempty,oneof=Academic Personal"`
	SemesterID  *string  `json:"semester_id"  binding:"omitempty,uuid"`
	// ClearSemester 置为 true 时解除学期关联（转为 Personal 时使用）
	ClearSemester bool `json:"clear_semester"`
}

// GoalListQuery 目标列表过滤条件
type GoalListQuery struct {
	SemesterID string `form:"semester_id" binding:"omitempty,uuid"`
	GoalType   string `form:"goal_type"   binding:"omitempty,oneof=Academic Personal"`
}

// GoalResponse 目标响应
type GoalResponse struct {
	GoalID      string  `json:"goal_id"`
	GoalName    string  `json:"goal_name"`
	GoalDesc    string  `json:"goal_desc"`
	Timeframe   string  `json:"timeframe"`
	TargetHours float64 `json:"target_hours"`
	GoalType    string  `json:"goal_type"`
	SemesterID  *string `json:"semester_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ── 目标时段 ──

// CreateGoalScheduleRequest 创建目标时段请求
type CreateGoalScheduleRequest struct {
	GoalID string `json:"goal_id" binding:"required,uuid"`
	IntervalRequest
}

// UpdateGoalScheduleRequest 更新目标时段请求
type UpdateGoalScheduleRequest struct {
	IntervalPatch
	Status *string `json:"status" binding:"omitempty,oneof=Pending Completed"`
}

// GoalScheduleListQuery 目标时段列表过滤条件
type GoalScheduleListQuery struct {
	GoalID string `form:"goal_id" binding:"omitempty,uuid"`
	ScheduleListQuery
}

// GoalScheduleResponse 目标时段响应
type GoalScheduleResponse struct {
	GoalScheduleID string `json:"goalschedule_id"`
	GoalID         string `json:"goal_id"`
	GoalName       string `json:"goal_name,omitempty"`
	IntervalResponse
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
