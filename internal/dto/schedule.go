package dto

// ── 任务 / 事件 / 活动 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	SubjectID string  `json:"subject_id" binding:"required,uuid"`
	TaskName  string  `json:"task_name"  binding:"required,max=255"`
	TaskDesc  *string `json:"task_desc"  binding:"omitempty,max=5000"`
	IntervalRequest
	Deadline string `json:"deadline" binding:"required"` // "2006-01-02T15:04" 或 RFC3339
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
	TaskName  *string `json:"task_name"  binding:"omitempty,min=1,max=255"`
	TaskDesc  *string `json:"task_desc"  binding:"omitempty,max=5000"`
	IntervalPatch
	Deadline *string `json:"deadline"`
	Status   *string `json:"status" binding:"omitempty,oneof=Pending Completed"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	TaskID      string  `json:"task_id"`
	SubjectID   string  `json:"subject_id"`
	SubjectCode string  `json:"subject_code,omitempty"`
	TaskName    string  `json:"task_name"`
	TaskDesc    *string `json:"task_desc"`
	IntervalResponse
	Deadline     string `json:"deadline"`
	Status       string `json:"status"`
	ReminderSent bool   `json:"reminder_sent"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// CreateEventRequest 创建事件请求
type CreateEventRequest struct {
	EventName string  `json:"event_name" binding:"required,max=255"`
	EventDesc *string `json:"event_desc" binding:"omitempty,max=5000"`
	Location  string  `json:"location"   binding:"required,max=255"`
	EventType string  `json:"event_type" binding:"required,oneof=Academic Personal"`
	IntervalRequest
}

// UpdateEventRequest 更新事件请求
type UpdateEventRequest struct {
	EventName *string `json:"event_name" binding:"omitempty,min=1,max=255"`
	EventDesc *string `json:"event_desc" binding:"omitempty,max=5000"`
	Location  *string `json:"location"   binding:"omitempty,min=1,max=255"`
	EventType *string `json:"event_type" binding:"omitempty,oneof=Academic Personal"`
	IntervalPatch
}

// EventResponse 事件响应
type EventResponse struct {
	EventID   string  `json:"event_id"`
	EventName string  `json:"event_name"`
	EventDesc *string `json:"event_desc"`
	Location  string  `json:"location"`
	EventType string  `json:"event_type"`
	IntervalResponse
	ReminderSent bool   `json:"reminder_sent"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// CreateActivityRequest 创建活动请求
type CreateActivityRequest struct {
	ActivityName string  `json:"activity_name" binding:"required,max=255"`
	ActivityDesc *string `json:"activity_desc" binding:"omitempty,max=5000"`
	IntervalRequest
}

// UpdateActivityRequest 更新活动请求
type UpdateActivityRequest struct {
	ActivityName *string `json:"activity_name" binding:"omitempty,min=1,max=255"`
	ActivityDesc *string `json:"activity_desc" binding:"omitempty,max=5000"`
	IntervalPatch
	Status *string `json:"status" binding:"omitempty,oneof=Pending Completed"`
}

// ActivityResponse 活动响应
type ActivityResponse struct {
	ActivityID   string  `json:"activity_id"`
	ActivityName string  `json:"activity_name"`
	ActivityDesc *string `json:"activity_desc"`
	IntervalResponse
	Status       string `json:"status"`
	ReminderSent bool   `json:"reminder_sent"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
