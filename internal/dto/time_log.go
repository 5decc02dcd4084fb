package dto

// ── 计时记录 DTO ──
//
// 单条与批量共用同一结构；批量请求按顺序写入，任一失败整体回滚

// TaskLogRequest 任务计时
type TaskLogRequest struct {
	TaskID     string `json:"task_id"     binding:"required,uuid"`
	StartTime  string `json:"start_time"  binding:"required,clock"`
	EndTime    string `json:"end_time"    binding:"required,clock"`
	Duration   string `json:"duration"    binding:"required"` // "HH:MM:SS"
	DateLogged string `json:"date_logged" binding:"required,date"`
}

// BatchTaskLogRequest 批量任务计时
type BatchTaskLogRequest struct {
	Logs []TaskLogRequest `json:"logs" binding:"required,min=1,max=100,dive"`
}

// ActivityLogRequest 活动计时
type ActivityLogRequest struct {
	ActivityID string `json:"activity_id" binding:"required,uuid"`
	StartTime  string `json:"start_time"  binding:"required,clock"`
	EndTime    string `json:"end_time"    binding:"required,clock"`
	Duration   string `json:"duration"    binding:"required"`
	DateLogged string `json:"date_logged" binding:"required,date"`
}

// BatchActivityLogRequest 批量活动计时
type BatchActivityLogRequest struct {
	Logs []ActivityLogRequest `json:"logs" binding:"required,min=1,max=100,dive"`
}

// GoalProgressRequest 目标进度
type GoalProgressRequest struct {
	GoalScheduleID   string `json:"goalschedule_id"    binding:"required,uuid"`
	SessionDate      string `json:"session_date"       binding:"required,date"`
	SessionStartTime string `json:"session_start_time" binding:"required,clock"`
	SessionEndTime   string `json:"session_end_time"   binding:"required,clock"`
	SessionDuration  string `json:"session_duration"   binding:"required"`
}

// BatchGoalProgressRequest 批量目标进度
type BatchGoalProgressRequest struct {
	Logs []GoalProgressRequest `json:"logs" binding:"required,min=1,max=100,dive"`
}

// SleepLogRequest 睡眠记录；start_time 晚于 end_time 表示跨夜
type SleepLogRequest struct {
	StartTime  string `json:"start_time"  binding:"required,clock"`
	EndTime    string `json:"end_time"    binding:"required,clock"`
	Duration   string `json:"duration"    binding:"required"`
	DateLogged string `json:"date_logged" binding:"required,date"`
}

// BatchSleepLogRequest 批量睡眠记录
type BatchSleepLogRequest struct {
	Logs []SleepLogRequest `json:"logs" binding:"required,min=1,max=100,dive"`
}

// ── 响应 ──

// TimeLogResponse 计时记录响应，RefID 为任务 / 活动 / 目标时段 ID
type TimeLogResponse struct {
	LogID      string `json:"log_id"`
	RefID      string `json:"ref_id"`
	GoalID     string `json:"goal_id,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Duration   string `json:"duration"`
	DateLogged string `json:"date_logged"`
}

// SleepLogResponse 睡眠记录响应
type SleepLogResponse struct {
	SleepLogID string `json:"sleeplog_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Duration   string `json:"duration"`
	DateLogged string `json:"date_logged"`
}
