package dto

// ── 通用请求 ──

// IntervalRequest 时间段请求字段，日期 "YYYY-MM-DD"，时刻 "HH:MM" 或 "HH:MM:SS"
type IntervalRequest struct {
	ScheduledDate      string `json:"scheduled_date"       binding:"required,date"`
	ScheduledStartTime string `json:"scheduled_start_time" binding:"required,clock"`
	ScheduledEndTime   string `json:"scheduled_end_time"   binding:"required,clock"`
}

// IntervalPatch 时间段部分更新，未提供的字段保持原值
type IntervalPatch struct {
	ScheduledDate      *string `json:"scheduled_date"       binding:"omitempty,date"`
	ScheduledStartTime *string `json:"scheduled_start_time" binding:"omitempty,clock"`
	ScheduledEndTime   *string `json:"scheduled_end_time"   binding:"omitempty,clock"`
}

// DateRangeQuery 日期范围查询参数（含首尾）
type DateRangeQuery struct {
	DateFrom string `form:"date_from" binding:"omitempty,date"`
	DateTo   string `form:"date_to"   binding:"omitempty,date"`
}

// ScheduleListQuery 可排程实体列表查询参数
type ScheduleListQuery struct {
	DateRangeQuery
	Status string `form:"status" binding:"omitempty,oneof=Pending Completed"`
	When   string `form:"when"   binding:"omitempty,oneof=upcoming past"` // 相对日程时区的今天
}

// ── 通用响应 ──

// IntervalResponse 时间段响应字段
type IntervalResponse struct {
	ScheduledDate      string `json:"scheduled_date"`
	ScheduledStartTime string `json:"scheduled_start_time"`
	ScheduledEndTime   string `json:"scheduled_end_time"`
}

// DeletedResponse 批量删除结果
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// RelatedInfoResponse 日程条目关联实体的展示信息
type RelatedInfoResponse struct {
	Name   string  `json:"name"`
	Status *string `json:"status"`
}
