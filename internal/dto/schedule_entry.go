package dto

// ── 统一日程 DTO ──

// ScheduleEntryListQuery 日程条目列表查询
type ScheduleEntryListQuery struct {
	DateRangeQuery
	CategoryType string `form:"category_type" binding:"omitempty,category"`
}

// EntryRefQuery (category_type, reference_id) 查询参数
type EntryRefQuery struct {
	CategoryType string `form:"category_type" binding:"required,category"`
	ReferenceID  string `form:"reference_id"  binding:"required,uuid"`
}

// EntryRefRequest 批量查询中的单个引用
type EntryRefRequest struct {
	CategoryType string `json:"category_type" binding:"required,category"`
	ReferenceID  string `json:"reference_id"  binding:"required,uuid"`
}

// BulkFilterRequest 批量按引用查询
type BulkFilterRequest struct {
	Filters []EntryRefRequest `json:"filters" binding:"required,min=1,max=200,dive"`
}

// ScheduleEntryResponse 日程条目响应
type ScheduleEntryResponse struct {
	EntryID      string `json:"entry_id"`
	CategoryType string `json:"category_type"`
	ReferenceID  string `json:"reference_id"`
	IntervalResponse
	RelatedInfo *RelatedInfoResponse `json:"related_info,omitempty"`
}

// EntryFilterResponse 单个引用的展示信息与条目
type EntryFilterResponse struct {
	CategoryType string                  `json:"category_type"`
	ReferenceID  string                  `json:"reference_id"`
	RelatedInfo  RelatedInfoResponse     `json:"related_info"`
	Entries      []ScheduleEntryResponse `json:"entries"`
}

// ── 仪表盘 ──

// DashboardResponse 仪表盘计数
type DashboardResponse struct {
	SelectedSemesterID     *string `json:"selected_semester_id"`
	ClassScheduleCount     int64   `json:"class_schedule_count"`
	PendingTasksCount      int64   `json:"pending_tasks_count"`
	UpcomingEventsCount    int64   `json:"upcoming_events_count"`
	PendingActivitiesCount int64   `json:"pending_activities_count"`
	GoalsCount             int64   `json:"goals_count"`
}

// ── 导出 ──

// ExportQuery 导出参数，日期范围必填
type ExportQuery struct {
	DateFrom     string `form:"date_from"     binding:"required,date"`
	DateTo       string `form:"date_to"       binding:"required,date"`
	CategoryType string `form:"category_type" binding:"omitempty,category"`
}
