package dto

// ── 课程表模块 DTO ──

// CreateClassScheduleRequest 创建课程表请求
// 科目按 (subject_code, semester) 取或建，已存在时沿用原标题
type CreateClassScheduleRequest struct {
	SemesterID         string  `json:"semester_id"          binding:"required,uuid"`
	SubjectCode        string  `json:"subject_code"         binding:"required,max=20"`
	SubjectTitle       string  `json:"subject_title"        binding:"required,max=255"`
	DayOfWeek          string  `json:"day_of_week"          binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	ScheduledStartTime string  `json:"scheduled_start_time" binding:"required,clock"`
	ScheduledEndTime   string  `json:"scheduled_end_time"   binding:"required,clock"`
	Room               *string `json:"room"                 binding:"omitempty,max=100"`
}

// UpdateClassScheduleRequest 更新课程表请求；会重新生成该课程的全部日程条目
type UpdateClassScheduleRequest struct {
	SubjectCode        *string `json:"subject_code"         binding:"omitempty,min=1,max=20"`
	SubjectTitle       *string `json:"subject_title"        binding:"omitempty,min=1,max=255"`
	DayOfWeek          *string `json:"day_of_week"          binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	ScheduledStartTime *string `json:"scheduled_start_time" binding:"omitempty,clock"`
	ScheduledEndTime   *string `json:"scheduled_end_time"   binding:"omitempty,clock"`
	Room               *string `json:"room"                 binding:"omitempty,max=100"`
}

// ClassScheduleListQuery 课程表列表过滤条件
type ClassScheduleListQuery struct {
	SemesterID string `form:"semester_id" binding:"omitempty,uuid"`
}

// ClassScheduleResponse 课程表响应
type ClassScheduleResponse struct {
	ClassSchedID       string  `json:"classsched_id"`
	SubjectID          string  `json:"subject_id"`
	SubjectCode        string  `json:"subject_code"`
	SubjectTitle       string  `json:"subject_title"`
	SemesterID         string  `json:"semester_id"`
	DayOfWeek          string  `json:"day_of_week"`
	ScheduledStartTime string  `json:"scheduled_start_time"`
	ScheduledEndTime   string  `json:"scheduled_end_time"`
	Room               *string `json:"room"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ── iCalendar 导入 ──

// ImportClassesResult 单个 VEVENT 的导入结果
type ImportClassesResult struct {
	UID          string `json:"uid"`
	SubjectCode  string `json:"subject_code"`
	DayOfWeek    string `json:"day_of_week,omitempty"`
	ClassSchedID string `json:"classsched_id,omitempty"`
	ErrorType    string `json:"error_type,omitempty"` // duplicate | overlap | invalid
	Error        string `json:"error,omitempty"`
}

// ImportClassesResponse 导入汇总
type ImportClassesResponse struct {
	Total   int                   `json:"total"`
	Created int                   `json:"created"`
	Failed  int                   `json:"failed"`
	Results []ImportClassesResult `json:"results"`
}
