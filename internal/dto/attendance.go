package dto

// ── 出勤 DTO ──

// MarkEventAttendanceRequest 标记事件出勤；已有记录时更新
type MarkEventAttendanceRequest struct {
	EventID     string `json:"event_id"     binding:"required,uuid"`
	Date        string `json:"date"         binding:"required,date"`
	HasAttended bool   `json:"has_attended"`
}

// UpdateEventAttendanceRequest 更新事件出勤
type UpdateEventAttendanceRequest struct {
	HasAttended bool `json:"has_attended"`
}

// EventAttendanceResponse 事件出勤响应
type EventAttendanceResponse struct {
	AttEventsID string `json:"att_events_id"`
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name,omitempty"`
	Date        string `json:"date"`
	HasAttended bool   `json:"has_attended"`
}

// ClassAttendanceRequest 课程出勤；status 为空时默认 "Did Not Attend"
type ClassAttendanceRequest struct {
	ClassSchedID   string `json:"classsched_id"   binding:"required,uuid"`
	AttendanceDate string `json:"attendance_date" binding:"required,date"`
	Status         string `json:"status"          binding:"omitempty,oneof='Did Not Attend' Attended Excused"`
}

// MarkClassAttendanceRequest 批量课程出勤
type MarkClassAttendanceRequest struct {
	Records []ClassAttendanceRequest `json:"records" binding:"required,min=1,max=200,dive"`
}

// ClassAttendanceListQuery 课程出勤查询
type ClassAttendanceListQuery struct {
	DateRangeQuery
	ClassSchedID string `form:"classsched_id" binding:"omitempty,uuid"`
}

// ClassAttendanceResponse 课程出勤响应
type ClassAttendanceResponse struct {
	AttendanceID   string `json:"attendance_id"`
	ClassSchedID   string `json:"classsched_id"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
}
