package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/service"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// AttendanceHandler 出勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// MarkEvent 标记事件出勤，新建返回 201，已有记录更新返回 200
// POST /api/v1/attended-events
func (h *AttendanceHandler) MarkEvent(c *gin.Context) {
	var req dto.MarkEventAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, created, err := h.attendanceSvc.MarkEvent(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	if created {
		response.Created(c, resp)
		return
	}
	response.OK(c, resp)
}

// UpdateEvent 更新事件出勤
// PATCH /api/v1/attended-events/:id
func (h *AttendanceHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.UpdateEvent(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListEvents 事件出勤列表
// GET /api/v1/attended-events
func (h *AttendanceHandler) ListEvents(c *gin.Context) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.ListEvents(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": resp})
}

// MarkClasses 批量标记课程出勤
// POST /api/v1/attended-classes
func (h *AttendanceHandler) MarkClasses(c *gin.Context) {
	var req dto.MarkClassAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.MarkClasses(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": resp})
}

// ListClasses 课程出勤列表
// GET /api/v1/attended-classes
func (h *AttendanceHandler) ListClasses(c *gin.Context) {
	var q dto.ClassAttendanceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.ListClasses(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": resp})
}
