package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/service"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// ClassScheduleHandler 课程表模块 Handler
type ClassScheduleHandler struct {
	svc service.ClassScheduleService
}

// NewClassScheduleHandler 创建 ClassScheduleHandler 实例
func NewClassScheduleHandler(svc service.ClassScheduleService) *ClassScheduleHandler {
	return &ClassScheduleHandler{svc: svc}
}

// CreateClassSchedule 创建每周课程，按学期展开为日程条目
// POST /api/v1/class-schedules
func (h *ClassScheduleHandler) CreateClassSchedule(c *gin.Context) {
	var req dto.CreateClassScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListClassSchedules 课程列表
// GET /api/v1/class-schedules
func (h *ClassScheduleHandler) ListClassSchedules(c *gin.Context) {
	var q dto.ClassScheduleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.svc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": resp})
}

// GetClassSchedule 课程详情
// GET /api/v1/class-schedules/:id
func (h *ClassScheduleHandler) GetClassSchedule(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateClassSchedule 更新课程，重新生成日程条目
// PATCH /api/v1/class-schedules/:id
func (h *ClassScheduleHandler) UpdateClassSchedule(c *gin.Context) {
	var req dto.UpdateClassScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteClassSchedule 删除课程
// DELETE /api/v1/class-schedules/:id
func (h *ClassScheduleHandler) DeleteClassSchedule(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), studentID); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportICS 导入 ICS 课表
// POST /api/v1/class-schedules/import
//
// multipart/form-data: file=<.ics>, semester_id=<uuid>
// 每个课程单独检测冲突，失败的课程不影响其他课程
func (h *ClassScheduleHandler) ImportICS(c *gin.Context) {
	semesterID := c.PostForm("semester_id")
	if semesterID == "" {
		response.BadRequest(c, codeValidation, "semester_id 不能为空")
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, codeValidation, "请上传 ICS 文件")
		return
	}
	defer file.Close()

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.svc.ImportICS(c.Request.Context(), semesterID, file, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, resp)
}
