package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/service"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// ScheduleEntryHandler 统一日程视图与仪表盘 HTTP 处理器
type ScheduleEntryHandler struct {
	entrySvc     service.ScheduleEntryService
	dashboardSvc service.DashboardService
}

// NewScheduleEntryHandler 创建 ScheduleEntryHandler
func NewScheduleEntryHandler(entrySvc service.ScheduleEntryService, dashboardSvc service.DashboardService) *ScheduleEntryHandler {
	return &ScheduleEntryHandler{entrySvc: entrySvc, dashboardSvc: dashboardSvc}
}

// ListEntries 日程条目列表，附带关联实体展示信息
// GET /api/v1/schedule-entries
func (h *ScheduleEntryHandler) ListEntries(c *gin.Context) {
	var q dto.ScheduleEntryListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	list, err := h.entrySvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Filter 按 (category_type, reference_id) 查询条目
// GET /api/v1/schedule-entries/filter
func (h *ScheduleEntryHandler) Filter(c *gin.Context) {
	var q dto.EntryRefQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.entrySvc.Filter(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, resp)
}

// BulkFilter 批量按引用查询
// POST /api/v1/schedule-entries/bulk-filter
func (h *ScheduleEntryHandler) BulkFilter(c *gin.Context) {
	var req dto.BulkFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	list, err := h.entrySvc.BulkFilter(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// DeleteFiltered 删除引用对应的全部条目
// DELETE /api/v1/schedule-entries/filter
func (h *ScheduleEntryHandler) DeleteFiltered(c *gin.Context) {
	var q dto.EntryRefQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.entrySvc.DeleteFiltered(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, resp)
}

// Dashboard 仪表盘计数
// GET /api/v1/dashboard?semester_id=xxx
func (h *ScheduleEntryHandler) Dashboard(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.dashboardSvc.Get(c.Request.Context(), c.Query("semester_id"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, resp)
}
