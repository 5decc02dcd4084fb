package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/service"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// GoalHandler 目标模块 HTTP 处理器
type GoalHandler struct {
	goalSvc service.GoalService
}

// NewGoalHandler 创建 GoalHandler
func NewGoalHandler(goalSvc service.GoalService) *GoalHandler {
	return &GoalHandler{goalSvc: goalSvc}
}

// CreateGoal 创建目标
// POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	goal, err := h.goalSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, goal)
}

// ListGoals 目标列表
// GET /api/v1/goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	var q dto.GoalListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	goals, err := h.goalSvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": goals})
}

// GetGoal 目标详情
// GET /api/v1/goals/:id
func (h *GoalHandler) GetGoal(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	goal, err := h.goalSvc.GetByID(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, goal)
}

// UpdateGoal 更新目标
// PATCH /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	goal, err := h.goalSvc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, goal)
}

// DeleteGoal 删除目标，其下时段一并删除
// DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.goalSvc.Delete(c.Request.Context(), c.Param("id"), studentID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 目标时段 ──

// GoalScheduleHandler 目标时段 HTTP 处理器
type GoalScheduleHandler struct {
	goalSchedSvc service.GoalScheduleService
}

// NewGoalScheduleHandler 创建 GoalScheduleHandler
func NewGoalScheduleHandler(goalSchedSvc service.GoalScheduleService) *GoalScheduleHandler {
	return &GoalScheduleHandler{goalSchedSvc: goalSchedSvc}
}

// CreateGoalSchedule 创建目标时段
// POST /api/v1/goal-schedules
func (h *GoalScheduleHandler) CreateGoalSchedule(c *gin.Context) {
	var req dto.CreateGoalScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	gs, err := h.goalSchedSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, gs)
}

// ListGoalSchedules 目标时段列表，可按 goal_id 过滤
// GET /api/v1/goal-schedules
func (h *GoalScheduleHandler) ListGoalSchedules(c *gin.Context) {
	var q dto.GoalScheduleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	list, err := h.goalSchedSvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetGoalSchedule 目标时段详情
// GET /api/v1/goal-schedules/:id
func (h *GoalScheduleHandler) GetGoalSchedule(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	gs, err := h.goalSchedSvc.GetByID(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gs)
}

// UpdateGoalSchedule 更新目标时段
// PATCH /api/v1/goal-schedules/:id
func (h *GoalScheduleHandler) UpdateGoalSchedule(c *gin.Context) {
	var req dto.UpdateGoalScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	gs, err := h.goalSchedSvc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gs)
}

// DeleteGoalSchedule 删除目标时段
// DELETE /api/v1/goal-schedules/:id
func (h *GoalScheduleHandler) DeleteGoalSchedule(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.goalSchedSvc.Delete(c.Request.Context(), c.Param("id"), studentID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
