package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/service"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// ═══════════════════════════════════════════════════════════
// 任务
// ═══════════════════════════════════════════════════════════

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// CreateTask 创建任务
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, task)
}

// ListTasks 任务列表，支持 when=upcoming|past
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var q dto.ScheduleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	tasks, err := h.taskSvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// GetTask 任务详情
// GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.GetByID(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, task)
}

// UpdateTask 更新任务
// PATCH /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, task)
}

// DeleteTask 删除任务及其日程条目
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), c.Param("id"), studentID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ═══════════════════════════════════════════════════════════
// 事件
// ═══════════════════════════════════════════════════════════

// EventHandler 事件模块 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// CreateEvent 创建事件
// POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, event)
}

// ListEvents 事件列表
// GET /api/v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	var q dto.ScheduleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// GetEvent 事件详情
// GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.GetByID(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, event)
}

// UpdateEvent 更新事件
// PATCH /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, event)
}

// DeleteEvent 删除事件
// DELETE /api/v1/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), c.Param("id"), studentID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ═══════════════════════════════════════════════════════════
// 活动
// ═══════════════════════════════════════════════════════════

// ActivityHandler 活动模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// CreateActivity 创建活动
// POST /api/v1/activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	activity, err := h.activitySvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, activity)
}

// ListActivities 活动列表
// GET /api/v1/activities
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var q dto.ScheduleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	activities, err := h.activitySvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": activities})
}

// GetActivity 活动详情
// GET /api/v1/activities/:id
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	activity, err := h.activitySvc.GetByID(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, activity)
}

// UpdateActivity 更新活动
// PATCH /api/v1/activities/:id
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	activity, err := h.activitySvc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, activity)
}

// DeleteActivity 删除活动
// DELETE /api/v1/activities/:id
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.activitySvc.Delete(c.Request.Context(), c.Param("id"), studentID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
