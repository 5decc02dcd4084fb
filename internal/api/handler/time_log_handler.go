package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/service"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// TimeLogHandler 计时与睡眠记录 HTTP 处理器
//
// 每类记录提供单条与批量两个入口，批量请求任一失败整体回滚
type TimeLogHandler struct {
	timeLogSvc  service.TimeLogService
	sleepLogSvc service.SleepLogService
}

// NewTimeLogHandler 创建 TimeLogHandler
func NewTimeLogHandler(timeLogSvc service.TimeLogService, sleepLogSvc service.SleepLogService) *TimeLogHandler {
	return &TimeLogHandler{timeLogSvc: timeLogSvc, sleepLogSvc: sleepLogSvc}
}

// ── 任务计时 ──

// LogTask 记录单个任务计时
// POST /api/v1/task-logs
func (h *TimeLogHandler) LogTask(c *gin.Context) {
	var req dto.TaskLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.logTasks(c, []dto.TaskLogRequest{req})
}

// LogTaskBatch 批量记录任务计时
// POST /api/v1/task-logs/batch
func (h *TimeLogHandler) LogTaskBatch(c *gin.Context) {
	var req dto.BatchTaskLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.logTasks(c, req.Logs)
}

func (h *TimeLogHandler) logTasks(c *gin.Context, logs []dto.TaskLogRequest) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.timeLogSvc.LogTasks(c.Request.Context(), logs, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"list": resp})
}

// ListTaskLogs 任务计时列表
// GET /api/v1/task-logs
func (h *TimeLogHandler) ListTaskLogs(c *gin.Context) {
	h.listLogs(c, h.timeLogSvc.ListTaskLogs)
}

// ── 活动计时 ──

// LogActivity 记录单个活动计时
// POST /api/v1/activity-logs
func (h *TimeLogHandler) LogActivity(c *gin.Context) {
	var req dto.ActivityLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.logActivities(c, []dto.ActivityLogRequest{req})
}

// LogActivityBatch 批量记录活动计时
// POST /api/v1/activity-logs/batch
func (h *TimeLogHandler) LogActivityBatch(c *gin.Context) {
	var req dto.BatchActivityLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.logActivities(c, req.Logs)
}

func (h *TimeLogHandler) logActivities(c *gin.Context, logs []dto.ActivityLogRequest) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.timeLogSvc.LogActivities(c.Request.Context(), logs, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"list": resp})
}

// ListActivityLogs 活动计时列表
// GET /api/v1/activity-logs
func (h *TimeLogHandler) ListActivityLogs(c *gin.Context) {
	h.listLogs(c, h.timeLogSvc.ListActivityLogs)
}

// ── 目标进度 ──

// LogGoalProgress 记录单个目标进度
// POST /api/v1/goal-progress
func (h *TimeLogHandler) LogGoalProgress(c *gin.Context) {
	var req dto.GoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.logGoalProgress(c, []dto.GoalProgressRequest{req})
}

// LogGoalProgressBatch 批量记录目标进度
// POST /api/v1/goal-progress/batch
func (h *TimeLogHandler) LogGoalProgressBatch(c *gin.Context) {
	var req dto.BatchGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.logGoalProgress(c, req.Logs)
}

func (h *TimeLogHandler) logGoalProgress(c *gin.Context, logs []dto.GoalProgressRequest) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.timeLogSvc.LogGoalProgress(c.Request.Context(), logs, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"list": resp})
}

// ListGoalProgress 目标进度列表
// GET /api/v1/goal-progress
func (h *TimeLogHandler) ListGoalProgress(c *gin.Context) {
	h.listLogs(c, h.timeLogSvc.ListGoalProgress)
}

// ── 睡眠 ──

// LogSleep 记录睡眠，单条或批量均使用 logs 数组
// POST /api/v1/sleep-logs
func (h *TimeLogHandler) LogSleep(c *gin.Context) {
	var req dto.BatchSleepLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.sleepLogSvc.Log(c.Request.Context(), req.Logs, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"list": resp})
}

// ListSleepLogs 睡眠记录列表
// GET /api/v1/sleep-logs
func (h *TimeLogHandler) ListSleepLogs(c *gin.Context) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.sleepLogSvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": resp})
}

// ── 内部辅助方法 ──

type listTimeLogsFunc func(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.TimeLogResponse, error)

func (h *TimeLogHandler) listLogs(c *gin.Context, list listTimeLogsFunc) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := list(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": resp})
}
