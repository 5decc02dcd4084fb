package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/scheduling"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// ── 业务错误码 ──
//
// 1xxxx 通用；按错误分类而非模块编号，具体原因放在 message

const (
	codeValidation = 10001
	codeNotFound   = 10404
	codeForbidden  = 10003
	codeDuplicate  = 20001
	codeOverlap    = 20002
	codeIntegrity  = 20003
)

// handleError 按错误分类映射 HTTP 响应
//
// 冲突类错误带 error_type 供客户端区分；重叠错误的 details 为冲突日期
func handleError(c *gin.Context, err error) {
	switch pkgerrors.Kind(err) {
	case pkgerrors.ErrValidation:
		response.BadRequest(c, codeValidation, err.Error())
	case pkgerrors.ErrDuplicate:
		response.Conflict(c, codeDuplicate, "duplicate", err.Error(), "")
	case pkgerrors.ErrOverlap:
		details := ""
		var oe *scheduling.OverlapError
		if errors.As(err, &oe) {
			details = oe.Date.Format(model.DateLayout)
		}
		response.Conflict(c, codeOverlap, "overlap", err.Error(), details)
	case pkgerrors.ErrNotFound:
		response.NotFound(c, codeNotFound, err.Error())
	case pkgerrors.ErrForbidden:
		response.Forbidden(c, codeForbidden, err.Error())
	case pkgerrors.ErrIntegrity:
		response.Error(c, http.StatusBadRequest, codeIntegrity, pkgerrors.ErrIntegrity.Error())
	default:
		response.InternalError(c)
	}
}

// badRequest 参数绑定失败
func badRequest(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, codeValidation, "参数校验失败", err.Error())
}
