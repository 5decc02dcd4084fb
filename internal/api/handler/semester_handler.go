package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/service"
	"github.com/jakkusu1/planma-app/pkg/response"
)

// SemesterHandler 学期模块 HTTP 处理器
type SemesterHandler struct {
	semesterSvc service.SemesterService
}

// NewSemesterHandler 创建 SemesterHandler
func NewSemesterHandler(semesterSvc service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc}
}

// ListSemesters 获取学期列表，支持按学年、年级、学期名过滤
// GET /api/v1/semesters
func (h *SemesterHandler) ListSemesters(c *gin.Context) {
	var q dto.SemesterListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	semesters, err := h.semesterSvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": semesters})
}

// GetSemester 获取学期详情
// GET /api/v1/semesters/:id
func (h *SemesterHandler) GetSemester(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	semester, err := h.semesterSvc.GetByID(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, semester)
}

// CreateSemester 创建学期
// POST /api/v1/semesters
func (h *SemesterHandler) CreateSemester(c *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	semester, err := h.semesterSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, semester)
}

// UpdateSemester 更新学期
// PATCH /api/v1/semesters/:id
func (h *SemesterHandler) UpdateSemester(c *gin.Context) {
	var req dto.UpdateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	semester, err := h.semesterSvc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, semester)
}

// DeleteSemester 删除学期，课程与科目级联删除
// DELETE /api/v1/semesters/:id
func (h *SemesterHandler) DeleteSemester(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.semesterSvc.Delete(c.Request.Context(), c.Param("id"), studentID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 科目 ──

// SubjectHandler 科目 HTTP 处理器；科目由课程创建时隐式生成
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// ListSubjects 科目列表
// GET /api/v1/subjects
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	var q dto.SubjectListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	subjects, err := h.subjectSvc.List(c.Request.Context(), &q, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": subjects})
}

// GetSubjectByCode 按科目代码查询
// GET /api/v1/subjects/code/:code
func (h *SubjectHandler) GetSubjectByCode(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	subject, err := h.subjectSvc.GetByCode(c.Request.Context(), c.Param("code"), studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, subject)
}

// UpdateSubject 修改科目名称
// PATCH /api/v1/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	subject, err := h.subjectSvc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, subject)
}
