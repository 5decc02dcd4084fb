package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/scheduling"
	"github.com/jakkusu1/planma-app/internal/service"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
	"github.com/jakkusu1/planma-app/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

const (
	testStudentID = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	testSubjectID = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	jti       string
	expiresAt time.Time
	err       error
}

func (m *mockAuthService) Logout(_ context.Context, jti string, expiresAt time.Time) error {
	m.jti, m.expiresAt = jti, expiresAt
	return m.err
}

// ── Mock TaskService ──

type mockTaskService struct {
	createResult *dto.TaskResponse
	createErr    error
	lastReq      *dto.CreateTaskRequest
	lastStudent  string
	listQuery    *dto.ScheduleListQuery
	deleteErr    error
}

func (m *mockTaskService) Create(_ context.Context, req *dto.CreateTaskRequest, studentID string) (*dto.TaskResponse, error) {
	m.lastReq, m.lastStudent = req, studentID
	return m.createResult, m.createErr
}
func (m *mockTaskService) GetByID(_ context.Context, _, _ string) (*dto.TaskResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTaskService) List(_ context.Context, q *dto.ScheduleListQuery, _ string) ([]dto.TaskResponse, error) {
	m.listQuery = q
	return []dto.TaskResponse{}, nil
}
func (m *mockTaskService) Update(_ context.Context, _ string, _ *dto.UpdateTaskRequest, _ string) (*dto.TaskResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTaskService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock ClassScheduleService ──

type mockClassScheduleService struct {
	importResult  *dto.ImportClassesResponse
	importErr     error
	importSem     string
	importContent string
}

func (m *mockClassScheduleService) Create(_ context.Context, _ *dto.CreateClassScheduleRequest, _ string) (*dto.ClassScheduleResponse, error) {
	return nil, nil
}
func (m *mockClassScheduleService) GetByID(_ context.Context, _, _ string) (*dto.ClassScheduleResponse, error) {
	return nil, nil
}
func (m *mockClassScheduleService) List(_ context.Context, _ *dto.ClassScheduleListQuery, _ string) ([]dto.ClassScheduleResponse, error) {
	return nil, nil
}
func (m *mockClassScheduleService) Update(_ context.Context, _ string, _ *dto.UpdateClassScheduleRequest, _ string) (*dto.ClassScheduleResponse, error) {
	return nil, nil
}
func (m *mockClassScheduleService) Delete(_ context.Context, _, _ string) error { return nil }
func (m *mockClassScheduleService) ImportICS(_ context.Context, semesterID string, r io.Reader, _ string) (*dto.ImportClassesResponse, error) {
	b, _ := io.ReadAll(r)
	m.importSem, m.importContent = semesterID, string(b)
	return m.importResult, m.importErr
}

// ── Mock ScheduleEntryService / DashboardService ──

type mockScheduleEntryService struct {
	deleted int64
	lastRef *dto.EntryRefQuery
}

func (m *mockScheduleEntryService) List(_ context.Context, _ *dto.ScheduleEntryListQuery, _ string) ([]dto.ScheduleEntryResponse, error) {
	return []dto.ScheduleEntryResponse{}, nil
}
func (m *mockScheduleEntryService) Filter(_ context.Context, q *dto.EntryRefQuery, _ string) (*dto.EntryFilterResponse, error) {
	m.lastRef = q
	return &dto.EntryFilterResponse{CategoryType: q.CategoryType, ReferenceID: q.ReferenceID,
		RelatedInfo: dto.RelatedInfoResponse{Name: "Unknown"}}, nil
}
func (m *mockScheduleEntryService) BulkFilter(_ context.Context, _ *dto.BulkFilterRequest, _ string) ([]dto.EntryFilterResponse, error) {
	return nil, nil
}
func (m *mockScheduleEntryService) DeleteFiltered(_ context.Context, q *dto.EntryRefQuery, _ string) (*dto.DeletedResponse, error) {
	m.lastRef = q
	return &dto.DeletedResponse{Deleted: m.deleted}, nil
}

type mockDashboardService struct {
	semesterID string
}

func (m *mockDashboardService) Get(_ context.Context, semesterID, _ string) (*dto.DashboardResponse, error) {
	m.semesterID = semesterID
	return &dto.DashboardResponse{GoalsCount: 2}, nil
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportXLSX(_ context.Context, _ *dto.ExportQuery, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportICS(_ context.Context, _ *dto.ExportQuery, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set(CtxStudentID, testStudentID)
	c.Set(CtxTokenJTI, "test-jti")
	c.Set(CtxTokenExp, time.Now().Add(15*time.Minute))
}

// withAuth 模拟 JWTAuth 中间件注入身份
func withAuth(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		setAuth(c)
		h(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validTaskRequest() dto.CreateTaskRequest {
	return dto.CreateTaskRequest{
		SubjectID: testSubjectID,
		TaskName:  "作业",
		IntervalRequest: dto.IntervalRequest{
			ScheduledDate:      "2026-03-12",
			ScheduledStartTime: "09:00",
			ScheduledEndTime:   "10:00",
		},
		Deadline: "2026-03-12T23:59",
	}
}

func postTask(mock *mockTaskService, body io.Reader) *httptest.ResponseRecorder {
	h := NewTaskHandler(mock)
	r := gin.New()
	r.POST("/tasks", withAuth(h.CreateTask))
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	req.Header.Set("Content-Type", "application/json")
	return serve(r, req)
}

// ═══════════════════════════════════════════════════════════
// 错误映射
// ═══════════════════════════════════════════════════════════

func TestHandleError_Mapping(t *testing.T) {
	overlap := &scheduling.OverlapError{Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name      string
		err       error
		status    int
		code      int
		errorType string
		details   string
	}{
		{"校验失败", fmt.Errorf("bad: %w", pkgerrors.ErrValidation), http.StatusBadRequest, codeValidation, "", ""},
		{"重复", scheduling.ErrDuplicateSlot, http.StatusBadRequest, codeDuplicate, "duplicate", ""},
		{"重叠", fmt.Errorf("create: %w", overlap), http.StatusBadRequest, codeOverlap, "overlap", "2026-03-09"},
		{"不存在", service.ErrTaskNotFound, http.StatusNotFound, codeNotFound, "", ""},
		{"非本人", service.ErrNotOwner, http.StatusForbidden, codeForbidden, "", ""},
		{"完整性", fmt.Errorf("fk: %w", pkgerrors.ErrIntegrity), http.StatusBadRequest, codeIntegrity, "", ""},
		{"内部错误", errors.New("boom"), http.StatusInternalServerError, 50000, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			handleError(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("期望 %d，实际 %d", tt.status, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.code {
				t.Errorf("期望 code=%d，实际 %d", tt.code, resp.Code)
			}
			if resp.ErrorType != tt.errorType {
				t.Errorf("期望 error_type=%q，实际 %q", tt.errorType, resp.ErrorType)
			}
			if resp.Details != tt.details {
				t.Errorf("期望 details=%q，实际 %q", tt.details, resp.Details)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// TaskHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTaskHandler_Create_Success(t *testing.T) {
	mock := &mockTaskService{createResult: &dto.TaskResponse{TaskID: "t-1", TaskName: "作业"}}

	w := postTask(mock, jsonBody(validTaskRequest()))

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际 %d: %s", w.Code, w.Body.String())
	}
	if mock.lastStudent != testStudentID {
		t.Errorf("应使用令牌中的 student_id，实际 %s", mock.lastStudent)
	}
	if mock.lastReq.ScheduledStartTime != "09:00" {
		t.Errorf("时间段字段未绑定: %+v", mock.lastReq)
	}
}

func TestTaskHandler_Create_CustomValidators(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.CreateTaskRequest)
	}{
		{"日期格式错误", func(r *dto.CreateTaskRequest) { r.ScheduledDate = "2026/03/12" }},
		{"不存在的日期", func(r *dto.CreateTaskRequest) { r.ScheduledDate = "2026-02-30" }},
		{"时刻越界", func(r *dto.CreateTaskRequest) { r.ScheduledEndTime = "24:00" }},
		{"时刻格式错误", func(r *dto.CreateTaskRequest) { r.ScheduledStartTime = "9am" }},
		{"科目 ID 非 UUID", func(r *dto.CreateTaskRequest) { r.SubjectID = "subject-1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockTaskService{}
			req := validTaskRequest()
			tt.mutate(&req)

			w := postTask(mock, jsonBody(req))

			if w.Code != http.StatusBadRequest {
				t.Errorf("期望 400，实际 %d", w.Code)
			}
			if mock.lastReq != nil {
				t.Error("校验失败时不应调用 Service")
			}
		})
	}
}

func TestTaskHandler_Create_Overlap(t *testing.T) {
	mock := &mockTaskService{createErr: &scheduling.OverlapError{Date: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)}}

	w := postTask(mock, jsonBody(validTaskRequest()))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.ErrorType != "overlap" {
		t.Errorf("期望 error_type=overlap，实际 %q", resp.ErrorType)
	}
}

func TestTaskHandler_Create_Unauthenticated(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{})
	r := gin.New()
	r.POST("/tasks", h.CreateTask)

	req := httptest.NewRequest(http.MethodPost, "/tasks", jsonBody(validTaskRequest()))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际 %d", w.Code)
	}
}

func TestTaskHandler_List_BindsQuery(t *testing.T) {
	mock := &mockTaskService{}
	h := NewTaskHandler(mock)
	r := gin.New()
	r.GET("/tasks", withAuth(h.ListTasks))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/tasks?when=upcoming&status=Pending", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if mock.listQuery.When != "upcoming" || mock.listQuery.Status != "Pending" {
		t.Errorf("查询参数未绑定: %+v", mock.listQuery)
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/tasks?when=tomorrow", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法 when 期望 400，实际 %d", w.Code)
	}
}

func TestTaskHandler_Delete_Forbidden(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{deleteErr: service.ErrNotOwner})
	r := gin.New()
	r.DELETE("/tasks/:id", withAuth(h.DeleteTask))

	w := serve(r, httptest.NewRequest(http.MethodDelete, "/tasks/abc", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际 %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ClassScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func multipartICS(t *testing.T, semesterID, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if semesterID != "" {
		mw.WriteField("semester_id", semesterID)
	}
	if content != "" {
		fw, err := mw.CreateFormFile("file", "classes.ics")
		if err != nil {
			t.Fatalf("创建表单文件失败: %v", err)
		}
		fw.Write([]byte(content))
	}
	mw.Close()
	return body, mw.FormDataContentType()
}

func TestClassScheduleHandler_ImportICS(t *testing.T) {
	mock := &mockClassScheduleService{importResult: &dto.ImportClassesResponse{Total: 1, Created: 1}}
	h := NewClassScheduleHandler(mock)
	r := gin.New()
	r.POST("/class-schedules/import", withAuth(h.ImportICS))

	body, ct := multipartICS(t, "sem-1", "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	req := httptest.NewRequest(http.MethodPost, "/class-schedules/import", body)
	req.Header.Set("Content-Type", ct)
	w := serve(r, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际 %d: %s", w.Code, w.Body.String())
	}
	if mock.importSem != "sem-1" || !strings.Contains(mock.importContent, "BEGIN:VCALENDAR") {
		t.Errorf("上传内容未传递: sem=%s content=%q", mock.importSem, mock.importContent)
	}
}

func TestClassScheduleHandler_ImportICS_MissingFields(t *testing.T) {
	h := NewClassScheduleHandler(&mockClassScheduleService{})
	r := gin.New()
	r.POST("/class-schedules/import", withAuth(h.ImportICS))

	for name, args := range map[string][2]string{
		"缺少学期": {"", "BEGIN:VCALENDAR"},
		"缺少文件": {"sem-1", ""},
	} {
		t.Run(name, func(t *testing.T) {
			body, ct := multipartICS(t, args[0], args[1])
			req := httptest.NewRequest(http.MethodPost, "/class-schedules/import", body)
			req.Header.Set("Content-Type", ct)
			if w := serve(r, req); w.Code != http.StatusBadRequest {
				t.Errorf("期望 400，实际 %d", w.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleEntryHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleEntryHandler_Filter_RequiresCategory(t *testing.T) {
	mock := &mockScheduleEntryService{}
	h := NewScheduleEntryHandler(mock, &mockDashboardService{})
	r := gin.New()
	r.GET("/schedule-entries/filter", withAuth(h.Filter))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/schedule-entries/filter?category_type=Homework&reference_id="+testSubjectID, nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("未知类别期望 400，实际 %d", w.Code)
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/schedule-entries/filter?category_type=Task&reference_id="+testSubjectID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if mock.lastRef.CategoryType != string(model.CategoryTask) {
		t.Errorf("类别未传递: %+v", mock.lastRef)
	}
}

func TestScheduleEntryHandler_DeleteFiltered(t *testing.T) {
	mock := &mockScheduleEntryService{deleted: 3}
	h := NewScheduleEntryHandler(mock, &mockDashboardService{})
	r := gin.New()
	r.DELETE("/schedule-entries/filter", withAuth(h.DeleteFiltered))

	w := serve(r, httptest.NewRequest(http.MethodDelete, "/schedule-entries/filter?category_type=Class&reference_id="+testSubjectID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	var resp struct {
		Data dto.DeletedResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Deleted != 3 {
		t.Errorf("期望 deleted=3，实际 %d", resp.Data.Deleted)
	}
}

func TestScheduleEntryHandler_Dashboard(t *testing.T) {
	dash := &mockDashboardService{}
	h := NewScheduleEntryHandler(&mockScheduleEntryService{}, dash)
	r := gin.New()
	r.GET("/dashboard", withAuth(h.Dashboard))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/dashboard?semester_id=sem-9", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if dash.semesterID != "sem-9" {
		t.Errorf("semester_id 未传递，实际 %q", dash.semesterID)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportICS_Headers(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("BEGIN:VCALENDAR"), filename: "日程_20260301_20260331.ics"}
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/export/schedule.ics", withAuth(h.ExportICS))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/export/schedule.ics?date_from=2026-03-01&date_to=2026-03-31", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type 不正确: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "filename*=UTF-8''") {
		t.Errorf("Content-Disposition 不正确: %s", cd)
	}
	if w.Body.String() != "BEGIN:VCALENDAR" {
		t.Errorf("响应体不正确: %s", w.Body.String())
	}
}

func TestExportHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"缺少日期", "", nil, http.StatusBadRequest},
		{"范围过长", "?date_from=2026-01-01&date_to=2027-06-01", service.ErrExportRangeTooLong, http.StatusBadRequest},
		{"生成失败", "?date_from=2026-01-01&date_to=2026-01-31", service.ErrExportGenerateFail, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewExportHandler(&mockExportService{err: tt.err})
			r := gin.New()
			r.GET("/export/schedule.xlsx", withAuth(h.ExportXLSX))

			w := serve(r, httptest.NewRequest(http.MethodGet, "/export/schedule.xlsx"+tt.query, nil))
			if w.Code != tt.status {
				t.Errorf("期望 %d，实际 %d", tt.status, w.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Logout_PassesTokenInfo(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)
	r := gin.New()
	r.POST("/auth/logout", withAuth(h.Logout))

	w := serve(r, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if mock.jti != "test-jti" || mock.expiresAt.IsZero() {
		t.Errorf("令牌信息未传递: jti=%s exp=%v", mock.jti, mock.expiresAt)
	}
}

func TestAuthHandler_Logout_BlacklistFailure(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{err: errors.New("redis down")})
	r := gin.New()
	r.POST("/auth/logout", withAuth(h.Logout))

	if w := serve(r, httptest.NewRequest(http.MethodPost, "/auth/logout", nil)); w.Code != http.StatusInternalServerError {
		t.Errorf("期望 500，实际 %d", w.Code)
	}
}
