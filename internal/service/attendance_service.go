package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ErrAttendanceNotFound 出勤记录不存在
var ErrAttendanceNotFound = fmt.Errorf("出勤记录不存在: %w", pkgerrors.ErrNotFound)

// AttendanceService 出勤业务接口
type AttendanceService interface {
	// MarkEvent 每个事件只保留一条出勤；已存在时更新，created 表示是否新建
	MarkEvent(ctx context.Context, req *dto.MarkEventAttendanceRequest, studentID string) (resp *dto.EventAttendanceResponse, created bool, err error)
	UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventAttendanceRequest, studentID string) (*dto.EventAttendanceResponse, error)
	ListEvents(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.EventAttendanceResponse, error)

	// MarkClasses 批量写入课程出勤，同一课程同一天重复写入时覆盖状态
	MarkClasses(ctx context.Context, req *dto.MarkClassAttendanceRequest, studentID string) ([]dto.ClassAttendanceResponse, error)
	ListClasses(ctx context.Context, q *dto.ClassAttendanceListQuery, studentID string) ([]dto.ClassAttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── 事件出勤 ──────────────────────

func (s *attendanceService) MarkEvent(ctx context.Context, req *dto.MarkEventAttendanceRequest, studentID string) (*dto.EventAttendanceResponse, bool, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, false, err
	}

	event, err := s.repo.Event.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, false, notFoundOr(err, ErrEventNotFound)
	}
	if err := ensureOwner(event.StudentID, studentID); err != nil {
		return nil, false, err
	}

	created := false
	att, err := s.repo.Attendance.GetEventAttendance(ctx, event.EventID, studentID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		att = &model.AttendedEvent{StudentID: studentID, EventID: event.EventID}
		created = true
	case err != nil:
		s.logger.Error("查询事件出勤失败", zap.Error(err))
		return nil, false, err
	}
	att.Date = date
	att.HasAttended = req.HasAttended

	if err := s.repo.Attendance.SaveEventAttendance(ctx, att); err != nil {
		logUnexpected(s.logger, "保存事件出勤失败", err, zap.String("event_id", event.EventID))
		return nil, false, err
	}
	att.Event = event
	return toEventAttendanceResponse(att), created, nil
}

func (s *attendanceService) UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventAttendanceRequest, studentID string) (*dto.EventAttendanceResponse, error) {
	att, err := s.repo.Attendance.GetEventAttendanceByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrAttendanceNotFound)
	}
	if err := ensureOwner(att.StudentID, studentID); err != nil {
		return nil, err
	}

	att.HasAttended = req.HasAttended
	if err := s.repo.Attendance.SaveEventAttendance(ctx, att); err != nil {
		logUnexpected(s.logger, "更新事件出勤失败", err, zap.String("id", id))
		return nil, err
	}
	return toEventAttendanceResponse(att), nil
}

func (s *attendanceService) ListEvents(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.EventAttendanceResponse, error) {
	dr, err := dateRangeOf(q)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Attendance.ListEventAttendance(ctx, studentID, dr)
	if err != nil {
		s.logger.Error("列出事件出勤失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.EventAttendanceResponse, 0, len(list))
	for i := range list {
		result = append(result, *toEventAttendanceResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── 课程出勤 ──────────────────────

func (s *attendanceService) MarkClasses(ctx context.Context, req *dto.MarkClassAttendanceRequest, studentID string) ([]dto.ClassAttendanceResponse, error) {
	result := make([]dto.ClassAttendanceResponse, 0, len(req.Records))
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		owned := make(map[string]bool)
		for i := range req.Records {
			rec := &req.Records[i]
			date, err := model.ParseDate(rec.AttendanceDate)
			if err != nil {
				return err
			}

			if !owned[rec.ClassSchedID] {
				cs, err := r.ClassSchedule.GetByID(ctx, rec.ClassSchedID)
				if err != nil {
					return notFoundOr(err, ErrClassScheduleNotFound)
				}
				if err := ensureOwner(cs.StudentID, studentID); err != nil {
					return err
				}
				owned[rec.ClassSchedID] = true
			}

			status := rec.Status
			if status == "" {
				status = model.AttendanceDidNotAttend
			}
			att := &model.AttendedClass{
				StudentID:      studentID,
				ClassSchedID:   rec.ClassSchedID,
				AttendanceDate: date,
				Status:         status,
			}
			if err := r.Attendance.UpsertClassAttendance(ctx, att); err != nil {
				return err
			}
			result = append(result, toClassAttendanceResponse(att))
		}
		return nil
	})
	if err != nil {
		logUnexpected(s.logger, "写入课程出勤失败", err)
		return nil, err
	}
	return result, nil
}

func (s *attendanceService) ListClasses(ctx context.Context, q *dto.ClassAttendanceListQuery, studentID string) ([]dto.ClassAttendanceResponse, error) {
	var (
		dr           repository.DateRange
		classSchedID string
		err          error
	)
	if q != nil {
		if dr, err = parseDateRange(q.DateRangeQuery); err != nil {
			return nil, err
		}
		classSchedID = q.ClassSchedID
	}

	list, err := s.repo.Attendance.ListClassAttendance(ctx, studentID, classSchedID, dr)
	if err != nil {
		s.logger.Error("列出课程出勤失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ClassAttendanceResponse, 0, len(list))
	for i := range list {
		result = append(result, toClassAttendanceResponse(&list[i]))
	}
	return result, nil
}

func toEventAttendanceResponse(a *model.AttendedEvent) *dto.EventAttendanceResponse {
	resp := &dto.EventAttendanceResponse{
		AttEventsID: a.AttEventsID,
		EventID:     a.EventID,
		Date:        a.Date.Format(model.DateLayout),
		HasAttended: a.HasAttended,
	}
	if a.Event != nil {
		resp.EventName = a.Event.EventName
	}
	return resp
}

func toClassAttendanceResponse(a *model.AttendedClass) dto.ClassAttendanceResponse {
	return dto.ClassAttendanceResponse{
		AttendanceID:   a.AttendanceID,
		ClassSchedID:   a.ClassSchedID,
		AttendanceDate: a.AttendanceDate.Format(model.DateLayout),
		Status:         a.Status,
	}
}
