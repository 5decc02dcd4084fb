package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	"github.com/jakkusu1/planma-app/internal/scheduling"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ErrClassScheduleNotFound 课程表不存在
var ErrClassScheduleNotFound = fmt.Errorf("课程表不存在: %w", pkgerrors.ErrNotFound)

// ClassScheduleService 课程表业务接口
type ClassScheduleService interface {
	Create(ctx context.Context, req *dto.CreateClassScheduleRequest, studentID string) (*dto.ClassScheduleResponse, error)
	GetByID(ctx context.Context, id, studentID string) (*dto.ClassScheduleResponse, error)
	List(ctx context.Context, q *dto.ClassScheduleListQuery, studentID string) ([]dto.ClassScheduleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassScheduleRequest, studentID string) (*dto.ClassScheduleResponse, error)
	Delete(ctx context.Context, id, studentID string) error
	// ImportICS 将 iCalendar 课程表导入指定学期，每个模板独立检测冲突，逐条返回结果
	ImportICS(ctx context.Context, semesterID string, r io.Reader, studentID string) (*dto.ImportClassesResponse, error)
}

type classScheduleService struct {
	repo      *repository.Repository
	scheduler *scheduling.ClassScheduler
	loc       *time.Location
	logger    *zap.Logger
}

// NewClassScheduleService 创建 ClassScheduleService 实例
func NewClassScheduleService(repo *repository.Repository, maxSemesterDays int, loc *time.Location, logger *zap.Logger) ClassScheduleService {
	return &classScheduleService{
		repo:      repo,
		scheduler: scheduling.NewClassScheduler(repo, maxSemesterDays, logger),
		loc:       loc,
		logger:    logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *classScheduleService) Create(ctx context.Context, req *dto.CreateClassScheduleRequest, studentID string) (*dto.ClassScheduleResponse, error) {
	day, ok := model.ParseDayName(req.DayOfWeek)
	if !ok {
		return nil, fmt.Errorf("无效的星期 %q: %w", req.DayOfWeek, pkgerrors.ErrValidation)
	}
	start, err := model.ParseClock(req.ScheduledStartTime)
	if err != nil {
		return nil, err
	}
	end, err := model.ParseClock(req.ScheduledEndTime)
	if err != nil {
		return nil, err
	}

	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}
	semester, err := s.ownedSemester(ctx, req.SemesterID, studentID)
	if err != nil {
		return nil, err
	}

	cs := &model.ClassSchedule{
		StudentID: studentID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Room:      model.NullIfEmpty(req.Room),
	}
	subject := &model.Subject{
		StudentID:    studentID,
		SemesterID:   semester.SemesterID,
		SubjectCode:  req.SubjectCode,
		SubjectTitle: req.SubjectTitle,
	}
	if err := s.scheduler.Create(ctx, cs, subject, semester); err != nil {
		logUnexpected(s.logger, "创建课程表失败", err, zap.String("student_id", studentID))
		return nil, err
	}

	return toClassScheduleResponse(cs), nil
}

// ────────────────────── Read ──────────────────────

func (s *classScheduleService) GetByID(ctx context.Context, id, studentID string) (*dto.ClassScheduleResponse, error) {
	cs, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	return toClassScheduleResponse(cs), nil
}

func (s *classScheduleService) List(ctx context.Context, q *dto.ClassScheduleListQuery, studentID string) ([]dto.ClassScheduleResponse, error) {
	var semesterID string
	if q != nil {
		semesterID = q.SemesterID
	}

	classes, err := s.repo.ClassSchedule.List(ctx, studentID, semesterID)
	if err != nil {
		s.logger.Error("列出课程表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassScheduleResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toClassScheduleResponse(&classes[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *classScheduleService) Update(ctx context.Context, id string, req *dto.UpdateClassScheduleRequest, studentID string) (*dto.ClassScheduleResponse, error) {
	cs, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	if cs.Subject == nil {
		return nil, ErrSubjectNotFound
	}
	subject := *cs.Subject
	semester := subject.Semester
	if semester == nil {
		if semester, err = s.ownedSemester(ctx, subject.SemesterID, studentID); err != nil {
			return nil, err
		}
	}
	subject.Semester = nil

	if req.SubjectCode != nil {
		subject.SubjectCode = *req.SubjectCode
	}
	if req.SubjectTitle != nil {
		subject.SubjectTitle = *req.SubjectTitle
	}
	if req.DayOfWeek != nil {
		day, ok := model.ParseDayName(*req.DayOfWeek)
		if !ok {
			return nil, fmt.Errorf("无效的星期 %q: %w", *req.DayOfWeek, pkgerrors.ErrValidation)
		}
		cs.DayOfWeek = day
	}
	if req.ScheduledStartTime != nil {
		if cs.StartTime, err = model.ParseClock(*req.ScheduledStartTime); err != nil {
			return nil, err
		}
	}
	if req.ScheduledEndTime != nil {
		if cs.EndTime, err = model.ParseClock(*req.ScheduledEndTime); err != nil {
			return nil, err
		}
	}
	if req.Room != nil {
		cs.Room = model.NullIfEmpty(req.Room)
	}

	if err := s.scheduler.Update(ctx, cs, &subject, semester); err != nil {
		logUnexpected(s.logger, "更新课程表失败", err, zap.String("id", id))
		return nil, err
	}
	return toClassScheduleResponse(cs), nil
}

// ────────────────────── Delete ──────────────────────

func (s *classScheduleService) Delete(ctx context.Context, id, studentID string) error {
	cs, err := s.owned(ctx, id, studentID)
	if err != nil {
		return err
	}
	if err := s.scheduler.Delete(ctx, cs); err != nil {
		logUnexpected(s.logger, "删除课程表失败", err, zap.String("id", id))
		return err
	}
	return nil
}

// ────────────────────── ImportICS ──────────────────────

func (s *classScheduleService) ImportICS(ctx context.Context, semesterID string, r io.Reader, studentID string) (*dto.ImportClassesResponse, error) {
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}
	semester, err := s.ownedSemester(ctx, semesterID, studentID)
	if err != nil {
		return nil, err
	}

	events, invalid, err := ParseClassICS(r, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), pkgerrors.ErrValidation)
	}

	resp := &dto.ImportClassesResponse{Results: invalid}
	for _, evt := range events {
		result := dto.ImportClassesResult{
			UID:         evt.UID,
			SubjectCode: evt.SubjectCode,
			DayOfWeek:   string(evt.Day),
		}

		cs := &model.ClassSchedule{
			StudentID: studentID,
			DayOfWeek: evt.Day,
			StartTime: evt.Start,
			EndTime:   evt.End,
			Room:      evt.Room,
		}
		subject := &model.Subject{
			StudentID:    studentID,
			SemesterID:   semester.SemesterID,
			SubjectCode:  evt.SubjectCode,
			SubjectTitle: evt.SubjectTitle,
		}

		err := s.scheduler.Create(ctx, cs, subject, semester)
		switch {
		case err == nil:
			result.ClassSchedID = cs.ClassSchedID
			resp.Created++
		case errors.Is(err, pkgerrors.ErrDuplicate):
			result.ErrorType, result.Error = "duplicate", err.Error()
		case errors.Is(err, pkgerrors.ErrOverlap):
			result.ErrorType, result.Error = "overlap", err.Error()
		case errors.Is(err, pkgerrors.ErrValidation):
			result.ErrorType, result.Error = "invalid", err.Error()
		default:
			s.logger.Error("导入课程失败", zap.String("uid", evt.UID), zap.Error(err))
			return nil, err
		}
		resp.Results = append(resp.Results, result)
	}

	resp.Total = len(resp.Results)
	resp.Failed = resp.Total - resp.Created
	s.logger.Info("ICS 课程表导入完成",
		zap.String("semester_id", semesterID),
		zap.Int("created", resp.Created),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

// ── 内部辅助方法 ──

func (s *classScheduleService) owned(ctx context.Context, id, studentID string) (*model.ClassSchedule, error) {
	cs, err := s.repo.ClassSchedule.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrClassScheduleNotFound)
	}
	if err := ensureOwner(cs.StudentID, studentID); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *classScheduleService) ownedSemester(ctx context.Context, id, studentID string) (*model.Semester, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrSemesterNotFound)
	}
	if err := ensureOwner(semester.StudentID, studentID); err != nil {
		return nil, err
	}
	return semester, nil
}

func toClassScheduleResponse(cs *model.ClassSchedule) *dto.ClassScheduleResponse {
	resp := &dto.ClassScheduleResponse{
		ClassSchedID:       cs.ClassSchedID,
		SubjectID:          cs.SubjectID,
		DayOfWeek:          string(cs.DayOfWeek),
		ScheduledStartTime: cs.StartTime.String(),
		ScheduledEndTime:   cs.EndTime.String(),
		Room:               cs.Room,
		CreatedAt:          formatTimestamp(cs.CreatedAt),
		UpdatedAt:          formatTimestamp(cs.UpdatedAt),
	}
	if cs.Subject != nil {
		resp.SubjectCode = cs.Subject.SubjectCode
		resp.SubjectTitle = cs.Subject.SubjectTitle
		resp.SemesterID = cs.Subject.SemesterID
	}
	return resp
}
