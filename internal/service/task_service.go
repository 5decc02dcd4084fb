package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	"github.com/jakkusu1/planma-app/internal/scheduling"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound    = fmt.Errorf("任务不存在: %w", pkgerrors.ErrNotFound)
	ErrSubjectNotFound = fmt.Errorf("科目不存在: %w", pkgerrors.ErrNotFound)
)

// TaskService 任务业务接口
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest, studentID string) (*dto.TaskResponse, error)
	GetByID(ctx context.Context, id, studentID string) (*dto.TaskResponse, error)
	List(ctx context.Context, q *dto.ScheduleListQuery, studentID string) ([]dto.TaskResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTaskRequest, studentID string) (*dto.TaskResponse, error)
	Delete(ctx context.Context, id, studentID string) error
}

type taskService struct {
	repo      *repository.Repository
	scheduler *scheduling.Scheduler[*model.Task]
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) TaskService {
	return &taskService{
		repo: repo,
		scheduler: scheduling.NewScheduler[*model.Task](model.CategoryTask, repo,
			func(r *repository.Repository) repository.SlotStore[*model.Task] { return r.Task }, logger),
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest, studentID string) (*dto.TaskResponse, error) {
	iv, err := parseInterval(req.ScheduledDate, req.ScheduledStartTime, req.ScheduledEndTime)
	if err != nil {
		return nil, err
	}
	deadline, err := parseDeadline(req.Deadline, s.loc)
	if err != nil {
		return nil, err
	}

	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}
	subject, err := s.ownedSubject(ctx, req.SubjectID, studentID)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		StudentID:    studentID,
		SubjectID:    subject.SubjectID,
		TaskName:     req.TaskName,
		TaskDesc:     model.NullIfEmpty(req.TaskDesc),
		TimeInterval: iv,
		Deadline:     deadline,
		Status:       model.StatusPending,
	}
	if err := s.scheduler.Create(ctx, task); err != nil {
		logUnexpected(s.logger, "创建任务失败", err, zap.String("student_id", studentID))
		return nil, err
	}

	task.Subject = subject
	return s.toTaskResponse(task), nil
}

// ────────────────────── Read ──────────────────────

func (s *taskService) GetByID(ctx context.Context, id, studentID string) (*dto.TaskResponse, error) {
	task, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	return s.toTaskResponse(task), nil
}

func (s *taskService) List(ctx context.Context, q *dto.ScheduleListQuery, studentID string) ([]dto.TaskResponse, error) {
	f, err := listFilter(q, today(s.now(), s.loc))
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.Task.List(ctx, studentID, f)
	if err != nil {
		s.logger.Error("列出任务失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *s.toTaskResponse(&tasks[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest, studentID string) (*dto.TaskResponse, error) {
	task, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	previous := task.TimeInterval

	if task.TimeInterval, err = patchInterval(task.TimeInterval, req.IntervalPatch); err != nil {
		return nil, err
	}
	if req.SubjectID != nil && *req.SubjectID != task.SubjectID {
		subject, err := s.ownedSubject(ctx, *req.SubjectID, studentID)
		if err != nil {
			return nil, err
		}
		task.SubjectID = subject.SubjectID
		task.Subject = subject
	}
	if req.TaskName != nil {
		task.TaskName = *req.TaskName
	}
	if req.TaskDesc != nil {
		task.TaskDesc = model.NullIfEmpty(req.TaskDesc)
	}
	if req.Deadline != nil {
		if task.Deadline, err = parseDeadline(*req.Deadline, s.loc); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		task.Status = model.Status(*req.Status)
	}

	if err := s.scheduler.Update(ctx, previous, task); err != nil {
		logUnexpected(s.logger, "更新任务失败", err, zap.String("id", id))
		return nil, err
	}
	return s.toTaskResponse(task), nil
}

// ────────────────────── Delete ──────────────────────

func (s *taskService) Delete(ctx context.Context, id, studentID string) error {
	task, err := s.owned(ctx, id, studentID)
	if err != nil {
		return err
	}
	if err := s.scheduler.Delete(ctx, task); err != nil {
		logUnexpected(s.logger, "删除任务失败", err, zap.String("id", id))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *taskService) owned(ctx context.Context, id, studentID string) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	if err := ensureOwner(task.StudentID, studentID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ownedSubject(ctx context.Context, id, studentID string) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrSubjectNotFound)
	}
	if err := ensureOwner(subject.StudentID, studentID); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *taskService) toTaskResponse(t *model.Task) *dto.TaskResponse {
	resp := &dto.TaskResponse{
		TaskID:           t.TaskID,
		SubjectID:        t.SubjectID,
		TaskName:         t.TaskName,
		TaskDesc:         t.TaskDesc,
		IntervalResponse: toIntervalResponse(t.TimeInterval),
		Deadline:         t.Deadline.In(s.loc).Format(model.DeadlineLayout),
		Status:           string(t.Status),
		ReminderSent:     t.ReminderSent,
		CreatedAt:        formatTimestamp(t.CreatedAt),
		UpdatedAt:        formatTimestamp(t.UpdatedAt),
	}
	if t.Subject != nil {
		resp.SubjectCode = t.Subject.SubjectCode
	}
	return resp
}
