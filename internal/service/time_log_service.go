package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ── 计时记录业务错误 ──

var (
	ErrTaskLogDuplicate     = fmt.Errorf("该任务当天已有计时记录: %w", pkgerrors.ErrDuplicate)
	ErrActivityLogDuplicate = fmt.Errorf("该活动当天已有计时记录: %w", pkgerrors.ErrDuplicate)
	ErrGoalProgressExists   = fmt.Errorf("该目标时段当天已有进度记录: %w", pkgerrors.ErrDuplicate)
)

// TimeLogService 计时记录业务接口
// 批量写入在同一事务中按顺序执行，任一条失败整体回滚；写入成功后父实体标记为 Completed
type TimeLogService interface {
	LogTasks(ctx context.Context, logs []dto.TaskLogRequest, studentID string) ([]dto.TimeLogResponse, error)
	ListTaskLogs(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.TimeLogResponse, error)
	LogActivities(ctx context.Context, logs []dto.ActivityLogRequest, studentID string) ([]dto.TimeLogResponse, error)
	ListActivityLogs(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.TimeLogResponse, error)
	LogGoalProgress(ctx context.Context, logs []dto.GoalProgressRequest, studentID string) ([]dto.TimeLogResponse, error)
	ListGoalProgress(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.TimeLogResponse, error)
}

type timeLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeLogService 创建 TimeLogService 实例
func NewTimeLogService(repo *repository.Repository, logger *zap.Logger) TimeLogService {
	return &timeLogService{repo: repo, logger: logger}
}

// ────────────────────── 任务计时 ──────────────────────

func (s *timeLogService) LogTasks(ctx context.Context, logs []dto.TaskLogRequest, studentID string) ([]dto.TimeLogResponse, error) {
	result := make([]dto.TimeLogResponse, 0, len(logs))
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		for i := range logs {
			req := &logs[i]
			start, end, duration, date, err := parseLogFields(req.StartTime, req.EndTime, req.Duration, req.DateLogged)
			if err != nil {
				return err
			}

			task, err := r.Task.GetByID(ctx, req.TaskID)
			if err != nil {
				return notFoundOr(err, ErrTaskNotFound)
			}
			if err := ensureOwner(task.StudentID, studentID); err != nil {
				return err
			}
			exists, err := r.TimeLog.ExistsTaskLog(ctx, task.TaskID, date)
			if err != nil {
				return err
			}
			if exists {
				return ErrTaskLogDuplicate
			}

			log := &model.TaskTimeLog{
				StudentID:       studentID,
				TaskID:          task.TaskID,
				StartTime:       start,
				EndTime:         end,
				DurationSeconds: duration,
				DateLogged:      date,
			}
			if err := r.TimeLog.CreateTaskLog(ctx, log); err != nil {
				return err
			}
			if err := r.Task.SetStatus(ctx, task.TaskID, model.StatusCompleted); err != nil {
				return err
			}
			result = append(result, toTaskLogResponse(log))
		}
		return nil
	})
	if err != nil {
		logUnexpected(s.logger, "写入任务计时失败", err)
		return nil, err
	}
	return result, nil
}

func (s *timeLogService) ListTaskLogs(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.TimeLogResponse, error) {
	dr, err := dateRangeOf(q)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.TimeLog.ListTaskLogs(ctx, studentID, dr)
	if err != nil {
		s.logger.Error("列出任务计时失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TimeLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, toTaskLogResponse(&logs[i]))
	}
	return result, nil
}

// ────────────────────── 活动计时 ──────────────────────

func (s *timeLogService) LogActivities(ctx context.Context, logs []dto.ActivityLogRequest, studentID string) ([]dto.TimeLogResponse, error) {
	result := make([]dto.TimeLogResponse, 0, len(logs))
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		for i := range logs {
			req := &logs[i]
			start, end, duration, date, err := parseLogFields(req.StartTime, req.EndTime, req.Duration, req.DateLogged)
			if err != nil {
				return err
			}

			activity, err := r.Activity.GetByID(ctx, req.ActivityID)
			if err != nil {
				return notFoundOr(err, ErrActivityNotFound)
			}
			if err := ensureOwner(activity.StudentID, studentID); err != nil {
				return err
			}
			exists, err := r.TimeLog.ExistsActivityLog(ctx, activity.ActivityID, date)
			if err != nil {
				return err
			}
			if exists {
				return ErrActivityLogDuplicate
			}

			log := &model.ActivityTimeLog{
				StudentID:       studentID,
				ActivityID:      activity.ActivityID,
				StartTime:       start,
				EndTime:         end,
				DurationSeconds: duration,
				DateLogged:      date,
			}
			if err := r.TimeLog.CreateActivityLog(ctx, log); err != nil {
				return err
			}
			if err := r.Activity.SetStatus(ctx, activity.ActivityID, model.StatusCompleted); err != nil {
				return err
			}
			result = append(result, toActivityLogResponse(log))
		}
		return nil
	})
	if err != nil {
		logUnexpected(s.logger, "写入活动计时失败", err)
		return nil, err
	}
	return result, nil
}

func (s *timeLogService) ListActivityLogs(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.TimeLogResponse, error) {
	dr, err := dateRangeOf(q)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.TimeLog.ListActivityLogs(ctx, studentID, dr)
	if err != nil {
		s.logger.Error("列出活动计时失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TimeLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, toActivityLogResponse(&logs[i]))
	}
	return result, nil
}

// ────────────────────── 目标进度 ──────────────────────

func (s *timeLogService) LogGoalProgress(ctx context.Context, logs []dto.GoalProgressRequest, studentID string) ([]dto.TimeLogResponse, error) {
	result := make([]dto.TimeLogResponse, 0, len(logs))
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		for i := range logs {
			req := &logs[i]
			start, end, duration, date, err := parseLogFields(req.SessionStartTime, req.SessionEndTime, req.SessionDuration, req.SessionDate)
			if err != nil {
				return err
			}

			gs, err := r.GoalSchedule.GetByID(ctx, req.GoalScheduleID)
			if err != nil {
				return notFoundOr(err, ErrGoalScheduleNotFound)
			}
			if err := ensureOwner(gs.StudentID, studentID); err != nil {
				return err
			}
			exists, err := r.TimeLog.ExistsGoalProgress(ctx, gs.GoalScheduleID, date)
			if err != nil {
				return err
			}
			if exists {
				return ErrGoalProgressExists
			}

			p := &model.GoalProgress{
				StudentID:        studentID,
				GoalID:           gs.GoalID,
				GoalScheduleID:   gs.GoalScheduleID,
				SessionDate:      date,
				SessionStartTime: start,
				SessionEndTime:   end,
				DurationSeconds:  duration,
			}
			if err := r.TimeLog.CreateGoalProgress(ctx, p); err != nil {
				return err
			}
			if err := r.GoalSchedule.SetStatus(ctx, gs.GoalScheduleID, model.StatusCompleted); err != nil {
				return err
			}
			result = append(result, toGoalProgressResponse(p))
		}
		return nil
	})
	if err != nil {
		logUnexpected(s.logger, "写入目标进度失败", err)
		return nil, err
	}
	return result, nil
}

func (s *timeLogService) ListGoalProgress(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.TimeLogResponse, error) {
	dr, err := dateRangeOf(q)
	if err != nil {
		return nil, err
	}
	progress, err := s.repo.TimeLog.ListGoalProgress(ctx, studentID, dr)
	if err != nil {
		s.logger.Error("列出目标进度失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TimeLogResponse, 0, len(progress))
	for i := range progress {
		result = append(result, toGoalProgressResponse(&progress[i]))
	}
	return result, nil
}

// ════════════════════════ 睡眠记录 ════════════════════════

// SleepLogService 睡眠记录业务接口
type SleepLogService interface {
	Log(ctx context.Context, logs []dto.SleepLogRequest, studentID string) ([]dto.SleepLogResponse, error)
	List(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.SleepLogResponse, error)
}

type sleepLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSleepLogService 创建 SleepLogService 实例
func NewSleepLogService(repo *repository.Repository, logger *zap.Logger) SleepLogService {
	return &sleepLogService{repo: repo, logger: logger}
}

// Log 睡眠可以跨夜，不要求开始早于结束
func (s *sleepLogService) Log(ctx context.Context, logs []dto.SleepLogRequest, studentID string) ([]dto.SleepLogResponse, error) {
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}

	result := make([]dto.SleepLogResponse, 0, len(logs))
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		for i := range logs {
			req := &logs[i]
			start, err := model.ParseClock(req.StartTime)
			if err != nil {
				return err
			}
			end, err := model.ParseClock(req.EndTime)
			if err != nil {
				return err
			}
			duration, err := model.ParseDuration(req.Duration)
			if err != nil {
				return err
			}
			date, err := model.ParseDate(req.DateLogged)
			if err != nil {
				return err
			}

			log := &model.SleepLog{
				StudentID:       studentID,
				StartTime:       start,
				EndTime:         end,
				DurationSeconds: duration,
				DateLogged:      date,
			}
			if err := r.SleepLog.Create(ctx, log); err != nil {
				return err
			}
			result = append(result, toSleepLogResponse(log))
		}
		return nil
	})
	if err != nil {
		logUnexpected(s.logger, "写入睡眠记录失败", err)
		return nil, err
	}
	return result, nil
}

func (s *sleepLogService) List(ctx context.Context, q *dto.DateRangeQuery, studentID string) ([]dto.SleepLogResponse, error) {
	dr, err := dateRangeOf(q)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.SleepLog.List(ctx, studentID, dr)
	if err != nil {
		s.logger.Error("列出睡眠记录失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SleepLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, toSleepLogResponse(&logs[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

// parseLogFields 计时记录要求开始早于结束
func parseLogFields(startStr, endStr, durationStr, dateStr string) (start, end model.ClockTime, duration int, date time.Time, err error) {
	if start, err = model.ParseClock(startStr); err != nil {
		return
	}
	if end, err = model.ParseClock(endStr); err != nil {
		return
	}
	if start >= end {
		err = model.ErrInvalidInterval
		return
	}
	if duration, err = model.ParseDuration(durationStr); err != nil {
		return
	}
	date, err = model.ParseDate(dateStr)
	return
}

func dateRangeOf(q *dto.DateRangeQuery) (repository.DateRange, error) {
	if q == nil {
		return repository.DateRange{}, nil
	}
	return parseDateRange(*q)
}

func toTaskLogResponse(l *model.TaskTimeLog) dto.TimeLogResponse {
	return dto.TimeLogResponse{
		LogID:      l.TaskLogID,
		RefID:      l.TaskID,
		StartTime:  l.StartTime.String(),
		EndTime:    l.EndTime.String(),
		Duration:   model.FormatDuration(l.DurationSeconds),
		DateLogged: l.DateLogged.Format(model.DateLayout),
	}
}

func toActivityLogResponse(l *model.ActivityTimeLog) dto.TimeLogResponse {
	return dto.TimeLogResponse{
		LogID:      l.ActivityLogID,
		RefID:      l.ActivityID,
		StartTime:  l.StartTime.String(),
		EndTime:    l.EndTime.String(),
		Duration:   model.FormatDuration(l.DurationSeconds),
		DateLogged: l.DateLogged.Format(model.DateLayout),
	}
}

func toGoalProgressResponse(p *model.GoalProgress) dto.TimeLogResponse {
	return dto.TimeLogResponse{
		LogID:      p.GoalProgressID,
		RefID:      p.GoalScheduleID,
		GoalID:     p.GoalID,
		StartTime:  p.SessionStartTime.String(),
		EndTime:    p.SessionEndTime.String(),
		Duration:   model.FormatDuration(p.DurationSeconds),
		DateLogged: p.SessionDate.Format(model.DateLayout),
	}
}

func toSleepLogResponse(l *model.SleepLog) dto.SleepLogResponse {
	return dto.SleepLogResponse{
		SleepLogID: l.SleepLogID,
		StartTime:  l.StartTime.String(),
		EndTime:    l.EndTime.String(),
		Duration:   model.FormatDuration(l.DurationSeconds),
		DateLogged: l.DateLogged.Format(model.DateLayout),
	}
}
