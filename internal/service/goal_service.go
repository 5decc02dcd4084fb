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

// ── 目标模块业务错误 ──

var (
	ErrGoalNotFound         = fmt.Errorf("目标不存在: %w", pkgerrors.ErrNotFound)
	ErrGoalScheduleNotFound = fmt.Errorf("目标时段不存在: %w", pkgerrors.ErrNotFound)
	ErrGoalDuplicate        = fmt.Errorf("已存在相同的目标: %w", pkgerrors.ErrDuplicate)
	ErrGoalSemesterRequired = fmt.Errorf("学业目标必须关联学期: %w", pkgerrors.ErrValidation)
	ErrGoalSemesterDenied   = fmt.Errorf("个人目标不能关联学期: %w", pkgerrors.ErrValidation)
)

// GoalService 目标业务接口
type GoalService interface {
	Create(ctx context.Context, req *dto.CreateGoalRequest, studentID string) (*dto.GoalResponse, error)
	GetByID(ctx context.Context, id, studentID string) (*dto.GoalResponse, error)
	List(ctx context.Context, q *dto.GoalListQuery, studentID string) ([]dto.GoalResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateGoalRequest, studentID string) (*dto.GoalResponse, error)
	Delete(ctx context.Context, id, studentID string) error
}

type goalService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGoalService 创建 GoalService 实例
func NewGoalService(repo *repository.Repository, logger *zap.Logger) GoalService {
	return &goalService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *goalService) Create(ctx context.Context, req *dto.CreateGoalRequest, studentID string) (*dto.GoalResponse, error) {
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}

	goal := &model.Goal{
		StudentID:   studentID,
		GoalName:    req.GoalName,
		GoalDesc:    req.GoalDesc,
		Timeframe:   req.Timeframe,
		TargetHours: req.TargetHours,
		GoalType:    req.GoalType,
		SemesterID:  model.NullIfEmpty(req.SemesterID),
	}
	if err := s.validate(ctx, goal, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Goal.Create(ctx, goal); err != nil {
		logUnexpected(s.logger, "创建目标失败", err)
		return nil, err
	}
	return toGoalResponse(goal), nil
}

// ────────────────────── Read ──────────────────────

func (s *goalService) GetByID(ctx context.Context, id, studentID string) (*dto.GoalResponse, error) {
	goal, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	return toGoalResponse(goal), nil
}

func (s *goalService) List(ctx context.Context, q *dto.GoalListQuery, studentID string) ([]dto.GoalResponse, error) {
	var f repository.GoalFilter
	if q != nil {
		f = repository.GoalFilter{SemesterID: q.SemesterID, GoalType: q.GoalType}
	}

	goals, err := s.repo.Goal.List(ctx, studentID, f)
	if err != nil {
		s.logger.Error("列出目标失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GoalResponse, 0, len(goals))
	for i := range goals {
		result = append(result, *toGoalResponse(&goals[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *goalService) Update(ctx context.Context, id string, req *dto.UpdateGoalRequest, studentID string) (*dto.GoalResponse, error) {
	goal, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}

	if req.GoalName != nil {
		goal.GoalName = *req.GoalName
	}
	if req.GoalDesc != nil {
		goal.GoalDesc = *req.GoalDesc
	}
	if req.Timeframe != nil {
		goal.Timeframe = *req.Timeframe
	}
	if req.TargetHours != nil {
		goal.TargetHours = *req.TargetHours
	}
	if req.GoalType != nil {
		goal.GoalType = *req.GoalType
	}
	if req.ClearSemester {
		goal.SemesterID = nil
	} else if req.SemesterID != nil {
		goal.SemesterID = model.NullIfEmpty(req.SemesterID)
	}

	if err := s.validate(ctx, goal, goal.GoalID); err != nil {
		return nil, err
	}
	if err := s.repo.Goal.Update(ctx, goal); err != nil {
		logUnexpected(s.logger, "更新目标失败", err, zap.String("id", id))
		return nil, err
	}
	return toGoalResponse(goal), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除目标；其下目标时段由外键级联删除，随后清理失效的日程条目
func (s *goalService) Delete(ctx context.Context, id, studentID string) error {
	goal, err := s.owned(ctx, id, studentID)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(r *repository.Repository) error {
		if err := r.ScheduleEntry.LockOwner(ctx, studentID); err != nil {
			return err
		}
		if err := r.Goal.Delete(ctx, goal.GoalID); err != nil {
			return err
		}
		pruned, err := r.ScheduleEntry.PruneOrphans(ctx, studentID)
		if err != nil {
			return err
		}
		s.logger.Debug("目标已删除", zap.String("id", id), zap.Int64("pruned_entries", pruned))
		return nil
	})
	if err != nil {
		logUnexpected(s.logger, "删除目标失败", err, zap.String("id", id))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *goalService) owned(ctx context.Context, id, studentID string) (*model.Goal, error) {
	goal, err := s.repo.Goal.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrGoalNotFound)
	}
	if err := ensureOwner(goal.StudentID, studentID); err != nil {
		return nil, err
	}
	return goal, nil
}

// validate Academic 目标必须关联本人学期，Personal 目标不得关联；再检查重复
func (s *goalService) validate(ctx context.Context, goal *model.Goal, excludeID string) error {
	switch goal.GoalType {
	case model.GoalTypeAcademic:
		if goal.SemesterID == nil {
			return ErrGoalSemesterRequired
		}
		semester, err := s.repo.Semester.GetByID(ctx, *goal.SemesterID)
		if err != nil {
			return notFoundOr(err, ErrSemesterNotFound)
		}
		if err := ensureOwner(semester.StudentID, goal.StudentID); err != nil {
			return err
		}
	case model.GoalTypePersonal:
		if goal.SemesterID != nil {
			return ErrGoalSemesterDenied
		}
	default:
		return fmt.Errorf("未知的目标类型 %q: %w", goal.GoalType, pkgerrors.ErrValidation)
	}

	dup, err := s.repo.Goal.ExistsDuplicate(ctx, goal, excludeID)
	if err != nil {
		return err
	}
	if dup {
		return ErrGoalDuplicate
	}
	return nil
}

func toGoalResponse(g *model.Goal) *dto.GoalResponse {
	return &dto.GoalResponse{
		GoalID:      g.GoalID,
		GoalName:    g.GoalName,
		GoalDesc:    g.GoalDesc,
		Timeframe:   g.Timeframe,
		TargetHours: g.TargetHours,
		GoalType:    g.GoalType,
		SemesterID:  g.SemesterID,
		CreatedAt:   formatTimestamp(g.CreatedAt),
		UpdatedAt:   formatTimestamp(g.UpdatedAt),
	}
}

// ════════════════════════ 目标时段 ════════════════════════

// GoalScheduleService 目标时段业务接口
type GoalScheduleService interface {
	Create(ctx context.Context, req *dto.CreateGoalScheduleRequest, studentID string) (*dto.GoalScheduleResponse, error)
	GetByID(ctx context.Context, id, studentID string) (*dto.GoalScheduleResponse, error)
	List(ctx context.Context, q *dto.GoalScheduleListQuery, studentID string) ([]dto.GoalScheduleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateGoalScheduleRequest, studentID string) (*dto.GoalScheduleResponse, error)
	Delete(ctx context.Context, id, studentID string) error
}

type goalScheduleService struct {
	repo      *repository.Repository
	scheduler *scheduling.Scheduler[*model.GoalSchedule]
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewGoalScheduleService 创建 GoalScheduleService 实例
func NewGoalScheduleService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) GoalScheduleService {
	return &goalScheduleService{
		repo: repo,
		scheduler: scheduling.NewScheduler[*model.GoalSchedule](model.CategoryGoal, repo,
			func(r *repository.Repository) repository.SlotStore[*model.GoalSchedule] { return r.GoalSchedule }, logger),
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

func (s *goalScheduleService) Create(ctx context.Context, req *dto.CreateGoalScheduleRequest, studentID string) (*dto.GoalScheduleResponse, error) {
	iv, err := parseInterval(req.ScheduledDate, req.ScheduledStartTime, req.ScheduledEndTime)
	if err != nil {
		return nil, err
	}
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}

	goal, err := s.repo.Goal.GetByID(ctx, req.GoalID)
	if err != nil {
		return nil, notFoundOr(err, ErrGoalNotFound)
	}
	if err := ensureOwner(goal.StudentID, studentID); err != nil {
		return nil, err
	}

	gs := &model.GoalSchedule{
		StudentID:    studentID,
		GoalID:       goal.GoalID,
		TimeInterval: iv,
		Status:       model.StatusPending,
	}
	if err := s.scheduler.Create(ctx, gs); err != nil {
		logUnexpected(s.logger, "创建目标时段失败", err, zap.String("goal_id", goal.GoalID))
		return nil, err
	}

	gs.Goal = goal
	return toGoalScheduleResponse(gs), nil
}

func (s *goalScheduleService) GetByID(ctx context.Context, id, studentID string) (*dto.GoalScheduleResponse, error) {
	gs, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	return toGoalScheduleResponse(gs), nil
}

func (s *goalScheduleService) List(ctx context.Context, q *dto.GoalScheduleListQuery, studentID string) ([]dto.GoalScheduleResponse, error) {
	var goalID string
	var lq *dto.ScheduleListQuery
	if q != nil {
		goalID = q.GoalID
		lq = &q.ScheduleListQuery
	}
	f, err := listFilter(lq, today(s.now(), s.loc))
	if err != nil {
		return nil, err
	}

	schedules, err := s.repo.GoalSchedule.List(ctx, studentID, goalID, f)
	if err != nil {
		s.logger.Error("列出目标时段失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GoalScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *toGoalScheduleResponse(&schedules[i]))
	}
	return result, nil
}

func (s *goalScheduleService) Update(ctx context.Context, id string, req *dto.UpdateGoalScheduleRequest, studentID string) (*dto.GoalScheduleResponse, error) {
	gs, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	previous := gs.TimeInterval

	if gs.TimeInterval, err = patchInterval(gs.TimeInterval, req.IntervalPatch); err != nil {
		return nil, err
	}
	if req.Status != nil {
		gs.Status = model.Status(*req.Status)
	}

	if err := s.scheduler.Update(ctx, previous, gs); err != nil {
		logUnexpected(s.logger, "更新目标时段失败", err, zap.String("id", id))
		return nil, err
	}
	return toGoalScheduleResponse(gs), nil
}

func (s *goalScheduleService) Delete(ctx context.Context, id, studentID string) error {
	gs, err := s.owned(ctx, id, studentID)
	if err != nil {
		return err
	}
	if err := s.scheduler.Delete(ctx, gs); err != nil {
		logUnexpected(s.logger, "删除目标时段失败", err, zap.String("id", id))
		return err
	}
	return nil
}

func (s *goalScheduleService) owned(ctx context.Context, id, studentID string) (*model.GoalSchedule, error) {
	gs, err := s.repo.GoalSchedule.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrGoalScheduleNotFound)
	}
	if err := ensureOwner(gs.StudentID, studentID); err != nil {
		return nil, err
	}
	return gs, nil
}

func toGoalScheduleResponse(g *model.GoalSchedule) *dto.GoalScheduleResponse {
	resp := &dto.GoalScheduleResponse{
		GoalScheduleID:   g.GoalScheduleID,
		GoalID:           g.GoalID,
		IntervalResponse: toIntervalResponse(g.TimeInterval),
		Status:           string(g.Status),
		CreatedAt:        formatTimestamp(g.CreatedAt),
		UpdatedAt:        formatTimestamp(g.UpdatedAt),
	}
	if g.Goal != nil {
		resp.GoalName = g.Goal.GoalName
	}
	return resp
}
