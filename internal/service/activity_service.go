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

// ErrActivityNotFound 活动不存在
var ErrActivityNotFound = fmt.Errorf("活动不存在: %w", pkgerrors.ErrNotFound)

// ActivityService 活动业务接口
type ActivityService interface {
	Create(ctx context.Context, req *dto.CreateActivityRequest, studentID string) (*dto.ActivityResponse, error)
	GetByID(ctx context.Context, id, studentID string) (*dto.ActivityResponse, error)
	List(ctx context.Context, q *dto.ScheduleListQuery, studentID string) ([]dto.ActivityResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateActivityRequest, studentID string) (*dto.ActivityResponse, error)
	Delete(ctx context.Context, id, studentID string) error
}

type activityService struct {
	repo      *repository.Repository
	scheduler *scheduling.Scheduler[*model.Activity]
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ActivityService {
	return &activityService{
		repo: repo,
		scheduler: scheduling.NewScheduler[*model.Activity](model.CategoryActivity, repo,
			func(r *repository.Repository) repository.SlotStore[*model.Activity] { return r.Activity }, logger),
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

func (s *activityService) Create(ctx context.Context, req *dto.CreateActivityRequest, studentID string) (*dto.ActivityResponse, error) {
	iv, err := parseInterval(req.ScheduledDate, req.ScheduledStartTime, req.ScheduledEndTime)
	if err != nil {
		return nil, err
	}
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}

	activity := &model.Activity{
		StudentID:    studentID,
		ActivityName: req.ActivityName,
		ActivityDesc: model.NullIfEmpty(req.ActivityDesc),
		TimeInterval: iv,
		Status:       model.StatusPending,
	}
	if err := s.scheduler.Create(ctx, activity); err != nil {
		logUnexpected(s.logger, "创建活动失败", err, zap.String("student_id", studentID))
		return nil, err
	}
	return toActivityResponse(activity), nil
}

func (s *activityService) GetByID(ctx context.Context, id, studentID string) (*dto.ActivityResponse, error) {
	activity, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	return toActivityResponse(activity), nil
}

func (s *activityService) List(ctx context.Context, q *dto.ScheduleListQuery, studentID string) ([]dto.ActivityResponse, error) {
	f, err := listFilter(q, today(s.now(), s.loc))
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.Activity.List(ctx, studentID, f)
	if err != nil {
		s.logger.Error("列出活动失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		result = append(result, *toActivityResponse(&activities[i]))
	}
	return result, nil
}

func (s *activityService) Update(ctx context.Context, id string, req *dto.UpdateActivityRequest, studentID string) (*dto.ActivityResponse, error) {
	activity, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	previous := activity.TimeInterval

	if activity.TimeInterval, err = patchInterval(activity.TimeInterval, req.IntervalPatch); err != nil {
		return nil, err
	}
	if req.ActivityName != nil {
		activity.ActivityName = *req.ActivityName
	}
	if req.ActivityDesc != nil {
		activity.ActivityDesc = model.NullIfEmpty(req.ActivityDesc)
	}
	if req.Status != nil {
		activity.Status = model.Status(*req.Status)
	}

	if err := s.scheduler.Update(ctx, previous, activity); err != nil {
		logUnexpected(s.logger, "更新活动失败", err, zap.String("id", id))
		return nil, err
	}
	return toActivityResponse(activity), nil
}

func (s *activityService) Delete(ctx context.Context, id, studentID string) error {
	activity, err := s.owned(ctx, id, studentID)
	if err != nil {
		return err
	}
	if err := s.scheduler.Delete(ctx, activity); err != nil {
		logUnexpected(s.logger, "删除活动失败", err, zap.String("id", id))
		return err
	}
	return nil
}

func (s *activityService) owned(ctx context.Context, id, studentID string) (*model.Activity, error) {
	activity, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrActivityNotFound)
	}
	if err := ensureOwner(activity.StudentID, studentID); err != nil {
		return nil, err
	}
	return activity, nil
}

func toActivityResponse(a *model.Activity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ActivityID:       a.ActivityID,
		ActivityName:     a.ActivityName,
		ActivityDesc:     a.ActivityDesc,
		IntervalResponse: toIntervalResponse(a.TimeInterval),
		Status:           string(a.Status),
		ReminderSent:     a.ReminderSent,
		CreatedAt:        formatTimestamp(a.CreatedAt),
		UpdatedAt:        formatTimestamp(a.UpdatedAt),
	}
}
