package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
)

const dashboardCachePrefix = "planma:dashboard:"

// Cache 字节缓存，由 Redis 客户端实现；未命中返回任意错误
type Cache interface {
	GetCache(ctx context.Context, key string) ([]byte, error)
	SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DashboardService 仪表盘计数业务接口
type DashboardService interface {
	// Get semesterID 为空时选取当前学期：已开始的最近学期，否则最近创建的学期
	Get(ctx context.Context, semesterID, studentID string) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	cache  Cache
	ttl    time.Duration
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例；cache 为 nil 或 ttl 为 0 时不缓存
func NewDashboardService(repo *repository.Repository, cache Cache, ttl time.Duration, loc *time.Location, logger *zap.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

func (s *dashboardService) Get(ctx context.Context, semesterID, studentID string) (*dto.DashboardResponse, error) {
	key := dashboardCachePrefix + studentID + ":" + semesterID
	if resp, ok := s.fromCache(ctx, key); ok {
		return resp, nil
	}

	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}
	day := today(s.now(), s.loc)

	semester, err := s.selectSemester(ctx, semesterID, studentID, day)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{}
	if semester != nil {
		resp.SelectedSemesterID = &semester.SemesterID
		if resp.ClassScheduleCount, err = s.repo.ClassSchedule.CountBySemester(ctx, studentID, semester.SemesterID); err != nil {
			return nil, s.countFailed(err)
		}
	}

	pending := repository.ListFilter{Status: model.StatusPending}
	if resp.PendingTasksCount, err = s.repo.Task.Count(ctx, studentID, pending); err != nil {
		return nil, s.countFailed(err)
	}
	if resp.UpcomingEventsCount, err = s.repo.Event.Count(ctx, studentID, repository.ListFilter{DateFrom: &day}); err != nil {
		return nil, s.countFailed(err)
	}
	if resp.PendingActivitiesCount, err = s.repo.Activity.Count(ctx, studentID, pending); err != nil {
		return nil, s.countFailed(err)
	}
	if resp.GoalsCount, err = s.repo.Goal.Count(ctx, studentID, repository.GoalFilter{}); err != nil {
		return nil, s.countFailed(err)
	}

	s.toCache(ctx, key, resp)
	return resp, nil
}

// ── 内部辅助方法 ──

func (s *dashboardService) selectSemester(ctx context.Context, semesterID, studentID string, day time.Time) (*model.Semester, error) {
	if semesterID != "" {
		semester, err := s.repo.Semester.GetByID(ctx, semesterID)
		if err != nil {
			return nil, notFoundOr(err, ErrSemesterNotFound)
		}
		if err := ensureOwner(semester.StudentID, studentID); err != nil {
			return nil, err
		}
		return semester, nil
	}

	semester, err := s.repo.Semester.Current(ctx, studentID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("查询当前学期失败", zap.Error(err))
		return nil, err
	}
	return semester, nil
}

func (s *dashboardService) countFailed(err error) error {
	s.logger.Error("统计仪表盘失败", zap.Error(err))
	return err
}

// fromCache 缓存读取失败按未命中处理
func (s *dashboardService) fromCache(ctx context.Context, key string) (*dto.DashboardResponse, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}
	b, err := s.cache.GetCache(ctx, key)
	if err != nil {
		return nil, false
	}
	var resp dto.DashboardResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		s.logger.Warn("仪表盘缓存损坏", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &resp, true
}

func (s *dashboardService) toCache(ctx context.Context, key string, resp *dto.DashboardResponse) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.SetCache(ctx, key, b, s.ttl); err != nil {
		s.logger.Warn("写入仪表盘缓存失败", zap.String("key", key), zap.Error(err))
	}
}
