package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
)

// GoalRepository 目标数据访问接口
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	GetByID(ctx context.Context, id string) (*model.Goal, error)
	List(ctx context.Context, studentID string, f GoalFilter) ([]model.Goal, error)
	Count(ctx context.Context, studentID string, f GoalFilter) (int64, error)
	// ExistsDuplicate (名称, 周期, 目标时长, 学期) 完全一致的目标是否已存在
	ExistsDuplicate(ctx context.Context, goal *model.Goal, excludeID string) (bool, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, id string) error
}

// GoalFilter 目标列表过滤条件
type GoalFilter struct {
	SemesterID string
	GoalType   string
}

func (f GoalFilter) apply(q *gorm.DB) *gorm.DB {
	if f.SemesterID != "" {
		q = q.Where("semester_id = ?", f.SemesterID)
	}
	if f.GoalType != "" {
		q = q.Where("goal_type = ?", f.GoalType)
	}
	return q
}

type goalRepo struct {
	db *gorm.DB
}

// NewGoalRepo 创建 GoalRepository 实例
func NewGoalRepo(db *gorm.DB) GoalRepository {
	return &goalRepo{db: db}
}

func (r *goalRepo) Create(ctx context.Context, goal *model.Goal) error {
	return translateError(r.db.WithContext(ctx).Create(goal).Error)
}

func (r *goalRepo) GetByID(ctx context.Context, id string) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.WithContext(ctx).
		Where("goal_id = ?", id).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) List(ctx context.Context, studentID string, f GoalFilter) ([]model.Goal, error) {
	var goals []model.Goal
	err := f.apply(r.db.WithContext(ctx).Where("student_id = ?", studentID)).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepo) Count(ctx context.Context, studentID string, f GoalFilter) (int64, error) {
	var count int64
	err := f.apply(r.db.WithContext(ctx).Model(&model.Goal{}).Where("student_id = ?", studentID)).
		Count(&count).Error
	return count, err
}

func (r *goalRepo) ExistsDuplicate(ctx context.Context, goal *model.Goal, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Goal{}).
		Where("student_id = ? AND goal_name = ? AND timeframe = ? AND target_hours = ?",
			goal.StudentID, goal.GoalName, goal.Timeframe, goal.TargetHours)
	if goal.SemesterID != nil {
		q = q.Where("semester_id = ?", *goal.SemesterID)
	} else {
		q = q.Where("semester_id IS NULL")
	}
	if excludeID != "" {
		q = q.Where("goal_id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *goalRepo) Update(ctx context.Context, goal *model.Goal) error {
	return translateError(r.db.WithContext(ctx).Save(goal).Error)
}

// Delete 删除目标；goal_schedules 由外键级联删除，对应日程条目需调用方另行清理
func (r *goalRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("goal_id = ?", id).
		Delete(&model.Goal{}).Error
}

// ── GoalSchedule ──

// GoalScheduleRepository 目标时段数据访问接口
type GoalScheduleRepository interface {
	SlotStore[*model.GoalSchedule]
	GetByID(ctx context.Context, id string) (*model.GoalSchedule, error)
	List(ctx context.Context, studentID, goalID string, f ListFilter) ([]model.GoalSchedule, error)
	SetStatus(ctx context.Context, id string, status model.Status) error
}

type goalScheduleRepo struct {
	*slotRepo[model.GoalSchedule, *model.GoalSchedule]
}

// NewGoalScheduleRepo 创建 GoalScheduleRepository 实例
func NewGoalScheduleRepo(db *gorm.DB) GoalScheduleRepository {
	return &goalScheduleRepo{slotRepo: &slotRepo[model.GoalSchedule, *model.GoalSchedule]{db: db, idColumn: "goalschedule_id"}}
}

func (r *goalScheduleRepo) GetByID(ctx context.Context, id string) (*model.GoalSchedule, error) {
	return r.getByID(ctx, id, "Goal")
}

func (r *goalScheduleRepo) List(ctx context.Context, studentID, goalID string, f ListFilter) ([]model.GoalSchedule, error) {
	if goalID == "" {
		return r.list(ctx, studentID, f, "Goal")
	}
	var items []model.GoalSchedule
	err := f.apply(r.db.WithContext(ctx).Preload("Goal").Where("student_id = ? AND goal_id = ?", studentID, goalID)).
		Order("scheduled_date ASC, scheduled_start_time ASC").
		Find(&items).Error
	return items, err
}

func (r *goalScheduleRepo) SetStatus(ctx context.Context, id string, status model.Status) error {
	return r.setStatus(ctx, id, status)
}
