package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
)

// DateRange 闭区间日期过滤，任一端为 nil 表示不限
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (d DateRange) apply(q *gorm.DB, column string) *gorm.DB {
	if d.From != nil {
		q = q.Where(column+" >= ?", model.DateOf(*d.From))
	}
	if d.To != nil {
		q = q.Where(column+" <= ?", model.DateOf(*d.To))
	}
	return q
}

// TimeLogRepository 任务/活动计时与目标进度数据访问接口
type TimeLogRepository interface {
	CreateTaskLog(ctx context.Context, log *model.TaskTimeLog) error
	ExistsTaskLog(ctx context.Context, taskID string, date time.Time) (bool, error)
	ListTaskLogs(ctx context.Context, studentID string, r DateRange) ([]model.TaskTimeLog, error)

	CreateActivityLog(ctx context.Context, log *model.ActivityTimeLog) error
	ExistsActivityLog(ctx context.Context, activityID string, date time.Time) (bool, error)
	ListActivityLogs(ctx context.Context, studentID string, r DateRange) ([]model.ActivityTimeLog, error)

	CreateGoalProgress(ctx context.Context, p *model.GoalProgress) error
	ExistsGoalProgress(ctx context.Context, goalScheduleID string, date time.Time) (bool, error)
	ListGoalProgress(ctx context.Context, studentID string, r DateRange) ([]model.GoalProgress, error)
}

type timeLogRepo struct {
	db *gorm.DB
}

// NewTimeLogRepo 创建 TimeLogRepository 实例
func NewTimeLogRepo(db *gorm.DB) TimeLogRepository {
	return &timeLogRepo{db: db}
}

func (r *timeLogRepo) exists(ctx context.Context, m interface{}, where string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(m).Where(where, args...).Count(&count).Error
	return count > 0, err
}

// ────── Task ──────

func (r *timeLogRepo) CreateTaskLog(ctx context.Context, log *model.TaskTimeLog) error {
	return translateError(r.db.WithContext(ctx).Create(log).Error)
}

func (r *timeLogRepo) ExistsTaskLog(ctx context.Context, taskID string, date time.Time) (bool, error) {
	return r.exists(ctx, &model.TaskTimeLog{}, "task_id = ? AND date_logged = ?", taskID, model.DateOf(date))
}

func (r *timeLogRepo) ListTaskLogs(ctx context.Context, studentID string, dr DateRange) ([]model.TaskTimeLog, error) {
	var logs []model.TaskTimeLog
	err := dr.apply(r.db.WithContext(ctx).Where("student_id = ?", studentID), "date_logged").
		Order("date_logged DESC").
		Find(&logs).Error
	return logs, err
}

// ────── Activity ──────

func (r *timeLogRepo) CreateActivityLog(ctx context.Context, log *model.ActivityTimeLog) error {
	return translateError(r.db.WithContext(ctx).Create(log).Error)
}

func (r *timeLogRepo) ExistsActivityLog(ctx context.Context, activityID string, date time.Time) (bool, error) {
	return r.exists(ctx, &model.ActivityTimeLog{}, "activity_id = ? AND date_logged = ?", activityID, model.DateOf(date))
}

func (r *timeLogRepo) ListActivityLogs(ctx context.Context, studentID string, dr DateRange) ([]model.ActivityTimeLog, error) {
	var logs []model.ActivityTimeLog
	err := dr.apply(r.db.WithContext(ctx).Where("student_id = ?", studentID), "date_logged").
		Order("date_logged DESC").
		Find(&logs).Error
	return logs, err
}

// ────── Goal ──────

func (r *timeLogRepo) CreateGoalProgress(ctx context.Context, p *model.GoalProgress) error {
	return translateError(r.db.WithContext(ctx).Create(p).Error)
}

func (r *timeLogRepo) ExistsGoalProgress(ctx context.Context, goalScheduleID string, date time.Time) (bool, error) {
	return r.exists(ctx, &model.GoalProgress{}, "goalschedule_id = ? AND session_date = ?", goalScheduleID, model.DateOf(date))
}

func (r *timeLogRepo) ListGoalProgress(ctx context.Context, studentID string, dr DateRange) ([]model.GoalProgress, error) {
	var list []model.GoalProgress
	err := dr.apply(r.db.WithContext(ctx).Where("student_id = ?", studentID), "session_date").
		Order("session_date DESC").
		Find(&list).Error
	return list, err
}

// ── SleepLog ──

// SleepLogRepository 睡眠记录数据访问接口
type SleepLogRepository interface {
	Create(ctx context.Context, log *model.SleepLog) error
	List(ctx context.Context, studentID string, r DateRange) ([]model.SleepLog, error)
}

type sleepLogRepo struct {
	db *gorm.DB
}

// NewSleepLogRepo 创建 SleepLogRepository 实例
func NewSleepLogRepo(db *gorm.DB) SleepLogRepository {
	return &sleepLogRepo{db: db}
}

func (r *sleepLogRepo) Create(ctx context.Context, log *model.SleepLog) error {
	return translateError(r.db.WithContext(ctx).Create(log).Error)
}

func (r *sleepLogRepo) List(ctx context.Context, studentID string, dr DateRange) ([]model.SleepLog, error) {
	var logs []model.SleepLog
	err := dr.apply(r.db.WithContext(ctx).Where("student_id = ?", studentID), "date_logged").
		Order("date_logged DESC").
		Find(&logs).Error
	return logs, err
}
