package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
)

// ScheduleEntryRepository 统一日程投影数据访问接口
type ScheduleEntryRepository interface {
	// LockOwner 获取学生级事务锁，事务结束自动释放；必须在事务内调用
	LockOwner(ctx context.Context, studentID string) error
	// FirstOverlap 同一学生同日与 iv 重叠的第一条条目，exclude 非空时跳过该引用的条目；无重叠返回 nil
	FirstOverlap(ctx context.Context, studentID string, iv model.TimeInterval, exclude *model.EntryRef) (*model.ScheduleEntry, error)
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	CreateBatch(ctx context.Context, entries []model.ScheduleEntry) error
	// UpdateInterval 覆盖引用对应条目的时间段，返回受影响行数
	UpdateInterval(ctx context.Context, ref model.EntryRef, studentID string, iv model.TimeInterval) (int64, error)
	DeleteByRef(ctx context.Context, ref model.EntryRef, studentID string) (int64, error)
	ListByRef(ctx context.Context, ref model.EntryRef, studentID string) ([]model.ScheduleEntry, error)
	List(ctx context.Context, studentID string, f EntryFilter) ([]model.ScheduleEntry, error)
	// PruneOrphans 删除引用已不存在的条目（外键级联删除源实体后调用）
	PruneOrphans(ctx context.Context, studentID string) (int64, error)
}

// EntryFilter 日程条目过滤条件
type EntryFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Category model.Category
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

// NewScheduleEntryRepo 创建 ScheduleEntryRepository 实例
func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) LockOwner(ctx context.Context, studentID string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", studentID).Error
}

func (r *scheduleEntryRepo) FirstOverlap(ctx context.Context, studentID string, iv model.TimeInterval, exclude *model.EntryRef) (*model.ScheduleEntry, error) {
	// 已有 [s, e) 与候选 [S, E) 重叠 ⇔ s < E AND e > S
	q := r.db.WithContext(ctx).
		Where("student_id = ? AND scheduled_date = ?", studentID, iv.ScheduledDate).
		Where("scheduled_start_time < ? AND scheduled_end_time > ?", iv.EndTime, iv.StartTime)
	if exclude != nil {
		q = q.Where("NOT (category_type = ? AND reference_id = ?)", exclude.Category, exclude.ReferenceID)
	}

	var entries []model.ScheduleEntry
	if err := q.Order("scheduled_start_time ASC").Limit(1).Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (r *scheduleEntryRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *scheduleEntryRepo) CreateBatch(ctx context.Context, entries []model.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).CreateInBatches(entries, 100).Error)
}

func (r *scheduleEntryRepo) UpdateInterval(ctx context.Context, ref model.EntryRef, studentID string, iv model.TimeInterval) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("category_type = ? AND reference_id = ? AND student_id = ?", ref.Category, ref.ReferenceID, studentID).
		Updates(map[string]interface{}{
			"scheduled_date":       iv.ScheduledDate,
			"scheduled_start_time": iv.StartTime,
			"scheduled_end_time":   iv.EndTime,
		})
	return result.RowsAffected, translateError(result.Error)
}

func (r *scheduleEntryRepo) DeleteByRef(ctx context.Context, ref model.EntryRef, studentID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("category_type = ? AND reference_id = ? AND student_id = ?", ref.Category, ref.ReferenceID, studentID).
		Delete(&model.ScheduleEntry{})
	return result.RowsAffected, result.Error
}

func (r *scheduleEntryRepo) ListByRef(ctx context.Context, ref model.EntryRef, studentID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("category_type = ? AND reference_id = ? AND student_id = ?", ref.Category, ref.ReferenceID, studentID).
		Order("scheduled_date ASC, scheduled_start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) List(ctx context.Context, studentID string, f EntryFilter) ([]model.ScheduleEntry, error) {
	q := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if f.DateFrom != nil {
		q = q.Where("scheduled_date >= ?", model.DateOf(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("scheduled_date <= ?", model.DateOf(*f.DateTo))
	}
	if f.Category != "" {
		q = q.Where("category_type = ?", f.Category)
	}

	var entries []model.ScheduleEntry
	err := q.Order("scheduled_date ASC, scheduled_start_time ASC").Find(&entries).Error
	return entries, err
}

const pruneOrphansSQL = `
DELETE FROM schedule_entries e
WHERE e.student_id = ? AND (
    (e.category_type = 'Task'     AND NOT EXISTS (SELECT 1 FROM tasks t           WHERE t.task_id = e.reference_id)) OR
    (e.category_type = 'Event'    AND NOT EXISTS (SELECT 1 FROM events v          WHERE v.event_id = e.reference_id)) OR
    (e.category_type = 'Activity' AND NOT EXISTS (SELECT 1 FROM activities a      WHERE a.activity_id = e.reference_id)) OR
    (e.category_type = 'Goal'     AND NOT EXISTS (SELECT 1 FROM goal_schedules g  WHERE g.goalschedule_id = e.reference_id)) OR
    (e.category_type = 'Class'    AND NOT EXISTS (SELECT 1 FROM class_schedules c WHERE c.classsched_id = e.reference_id))
)`

func (r *scheduleEntryRepo) PruneOrphans(ctx context.Context, studentID string) (int64, error) {
	result := r.db.WithContext(ctx).Exec(pruneOrphansSQL, studentID)
	return result.RowsAffected, result.Error
}
