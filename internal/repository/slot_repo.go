package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakkusu1/planma-app/internal/model"
)

// SlotStore 拥有单一时间段的源实体（Task/Event/Activity/GoalSchedule）的通用存取
type SlotStore[E model.Schedulable] interface {
	// ExistsSlot 同一学生在本实体表中是否已有完全相同的 (日期, 开始, 结束)，excludeID 为空时不排除
	ExistsSlot(ctx context.Context, studentID string, iv model.TimeInterval, excludeID string) (bool, error)
	Create(ctx context.Context, e E) error
	Update(ctx context.Context, e E) error
	Delete(ctx context.Context, id string) error
}

// ListFilter 源实体列表过滤条件，零值表示不过滤
type ListFilter struct {
	DateFrom   *time.Time   // scheduled_date >= DateFrom
	DateTo     *time.Time   // scheduled_date <= DateTo
	DateBefore *time.Time   // scheduled_date < DateBefore
	Status     model.Status // Pending | Completed
}

func (f ListFilter) apply(q *gorm.DB) *gorm.DB {
	if f.DateFrom != nil {
		q = q.Where("scheduled_date >= ?", model.DateOf(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("scheduled_date <= ?", model.DateOf(*f.DateTo))
	}
	if f.DateBefore != nil {
		q = q.Where("scheduled_date < ?", model.DateOf(*f.DateBefore))
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

// slotRepo SlotStore 的 GORM 实现，T 为实体结构体，PT 为其指针
type slotRepo[T any, PT interface {
	*T
	model.Schedulable
}] struct {
	db       *gorm.DB
	idColumn string
}

func (r *slotRepo[T, PT]) ExistsSlot(ctx context.Context, studentID string, iv model.TimeInterval, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(new(T)).
		Where("student_id = ? AND scheduled_date = ? AND scheduled_start_time = ? AND scheduled_end_time = ?",
			studentID, iv.ScheduledDate, iv.StartTime, iv.EndTime)
	if excludeID != "" {
		q = q.Where(r.idColumn+" <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *slotRepo[T, PT]) Create(ctx context.Context, e PT) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

func (r *slotRepo[T, PT]) Update(ctx context.Context, e PT) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error)
}

func (r *slotRepo[T, PT]) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where(r.idColumn+" = ?", id).
		Delete(new(T)).Error
}

// getByID 按主键查询，preloads 为需要预加载的关联
func (r *slotRepo[T, PT]) getByID(ctx context.Context, id string, preloads ...string) (PT, error) {
	q := r.db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var e T
	if err := q.Where(r.idColumn+" = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// list 按学生与过滤条件列出，按日期、开始时间升序
func (r *slotRepo[T, PT]) list(ctx context.Context, studentID string, f ListFilter, preloads ...string) ([]T, error) {
	q := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var items []T
	err := f.apply(q).
		Order("scheduled_date ASC, scheduled_start_time ASC").
		Find(&items).Error
	return items, err
}

func (r *slotRepo[T, PT]) countWhere(ctx context.Context, studentID string, f ListFilter) (int64, error) {
	var count int64
	err := f.apply(r.db.WithContext(ctx).Model(new(T)).Where("student_id = ?", studentID)).
		Count(&count).Error
	return count, err
}

func (r *slotRepo[T, PT]) setStatus(ctx context.Context, id string, status model.Status) error {
	return r.db.WithContext(ctx).
		Model(new(T)).
		Where(r.idColumn+" = ?", id).
		Update("status", status).Error
}
