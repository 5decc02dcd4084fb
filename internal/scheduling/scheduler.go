package scheduling

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	"github.com/jakkusu1/planma-app/pkg/metrics"
)

// Transactor 工作单元：fn 内的所有读写在同一事务中提交或回滚
type Transactor interface {
	Transaction(ctx context.Context, fn func(txRepo *repository.Repository) error) error
}

// StoreFunc 从（事务内的）Repository 取出实体存取接口
type StoreFunc[E model.Schedulable] func(r *repository.Repository) repository.SlotStore[E]

// Scheduler 单一时间段实体的通用排程器：冲突检测 + 实体写入 + 投影同步
type Scheduler[E model.Schedulable] struct {
	category model.Category
	tx       Transactor
	store    StoreFunc[E]
	logger   *zap.Logger
}

// NewScheduler 创建 Scheduler
func NewScheduler[E model.Schedulable](category model.Category, tx Transactor, store StoreFunc[E], logger *zap.Logger) *Scheduler[E] {
	return &Scheduler[E]{
		category: category,
		tx:       tx,
		store:    store,
		logger:   logger.With(zap.String("category", string(category))),
	}
}

// ────────────────────── Create ──────────────────────

// Create 检测冲突后写入实体与对应的一条日程条目
func (s *Scheduler[E]) Create(ctx context.Context, e E) error {
	iv := e.Slot()
	if err := iv.Validate(); err != nil {
		return err
	}
	owner := e.OwnerID()

	return s.tx.Transaction(ctx, func(r *repository.Repository) error {
		if err := r.ScheduleEntry.LockOwner(ctx, owner); err != nil {
			return err
		}

		store := s.store(r)
		result, err := Check(ctx, r.ScheduleEntry, s.category, owner, iv, nil, func(ctx context.Context) (bool, error) {
			return store.ExistsSlot(ctx, owner, iv, "")
		})
		if err != nil {
			return err
		}
		if err := result.Err(iv); err != nil {
			return err
		}

		if err := store.Create(ctx, e); err != nil {
			return err
		}
		// Create 之后主键才回填
		if err := r.ScheduleEntry.Create(ctx, model.NewScheduleEntry(e)); err != nil {
			return err
		}

		metrics.ScheduleEntryWrites.WithLabelValues(string(s.category), "create").Inc()
		return nil
	})
}

// ────────────────────── Update ──────────────────────

// Update 以排除自身的方式重新检测冲突，更新实体并覆盖其日程条目的时间段
// previous 为更新前的时间段，新起点严格晚于旧起点时重置提醒标记
func (s *Scheduler[E]) Update(ctx context.Context, previous model.TimeInterval, e E) error {
	iv := e.Slot()
	if err := iv.Validate(); err != nil {
		return err
	}
	if rem, ok := any(e).(model.Remindable); ok && iv.StartsAfter(previous) {
		rem.ClearReminder()
	}
	owner := e.OwnerID()
	ref := e.Ref()

	return s.tx.Transaction(ctx, func(r *repository.Repository) error {
		if err := r.ScheduleEntry.LockOwner(ctx, owner); err != nil {
			return err
		}

		store := s.store(r)
		result, err := Check(ctx, r.ScheduleEntry, s.category, owner, iv, &ref, func(ctx context.Context) (bool, error) {
			return store.ExistsSlot(ctx, owner, iv, ref.ReferenceID)
		})
		if err != nil {
			return err
		}
		if err := result.Err(iv); err != nil {
			return err
		}

		if err := store.Update(ctx, e); err != nil {
			return err
		}

		n, err := r.ScheduleEntry.UpdateInterval(ctx, ref, owner, iv)
		if err != nil {
			return err
		}
		if n == 0 {
			// 投影缺失时补建，保证每个实体恰有一条
			s.logger.Warn("日程条目缺失，重新生成", zap.String("reference_id", ref.ReferenceID))
			if err := r.ScheduleEntry.Create(ctx, model.NewScheduleEntry(e)); err != nil {
				return err
			}
		}

		metrics.ScheduleEntryWrites.WithLabelValues(string(s.category), "update").Inc()
		return nil
	})
}

// ────────────────────── Delete ──────────────────────

// Delete 在同一事务中删除日程条目与实体
func (s *Scheduler[E]) Delete(ctx context.Context, e E) error {
	ref := e.Ref()
	return s.tx.Transaction(ctx, func(r *repository.Repository) error {
		n, err := r.ScheduleEntry.DeleteByRef(ctx, ref, e.OwnerID())
		if err != nil {
			return err
		}
		if err := s.store(r).Delete(ctx, ref.ReferenceID); err != nil {
			return err
		}

		metrics.ScheduleEntryWrites.WithLabelValues(string(s.category), "delete").Add(float64(n))
		return nil
	})
}
