package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
)

// EventRepository 事件数据访问接口
type EventRepository interface {
	SlotStore[*model.Event]
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, studentID string, f ListFilter) ([]model.Event, error)
	Count(ctx context.Context, studentID string, f ListFilter) (int64, error)
}

type eventRepo struct {
	*slotRepo[model.Event, *model.Event]
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{slotRepo: &slotRepo[model.Event, *model.Event]{db: db, idColumn: "event_id"}}
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return r.getByID(ctx, id)
}

func (r *eventRepo) List(ctx context.Context, studentID string, f ListFilter) ([]model.Event, error) {
	return r.list(ctx, studentID, f)
}

func (r *eventRepo) Count(ctx context.Context, studentID string, f ListFilter) (int64, error) {
	return r.countWhere(ctx, studentID, f)
}
