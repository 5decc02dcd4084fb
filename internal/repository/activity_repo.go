package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
)

// ActivityRepository 活动数据访问接口
type ActivityRepository interface {
	SlotStore[*model.Activity]
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	List(ctx context.Context, studentID string, f ListFilter) ([]model.Activity, error)
	Count(ctx context.Context, studentID string, f ListFilter) (int64, error)
	SetStatus(ctx context.Context, id string, status model.Status) error
}

type activityRepo struct {
	*slotRepo[model.Activity, *model.Activity]
}

// NewActivityRepo 创建 ActivityRepository 实例
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{slotRepo: &slotRepo[model.Activity, *model.Activity]{db: db, idColumn: "activity_id"}}
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	return r.getByID(ctx, id)
}

func (r *activityRepo) List(ctx context.Context, studentID string, f ListFilter) ([]model.Activity, error) {
	return r.list(ctx, studentID, f)
}

func (r *activityRepo) Count(ctx context.Context, studentID string, f ListFilter) (int64, error) {
	return r.countWhere(ctx, studentID, f)
}

func (r *activityRepo) SetStatus(ctx context.Context, id string, status model.Status) error {
	return r.setStatus(ctx, id, status)
}
