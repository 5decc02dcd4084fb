package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
)

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	SlotStore[*model.Task]
	GetByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, studentID string, f ListFilter) ([]model.Task, error)
	Count(ctx context.Context, studentID string, f ListFilter) (int64, error)
	SetStatus(ctx context.Context, id string, status model.Status) error
}

type taskRepo struct {
	*slotRepo[model.Task, *model.Task]
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{slotRepo: &slotRepo[model.Task, *model.Task]{db: db, idColumn: "task_id"}}
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	return r.getByID(ctx, id, "Subject")
}

func (r *taskRepo) List(ctx context.Context, studentID string, f ListFilter) ([]model.Task, error) {
	return r.list(ctx, studentID, f, "Subject")
}

func (r *taskRepo) Count(ctx context.Context, studentID string, f ListFilter) (int64, error) {
	return r.countWhere(ctx, studentID, f)
}

func (r *taskRepo) SetStatus(ctx context.Context, id string, status model.Status) error {
	return r.setStatus(ctx, id, status)
}
