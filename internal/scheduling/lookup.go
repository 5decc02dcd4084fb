package scheduling

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
)

// Loader 按引用 ID 加载可展示的源实体
type Loader func(ctx context.Context, r *repository.Repository, id string) (model.Describer, error)

// Resolver 日程条目反查展示信息，按类别注册加载器
type Resolver struct {
	repo    *repository.Repository
	loaders map[model.Category]Loader
	logger  *zap.Logger
}

// NewResolver 创建 Resolver 并注册五种类别的默认加载器
func NewResolver(repo *repository.Repository, logger *zap.Logger) *Resolver {
	l := &Resolver{
		repo:    repo,
		loaders: make(map[model.Category]Loader, len(model.Categories)),
		logger:  logger,
	}
	l.Register(model.CategoryTask, func(ctx context.Context, r *repository.Repository, id string) (model.Describer, error) {
		t, err := r.Task.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return t, nil
	})
	l.Register(model.CategoryEvent, func(ctx context.Context, r *repository.Repository, id string) (model.Describer, error) {
		e, err := r.Event.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return e, nil
	})
	l.Register(model.CategoryActivity, func(ctx context.Context, r *repository.Repository, id string) (model.Describer, error) {
		a, err := r.Activity.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return a, nil
	})
	l.Register(model.CategoryGoal, func(ctx context.Context, r *repository.Repository, id string) (model.Describer, error) {
		g, err := r.GoalSchedule.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	l.Register(model.CategoryClass, func(ctx context.Context, r *repository.Repository, id string) (model.Describer, error) {
		c, err := r.ClassSchedule.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
	return l
}

// Register 注册或覆盖某类别的加载器
func (l *Resolver) Register(category model.Category, loader Loader) {
	l.loaders[category] = loader
}

// Resolve 返回引用的名称与状态；引用失效或加载失败时返回 Unknown
func (l *Resolver) Resolve(ctx context.Context, ref model.EntryRef) model.RelatedInfo {
	loader, ok := l.loaders[ref.Category]
	if !ok {
		return model.UnknownInfo()
	}

	d, err := loader(ctx, l.repo, ref.ReferenceID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.logger.Warn("加载日程关联信息失败",
				zap.String("category", string(ref.Category)),
				zap.String("reference_id", ref.ReferenceID),
				zap.Error(err),
			)
		}
		return model.UnknownInfo()
	}
	return d.Describe()
}

// ResolveBatch 批量反查，相同引用只加载一次；单个失败不影响其他引用
func (l *Resolver) ResolveBatch(ctx context.Context, refs []model.EntryRef) map[model.EntryRef]model.RelatedInfo {
	out := make(map[model.EntryRef]model.RelatedInfo, len(refs))
	for _, ref := range refs {
		if _, done := out[ref]; done {
			continue
		}
		out[ref] = l.Resolve(ctx, ref)
	}
	return out
}
