package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
)

// StudentRepository 学生账号只读访问接口
type StudentRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("student_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
