package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakkusu1/planma-app/internal/model"
)

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	// GetOrCreate 按 (学生, 学期, 科目代码) 取或建；已存在时保留原标题
	GetOrCreate(ctx context.Context, subject *model.Subject) (*model.Subject, error)
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	GetByCode(ctx context.Context, studentID, code string) (*model.Subject, error)
	List(ctx context.Context, studentID, semesterID string) ([]model.Subject, error)
	// ExistsCode 同一学生同一学期内是否有其他科目使用该代码
	ExistsCode(ctx context.Context, studentID, semesterID, code, excludeID string) (bool, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id string) error
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) GetOrCreate(ctx context.Context, subject *model.Subject) (*model.Subject, error) {
	var existing model.Subject
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND semester_id = ? AND subject_code = ?",
			subject.StudentID, subject.SemesterID, subject.SubjectCode).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(subject).Error; err != nil {
		return nil, translateError(err)
	}
	return subject, nil
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) GetByCode(ctx context.Context, studentID, code string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND subject_code = ?", studentID, code).
		Order("created_at DESC").
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) List(ctx context.Context, studentID, semesterID string) ([]model.Subject, error) {
	q := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if semesterID != "" {
		q = q.Where("semester_id = ?", semesterID)
	}
	var subjects []model.Subject
	err := q.Order("subject_code ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) ExistsCode(ctx context.Context, studentID, semesterID, code, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Where("student_id = ? AND semester_id = ? AND subject_code = ?", studentID, semesterID, code)
	if excludeID != "" {
		q = q.Where("subject_id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subjectRepo) Update(ctx context.Context, subject *model.Subject) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(subject).Error)
}

func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		Delete(&model.Subject{}).Error
}
