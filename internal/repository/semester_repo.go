package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
)

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	GetByID(ctx context.Context, id string) (*model.Semester, error)
	List(ctx context.Context, studentID string, f SemesterFilter) ([]model.Semester, error)
	// ExistsDuplicate (学年起止, 年级, 学期) 完全一致的学期是否已存在
	ExistsDuplicate(ctx context.Context, semester *model.Semester, excludeID string) (bool, error)
	// Current 最近已开始的学期；都未开始时返回最近创建的学期
	Current(ctx context.Context, studentID string, today time.Time) (*model.Semester, error)
	Update(ctx context.Context, semester *model.Semester) error
	Delete(ctx context.Context, id string) error
}

// SemesterFilter 学期列表过滤条件
type SemesterFilter struct {
	AcadYearStart *int
	AcadYearEnd   *int
	YearLevel     string
	Term          string
}

type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo 创建 SemesterRepository 实例
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) Create(ctx context.Context, semester *model.Semester) error {
	return translateError(r.db.WithContext(ctx).Create(semester).Error)
}

func (r *semesterRepo) GetByID(ctx context.Context, id string) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) List(ctx context.Context, studentID string, f SemesterFilter) ([]model.Semester, error) {
	q := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if f.AcadYearStart != nil {
		q = q.Where("acad_year_start = ?", *f.AcadYearStart)
	}
	if f.AcadYearEnd != nil {
		q = q.Where("acad_year_end = ?", *f.AcadYearEnd)
	}
	if f.YearLevel != "" {
		q = q.Where("year_level = ?", f.YearLevel)
	}
	if f.Term != "" {
		q = q.Where("semester = ?", f.Term)
	}

	var semesters []model.Semester
	err := q.Order("sem_start_date DESC").Find(&semesters).Error
	return semesters, err
}

func (r *semesterRepo) ExistsDuplicate(ctx context.Context, semester *model.Semester, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Semester{}).
		Where("student_id = ? AND acad_year_start = ? AND acad_year_end = ? AND year_level = ? AND semester = ?",
			semester.StudentID, semester.AcadYearStart, semester.AcadYearEnd, semester.YearLevel, semester.Term)
	if excludeID != "" {
		q = q.Where("semester_id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *semesterRepo) Current(ctx context.Context, studentID string, today time.Time) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND sem_start_date <= ?", studentID, model.DateOf(today)).
		Order("sem_start_date DESC").
		First(&semester).Error
	if err == nil {
		return &semester, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) Update(ctx context.Context, semester *model.Semester) error {
	return translateError(r.db.WithContext(ctx).Save(semester).Error)
}

// Delete 删除学期；科目、课程表、学术目标由外键级联删除
func (r *semesterRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		Delete(&model.Semester{}).Error
}
