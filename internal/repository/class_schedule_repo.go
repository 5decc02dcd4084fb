package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakkusu1/planma-app/internal/model"
)

// ClassScheduleRepository 课程表数据访问接口
type ClassScheduleRepository interface {
	Create(ctx context.Context, cs *model.ClassSchedule) error
	GetByID(ctx context.Context, id string) (*model.ClassSchedule, error)
	// List semesterID 为空时列出全部学期
	List(ctx context.Context, studentID, semesterID string) ([]model.ClassSchedule, error)
	// ExistsTemplate 同一科目、星期、起止时间的课程模板是否已存在
	ExistsTemplate(ctx context.Context, cs *model.ClassSchedule, excludeID string) (bool, error)
	CountBySubject(ctx context.Context, studentID, subjectID string) (int64, error)
	CountBySemester(ctx context.Context, studentID, semesterID string) (int64, error)
	Update(ctx context.Context, cs *model.ClassSchedule) error
	Delete(ctx context.Context, id string) error
}

type classScheduleRepo struct {
	db *gorm.DB
}

// NewClassScheduleRepo 创建 ClassScheduleRepository 实例
func NewClassScheduleRepo(db *gorm.DB) ClassScheduleRepository {
	return &classScheduleRepo{db: db}
}

func (r *classScheduleRepo) Create(ctx context.Context, cs *model.ClassSchedule) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(cs).Error)
}

func (r *classScheduleRepo) GetByID(ctx context.Context, id string) (*model.ClassSchedule, error) {
	var cs model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Subject.Semester").
		Where("classsched_id = ?", id).
		First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *classScheduleRepo) List(ctx context.Context, studentID, semesterID string) ([]model.ClassSchedule, error) {
	q := r.db.WithContext(ctx).
		Preload("Subject").
		Where("class_schedules.student_id = ?", studentID)
	if semesterID != "" {
		q = q.Joins("JOIN subjects ON subjects.subject_id = class_schedules.subject_id").
			Where("subjects.semester_id = ?", semesterID)
	}

	var list []model.ClassSchedule
	err := q.Order("class_schedules.day_of_week, class_schedules.scheduled_start_time").
		Find(&list).Error
	return list, err
}

func (r *classScheduleRepo) ExistsTemplate(ctx context.Context, cs *model.ClassSchedule, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.ClassSchedule{}).
		Where("student_id = ? AND subject_id = ? AND day_of_week = ? AND scheduled_start_time = ? AND scheduled_end_time = ?",
			cs.StudentID, cs.SubjectID, cs.DayOfWeek, cs.StartTime, cs.EndTime)
	if excludeID != "" {
		q = q.Where("classsched_id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *classScheduleRepo) CountBySubject(ctx context.Context, studentID, subjectID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassSchedule{}).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		Count(&count).Error
	return count, err
}

func (r *classScheduleRepo) CountBySemester(ctx context.Context, studentID, semesterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassSchedule{}).
		Joins("JOIN subjects ON subjects.subject_id = class_schedules.subject_id").
		Where("class_schedules.student_id = ? AND subjects.semester_id = ?", studentID, semesterID).
		Count(&count).Error
	return count, err
}

func (r *classScheduleRepo) Update(ctx context.Context, cs *model.ClassSchedule) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(cs).Error)
}

func (r *classScheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("classsched_id = ?", id).
		Delete(&model.ClassSchedule{}).Error
}
