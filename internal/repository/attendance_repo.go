package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakkusu1/planma-app/internal/model"
)

// AttendanceRepository 事件/课程出勤数据访问接口
type AttendanceRepository interface {
	// GetEventAttendance 按 (事件, 学生) 查询；不存在返回 gorm.ErrRecordNotFound
	GetEventAttendance(ctx context.Context, eventID, studentID string) (*model.AttendedEvent, error)
	GetEventAttendanceByID(ctx context.Context, id string) (*model.AttendedEvent, error)
	SaveEventAttendance(ctx context.Context, att *model.AttendedEvent) error
	ListEventAttendance(ctx context.Context, studentID string, r DateRange) ([]model.AttendedEvent, error)

	// UpsertClassAttendance 按 (课程, 日期) 插入或更新状态
	UpsertClassAttendance(ctx context.Context, att *model.AttendedClass) error
	ListClassAttendance(ctx context.Context, studentID, classSchedID string, r DateRange) ([]model.AttendedClass, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) GetEventAttendance(ctx context.Context, eventID, studentID string) (*model.AttendedEvent, error) {
	var att model.AttendedEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) GetEventAttendanceByID(ctx context.Context, id string) (*model.AttendedEvent, error) {
	var att model.AttendedEvent
	err := r.db.WithContext(ctx).
		Where("att_events_id = ?", id).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) SaveEventAttendance(ctx context.Context, att *model.AttendedEvent) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(att).Error)
}

func (r *attendanceRepo) ListEventAttendance(ctx context.Context, studentID string, dr DateRange) ([]model.AttendedEvent, error) {
	var list []model.AttendedEvent
	err := dr.apply(r.db.WithContext(ctx).Preload("Event").Where("student_id = ?", studentID), "date").
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) UpsertClassAttendance(ctx context.Context, att *model.AttendedClass) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "classsched_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(att).Error
	return translateError(err)
}

func (r *attendanceRepo) ListClassAttendance(ctx context.Context, studentID, classSchedID string, dr DateRange) ([]model.AttendedClass, error) {
	q := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if classSchedID != "" {
		q = q.Where("classsched_id = ?", classSchedID)
	}
	var list []model.AttendedClass
	err := dr.apply(q, "attendance_date").
		Order("attendance_date DESC").
		Find(&list).Error
	return list, err
}
