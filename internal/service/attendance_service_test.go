package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
)

func setupTestAttendanceService() (AttendanceService, *fixture) {
	f := newFixture()
	iv := model.NewInterval(mustDate("2026-03-12"), mustClock("14:00"), mustClock("16:00"))
	f.events.items["evt-1"] = &model.Event{EventID: "evt-1", StudentID: testStudent, EventName: "讲座", TimeInterval: iv}
	f.events.items["evt-other"] = &model.Event{EventID: "evt-other", StudentID: otherID, EventName: "他人讲座", TimeInterval: iv}
	f.classes.classes["class-1"] = &model.ClassSchedule{ClassSchedID: "class-1", StudentID: testStudent, DayOfWeek: "Monday"}
	f.classes.classes["class-other"] = &model.ClassSchedule{ClassSchedID: "class-other", StudentID: otherID, DayOfWeek: "Monday"}
	return NewAttendanceService(f.repo, zap.NewNop()), f
}

func TestAttendanceService_MarkEvent_CreateThenUpdate(t *testing.T) {
	svc, f := setupTestAttendanceService()
	ctx := context.Background()

	resp, created, err := svc.MarkEvent(ctx, &dto.MarkEventAttendanceRequest{EventID: "evt-1", Date: "2026-03-12", HasAttended: true}, testStudent)
	if err != nil {
		t.Fatalf("MarkEvent 应成功: %v", err)
	}
	if !created {
		t.Error("首次标记应为新建")
	}
	if resp.EventName != "讲座" || !resp.HasAttended {
		t.Errorf("响应不正确: %+v", resp)
	}

	resp2, created, err := svc.MarkEvent(ctx, &dto.MarkEventAttendanceRequest{EventID: "evt-1", Date: "2026-03-12", HasAttended: false}, testStudent)
	if err != nil {
		t.Fatalf("再次 MarkEvent 应成功: %v", err)
	}
	if created {
		t.Error("已有记录时应为更新")
	}
	if resp2.AttEventsID != resp.AttEventsID || resp2.HasAttended {
		t.Errorf("应更新同一条记录: %+v", resp2)
	}
	if len(f.attendance.events) != 1 {
		t.Errorf("期望 1 条出勤记录，实际=%d", len(f.attendance.events))
	}
}

func TestAttendanceService_MarkEvent_OtherOwner(t *testing.T) {
	svc, _ := setupTestAttendanceService()

	_, _, err := svc.MarkEvent(context.Background(), &dto.MarkEventAttendanceRequest{EventID: "evt-other", Date: "2026-03-12"}, testStudent)
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("期望 ErrNotOwner，实际: %v", err)
	}
}

func TestAttendanceService_UpdateEvent(t *testing.T) {
	svc, _ := setupTestAttendanceService()
	ctx := context.Background()

	resp, _, _ := svc.MarkEvent(ctx, &dto.MarkEventAttendanceRequest{EventID: "evt-1", Date: "2026-03-12"}, testStudent)

	if _, err := svc.UpdateEvent(ctx, resp.AttEventsID, &dto.UpdateEventAttendanceRequest{HasAttended: true}, otherID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("期望 ErrNotOwner，实际: %v", err)
	}
	updated, err := svc.UpdateEvent(ctx, resp.AttEventsID, &dto.UpdateEventAttendanceRequest{HasAttended: true}, testStudent)
	if err != nil {
		t.Fatalf("UpdateEvent 应成功: %v", err)
	}
	if !updated.HasAttended {
		t.Error("HasAttended 应为 true")
	}
	if _, err := svc.UpdateEvent(ctx, "missing", &dto.UpdateEventAttendanceRequest{}, testStudent); !errors.Is(err, ErrAttendanceNotFound) {
		t.Errorf("期望 ErrAttendanceNotFound，实际: %v", err)
	}
}

func TestAttendanceService_MarkClasses_DefaultStatusAndUpsert(t *testing.T) {
	svc, f := setupTestAttendanceService()
	ctx := context.Background()

	resp, err := svc.MarkClasses(ctx, &dto.MarkClassAttendanceRequest{Records: []dto.ClassAttendanceRequest{
		{ClassSchedID: "class-1", AttendanceDate: "2026-03-02"},
		{ClassSchedID: "class-1", AttendanceDate: "2026-03-09", Status: model.AttendanceAttended},
	}}, testStudent)
	if err != nil {
		t.Fatalf("MarkClasses 应成功: %v", err)
	}
	if resp[0].Status != model.AttendanceDidNotAttend {
		t.Errorf("未提供状态时期望 %q，实际=%q", model.AttendanceDidNotAttend, resp[0].Status)
	}

	// 同一次课再次提交覆盖状态
	_, err = svc.MarkClasses(ctx, &dto.MarkClassAttendanceRequest{Records: []dto.ClassAttendanceRequest{
		{ClassSchedID: "class-1", AttendanceDate: "2026-03-02", Status: model.AttendanceExcused},
	}}, testStudent)
	if err != nil {
		t.Fatalf("再次 MarkClasses 应成功: %v", err)
	}
	if len(f.attendance.classes) != 2 {
		t.Errorf("期望 2 条课程出勤，实际=%d", len(f.attendance.classes))
	}
	if got := f.attendance.classes["class-1|2026-03-02"].Status; got != model.AttendanceExcused {
		t.Errorf("期望覆盖为 Excused，实际=%s", got)
	}
}

func TestAttendanceService_MarkClasses_ForeignClassAborts(t *testing.T) {
	svc, _ := setupTestAttendanceService()

	_, err := svc.MarkClasses(context.Background(), &dto.MarkClassAttendanceRequest{Records: []dto.ClassAttendanceRequest{
		{ClassSchedID: "class-1", AttendanceDate: "2026-03-02"},
		{ClassSchedID: "class-other", AttendanceDate: "2026-03-02"},
	}}, testStudent)
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("期望 ErrNotOwner，实际: %v", err)
	}
}
