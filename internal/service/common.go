package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ── 通用业务错误 ──

var (
	ErrStudentNotFound = fmt.Errorf("学生不存在: %w", pkgerrors.ErrNotFound)
	ErrNotOwner        = fmt.Errorf("只能操作本人的数据: %w", pkgerrors.ErrForbidden)
	ErrDateRange       = fmt.Errorf("结束日期不能早于开始日期: %w", pkgerrors.ErrValidation)
)

// requireStudent 校验学生账号存在
func requireStudent(ctx context.Context, repo *repository.Repository, studentID string) error {
	ok, err := repo.Student.Exists(ctx, studentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStudentNotFound
	}
	return nil
}

// ensureOwner 所有类别统一做归属校验
func ensureOwner(ownerID, studentID string) error {
	if ownerID != studentID {
		return ErrNotOwner
	}
	return nil
}

// notFoundOr 记录不存在时替换为对应的业务错误
func notFoundOr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// logUnexpected 只记录无法归类的错误，业务错误交给 Handler 映射
func logUnexpected(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	if pkgerrors.Kind(err) != nil {
		return
	}
	logger.Error(msg, append(fields, zap.Error(err))...)
}

// ── 时间解析与格式化 ──

func parseInterval(date, start, end string) (model.TimeInterval, error) {
	d, err := model.ParseDate(date)
	if err != nil {
		return model.TimeInterval{}, err
	}
	s, err := model.ParseClock(start)
	if err != nil {
		return model.TimeInterval{}, err
	}
	e, err := model.ParseClock(end)
	if err != nil {
		return model.TimeInterval{}, err
	}
	return model.NewInterval(d, s, e), nil
}

// patchInterval 在原时间段上覆盖请求中提供的字段
func patchInterval(iv model.TimeInterval, p dto.IntervalPatch) (model.TimeInterval, error) {
	out := iv
	if p.ScheduledDate != nil {
		d, err := model.ParseDate(*p.ScheduledDate)
		if err != nil {
			return iv, err
		}
		out.ScheduledDate = d
	}
	if p.ScheduledStartTime != nil {
		s, err := model.ParseClock(*p.ScheduledStartTime)
		if err != nil {
			return iv, err
		}
		out.StartTime = s
	}
	if p.ScheduledEndTime != nil {
		e, err := model.ParseClock(*p.ScheduledEndTime)
		if err != nil {
			return iv, err
		}
		out.EndTime = e
	}
	return out, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDateRange(q dto.DateRangeQuery) (repository.DateRange, error) {
	from, err := parseOptionalDate(q.DateFrom)
	if err != nil {
		return repository.DateRange{}, err
	}
	to, err := parseOptionalDate(q.DateTo)
	if err != nil {
		return repository.DateRange{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return repository.DateRange{}, ErrDateRange
	}
	return repository.DateRange{From: from, To: to}, nil
}

// listFilter 将列表查询转换为仓储过滤条件；upcoming / past 以 today 为界
func listFilter(q *dto.ScheduleListQuery, today time.Time) (repository.ListFilter, error) {
	var f repository.ListFilter
	if q == nil {
		return f, nil
	}
	r, err := parseDateRange(q.DateRangeQuery)
	if err != nil {
		return f, err
	}
	f.DateFrom, f.DateTo = r.From, r.To
	f.Status = model.Status(q.Status)

	switch q.When {
	case "upcoming":
		if f.DateFrom == nil || f.DateFrom.Before(today) {
			f.DateFrom = &today
		}
	case "past":
		f.DateBefore = &today
	}
	return f, nil
}

// parseDeadline 接受本地时间 "2006-01-02T15:04" 或带时区的 RFC3339
func parseDeadline(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(model.DeadlineLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("截止时间格式无效 %q: %w", s, pkgerrors.ErrValidation)
	}
	return t, nil
}

// today 日程时区下的当天日期
func today(now time.Time, loc *time.Location) time.Time {
	return model.DateOf(now.In(loc))
}

func toIntervalResponse(iv model.TimeInterval) dto.IntervalResponse {
	return dto.IntervalResponse{
		ScheduledDate:      iv.Date(),
		ScheduledStartTime: iv.StartTime.String(),
		ScheduledEndTime:   iv.EndTime.String(),
	}
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
