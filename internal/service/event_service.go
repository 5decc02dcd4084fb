package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	"github.com/jakkusu1/planma-app/internal/scheduling"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ErrEventNotFound 事件不存在
var ErrEventNotFound = fmt.Errorf("事件不存在: %w", pkgerrors.ErrNotFound)

// EventService 事件业务接口
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, studentID string) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id, studentID string) (*dto.EventResponse, error)
	List(ctx context.Context, q *dto.ScheduleListQuery, studentID string) ([]dto.EventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest, studentID string) (*dto.EventResponse, error)
	Delete(ctx context.Context, id, studentID string) error
}

type eventService struct {
	repo      *repository.Repository
	scheduler *scheduling.Scheduler[*model.Event]
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		scheduler: scheduling.NewScheduler[*model.Event](model.CategoryEvent, repo,
			func(r *repository.Repository) repository.SlotStore[*model.Event] { return r.Event }, logger),
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, studentID string) (*dto.EventResponse, error) {
	iv, err := parseInterval(req.ScheduledDate, req.ScheduledStartTime, req.ScheduledEndTime)
	if err != nil {
		return nil, err
	}
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}

	event := &model.Event{
		StudentID:    studentID,
		EventName:    req.EventName,
		EventDesc:    model.NullIfEmpty(req.EventDesc),
		Location:     req.Location,
		EventType:    req.EventType,
		TimeInterval: iv,
	}
	if err := s.scheduler.Create(ctx, event); err != nil {
		logUnexpected(s.logger, "创建事件失败", err, zap.String("student_id", studentID))
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *eventService) GetByID(ctx context.Context, id, studentID string) (*dto.EventResponse, error) {
	event, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *eventService) List(ctx context.Context, q *dto.ScheduleListQuery, studentID string) ([]dto.EventResponse, error) {
	// 事件没有完成状态
	if q != nil {
		q.Status = ""
	}
	f, err := listFilter(q, today(s.now(), s.loc))
	if err != nil {
		return nil, err
	}

	events, err := s.repo.Event.List(ctx, studentID, f)
	if err != nil {
		s.logger.Error("列出事件失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toEventResponse(&events[i]))
	}
	return result, nil
}

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest, studentID string) (*dto.EventResponse, error) {
	event, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	previous := event.TimeInterval

	if event.TimeInterval, err = patchInterval(event.TimeInterval, req.IntervalPatch); err != nil {
		return nil, err
	}
	if req.EventName != nil {
		event.EventName = *req.EventName
	}
	if req.EventDesc != nil {
		event.EventDesc = model.NullIfEmpty(req.EventDesc)
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}

	if err := s.scheduler.Update(ctx, previous, event); err != nil {
		logUnexpected(s.logger, "更新事件失败", err, zap.String("id", id))
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *eventService) Delete(ctx context.Context, id, studentID string) error {
	event, err := s.owned(ctx, id, studentID)
	if err != nil {
		return err
	}
	if err := s.scheduler.Delete(ctx, event); err != nil {
		logUnexpected(s.logger, "删除事件失败", err, zap.String("id", id))
		return err
	}
	return nil
}

func (s *eventService) owned(ctx context.Context, id, studentID string) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrEventNotFound)
	}
	if err := ensureOwner(event.StudentID, studentID); err != nil {
		return nil, err
	}
	return event, nil
}

func toEventResponse(e *model.Event) *dto.EventResponse {
	return &dto.EventResponse{
		EventID:          e.EventID,
		EventName:        e.EventName,
		EventDesc:        e.EventDesc,
		Location:         e.Location,
		EventType:        e.EventType,
		IntervalResponse: toIntervalResponse(e.TimeInterval),
		ReminderSent:     e.ReminderSent,
		CreatedAt:        formatTimestamp(e.CreatedAt),
		UpdatedAt:        formatTimestamp(e.UpdatedAt),
	}
}
