package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
	"github.com/jakkusu1/planma-app/pkg/metrics"
)

// ErrSubjectCodeTaken 同一学期内已有其他科目使用该代码
var ErrSubjectCodeTaken = fmt.Errorf("该科目代码已存在: %w", pkgerrors.ErrDuplicate)

// ClassScheduler 每周课程模板的排程器：按学期展开为逐日日程条目
type ClassScheduler struct {
	tx              Transactor
	maxSemesterDays int
	logger          *zap.Logger
}

// NewClassScheduler 创建 ClassScheduler；maxSemesterDays <= 0 表示不限制学期长度
func NewClassScheduler(tx Transactor, maxSemesterDays int, logger *zap.Logger) *ClassScheduler {
	return &ClassScheduler{
		tx:              tx,
		maxSemesterDays: maxSemesterDays,
		logger:          logger.With(zap.String("category", string(model.CategoryClass))),
	}
}

// ────────────────────── Create ──────────────────────

// Create 取或建科目，检测模板重复与逐日重叠，全部通过后写入课程表与全部日程条目
// 任一日期冲突时整体失败，不写入任何数据
func (s *ClassScheduler) Create(ctx context.Context, cs *model.ClassSchedule, subject *model.Subject, semester *model.Semester) error {
	dates, err := s.expand(cs, semester)
	if err != nil {
		return err
	}

	return s.tx.Transaction(ctx, func(r *repository.Repository) error {
		if err := r.ScheduleEntry.LockOwner(ctx, cs.StudentID); err != nil {
			return err
		}

		subj, err := r.Subject.GetOrCreate(ctx, subject)
		if err != nil {
			return err
		}
		cs.SubjectID = subj.SubjectID

		dup, err := r.ClassSchedule.ExistsTemplate(ctx, cs, "")
		if err != nil {
			return err
		}
		if dup {
			metrics.ConflictChecks.WithLabelValues(string(model.CategoryClass), Duplicate.String()).Inc()
			return ErrDuplicateSlot
		}
		if err := s.checkDates(ctx, r, cs, dates, nil); err != nil {
			return err
		}

		if err := r.ClassSchedule.Create(ctx, cs); err != nil {
			return err
		}
		cs.Subject = subj
		return s.writeEntries(ctx, r, cs, dates)
	})
}

// ────────────────────── Update ──────────────────────

// Update 更新课程模板与所属科目，并按新模板重新生成全部日程条目
// 冲突检测排除本课程自身的条目
func (s *ClassScheduler) Update(ctx context.Context, cs *model.ClassSchedule, subject *model.Subject, semester *model.Semester) error {
	dates, err := s.expand(cs, semester)
	if err != nil {
		return err
	}
	ref := cs.Ref()

	return s.tx.Transaction(ctx, func(r *repository.Repository) error {
		if err := r.ScheduleEntry.LockOwner(ctx, cs.StudentID); err != nil {
			return err
		}

		taken, err := r.Subject.ExistsCode(ctx, cs.StudentID, subject.SemesterID, subject.SubjectCode, subject.SubjectID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSubjectCodeTaken
		}

		dup, err := r.ClassSchedule.ExistsTemplate(ctx, cs, cs.ClassSchedID)
		if err != nil {
			return err
		}
		if dup {
			metrics.ConflictChecks.WithLabelValues(string(model.CategoryClass), Duplicate.String()).Inc()
			return ErrDuplicateSlot
		}
		if err := s.checkDates(ctx, r, cs, dates, &ref); err != nil {
			return err
		}

		if err := r.Subject.Update(ctx, subject); err != nil {
			return err
		}
		if err := r.ClassSchedule.Update(ctx, cs); err != nil {
			return err
		}
		removed, err := r.ScheduleEntry.DeleteByRef(ctx, ref, cs.StudentID)
		if err != nil {
			return err
		}
		metrics.ScheduleEntryWrites.WithLabelValues(string(model.CategoryClass), "delete").Add(float64(removed))

		cs.Subject = subject
		return s.writeEntries(ctx, r, cs, dates)
	})
}

// ────────────────────── Delete ──────────────────────

// Delete 删除课程表及其全部日程条目；科目不再被本人其他课程引用时一并删除
func (s *ClassScheduler) Delete(ctx context.Context, cs *model.ClassSchedule) error {
	ref := cs.Ref()
	return s.tx.Transaction(ctx, func(r *repository.Repository) error {
		removed, err := r.ScheduleEntry.DeleteByRef(ctx, ref, cs.StudentID)
		if err != nil {
			return err
		}
		if err := r.ClassSchedule.Delete(ctx, cs.ClassSchedID); err != nil {
			return err
		}

		remaining, err := r.ClassSchedule.CountBySubject(ctx, cs.StudentID, cs.SubjectID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := r.Subject.Delete(ctx, cs.SubjectID); err != nil {
				return err
			}
			// 科目删除会级联删除其下任务
			if _, err := r.ScheduleEntry.PruneOrphans(ctx, cs.StudentID); err != nil {
				return err
			}
			s.logger.Debug("科目已无课程引用，已删除", zap.String("subject_id", cs.SubjectID))
		}

		metrics.ScheduleEntryWrites.WithLabelValues(string(model.CategoryClass), "delete").Add(float64(removed))
		return nil
	})
}

// ── 内部辅助方法 ──

func (s *ClassScheduler) expand(cs *model.ClassSchedule, semester *model.Semester) ([]time.Time, error) {
	if cs.StartTime >= cs.EndTime {
		return nil, model.ErrInvalidInterval
	}
	if s.maxSemesterDays > 0 && semester.Days() > s.maxSemesterDays {
		return nil, fmt.Errorf("学期跨度超过 %d 天: %w", s.maxSemesterDays, pkgerrors.ErrValidation)
	}
	return ExpandWeekly(semester.SemStartDate, semester.SemEndDate, cs.DayOfWeek)
}

// checkDates 逐日检测重叠，遇到第一个冲突日期即返回
func (s *ClassScheduler) checkDates(ctx context.Context, r *repository.Repository, cs *model.ClassSchedule, dates []time.Time, exclude *model.EntryRef) error {
	for _, date := range dates {
		iv := cs.OccurrenceOn(date)
		result, err := Check(ctx, r.ScheduleEntry, model.CategoryClass, cs.StudentID, iv, exclude, nil)
		if err != nil {
			return err
		}
		if err := result.Err(iv); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClassScheduler) writeEntries(ctx context.Context, r *repository.Repository, cs *model.ClassSchedule, dates []time.Time) error {
	entries := make([]model.ScheduleEntry, 0, len(dates))
	for _, date := range dates {
		entries = append(entries, model.ScheduleEntry{
			StudentID:    cs.StudentID,
			CategoryType: model.CategoryClass,
			ReferenceID:  cs.ClassSchedID,
			TimeInterval: cs.OccurrenceOn(date),
		})
	}
	if err := r.ScheduleEntry.CreateBatch(ctx, entries); err != nil {
		return err
	}

	metrics.ScheduleEntryWrites.WithLabelValues(string(model.CategoryClass), "create").Add(float64(len(entries)))
	s.logger.Debug("课程日程条目已生成",
		zap.String("classsched_id", cs.ClassSchedID),
		zap.Int("count", len(entries)),
	)
	return nil
}
