package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ── 学期模块业务错误 ──

var (
	ErrSemesterNotFound    = fmt.Errorf("学期不存在: %w", pkgerrors.ErrNotFound)
	ErrSemesterDuplicate   = fmt.Errorf("该学期已存在: %w", pkgerrors.ErrDuplicate)
	ErrSemesterDateInvalid = fmt.Errorf("学期结束日期不能早于开始日期: %w", pkgerrors.ErrValidation)
	ErrSemesterYearInvalid = fmt.Errorf("学年结束年份不能早于开始年份: %w", pkgerrors.ErrValidation)
	ErrSemesterHasClasses  = fmt.Errorf("学期下已有课程，不能修改起止日期: %w", pkgerrors.ErrValidation)
)

// SemesterService 学期业务接口
type SemesterService interface {
	Create(ctx context.Context, req *dto.CreateSemesterRequest, studentID string) (*dto.SemesterResponse, error)
	GetByID(ctx context.Context, id, studentID string) (*dto.SemesterResponse, error)
	List(ctx context.Context, q *dto.SemesterListQuery, studentID string) ([]dto.SemesterResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSemesterRequest, studentID string) (*dto.SemesterResponse, error)
	Delete(ctx context.Context, id, studentID string) error
}

type semesterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(repo *repository.Repository, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *semesterService) Create(ctx context.Context, req *dto.CreateSemesterRequest, studentID string) (*dto.SemesterResponse, error) {
	startDate, err := model.ParseDate(req.SemStartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := model.ParseDate(req.SemEndDate)
	if err != nil {
		return nil, err
	}
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}

	semester := &model.Semester{
		StudentID:     studentID,
		AcadYearStart: req.AcadYearStart,
		AcadYearEnd:   req.AcadYearEnd,
		YearLevel:     req.YearLevel,
		Term:          req.Semester,
		SemStartDate:  startDate,
		SemEndDate:    endDate,
	}
	if err := s.validate(ctx, semester, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Semester.Create(ctx, semester); err != nil {
		logUnexpected(s.logger, "创建学期失败", err)
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *semesterService) GetByID(ctx context.Context, id, studentID string) (*dto.SemesterResponse, error) {
	semester, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	return toSemesterResponse(semester), nil
}

// ────────────────────── List ──────────────────────

func (s *semesterService) List(ctx context.Context, q *dto.SemesterListQuery, studentID string) ([]dto.SemesterResponse, error) {
	var f repository.SemesterFilter
	if q != nil {
		f = repository.SemesterFilter{
			AcadYearStart: q.AcadYearStart,
			AcadYearEnd:   q.AcadYearEnd,
			YearLevel:     q.YearLevel,
			Term:          q.Semester,
		}
	}

	semesters, err := s.repo.Semester.List(ctx, studentID, f)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		result = append(result, *toSemesterResponse(&semesters[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *semesterService) Update(ctx context.Context, id string, req *dto.UpdateSemesterRequest, studentID string) (*dto.SemesterResponse, error) {
	semester, err := s.owned(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	oldStart, oldEnd := semester.SemStartDate, semester.SemEndDate

	if req.AcadYearStart != nil {
		semester.AcadYearStart = *req.AcadYearStart
	}
	if req.AcadYearEnd != nil {
		semester.AcadYearEnd = *req.AcadYearEnd
	}
	if req.YearLevel != nil {
		semester.YearLevel = *req.YearLevel
	}
	if req.Semester != nil {
		semester.Term = *req.Semester
	}
	if req.SemStartDate != nil {
		if semester.SemStartDate, err = model.ParseDate(*req.SemStartDate); err != nil {
			return nil, err
		}
	}
	if req.SemEndDate != nil {
		if semester.SemEndDate, err = model.ParseDate(*req.SemEndDate); err != nil {
			return nil, err
		}
	}

	if !semester.SemStartDate.Equal(oldStart) || !semester.SemEndDate.Equal(oldEnd) {
		// 课程条目按学期日期展开，已有课程时修改日期会让条目失真
		n, err := s.repo.ClassSchedule.CountBySemester(ctx, studentID, semester.SemesterID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrSemesterHasClasses
		}
	}

	if err := s.validate(ctx, semester, semester.SemesterID); err != nil {
		return nil, err
	}
	if err := s.repo.Semester.Update(ctx, semester); err != nil {
		logUnexpected(s.logger, "更新学期失败", err, zap.String("id", id))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除学期；科目、课程、任务、学业目标由外键级联删除，随后清理失效的日程条目
func (s *semesterService) Delete(ctx context.Context, id, studentID string) error {
	semester, err := s.owned(ctx, id, studentID)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(r *repository.Repository) error {
		if err := r.ScheduleEntry.LockOwner(ctx, studentID); err != nil {
			return err
		}
		if err := r.Semester.Delete(ctx, semester.SemesterID); err != nil {
			return err
		}
		pruned, err := r.ScheduleEntry.PruneOrphans(ctx, studentID)
		if err != nil {
			return err
		}
		s.logger.Info("学期已删除",
			zap.String("id", id),
			zap.Int64("pruned_entries", pruned),
		)
		return nil
	})
	if err != nil {
		logUnexpected(s.logger, "删除学期失败", err, zap.String("id", id))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *semesterService) owned(ctx context.Context, id, studentID string) (*model.Semester, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrSemesterNotFound)
	}
	if err := ensureOwner(semester.StudentID, studentID); err != nil {
		return nil, err
	}
	return semester, nil
}

func (s *semesterService) validate(ctx context.Context, semester *model.Semester, excludeID string) error {
	if semester.AcadYearEnd < semester.AcadYearStart {
		return ErrSemesterYearInvalid
	}
	if semester.SemEndDate.Before(semester.SemStartDate) {
		return ErrSemesterDateInvalid
	}

	dup, err := s.repo.Semester.ExistsDuplicate(ctx, semester, excludeID)
	if err != nil {
		return err
	}
	if dup {
		return ErrSemesterDuplicate
	}
	return nil
}

func toSemesterResponse(s *model.Semester) *dto.SemesterResponse {
	return &dto.SemesterResponse{
		SemesterID:    s.SemesterID,
		AcadYearStart: s.AcadYearStart,
		AcadYearEnd:   s.AcadYearEnd,
		YearLevel:     s.YearLevel,
		Semester:      s.Term,
		SemStartDate:  s.SemStartDate.Format(model.DateLayout),
		SemEndDate:    s.SemEndDate.Format(model.DateLayout),
		CreatedAt:     formatTimestamp(s.CreatedAt),
		UpdatedAt:     formatTimestamp(s.UpdatedAt),
	}
}

// ════════════════════════ 科目 ════════════════════════

// SubjectService 科目业务接口；科目随课程表创建，不单独创建
type SubjectService interface {
	List(ctx context.Context, q *dto.SubjectListQuery, studentID string) ([]dto.SubjectResponse, error)
	GetByCode(ctx context.Context, code, studentID string) (*dto.SubjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest, studentID string) (*dto.SubjectResponse, error)
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) List(ctx context.Context, q *dto.SubjectListQuery, studentID string) ([]dto.SubjectResponse, error) {
	var semesterID string
	if q != nil {
		semesterID = q.SemesterID
	}

	subjects, err := s.repo.Subject.List(ctx, studentID, semesterID)
	if err != nil {
		s.logger.Error("列出科目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

func (s *subjectService) GetByCode(ctx context.Context, code, studentID string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByCode(ctx, studentID, code)
	if err != nil {
		return nil, notFoundOr(err, ErrSubjectNotFound)
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

func (s *subjectService) Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest, studentID string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrSubjectNotFound)
	}
	if err := ensureOwner(subject.StudentID, studentID); err != nil {
		return nil, err
	}

	subject.SubjectTitle = req.SubjectTitle
	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		logUnexpected(s.logger, "更新科目失败", err, zap.String("id", id))
		return nil, err
	}

	resp := toSubjectResponse(subject)
	return &resp, nil
}

func toSubjectResponse(s *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{
		SubjectID:    s.SubjectID,
		SemesterID:   s.SemesterID,
		SubjectCode:  s.SubjectCode,
		SubjectTitle: s.SubjectTitle,
	}
}
