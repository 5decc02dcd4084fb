package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	"github.com/jakkusu1/planma-app/internal/scheduling"
)

// ScheduleEntryService 统一日程视图业务接口
// 条目只读；源实体的增删改负责同步条目，这里只提供按引用清理
type ScheduleEntryService interface {
	List(ctx context.Context, q *dto.ScheduleEntryListQuery, studentID string) ([]dto.ScheduleEntryResponse, error)
	// Filter 返回单个引用的条目与展示信息
	Filter(ctx context.Context, q *dto.EntryRefQuery, studentID string) (*dto.EntryFilterResponse, error)
	// BulkFilter 批量版本，相同引用只加载一次；结果顺序与请求一致
	BulkFilter(ctx context.Context, req *dto.BulkFilterRequest, studentID string) ([]dto.EntryFilterResponse, error)
	// DeleteFiltered 删除引用对应的全部条目，不影响源实体
	DeleteFiltered(ctx context.Context, q *dto.EntryRefQuery, studentID string) (*dto.DeletedResponse, error)
}

type scheduleEntryService struct {
	repo     *repository.Repository
	resolver *scheduling.Resolver
	logger   *zap.Logger
}

// NewScheduleEntryService 创建 ScheduleEntryService 实例
func NewScheduleEntryService(repo *repository.Repository, resolver *scheduling.Resolver, logger *zap.Logger) ScheduleEntryService {
	return &scheduleEntryService{repo: repo, resolver: resolver, logger: logger}
}

func (s *scheduleEntryService) List(ctx context.Context, q *dto.ScheduleEntryListQuery, studentID string) ([]dto.ScheduleEntryResponse, error) {
	var f repository.EntryFilter
	if q != nil {
		dr, err := parseDateRange(q.DateRangeQuery)
		if err != nil {
			return nil, err
		}
		f = repository.EntryFilter{DateFrom: dr.From, DateTo: dr.To, Category: model.Category(q.CategoryType)}
	}

	entries, err := s.repo.ScheduleEntry.List(ctx, studentID, f)
	if err != nil {
		s.logger.Error("列出日程条目失败", zap.Error(err))
		return nil, err
	}

	refs := make([]model.EntryRef, 0, len(entries))
	for i := range entries {
		refs = append(refs, entries[i].Ref())
	}
	infos := s.resolver.ResolveBatch(ctx, refs)

	result := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		resp := toScheduleEntryResponse(&entries[i])
		info := toRelatedInfoResponse(infos[entries[i].Ref()])
		resp.RelatedInfo = &info
		result = append(result, resp)
	}
	return result, nil
}

func (s *scheduleEntryService) Filter(ctx context.Context, q *dto.EntryRefQuery, studentID string) (*dto.EntryFilterResponse, error) {
	ref := model.EntryRef{Category: model.Category(q.CategoryType), ReferenceID: q.ReferenceID}
	resp, err := s.filterOne(ctx, ref, studentID)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *scheduleEntryService) BulkFilter(ctx context.Context, req *dto.BulkFilterRequest, studentID string) ([]dto.EntryFilterResponse, error) {
	refs := make([]model.EntryRef, 0, len(req.Filters))
	for _, f := range req.Filters {
		refs = append(refs, model.EntryRef{Category: model.Category(f.CategoryType), ReferenceID: f.ReferenceID})
	}

	cache := make(map[model.EntryRef]dto.EntryFilterResponse, len(refs))
	result := make([]dto.EntryFilterResponse, 0, len(refs))
	for _, ref := range refs {
		if resp, ok := cache[ref]; ok {
			result = append(result, resp)
			continue
		}
		resp, err := s.filterOne(ctx, ref, studentID)
		if err != nil {
			return nil, err
		}
		cache[ref] = resp
		result = append(result, resp)
	}
	return result, nil
}

func (s *scheduleEntryService) DeleteFiltered(ctx context.Context, q *dto.EntryRefQuery, studentID string) (*dto.DeletedResponse, error) {
	ref := model.EntryRef{Category: model.Category(q.CategoryType), ReferenceID: q.ReferenceID}

	var deleted int64
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		if err := r.ScheduleEntry.LockOwner(ctx, studentID); err != nil {
			return err
		}
		n, err := r.ScheduleEntry.DeleteByRef(ctx, ref, studentID)
		deleted = n
		return err
	})
	if err != nil {
		s.logger.Error("按引用删除日程条目失败",
			zap.String("category", q.CategoryType),
			zap.String("reference_id", q.ReferenceID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("按引用删除日程条目",
		zap.String("category", q.CategoryType),
		zap.String("reference_id", q.ReferenceID),
		zap.Int64("deleted", deleted),
	)
	return &dto.DeletedResponse{Deleted: deleted}, nil
}

// ── 内部辅助方法 ──

// filterOne 引用下没有属于该学生的条目时不反查源实体，展示信息为 Unknown
func (s *scheduleEntryService) filterOne(ctx context.Context, ref model.EntryRef, studentID string) (dto.EntryFilterResponse, error) {
	entries, err := s.repo.ScheduleEntry.ListByRef(ctx, ref, studentID)
	if err != nil {
		s.logger.Error("按引用查询日程条目失败", zap.String("reference_id", ref.ReferenceID), zap.Error(err))
		return dto.EntryFilterResponse{}, err
	}

	info := model.UnknownInfo()
	if len(entries) > 0 {
		info = s.resolver.Resolve(ctx, ref)
	}

	resp := dto.EntryFilterResponse{
		CategoryType: string(ref.Category),
		ReferenceID:  ref.ReferenceID,
		RelatedInfo:  toRelatedInfoResponse(info),
		Entries:      make([]dto.ScheduleEntryResponse, 0, len(entries)),
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, toScheduleEntryResponse(&entries[i]))
	}
	return resp, nil
}

func toScheduleEntryResponse(e *model.ScheduleEntry) dto.ScheduleEntryResponse {
	return dto.ScheduleEntryResponse{
		EntryID:          e.EntryID,
		CategoryType:     string(e.CategoryType),
		ReferenceID:      e.ReferenceID,
		IntervalResponse: toIntervalResponse(e.TimeInterval),
	}
}

func toRelatedInfoResponse(info model.RelatedInfo) dto.RelatedInfoResponse {
	return dto.RelatedInfoResponse{Name: info.Name, Status: info.Status}
}
