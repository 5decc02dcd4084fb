package scheduling

import (
	"context"

	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	"github.com/jakkusu1/planma-app/pkg/metrics"
)

// Verdict 冲突检测结果
type Verdict int

const (
	Free Verdict = iota
	Duplicate
	Overlap
)

func (v Verdict) String() string {
	switch v {
	case Duplicate:
		return "duplicate"
	case Overlap:
		return "overlap"
	default:
		return "free"
	}
}

// Result 冲突检测结果；Verdict 为 Overlap 时 Conflict 指向第一条冲突条目
type Result struct {
	Verdict  Verdict
	Conflict *model.ScheduleEntry
}

// Err 转换为业务错误，Free 返回 nil
func (r Result) Err(iv model.TimeInterval) error {
	switch r.Verdict {
	case Duplicate:
		return ErrDuplicateSlot
	case Overlap:
		return &OverlapError{Date: iv.ScheduledDate, Conflict: r.Conflict}
	default:
		return nil
	}
}

// DuplicateProbe 实体表内的重复检测，nil 表示跳过
type DuplicateProbe func(ctx context.Context) (bool, error)

// Check 先在实体表内查完全相同的时间段，再在统一日程中跨类别查重叠
// exclude 非空时跳过该 (category, reference_id) 自身的条目
func Check(
	ctx context.Context,
	entries repository.ScheduleEntryRepository,
	category model.Category,
	owner string,
	iv model.TimeInterval,
	exclude *model.EntryRef,
	dup DuplicateProbe,
) (Result, error) {
	if dup != nil {
		found, err := dup(ctx)
		if err != nil {
			return Result{}, err
		}
		if found {
			return record(category, Result{Verdict: Duplicate}), nil
		}
	}

	conflict, err := entries.FirstOverlap(ctx, owner, iv, exclude)
	if err != nil {
		return Result{}, err
	}
	if conflict != nil {
		return record(category, Result{Verdict: Overlap, Conflict: conflict}), nil
	}
	return record(category, Result{Verdict: Free}), nil
}

func record(category model.Category, r Result) Result {
	metrics.ConflictChecks.WithLabelValues(string(category), r.Verdict.String()).Inc()
	return r
}
