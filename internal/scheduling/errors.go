package scheduling

import (
	"fmt"
	"time"

	"github.com/jakkusu1/planma-app/internal/model"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ErrDuplicateSlot 同一实体表中已有完全相同的时间段
var ErrDuplicateSlot = fmt.Errorf("已存在相同时间段的日程: %w", pkgerrors.ErrDuplicate)

// OverlapError 与统一日程中已有条目重叠，Date 为冲突日期
type OverlapError struct {
	Date     time.Time
	Conflict *model.ScheduleEntry
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s 与已有日程时间冲突，请选择其他时间或日期", e.Date.Format(model.DateLayout))
}

// Is 使 errors.Is(err, pkgerrors.ErrOverlap) 成立
func (e *OverlapError) Is(target error) bool {
	return target == pkgerrors.ErrOverlap
}
