package scheduling

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakkusu1/planma-app/internal/model"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
	"github.com/jakkusu1/planma-app/pkg/metrics"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// ExpandWeekly 返回 [start, end]（含两端）内星期为 day 的全部日期，升序
func ExpandWeekly(start, end time.Time, day model.DayName) ([]time.Time, error) {
	if _, ok := model.ParseDayName(string(day)); !ok {
		return nil, fmt.Errorf("无效的星期 %q: %w", day, pkgerrors.ErrValidation)
	}
	start, end = model.DateOf(start), model.DateOf(end)
	if end.Before(start) {
		return nil, fmt.Errorf("学期结束日期早于开始日期: %w", pkgerrors.ErrValidation)
	}

	// UNTIL 对 DTSTART 当天零点的实例是包含的
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Until:     end,
		Byweekday: []rrule.Weekday{rruleWeekdays[day.Weekday()]},
	})
	if err != nil {
		return nil, fmt.Errorf("构造重复规则失败: %w", err)
	}

	occurrences := r.All()
	dates := make([]time.Time, 0, len(occurrences))
	for _, t := range occurrences {
		dates = append(dates, model.DateOf(t))
	}
	metrics.RecurrenceExpansionSize.Observe(float64(len(dates)))
	return dates, nil
}
