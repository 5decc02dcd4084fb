package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
)

// ── ICS 课程表解析 ──────────────────────────────────────────
//
// 将 iCalendar (RFC 5545) 课程表解析为每周课程模板：
//   - SUMMARY 首个词为科目代码，其余为科目标题（"CS101 - Intro to CS"）
//   - DTSTART/DTEND 确定上课时刻，LOCATION 作为教室
//   - RRULE 只接受 FREQ=WEEKLY；BYDAY 含多个星期时每个星期生成一个模板
//   - 无 RRULE 的单次事件按 DTSTART 的星期处理
//   - 同一科目、星期、时刻的多个 VEVENT 合并为一个模板
// 实际日期由学期范围重新展开，ICS 中的 COUNT/UNTIL/EXDATE 不参与
// ─────────────────────────────────────────────────────────────

const icsMaxFileSize = 2 << 20

// parsedClassEvent ICS 解析中间结构
type parsedClassEvent struct {
	UID          string
	SubjectCode  string
	SubjectTitle string
	Room         *string
	Day          model.DayName
	Start        model.ClockTime
	End          model.ClockTime
}

// ParseClassICS 解析 ICS 内容；无法解析的 VEVENT 以 invalid 结果返回，不中断其余事件
func ParseClassICS(reader io.Reader, loc *time.Location) ([]parsedClassEvent, []dto.ImportClassesResult, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	var events []parsedClassEvent
	var invalid []dto.ImportClassesResult
	for _, comp := range cal.Events() {
		parsed, err := parseClassVEvent(comp, loc)
		if err != nil {
			invalid = append(invalid, dto.ImportClassesResult{
				UID:       comp.Id(),
				ErrorType: "invalid",
				Error:     err.Error(),
			})
			continue
		}
		events = append(events, parsed...)
	}

	return mergeClassEvents(events), invalid, nil
}

// parseClassVEvent 解析单个 VEVENT，可能按 BYDAY 展开为多个模板
func parseClassVEvent(evt *ics.VEvent, loc *time.Location) ([]parsedClassEvent, error) {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return nil, fmt.Errorf("缺少 SUMMARY")
	}
	code, title := splitSummary(summary.Value)
	if len(code) > 20 {
		return nil, fmt.Errorf("科目代码过长: %s", code)
	}

	dtStart, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return nil, err
	}
	dtEnd, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		return nil, err
	}
	if !model.DateOf(dtStart).Equal(model.DateOf(dtEnd)) {
		return nil, fmt.Errorf("课程不能跨天")
	}

	start := model.NewClock(dtStart.Hour(), dtStart.Minute(), dtStart.Second())
	end := model.NewClock(dtEnd.Hour(), dtEnd.Minute(), dtEnd.Second())
	if start >= end {
		return nil, model.ErrInvalidInterval
	}

	days, err := classDays(evt, dtStart)
	if err != nil {
		return nil, err
	}

	var room *string
	if prop := evt.GetProperty(ics.ComponentPropertyLocation); prop != nil {
		v := strings.TrimSpace(prop.Value)
		room = model.NullIfEmpty(&v)
	}

	out := make([]parsedClassEvent, 0, len(days))
	for _, day := range days {
		out = append(out, parsedClassEvent{
			UID:          evt.Id(),
			SubjectCode:  code,
			SubjectTitle: title,
			Room:         room,
			Day:          day,
			Start:        start,
			End:          end,
		})
	}
	return out, nil
}

// classDays 由 RRULE 的 BYDAY 确定星期；无 RRULE 或无 BYDAY 时取 DTSTART 的星期
func classDays(evt *ics.VEvent, dtStart time.Time) ([]model.DayName, error) {
	fallback := []model.DayName{model.DayNameOf(dtStart.Weekday())}

	prop := evt.GetProperty(ics.ComponentPropertyRrule)
	if prop == nil {
		return fallback, nil
	}
	opt, err := rrule.StrToROption(prop.Value)
	if err != nil {
		return nil, fmt.Errorf("RRULE 解析失败: %w", err)
	}
	if opt.Freq != rrule.WEEKLY {
		return nil, fmt.Errorf("仅支持每周重复的课程")
	}
	if len(opt.Byweekday) == 0 {
		return fallback, nil
	}

	days := make([]model.DayName, 0, len(opt.Byweekday))
	for i := range opt.Byweekday {
		// rrule 以 0 表示周一
		wd := time.Weekday((opt.Byweekday[i].Day() + 1) % 7)
		days = append(days, model.DayNameOf(wd))
	}
	return days, nil
}

// splitSummary "CS101 - Intro to CS" → ("CS101", "Intro to CS")；无标题时以代码作标题
func splitSummary(summary string) (code, title string) {
	fields := strings.Fields(strings.TrimSpace(summary))
	code = strings.TrimRight(fields[0], ":-")
	title = strings.TrimSpace(strings.TrimLeft(strings.TrimPrefix(strings.TrimSpace(summary), fields[0]), " -:"))
	if title == "" {
		title = code
	}
	return code, title
}

// mergeClassEvents 合并相同科目、星期、时刻的模板，保留首次出现的顺序
func mergeClassEvents(events []parsedClassEvent) []parsedClassEvent {
	type key struct {
		Code  string
		Day   model.DayName
		Start model.ClockTime
		End   model.ClockTime
	}
	seen := make(map[key]bool, len(events))
	result := make([]parsedClassEvent, 0, len(events))
	for _, e := range events {
		k := key{Code: e.SubjectCode, Day: e.Day, Start: e.Start, End: e.End}
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, e)
	}
	return result
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性，结果换算到 loc
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("缺少 %s", propName)
	}
	val := prop.Value

	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	for _, layout := range []string{"20060102T150405Z", "20060102T150405"} {
		t, err := time.Parse(layout, val)
		if err != nil {
			continue
		}
		if strings.HasSuffix(layout, "Z") {
			return t.In(loc), nil
		}
		if tzid != "" {
			if tzLoc, err := time.LoadLocation(tzid); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(loc), nil
			}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("无法解析 %s: %s", propName, val)
}
