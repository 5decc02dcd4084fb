package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	"github.com/jakkusu1/planma-app/internal/scheduling"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportRangeTooLong = fmt.Errorf("导出范围不能超过 366 天: %w", pkgerrors.ErrValidation)
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

const exportMaxDays = 366

// ExportService 导出业务接口
//
// 导出日期范围内的统一日程条目，名称与状态经 Resolver 反查；
// 结果以 bytes.Buffer 返回，由 Handler 设置响应头后写入
type ExportService interface {
	// ExportXLSX 导出为 Excel，一行一个条目
	ExportXLSX(ctx context.Context, q *dto.ExportQuery, studentID string) (*bytes.Buffer, string, error)
	// ExportICS 导出为 iCalendar，一个条目一个 VEVENT
	ExportICS(ctx context.Context, q *dto.ExportQuery, studentID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	resolver *scheduling.Resolver
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, resolver *scheduling.Resolver, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{
		repo:     repo,
		resolver: resolver,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// exportRow 一个条目的导出数据
type exportRow struct {
	entry model.ScheduleEntry
	info  model.RelatedInfo
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX 导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 表头：日期 | 星期 | 开始 | 结束 | 类别 | 名称 | 状态
// 行按日期、开始时间升序

func (s *exportService) ExportXLSX(ctx context.Context, q *dto.ExportQuery, studentID string) (*bytes.Buffer, string, error) {
	rows, from, to, err := s.collect(ctx, q, studentID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "日程"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	widths := []float64{12, 8, 10, 10, 10, 32, 12}
	for i, w := range widths {
		f.SetColWidth(sheetName, colName(i), colName(i), w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("日程 %s ~ %s", from.Format(model.DateLayout), to.Format(model.DateLayout))
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(widths)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"日期", "星期", "开始", "结束", "类别", "名称", "状态"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	// 数据行
	row := 3
	for _, r := range rows {
		iv := r.entry.TimeInterval
		status := "-"
		if r.info.Status != nil {
			status = *r.info.Status
		}
		values := []interface{}{
			iv.Date(),
			string(model.DayNameOf(iv.ScheduledDate.Weekday())),
			iv.StartTime.String(),
			iv.EndTime.String(),
			string(r.entry.CategoryType),
			r.info.Name,
			status,
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, exportFilename(from, to, "xlsx"), nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS 导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// UID 取条目 ID，SUMMARY 为 "[类别] 名称"，CATEGORIES 为类别；
// 时间按日程时区换算为 UTC 写出

func (s *exportService) ExportICS(ctx context.Context, q *dto.ExportQuery, studentID string) (*bytes.Buffer, string, error) {
	rows, from, to, err := s.collect(ctx, q, studentID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Planma//Schedule Export//EN")
	cal.SetXWRCalName("Planma")
	cal.SetXWRTimezone(s.loc.String())

	stamp := s.now().UTC()
	for _, r := range rows {
		iv := r.entry.TimeInterval
		evt := cal.AddEvent(r.entry.EntryID + "@planma")
		evt.SetDtStampTime(stamp)
		evt.SetStartAt(iv.StartAt(s.loc))
		evt.SetEndAt(iv.EndAt(s.loc))
		evt.SetSummary(fmt.Sprintf("[%s] %s", r.entry.CategoryType, r.info.Name))
		evt.AddProperty(ics.ComponentPropertyCategories, string(r.entry.CategoryType))
		if r.info.Status != nil {
			evt.SetDescription("Status: " + *r.info.Status)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, exportFilename(from, to, "ics"), nil
}

// ── 内部辅助方法 ──

// collect 查询范围内的条目并反查展示信息
func (s *exportService) collect(ctx context.Context, q *dto.ExportQuery, studentID string) ([]exportRow, time.Time, time.Time, error) {
	from, err := model.ParseDate(q.DateFrom)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	to, err := model.ParseDate(q.DateTo)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return nil, time.Time{}, time.Time{}, ErrDateRange
	}
	if int(to.Sub(from).Hours()/24) >= exportMaxDays {
		return nil, time.Time{}, time.Time{}, ErrExportRangeTooLong
	}

	entries, err := s.repo.ScheduleEntry.List(ctx, studentID, repository.EntryFilter{
		DateFrom: &from,
		DateTo:   &to,
		Category: model.Category(q.CategoryType),
	})
	if err != nil {
		s.logger.Error("查询导出条目失败", zap.Error(err))
		return nil, time.Time{}, time.Time{}, err
	}

	refs := make([]model.EntryRef, 0, len(entries))
	for i := range entries {
		refs = append(refs, entries[i].Ref())
	}
	infos := s.resolver.ResolveBatch(ctx, refs)

	rows := make([]exportRow, 0, len(entries))
	for i := range entries {
		rows = append(rows, exportRow{entry: entries[i], info: infos[entries[i].Ref()]})
	}
	return rows, from, to, nil
}

func exportFilename(from, to time.Time, ext string) string {
	return fmt.Sprintf("日程_%s_%s.%s", from.Format("20060102"), to.Format("20060102"), ext)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
