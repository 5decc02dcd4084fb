package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ── 日程冲突与 HTTP 指标 ──

var (
	// ConflictChecks 冲突检测结果计数，verdict: free | duplicate | overlap
	ConflictChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planma_conflict_checks_total",
		Help: "Conflict checker verdicts by category",
	}, []string{"category", "verdict"})

	// ScheduleEntryWrites 投影表写入行数，op: create | update | delete
	ScheduleEntryWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planma_schedule_entry_writes_total",
		Help: "Rows written to the schedule entry projection",
	}, []string{"category", "op"})

	// RecurrenceExpansionSize 每次课程循环展开生成的日期数
	RecurrenceExpansionSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "planma_recurrence_expansion_dates",
		Help:    "Number of dates produced per class schedule expansion",
		Buckets: []float64{0, 1, 5, 10, 15, 20, 30, 52},
	})

	// HTTPRequestDuration 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planma_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler 返回 /metrics 处理器
func Handler() http.Handler {
	return promhttp.Handler()
}
