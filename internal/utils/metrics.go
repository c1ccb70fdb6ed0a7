package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	GoalCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "app_goal_resolution_cache_hits_total",
			Help: "Goal resolutions served from cache",
		},
	)

	GoalCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "app_goal_resolution_cache_misses_total",
			Help: "Goal resolutions computed from storage",
		},
	)

	EntriesMaterialized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "app_meal_plan_entries_materialized_total",
			Help: "Diary entries inserted by plan materialization",
		},
	)

	EntriesSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "app_meal_plan_entries_skipped_total",
			Help: "Materialization inserts skipped as already present",
		},
	)

	TemplateResyncs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "app_meal_plan_resyncs_total",
			Help: "Template resync operations performed",
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(
		ReqCount,
		ReqDuration,
		GoalCacheHits,
		GoalCacheMisses,
		EntriesMaterialized,
		EntriesSkipped,
		TemplateResyncs,
	)
}
