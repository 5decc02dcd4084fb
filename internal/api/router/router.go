package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/config"
	"github.com/jakkusu1/planma-app/internal/api/handler"
	"github.com/jakkusu1/planma-app/internal/api/middleware"
	"github.com/jakkusu1/planma-app/pkg/jwt"
	"github.com/jakkusu1/planma-app/pkg/metrics"
	"github.com/jakkusu1/planma-app/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil（Redis 降级），此时黑名单与限流均放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	if cfg.Server.BodyLimit > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 写接口限流
	limit := middleware.RateLimit(rdb, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window)

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 认证模块
		v1.POST("/auth/logout", h.Auth.Logout)

		// 用户偏好与推送
		prefs := v1.Group("/user-prefs")
		{
			prefs.GET("", h.User.GetPref)
			prefs.POST("", limit, h.User.CreatePref)
			prefs.PUT("/:id", limit, h.User.UpdatePref)
			prefs.DELETE("/:id", limit, h.User.DeletePref)
		}
		pushTokens := v1.Group("/push-tokens")
		{
			pushTokens.POST("", limit, h.User.RegisterPushToken)
			pushTokens.POST("/test", limit, h.User.TestPush)
		}

		// 学期与科目
		semesters := v1.Group("/semesters")
		{
			semesters.GET("", h.Semester.ListSemesters)
			semesters.GET("/:id", h.Semester.GetSemester)
			semesters.POST("", limit, h.Semester.CreateSemester)
			semesters.PATCH("/:id", limit, h.Semester.UpdateSemester)
			semesters.DELETE("/:id", limit, h.Semester.DeleteSemester)
		}
		subjects := v1.Group("/subjects")
		{
			subjects.GET("", h.Subject.ListSubjects)
			subjects.GET("/code/:code", h.Subject.GetSubjectByCode)
			subjects.PATCH("/:id", limit, h.Subject.UpdateSubject)
		}

		// 课程表
		classSchedules := v1.Group("/class-schedules")
		{
			classSchedules.GET("", h.ClassSchedule.ListClassSchedules)
			classSchedules.GET("/:id", h.ClassSchedule.GetClassSchedule)
			classSchedules.POST("", limit, h.ClassSchedule.CreateClassSchedule)
			classSchedules.POST("/import", limit, h.ClassSchedule.ImportICS)
			classSchedules.PATCH("/:id", limit, h.ClassSchedule.UpdateClassSchedule)
			classSchedules.DELETE("/:id", limit, h.ClassSchedule.DeleteClassSchedule)
		}

		// 任务 / 事件 / 活动
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", h.Task.ListTasks)
			tasks.GET("/:id", h.Task.GetTask)
			tasks.POST("", limit, h.Task.CreateTask)
			tasks.PATCH("/:id", limit, h.Task.UpdateTask)
			tasks.DELETE("/:id", limit, h.Task.DeleteTask)
		}
		events := v1.Group("/events")
		{
			events.GET("", h.Event.ListEvents)
			events.GET("/:id", h.Event.GetEvent)
			events.POST("", limit, h.Event.CreateEvent)
			events.PATCH("/:id", limit, h.Event.UpdateEvent)
			events.DELETE("/:id", limit, h.Event.DeleteEvent)
		}
		activities := v1.Group("/activities")
		{
			activities.GET("", h.Activity.ListActivities)
			activities.GET("/:id", h.Activity.GetActivity)
			activities.POST("", limit, h.Activity.CreateActivity)
			activities.PATCH("/:id", limit, h.Activity.UpdateActivity)
			activities.DELETE("/:id", limit, h.Activity.DeleteActivity)
		}

		// 目标与目标日程
		goals := v1.Group("/goals")
		{
			goals.GET("", h.Goal.ListGoals)
			goals.GET("/:id", h.Goal.GetGoal)
			goals.POST("", limit, h.Goal.CreateGoal)
			goals.PATCH("/:id", limit, h.Goal.UpdateGoal)
			goals.DELETE("/:id", limit, h.Goal.DeleteGoal)
		}
		goalSchedules := v1.Group("/goal-schedules")
		{
			goalSchedules.GET("", h.GoalSchedule.ListGoalSchedules)
			goalSchedules.GET("/:id", h.GoalSchedule.GetGoalSchedule)
			goalSchedules.POST("", limit, h.GoalSchedule.CreateGoalSchedule)
			goalSchedules.PATCH("/:id", limit, h.GoalSchedule.UpdateGoalSchedule)
			goalSchedules.DELETE("/:id", limit, h.GoalSchedule.DeleteGoalSchedule)
		}

		// 时间记录
		taskLogs := v1.Group("/task-logs")
		{
			taskLogs.GET("", h.TimeLog.ListTaskLogs)
			taskLogs.POST("", limit, h.TimeLog.LogTask)
			taskLogs.POST("/batch", limit, h.TimeLog.LogTaskBatch)
		}
		activityLogs := v1.Group("/activity-logs")
		{
			activityLogs.GET("", h.TimeLog.ListActivityLogs)
			activityLogs.POST("", limit, h.TimeLog.LogActivity)
			activityLogs.POST("/batch", limit, h.TimeLog.LogActivityBatch)
		}
		goalProgress := v1.Group("/goal-progress")
		{
			goalProgress.GET("", h.TimeLog.ListGoalProgress)
			goalProgress.POST("", limit, h.TimeLog.LogGoalProgress)
			goalProgress.POST("/batch", limit, h.TimeLog.LogGoalProgressBatch)
		}
		sleepLogs := v1.Group("/sleep-logs")
		{
			sleepLogs.GET("", h.TimeLog.ListSleepLogs)
			sleepLogs.POST("", limit, h.TimeLog.LogSleep)
		}

		// 出勤
		attendedEvents := v1.Group("/attended-events")
		{
			attendedEvents.GET("", h.Attendance.ListEvents)
			attendedEvents.POST("", limit, h.Attendance.MarkEvent)
			attendedEvents.PATCH("/:id", limit, h.Attendance.UpdateEvent)
		}
		attendedClasses := v1.Group("/attended-classes")
		{
			attendedClasses.GET("", h.Attendance.ListClasses)
			attendedClasses.POST("", limit, h.Attendance.MarkClasses)
		}

		// 统一日程视图
		entries := v1.Group("/schedule-entries")
		{
			entries.GET("", h.ScheduleEntry.ListEntries)
			entries.GET("/filter", h.ScheduleEntry.Filter)
			entries.POST("/bulk-filter", h.ScheduleEntry.BulkFilter)
			entries.DELETE("/filter", limit, h.ScheduleEntry.DeleteFiltered)
		}
		v1.GET("/dashboard", h.ScheduleEntry.Dashboard)

		// 导出
		export := v1.Group("/export")
		{
			export.GET("/schedule.xlsx", h.Export.ExportXLSX)
			export.GET("/schedule.ics", h.Export.ExportICS)
		}
	}

	return r
}
