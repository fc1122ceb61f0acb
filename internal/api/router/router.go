package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/api/handler"
	"github.com/devHanif-git/productivityHelper/internal/api/middleware"
	"github.com/devHanif-git/productivityHelper/pkg/redis"
)

// Setup builds the Gin engine and mounts every route.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// imports and exports do real work per request, so they carry a
	// per-client window on top of the token check
	heavy := middleware.RateLimit(rdb, 10, time.Minute)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.TokenAuth(cfg.Bot.APIToken))
	{
		// calendar module
		calendar := v1.Group("/calendar")
		{
			calendar.GET("/week", h.Calendar.Week)
			calendar.GET("/today", h.Calendar.Today)
			calendar.GET("/tomorrow", h.Calendar.Tomorrow)
			calendar.GET("/next-off-day", h.Calendar.NextOffDay)
		}

		// academic events module
		events := v1.Group("/events")
		{
			events.GET("", h.Event.List)
			events.GET("/:id", h.Event.Get)
			events.POST("", h.Event.Create)
			events.DELETE("/:id", h.Event.Delete)
		}

		// weekly timetable module
		schedule := v1.Group("/schedule")
		{
			schedule.GET("", h.Schedule.List)
			schedule.GET("/:id", h.Schedule.Get)
			schedule.POST("", h.Schedule.Create)
			schedule.PUT("/:id", h.Schedule.Update)
			schedule.DELETE("/:id", h.Schedule.Delete)
			schedule.POST("/import", heavy, h.Schedule.ImportICS)
		}

		// assignment module
		assignments := v1.Group("/assignments")
		{
			assignments.GET("", h.Assignment.List)
			assignments.GET("/:id", h.Assignment.Get)
			assignments.POST("", h.Assignment.Create)
			assignments.PUT("/:id", h.Assignment.Update)
			assignments.POST("/:id/complete", h.Assignment.Complete)
			assignments.DELETE("/:id", h.Assignment.Delete)
		}

		// exam module
		exams := v1.Group("/exams")
		{
			exams.GET("", h.Exam.List)
			exams.GET("/:id", h.Exam.Get)
			exams.POST("", h.Exam.Create)
			exams.PUT("/:id", h.Exam.Update)
			exams.POST("/:id/complete", h.Exam.Complete)
			exams.DELETE("/:id", h.Exam.Delete)
		}

		// task module
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", h.Task.List)
			tasks.GET("/:id", h.Task.Get)
			tasks.POST("", h.Task.Create)
			tasks.PUT("/:id", h.Task.Update)
			tasks.POST("/:id/complete", h.Task.Complete)
			tasks.DELETE("/:id", h.Task.Delete)
		}

		// todo module
		todos := v1.Group("/todos")
		{
			todos.GET("", h.Todo.List)
			todos.GET("/:id", h.Todo.Get)
			todos.POST("", h.Todo.Create)
			todos.PUT("/:id", h.Todo.Update)
			todos.POST("/:id/complete", h.Todo.Complete)
			todos.DELETE("/:id", h.Todo.Delete)
		}

		// owner profile module
		profiles := v1.Group("/profiles")
		{
			profiles.GET("", h.Profile.List)
			profiles.GET("/:chat_id", h.Profile.Get)
			profiles.PUT("", h.Profile.Upsert)
		}

		// export module
		export := v1.Group("/export")
		{
			export.GET("/timetable.xlsx", heavy, h.Export.TimetableExcel)
			export.GET("/calendar.ics", heavy, h.Export.CalendarICS)
		}

		// debug module: simulated clock and manual job triggers
		debug := v1.Group("/debug")
		{
			debug.GET("/clock", h.Debug.GetClock)
			debug.PUT("/clock/date", h.Debug.SetDate)
			debug.PUT("/clock/time", h.Debug.SetTime)
			debug.DELETE("/clock", h.Debug.ClearClock)
			debug.GET("/jobs", h.Debug.ListJobs)
			debug.POST("/jobs/trigger", h.Debug.TriggerJob)
		}
	}

	return r
}
