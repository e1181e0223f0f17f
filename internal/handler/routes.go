package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Analysis *AnalysisHandler
	Tasks    *TaskHandler
	Notes    *NoteHandler
	Reminder *ReminderHandler
}

// Register mounts the API routes on group.
func (h Handlers) Register(group *gin.RouterGroup) {
	analysis := group.Group("/analysis")
	{
		analysis.GET("/daily-focus", h.Analysis.HandleDailyFocus)
		analysis.GET("/weekly", h.Analysis.HandleWeekly)
		analysis.GET("/period", h.Analysis.HandlePeriod)
		analysis.GET("/productivity", h.Analysis.HandleProductivity)
	}

	tasks := group.Group("/tasks")
	{
		tasks.GET("/today", h.Tasks.HandleToday)
		tasks.POST("", h.Tasks.HandleCreate)
		tasks.PATCH("/:id/status", h.Tasks.HandleUpdateStatus)
	}

	group.POST("/notes", h.Notes.HandleAppend)
	group.POST("/reminders/schedule", h.Reminder.HandleSchedule)
}
