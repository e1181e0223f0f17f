package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-focus-assistant/internal/service/reminder"
)

type ReminderService interface {
	ScheduleToday(ctx context.Context, ref time.Time) (*reminder.ScheduleResponse, error)
}

type ReminderHandler struct {
	service ReminderService
	now     func() time.Time
}

func NewReminderHandler(service ReminderService) *ReminderHandler {
	return &ReminderHandler{
		service: service,
		now:     time.Now,
	}
}

// HandleSchedule answers 200 even when some registrations failed; the
// per-item outcomes are in the body.
func (h *ReminderHandler) HandleSchedule(c *gin.Context) {
	ref, ok := referenceTime(c, h.now)
	if !ok {
		return
	}

	resp, err := h.service.ScheduleToday(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
