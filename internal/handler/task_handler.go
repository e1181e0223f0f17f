package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/task"
)

const idempotencyHeader = "Idempotency-Key"

type TaskService interface {
	Create(ctx context.Context, requestKey string, in task.NewTaskInput) (*domain.Item, error)
	UpdateStatus(ctx context.Context, id, label string) error
	Today(ctx context.Context, ref time.Time) (*task.TodayResponse, error)
}

type createTaskRequest struct {
	Name      string `json:"name" binding:"required"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	DueDate   string `json:"due_date"`
	DueTime   string `json:"due_time"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
	Alignment string `json:"alignment"`
	RelatedID string `json:"related_id"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TaskHandler struct {
	service TaskService
	now     func() time.Time
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{
		service: service,
		now:     time.Now,
	}
}

func (h *TaskHandler) HandleToday(c *gin.Context) {
	ref, ok := referenceTime(c, h.now)
	if !ok {
		return
	}

	resp, err := h.service.Today(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) HandleCreate(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "invalid request body: "+err.Error())
		return
	}

	item, err := h.service.Create(c.Request.Context(), c.GetHeader(idempotencyHeader), task.NewTaskInput{
		Name:      req.Name,
		Date:      req.Date,
		Time:      req.Time,
		DueDate:   req.DueDate,
		DueTime:   req.DueTime,
		Category:  req.Category,
		Priority:  req.Priority,
		Status:    req.Status,
		Alignment: req.Alignment,
		RelatedID: req.RelatedID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *TaskHandler) HandleUpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "invalid request body: "+err.Error())
		return
	}

	id := c.Param("id")
	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}
