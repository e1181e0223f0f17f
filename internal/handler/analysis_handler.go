package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-focus-assistant/internal/service/analysis"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/productivity"
)

type AnalysisService interface {
	DailyFocus(ctx context.Context, ref time.Time) (*analysis.DailyFocusResponse, error)
	Weekly(ctx context.Context, ref time.Time) (*analysis.PeriodResponse, error)
	Period(ctx context.Context, startDate, endDate string, now time.Time) (*analysis.PeriodResponse, error)
	Productivity(ctx context.Context, fromDate, toDate string) (*productivity.Report, error)
}

type AnalysisHandler struct {
	service AnalysisService
	now     func() time.Time
}

func NewAnalysisHandler(service AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		now:     time.Now,
	}
}

// referenceTime reads the optional "at" query parameter.
func referenceTime(c *gin.Context, now func() time.Time) (time.Time, bool) {
	at := c.Query("at")
	if at == "" {
		return now(), true
	}

	parsed, err := time.Parse(time.RFC3339, at)
	if err != nil {
		respondValidationError(c, "invalid at time format, expected RFC3339")
		return time.Time{}, false
	}
	return parsed, true
}

func (h *AnalysisHandler) HandleDailyFocus(c *gin.Context) {
	ref, ok := referenceTime(c, h.now)
	if !ok {
		return
	}

	resp, err := h.service.DailyFocus(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalysisHandler) HandleWeekly(c *gin.Context) {
	ref, ok := referenceTime(c, h.now)
	if !ok {
		return
	}

	resp, err := h.service.Weekly(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalysisHandler) HandlePeriod(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		respondValidationError(c, "start and end dates are required")
		return
	}

	resp, err := h.service.Period(c.Request.Context(), start, end, h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalysisHandler) HandleProductivity(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		respondValidationError(c, "from and to dates are required")
		return
	}

	resp, err := h.service.Productivity(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
