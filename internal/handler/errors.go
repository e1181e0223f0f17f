package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/googleapi"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/infra/workspace"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/note"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/reminder"
)

const (
	errorValidation  = "validation_error"
	errorNotFound    = "not_found"
	errorConflict    = "conflict"
	errorUnavailable = "unavailable"
	errorProcessing  = "processing_error"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: errorValidation, Message: message})
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status, kind := classify(err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("event", "http.handler.fail"),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}
	_ = c.Error(err)

	c.JSON(status, errorResponse{Error: kind, Message: err.Error()})
}

func classify(err error) (int, string) {
	var apiErr *workspace.APIError
	var googleErr *googleapi.Error

	switch {
	case errors.Is(err, domain.ErrFormat),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority):
		return http.StatusBadRequest, errorValidation
	case errors.Is(err, domain.ErrLookup):
		return http.StatusNotFound, errorNotFound
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict, errorConflict
	case errors.Is(err, reminder.ErrQueueDisabled),
		errors.Is(err, note.ErrSheetDisabled):
		return http.StatusServiceUnavailable, errorUnavailable
	case errors.As(err, &apiErr), errors.As(err, &googleErr):
		return http.StatusBadGateway, errorProcessing
	default:
		return http.StatusInternalServerError, errorProcessing
	}
}
