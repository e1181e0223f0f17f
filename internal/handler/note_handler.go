package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-focus-assistant/internal/service/note"
)

type NoteService interface {
	Append(ctx context.Context, requestKey string, n note.Note, at time.Time) (*note.AppendResponse, error)
}

type appendNoteRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}

type NoteHandler struct {
	service NoteService
	now     func() time.Time
}

func NewNoteHandler(service NoteService) *NoteHandler {
	return &NoteHandler{
		service: service,
		now:     time.Now,
	}
}

func (h *NoteHandler) HandleAppend(c *gin.Context) {
	var req appendNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Append(c.Request.Context(), c.GetHeader(idempotencyHeader), note.Note{
		Title:  req.Title,
		Body:   req.Body,
		Source: req.Source,
		Tags:   req.Tags,
	}, h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
