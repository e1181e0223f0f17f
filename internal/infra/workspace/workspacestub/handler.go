package workspacestub

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 100

type queryRequest struct {
	StartCursor string `json:"start_cursor"`
	PageSize    int    `json:"page_size"`
}

type pageWrite struct {
	Parent struct {
		DatabaseID string `json:"database_id"`
	} `json:"parent"`
	Properties map[string]map[string]any `json:"properties"`
}

type Handler struct {
	storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{storage: storage}
}

// NewRouter serves the subset of the workspace REST API the client uses.
// Query filters are ignored; the client re-checks windows itself.
func NewRouter(storage *Storage) *gin.Engine {
	h := NewHandler(storage)

	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.POST("/databases/:id/query", h.HandleQuery)
		v1.POST("/pages", h.HandleCreatePage)
		v1.PATCH("/pages/:id", h.HandleUpdatePage)
	}
	return r
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"object":  "error",
		"status":  http.StatusNotFound,
		"code":    "object_not_found",
		"message": message,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"object":  "error",
		"status":  http.StatusBadRequest,
		"code":    "validation_error",
		"message": message,
	})
}

func pageJSON(p *Page) gin.H {
	return gin.H{
		"object":     "page",
		"id":         p.ID,
		"properties": p.Properties,
	}
}

// POST /v1/databases/:id/query
func (h *Handler) HandleQuery(c *gin.Context) {
	if c.Param("id") != h.storage.DatabaseID() {
		notFound(c, "database not found: "+c.Param("id"))
		return
	}

	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	offset := 0
	if req.StartCursor != "" {
		parsed, err := strconv.Atoi(req.StartCursor)
		if err != nil || parsed < 0 {
			badRequest(c, "invalid start_cursor")
			return
		}
		offset = parsed
	}

	size := req.PageSize
	if size <= 0 || size > defaultPageSize {
		size = defaultPageSize
	}

	pages, more := h.storage.List(offset, size)

	results := make([]gin.H, 0, len(pages))
	for _, p := range pages {
		results = append(results, pageJSON(p))
	}

	var next *string
	if more {
		cursor := strconv.Itoa(offset + len(pages))
		next = &cursor
	}

	slog.Debug("stub query",
		slog.Int("offset", offset),
		slog.Int("count", len(results)),
		slog.Bool("has_more", more),
	)

	c.JSON(http.StatusOK, gin.H{
		"object":      "list",
		"results":     results,
		"has_more":    more,
		"next_cursor": next,
	})
}

// POST /v1/pages
func (h *Handler) HandleCreatePage(c *gin.Context) {
	var req pageWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if req.Parent.DatabaseID != h.storage.DatabaseID() {
		notFound(c, "database not found: "+req.Parent.DatabaseID)
		return
	}

	p := h.storage.AddPage("", req.Properties)

	slog.Debug("stub page created", slog.String("page_id", p.ID))

	c.JSON(http.StatusOK, pageJSON(p))
}

// PATCH /v1/pages/:id
func (h *Handler) HandleUpdatePage(c *gin.Context) {
	var req pageWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p, ok := h.storage.UpdatePage(c.Param("id"), req.Properties)
	if !ok {
		notFound(c, "page not found: "+c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, pageJSON(p))
}
