package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/internal/apiserver/biz"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/errors"
	"github.com/kart-io/haven/pkg/middleware"
	"github.com/kart-io/haven/pkg/response"
)

// EntryHandler handles journal entry requests.
type EntryHandler struct {
	svc *biz.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(svc *biz.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// CreateEntryRequest is the request body for creating an entry.
type CreateEntryRequest struct {
	Content   string `json:"content" validate:"required"`
	EntryType string `json:"entry_type" validate:"omitempty,oneof=text voice quick-check"`
}

// Create handles POST /v1/entries.
func (h *EntryHandler) Create(c *gin.Context) {
	var req CreateEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry := &model.Entry{
		UserID:    middleware.UserID(c),
		Content:   req.Content,
		EntryType: req.EntryType,
	}
	if err := h.svc.Create(c.Request.Context(), entry); err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, entry)
}

// List handles GET /v1/entries. Query parameters: today=true limits to the
// current UTC day, since=<unix millis> limits to newer entries, otherwise
// offset/limit pagination applies.
func (h *EntryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	if c.Query("today") == "true" {
		items, err := h.svc.Today(ctx, userID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.PageOK(c, items, int64(len(items)))
		return
	}

	if raw := c.Query("since"); raw != "" {
		since, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Fail(c, errors.ErrInvalidParam.WithMessage("since must be unix milliseconds"))
			return
		}
		items, err := h.svc.Since(ctx, userID, since, 100)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.PageOK(c, items, int64(len(items)))
		return
	}

	offset, limit := pagination(c)
	total, items, err := h.svc.List(ctx, userID, offset, limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.PageOK(c, items, total)
}

// Get handles GET /v1/entries/:id.
func (h *EntryHandler) Get(c *gin.Context) {
	entry, err := h.svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, entry)
}

// Delete handles DELETE /v1/entries/:id.
func (h *EntryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}
