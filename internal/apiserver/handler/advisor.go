package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/internal/apiserver/biz"
	"github.com/kart-io/haven/pkg/middleware"
	"github.com/kart-io/haven/pkg/response"
)

// AdvisorHandler handles advisor conversation requests.
type AdvisorHandler struct {
	advisor       *biz.AdvisorService
	conversations *biz.ConversationService
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(advisor *biz.AdvisorService, conversations *biz.ConversationService) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor, conversations: conversations}
}

// AskRequest is the request body for an advisor question.
type AskRequest struct {
	Question     string `json:"question" validate:"required"`
	ExtraContext string `json:"extra_context" validate:"omitempty,max=4000"`
}

// Ask handles POST /v1/advisor/ask.
func (h *AdvisorHandler) Ask(c *gin.Context) {
	var req AskRequest
	if !bindJSON(c, &req) {
		return
	}

	answer, err := h.advisor.Ask(c.Request.Context(), middleware.UserID(c), req.Question, req.ExtraContext)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, answer)
}

// History handles GET /v1/advisor/conversation.
func (h *AdvisorHandler) History(c *gin.Context) {
	_, limit := pagination(c)
	msgs, err := h.conversations.History(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.PageOK(c, msgs, int64(len(msgs)))
}

// Clear handles DELETE /v1/advisor/conversation.
func (h *AdvisorHandler) Clear(c *gin.Context) {
	if err := h.conversations.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}
