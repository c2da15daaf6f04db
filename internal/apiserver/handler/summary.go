package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/internal/apiserver/biz"
	"github.com/kart-io/haven/pkg/middleware"
	"github.com/kart-io/haven/pkg/response"
)

// SummaryHandler handles AI daily summary requests.
type SummaryHandler struct {
	svc *biz.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(svc *biz.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// Generate handles POST /v1/summaries/:date.
func (h *SummaryHandler) Generate(c *gin.Context) {
	summary, err := h.svc.Generate(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, summary)
}

// Get handles GET /v1/summaries/:date.
func (h *SummaryHandler) Get(c *gin.Context) {
	summary, err := h.svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, summary)
}
