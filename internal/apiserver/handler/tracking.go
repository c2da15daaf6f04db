package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/internal/apiserver/biz"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/middleware"
	"github.com/kart-io/haven/pkg/response"
)

// TrackingHandler handles checklist, metric, craving, and plan requests.
type TrackingHandler struct {
	svc *biz.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(svc *biz.TrackingService) *TrackingHandler {
	return &TrackingHandler{svc: svc}
}

// UpsertChecklistRequest is the request body for a checklist write.
type UpsertChecklistRequest struct {
	Status map[string]bool `json:"status" validate:"required"`
}

// UpsertChecklist handles PUT /v1/checklists/:date.
func (h *TrackingHandler) UpsertChecklist(c *gin.Context) {
	var req UpsertChecklistRequest
	if !bindJSON(c, &req) {
		return
	}

	checklist := &model.DailyChecklist{
		UserID: middleware.UserID(c),
		Date:   c.Param("date"),
		Status: req.Status,
	}
	if err := h.svc.UpsertChecklist(c.Request.Context(), checklist); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, checklist)
}

// GetChecklist handles GET /v1/checklists/:date.
func (h *TrackingHandler) GetChecklist(c *gin.Context) {
	checklist, err := h.svc.GetChecklist(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, checklist)
}

// UpsertMetricRequest is the request body for a metric write.
type UpsertMetricRequest struct {
	Conn    *int `json:"conn" validate:"omitempty,min=0,max=10"`
	Pray    *int `json:"pray" validate:"omitempty,min=0,max=10"`
	Move    *int `json:"move" validate:"omitempty,min=0,max=10"`
	Mind    *int `json:"mind" validate:"omitempty,min=0,max=10"`
	Service *int `json:"service" validate:"omitempty,min=0,max=10"`
	Sleep   *int `json:"sleep" validate:"omitempty,min=0,max=24"`
}

// UpsertMetric handles PUT /v1/metrics/:date.
func (h *TrackingHandler) UpsertMetric(c *gin.Context) {
	var req UpsertMetricRequest
	if !bindJSON(c, &req) {
		return
	}

	metric := &model.DailyMetric{
		UserID:  middleware.UserID(c),
		Date:    c.Param("date"),
		Conn:    req.Conn,
		Pray:    req.Pray,
		Move:    req.Move,
		Mind:    req.Mind,
		Service: req.Service,
		Sleep:   req.Sleep,
	}
	if err := h.svc.UpsertMetric(c.Request.Context(), metric); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, metric)
}

// GetMetric handles GET /v1/metrics/:date.
func (h *TrackingHandler) GetMetric(c *gin.Context) {
	metric, err := h.svc.GetMetric(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, metric)
}

// MetricRange handles GET /v1/metrics?from=...&to=...
func (h *TrackingHandler) MetricRange(c *gin.Context) {
	items, err := h.svc.MetricRange(c.Request.Context(), middleware.UserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.PageOK(c, items, int64(len(items)))
}

// LogCravingRequest is the request body for recording a craving episode.
type LogCravingRequest struct {
	Trigger   string   `json:"trigger" validate:"omitempty,max=255"`
	Intensity int      `json:"intensity" validate:"required,min=1,max=10"`
	ToolsUsed []string `json:"tools_used"`
	Result    string   `json:"result" validate:"omitempty,max=255"`
	Lesson    string   `json:"lesson"`
}

// LogCraving handles POST /v1/cravings.
func (h *TrackingHandler) LogCraving(c *gin.Context) {
	var req LogCravingRequest
	if !bindJSON(c, &req) {
		return
	}

	log := &model.CravingLog{
		UserID:    middleware.UserID(c),
		Trigger:   req.Trigger,
		Intensity: req.Intensity,
		ToolsUsed: req.ToolsUsed,
		Result:    req.Result,
		Lesson:    req.Lesson,
	}
	if err := h.svc.LogCraving(c.Request.Context(), log); err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, log)
}

// ListCravings handles GET /v1/cravings.
func (h *TrackingHandler) ListCravings(c *gin.Context) {
	offset, limit := pagination(c)
	total, items, err := h.svc.ListCravings(c.Request.Context(), middleware.UserID(c), offset, limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.PageOK(c, items, total)
}

// PlanRequest is the request body for creating a plan.
type PlanRequest struct {
	Trigger string `json:"trigger" validate:"required,max=255"`
	Action  string `json:"action" validate:"required,max=255"`
}

// CreatePlan handles POST /v1/plans.
func (h *TrackingHandler) CreatePlan(c *gin.Context) {
	var req PlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan := &model.IfThenPlan{
		UserID:  middleware.UserID(c),
		Trigger: req.Trigger,
		Action:  req.Action,
		Active:  true,
	}
	if err := h.svc.CreatePlan(c.Request.Context(), plan); err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, plan)
}

// UpdatePlanRequest is the request body for a partial plan update.
type UpdatePlanRequest struct {
	Trigger *string `json:"trigger" validate:"omitempty,max=255"`
	Action  *string `json:"action" validate:"omitempty,max=255"`
	Active  *bool   `json:"active"`
}

// UpdatePlan handles PATCH /v1/plans/:id.
func (h *TrackingHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.svc.UpdatePlan(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Trigger, req.Action, req.Active)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, plan)
}

// DeletePlan handles DELETE /v1/plans/:id.
func (h *TrackingHandler) DeletePlan(c *gin.Context) {
	if err := h.svc.DeletePlan(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// ListPlans handles GET /v1/plans.
func (h *TrackingHandler) ListPlans(c *gin.Context) {
	items, err := h.svc.ListPlans(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.PageOK(c, items, int64(len(items)))
}
