package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avverma/fitrag/internal/pkg/errcode"
	"github.com/avverma/fitrag/internal/pkg/response"
	"github.com/avverma/fitrag/internal/service"
)

type PlanHandler struct {
	plans *service.PlanService
}

func NewPlanHandler(plans *service.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

type generatePlanRequest struct {
	PlanType string `json:"plan_type" binding:"required,oneof=workout diet both"`
	Query    string `json:"query"`
}

func (h *PlanHandler) Generate(c *gin.Context) {
	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	result, err := h.plans.Generate(c.Request.Context(), getUserID(c), req.PlanType, req.Query)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"result": result})
}

type regeneratePlanRequest struct {
	PlanType string `json:"plan_type" binding:"required,oneof=workout diet both"`
}

// Regenerate rebuilds a plan with the user's recent progress folded
// into the request.
func (h *PlanHandler) Regenerate(c *gin.Context) {
	var req regeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	result, err := h.plans.Regenerate(c.Request.Context(), getUserID(c), req.PlanType)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"result": result})
}

func (h *PlanHandler) Active(c *gin.Context) {
	workout, diet := h.plans.GetActive(c.Request.Context(), getUserID(c))
	response.Success(c, gin.H{"workout": workout, "diet": diet})
}

func (h *PlanHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}
	plans, err := h.plans.List(c.Request.Context(), getUserID(c), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"plans": plans})
}

func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), c.Param("id"), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"plan": plan})
}

func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.plans.Delete(c.Request.Context(), c.Param("id"), getUserID(c)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
