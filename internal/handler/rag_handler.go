package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avverma/fitrag/internal/ingest"
	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/errcode"
	"github.com/avverma/fitrag/internal/pkg/logutil"
	"github.com/avverma/fitrag/internal/pkg/response"
	"github.com/avverma/fitrag/internal/rag"
	"github.com/avverma/fitrag/internal/service"
	"github.com/avverma/fitrag/internal/vectorstore"
)

type RAGHandler struct {
	chain     *rag.Chain
	retriever *rag.Retriever
	users     *service.UserService
	progress  *service.ProgressService
	ingester  *ingest.Ingester
	index     vectorstore.Index
}

func NewRAGHandler(chain *rag.Chain, retriever *rag.Retriever, users *service.UserService,
	progress *service.ProgressService, ingester *ingest.Ingester, index vectorstore.Index) *RAGHandler {

	return &RAGHandler{
		chain:     chain,
		retriever: retriever,
		users:     users,
		progress:  progress,
		ingester:  ingester,
		index:     index,
	}
}

type askRequest struct {
	Query    string `json:"query" binding:"required"`
	PlanType string `json:"plan_type" binding:"omitempty,oneof=workout diet both"`
}

// Ask answers a free-form plan request without persisting the result.
func (h *RAGHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.PlanType == "" {
		req.PlanType = "both"
	}
	ctx := c.Request.Context()
	user, err := h.users.Get(ctx, getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	progress, err := h.progress.RAGContext(ctx, user.ID)
	if err != nil {
		logutil.GetLogger(ctx).Warn("load progress context failed", zap.Error(err))
		progress = nil
	}
	result := h.chain.GeneratePlan(ctx, user.Profile(), req.Query, req.PlanType, progress)
	response.Success(c, gin.H{"result": result})
}

type retrieveRequest struct {
	Query   string `json:"query" binding:"required"`
	DocType string `json:"doc_type" binding:"omitempty,oneof=workout diet both"`
	TopK    int    `json:"top_k" binding:"gte=0,lte=20"`
}

// Retrieve returns ranked knowledge documents without generation, for
// inspecting what a plan request would be grounded on.
func (h *RAGHandler) Retrieve(c *gin.Context) {
	var req retrieveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.DocType == "" {
		req.DocType = "both"
	}
	ctx := c.Request.Context()
	user, err := h.users.Get(ctx, getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	profile := user.Profile()

	var workouts, diets []model.RetrievedDocument
	switch req.DocType {
	case model.DocTypeWorkout:
		workouts = h.retriever.RetrieveWorkoutContext(ctx, req.Query, profile, req.TopK)
	case model.DocTypeDiet:
		diets = h.retriever.RetrieveDietContext(ctx, req.Query, profile, req.TopK)
	default:
		workouts, diets = h.retriever.RetrieveCombined(ctx, req.Query, profile)
	}
	response.Success(c, gin.H{"workouts": workouts, "diets": diets})
}

type ingestRequest struct {
	Overwrite bool `json:"overwrite"`
}

func (h *RAGHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	stats, err := h.ingester.IngestAll(c.Request.Context(), req.Overwrite)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"stats": stats})
}

func (h *RAGHandler) Stats(c *gin.Context) {
	available := h.index != nil && h.index.IsAvailable()
	counts := map[string]int64{}
	if available {
		var err error
		counts, err = h.index.Stats(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
	}
	response.Success(c, gin.H{
		"available":    available,
		"generation":   h.chain.IsAvailable(),
		"vector_count": counts,
	})
}
