package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/errcode"
	"github.com/avverma/fitrag/internal/pkg/response"
	"github.com/avverma/fitrag/internal/service"
)

type ProgressHandler struct {
	progress *service.ProgressService
}

func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

type logWeightRequest struct {
	WeightKG float64 `json:"weight_kg" binding:"required,gte=30,lte=300"`
	LogDate  string  `json:"log_date"`
	Notes    string  `json:"notes"`
}

func (h *ProgressHandler) LogWeight(c *gin.Context) {
	var req logWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	log, err := h.progress.LogWeight(c.Request.Context(), getUserID(c), req.WeightKG, req.LogDate, req.Notes)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"log": log})
}

type logMeasurementsRequest struct {
	LogDate    string  `json:"log_date"`
	ChestCM    float64 `json:"chest_cm"`
	WaistCM    float64 `json:"waist_cm"`
	HipsCM     float64 `json:"hips_cm"`
	BicepsCM   float64 `json:"biceps_cm"`
	ThighsCM   float64 `json:"thighs_cm"`
	BodyFatPct float64 `json:"body_fat_percentage" binding:"gte=0,lte=70"`
	Notes      string  `json:"notes"`
}

func (h *ProgressHandler) LogMeasurements(c *gin.Context) {
	var req logMeasurementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	log, err := h.progress.LogMeasurements(c.Request.Context(), &model.MeasurementLog{
		UserID:     getUserID(c),
		LogDate:    req.LogDate,
		ChestCM:    req.ChestCM,
		WaistCM:    req.WaistCM,
		HipsCM:     req.HipsCM,
		BicepsCM:   req.BicepsCM,
		ThighsCM:   req.ThighsCM,
		BodyFatPct: req.BodyFatPct,
		Notes:      req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"log": log})
}

type logWorkoutRequest struct {
	LogDate      string `json:"log_date"`
	WorkoutDayID string `json:"workout_day_id"`
	Completed    bool   `json:"completed"`
	DurationMins int    `json:"duration_mins" binding:"gte=0,lte=600"`
	EnergyLevel  int    `json:"energy_level" binding:"gte=0,lte=10"`
	Notes        string `json:"notes"`
}

func (h *ProgressHandler) LogWorkout(c *gin.Context) {
	var req logWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	log, err := h.progress.LogWorkout(c.Request.Context(), &model.WorkoutLog{
		UserID:       getUserID(c),
		LogDate:      req.LogDate,
		WorkoutDayID: req.WorkoutDayID,
		Completed:    req.Completed,
		DurationMins: req.DurationMins,
		EnergyLevel:  req.EnergyLevel,
		Notes:        req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"log": log})
}

type logCaloriesRequest struct {
	LogDate       string  `json:"log_date"`
	TotalCalories int     `json:"total_calories" binding:"required,gte=0,lte=20000"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFats     float64 `json:"total_fats"`
	WaterLiters   float64 `json:"water_liters"`
	Notes         string  `json:"notes"`
}

func (h *ProgressHandler) LogCalories(c *gin.Context) {
	var req logCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	log, err := h.progress.LogCalories(c.Request.Context(), &model.CalorieLog{
		UserID:        getUserID(c),
		LogDate:       req.LogDate,
		TotalCalories: req.TotalCalories,
		TotalProtein:  req.TotalProtein,
		TotalCarbs:    req.TotalCarbs,
		TotalFats:     req.TotalFats,
		WaterLiters:   req.WaterLiters,
		Notes:         req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"log": log})
}

func (h *ProgressHandler) ListWeight(c *gin.Context) {
	logs, err := h.progress.ListWeightLogs(c.Request.Context(), getUserID(c), queryDays(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"logs": logs})
}

func (h *ProgressHandler) ListMeasurements(c *gin.Context) {
	logs, err := h.progress.ListMeasurementLogs(c.Request.Context(), getUserID(c), queryDays(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"logs": logs})
}

func (h *ProgressHandler) Summary(c *gin.Context) {
	summary, err := h.progress.Summary(c.Request.Context(), getUserID(c), queryDays(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"summary": summary})
}

// queryDays reads the optional ?days= window, 0 means service default.
func queryDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
	if err != nil || days < 0 {
		return 0
	}
	return days
}
