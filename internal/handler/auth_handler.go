package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/errcode"
	"github.com/avverma/fitrag/internal/pkg/response"
	"github.com/avverma/fitrag/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// profilePayload carries the user profile across register and update.
// Enum and range validation happens here at the boundary; the core
// never sees an out-of-range profile through the API.
type profilePayload struct {
	Name               string  `json:"name" binding:"required"`
	Age                int     `json:"age" binding:"required,gte=16,lte=80"`
	Gender             string  `json:"gender" binding:"required,oneof=male female other"`
	HeightCM           float64 `json:"height_cm" binding:"required,gte=100,lte=250"`
	WeightKG           float64 `json:"weight_kg" binding:"required,gte=30,lte=300"`
	FitnessGoal        string  `json:"fitness_goal" binding:"required,oneof=lean muscle_gain fat_loss"`
	ActivityLevel      string  `json:"activity_level" binding:"required,oneof=sedentary lightly_active moderately_active very_active extremely_active"`
	DietaryPreference  string  `json:"dietary_preference" binding:"required"`
	ExperienceLevel    string  `json:"experience_level" binding:"required,oneof=beginner intermediate advanced"`
	WorkoutLocation    string  `json:"workout_location" binding:"required,oneof=home gym both"`
	WorkoutDaysPerWeek int     `json:"workout_days_per_week" binding:"required,gte=1,lte=7"`
	MedicalConditions  string  `json:"medical_conditions"`
	Allergies          string  `json:"allergies"`
}

func (p profilePayload) toProfile() model.Profile {
	return model.Profile{
		Name:               p.Name,
		Age:                p.Age,
		Gender:             p.Gender,
		HeightCM:           p.HeightCM,
		WeightKG:           p.WeightKG,
		FitnessGoal:        p.FitnessGoal,
		ActivityLevel:      p.ActivityLevel,
		DietaryPreference:  p.DietaryPreference,
		ExperienceLevel:    p.ExperienceLevel,
		WorkoutLocation:    p.WorkoutLocation,
		WorkoutDaysPerWeek: p.WorkoutDaysPerWeek,
		MedicalConditions:  p.MedicalConditions,
		Allergies:          p.Allergies,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	profilePayload
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.toProfile())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user, "token": token})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), getUserID(c), req.OldPassword, req.NewPassword); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
