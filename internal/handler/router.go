package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/avverma/fitrag/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Progress  *ProgressHandler
	Plans     *PlanHandler
	RAG       *RAGHandler
	Health    *HealthHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", deps.Health.Check)
	api.GET("/health/ready", deps.Health.Ready)

	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/auth/password", deps.Auth.ChangePassword)

	authGroup.GET("/users/me", deps.Users.Get)
	authGroup.PUT("/users/me/profile", deps.Users.UpdateProfile)
	authGroup.GET("/users/me/stats", deps.Users.Stats)

	authGroup.POST("/progress/weight", deps.Progress.LogWeight)
	authGroup.GET("/progress/weight", deps.Progress.ListWeight)
	authGroup.POST("/progress/measurements", deps.Progress.LogMeasurements)
	authGroup.GET("/progress/measurements", deps.Progress.ListMeasurements)
	authGroup.POST("/progress/workouts", deps.Progress.LogWorkout)
	authGroup.POST("/progress/calories", deps.Progress.LogCalories)
	authGroup.GET("/progress/summary", deps.Progress.Summary)

	authGroup.POST("/plans/generate", deps.Plans.Generate)
	authGroup.POST("/plans/regenerate", deps.Plans.Regenerate)
	authGroup.GET("/plans/active", deps.Plans.Active)
	authGroup.GET("/plans", deps.Plans.List)
	authGroup.GET("/plans/:id", deps.Plans.Get)
	authGroup.DELETE("/plans/:id", deps.Plans.Delete)

	authGroup.POST("/rag/ask", deps.RAG.Ask)
	authGroup.POST("/rag/retrieve", deps.RAG.Retrieve)
	authGroup.POST("/rag/ingest", deps.RAG.Ingest)
	authGroup.GET("/rag/stats", deps.RAG.Stats)
}
