package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/logutil"
	"github.com/avverma/fitrag/internal/rag"
	"github.com/avverma/fitrag/internal/repo"
	"go.uber.org/zap"
)

type PlanService struct {
	chain    *rag.Chain
	plans    *repo.PlanRepo
	users    *repo.UserRepo
	progress *ProgressService
}

func NewPlanService(chain *rag.Chain, plans *repo.PlanRepo, users *repo.UserRepo, progress *ProgressService) *PlanService {
	return &PlanService{chain: chain, plans: plans, users: users, progress: progress}
}

// Generate produces a plan of the requested type and persists it. An
// empty query is replaced by one synthesized from the profile.
func (s *PlanService) Generate(ctx context.Context, userID, planType, customQuery string) (*model.PlanResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	progress := s.progressContext(ctx, userID)

	query := customQuery
	if query == "" {
		query = defaultQuery(profile, planType)
	}

	var result *model.PlanResult
	switch planType {
	case model.PlanTypeWorkout:
		result = s.chain.GenerateWorkoutPlan(ctx, profile, progress)
	case model.PlanTypeDiet:
		result = s.chain.GenerateDietPlan(ctx, profile, progress)
	default:
		result = s.chain.GeneratePlan(ctx, profile, query, model.PlanTypeBoth, progress)
	}

	if err := s.savePlans(ctx, userID, planType, profile, result); err != nil {
		logutil.GetLogger(ctx).Error("save generated plan failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	return result, nil
}

// Regenerate rebuilds a plan with a query derived from the user's
// progress data.
func (s *PlanService) Regenerate(ctx context.Context, userID, planType string) (*model.PlanResult, error) {
	progress := s.progressContext(ctx, userID)
	query := progressAwareQuery(progress, planType)
	return s.Generate(ctx, userID, planType, query)
}

func (s *PlanService) GetActive(ctx context.Context, userID string) (workout, diet *model.Plan) {
	workout, _ = s.plans.GetActive(ctx, userID, model.PlanTypeWorkout)
	diet, _ = s.plans.GetActive(ctx, userID, model.PlanTypeDiet)
	return workout, diet
}

func (s *PlanService) List(ctx context.Context, userID string, limit int) ([]model.Plan, error) {
	return s.plans.List(ctx, userID, limit)
}

func (s *PlanService) Get(ctx context.Context, planID, userID string) (*model.Plan, error) {
	return s.plans.GetByID(ctx, planID, userID)
}

func (s *PlanService) Delete(ctx context.Context, planID, userID string) error {
	return s.plans.Delete(ctx, planID, userID)
}

func (s *PlanService) savePlans(ctx context.Context, userID, planType string, profile model.Profile, result *model.PlanResult) error {
	now := time.Now().Unix()
	if planType == model.PlanTypeWorkout || planType == model.PlanTypeBoth {
		plan := &model.Plan{
			ID:       newID(),
			UserID:   userID,
			PlanType: model.PlanTypeWorkout,
			Name:     planName(profile.FitnessGoal, "Workout Plan"),
			Content:  result.Response,
			Sources:  result.Sources,
			Active:   true,
			Ctime:    now,
		}
		if err := s.plans.Save(ctx, plan); err != nil {
			return err
		}
	}
	if planType == model.PlanTypeDiet || planType == model.PlanTypeBoth {
		plan := &model.Plan{
			ID:       newID(),
			UserID:   userID,
			PlanType: model.PlanTypeDiet,
			Name:     planName(profile.DietaryPreference, "Diet Plan"),
			Content:  result.Response,
			Sources:  result.Sources,
			Active:   true,
			Ctime:    now,
		}
		if err := s.plans.Save(ctx, plan); err != nil {
			return err
		}
	}
	return nil
}

// progressContext tolerates missing history; a brand-new user simply
// generates without it.
func (s *PlanService) progressContext(ctx context.Context, userID string) *model.ProgressContext {
	progress, err := s.progress.RAGContext(ctx, userID)
	if err != nil {
		logutil.GetLogger(ctx).Warn("load progress context failed",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return progress
}

func defaultQuery(profile model.Profile, planType string) string {
	goal := profile.FitnessGoal
	if goal == "" {
		goal = "general fitness"
	}
	days := profile.WorkoutDaysPerWeek
	if days == 0 {
		days = 4
	}
	dietPref := profile.DietaryPreference
	if dietPref == "" {
		dietPref = "balanced"
	}
	switch planType {
	case model.PlanTypeWorkout:
		return fmt.Sprintf("Create a complete %d-day workout plan for %s at %s level", days, goal, profile.ExperienceLevel)
	case model.PlanTypeDiet:
		return fmt.Sprintf("Create a %s diet plan optimized for %s", dietPref, goal)
	default:
		return fmt.Sprintf("Create a complete %d-day workout and %s diet plan for %s", days, dietPref, goal)
	}
}

func progressAwareQuery(progress *model.ProgressContext, planType string) string {
	if progress == nil {
		return fmt.Sprintf("Generate an updated %s plan based on my current progress.", planType)
	}
	var concerns []string
	switch progress.WeightTrend {
	case model.WeightTrendMaintaining:
		concerns = append(concerns, "I've plateaued and need adjustments to continue progress")
	case model.WeightTrendLosing:
		if progress.WeightChange < -3 {
			concerns = append(concerns, "I'm losing weight faster than expected, may need to adjust")
		}
	}
	if progress.WorkoutCompletion < 60 {
		concerns = append(concerns, "I'm struggling with workout consistency, need a more manageable plan")
	}
	if progress.CalorieAdherence < 70 {
		concerns = append(concerns, "I'm having trouble following my diet, need simpler meal options")
	}
	if len(concerns) == 0 {
		return fmt.Sprintf("Generate an updated %s plan based on my current progress.", planType)
	}
	return fmt.Sprintf("Based on my progress: %s. Please generate an updated %s plan.", strings.Join(concerns, "; "), planType)
}

func planName(qualifier, suffix string) string {
	qualifier = strings.TrimSpace(qualifier)
	if qualifier == "" {
		return suffix
	}
	return titleWord(qualifier) + " " + suffix
}

func titleWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
