package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/avverma/fitrag/internal/ai"
	"github.com/avverma/fitrag/internal/metrics"
	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/logutil"
	"go.uber.org/zap"
)

const maxFollowUpQuestions = 3

// detailTopK widens retrieval for single-purpose plans, which lean on
// more source material than the combined overview.
const detailTopK = 7

// Chain orchestrates one plan generation: compute targets, retrieve
// context, prompt the generator, and assemble sources and follow-ups.
// Generation failures degrade to a context-built plan, never an error.
type Chain struct {
	retriever *Retriever
	ai        *ai.Manager
}

func NewChain(retriever *Retriever, mgr *ai.Manager) *Chain {
	return &Chain{retriever: retriever, ai: mgr}
}

func (c *Chain) IsAvailable() bool {
	return c.ai.GeneratorAvailable()
}

// GeneratePlan produces a combined fitness and diet plan for the
// user's free-form request.
func (c *Chain) GeneratePlan(ctx context.Context, profile model.Profile, userQuery, planType string, progress *model.ProgressContext) *model.PlanResult {
	logger := logutil.GetLogger(ctx)
	stats := metrics.CalculateAll(profile)

	workouts, diets := c.retriever.RetrieveCombined(ctx, userQuery, profile)
	workoutContext := formatDocuments(workouts)
	dietContext := formatDocuments(diets)
	progressContext := formatProgress(progress)

	if !c.IsAvailable() {
		return c.fallbackResponse(profile, stats, workoutContext, dietContext, workouts, diets)
	}

	prompt := renderTemplate(ragPromptTemplate, map[string]string{
		"user_name":          orDefault(profile.Name, "User"),
		"age":                fmt.Sprintf("%d", profile.Age),
		"gender":             profile.Gender,
		"height_cm":          formatFloat(profile.HeightCM),
		"weight_kg":          formatFloat(profile.WeightKG),
		"bmi":                fmt.Sprintf("%.1f", stats.BMI),
		"fitness_goal":       profile.FitnessGoal,
		"activity_level":     profile.ActivityLevel,
		"experience_level":   profile.ExperienceLevel,
		"workout_location":   profile.WorkoutLocation,
		"workout_days":       fmt.Sprintf("%d", profile.WorkoutDaysPerWeek),
		"dietary_preference": profile.DietaryPreference,
		"medical_conditions": orDefault(profile.MedicalConditions, "None reported"),
		"allergies":          orDefault(profile.Allergies, "None reported"),
		"daily_calories":     fmt.Sprintf("%d", stats.DailyCalories),
		"protein_g":          fmt.Sprintf("%d", stats.ProteinG),
		"carbs_g":            fmt.Sprintf("%d", stats.CarbsG),
		"fats_g":             fmt.Sprintf("%d", stats.FatsG),
		"progress_context":   progressContext,
		"workout_context":    workoutContext,
		"diet_context":       dietContext,
		"user_query":         userQuery,
	})

	response, err := c.ai.Complete(ctx, prompt)
	if err != nil {
		logger.Error("plan generation failed, using knowledge base response", zap.Error(err))
		return c.fallbackResponse(profile, stats, workoutContext, dietContext, workouts, diets)
	}

	return &model.PlanResult{
		Response:          response,
		Sources:           extractSources(workouts, diets),
		Stats:             &stats,
		FollowUpQuestions: followUpQuestions(profile, planType),
	}
}

// GenerateWorkoutPlan builds a weekly workout plan from a synthesized
// query, so callers need no free-form input.
func (c *Chain) GenerateWorkoutPlan(ctx context.Context, profile model.Profile, progress *model.ProgressContext) *model.PlanResult {
	logger := logutil.GetLogger(ctx)
	query := fmt.Sprintf("Complete %d-day workout plan for %s goal", profile.WorkoutDaysPerWeek, profile.FitnessGoal)

	docs := c.retriever.RetrieveWorkoutContext(ctx, query, profile, detailTopK)
	workoutContext := formatDocuments(docs)

	if !c.IsAvailable() {
		return &model.PlanResult{
			Response: workoutContext,
			Sources:  extractSources(docs, nil),
			Fallback: true,
		}
	}

	prompt := renderTemplate(workoutPromptTemplate, map[string]string{
		"user_profile":     formatUserProfile(profile),
		"workout_context":  workoutContext,
		"workout_days":     fmt.Sprintf("%d", profile.WorkoutDaysPerWeek),
		"fitness_goal":     profile.FitnessGoal,
		"experience_level": profile.ExperienceLevel,
		"workout_location": profile.WorkoutLocation,
	})
	response, err := c.ai.Complete(ctx, prompt)
	if err != nil {
		logger.Error("workout plan generation failed, using retrieved context", zap.Error(err))
		return &model.PlanResult{
			Response: workoutContext,
			Sources:  extractSources(docs, nil),
			Fallback: true,
		}
	}
	return &model.PlanResult{
		Response: response,
		Sources:  extractSources(docs, nil),
	}
}

// GenerateDietPlan builds a daily meal plan against the user's calorie
// and macro targets.
func (c *Chain) GenerateDietPlan(ctx context.Context, profile model.Profile, progress *model.ProgressContext) *model.PlanResult {
	logger := logutil.GetLogger(ctx)
	stats := metrics.CalculateAll(profile)
	query := fmt.Sprintf("Diet plan for %s with %d calories", profile.DietaryPreference, stats.DailyCalories)

	docs := c.retriever.RetrieveDietContext(ctx, query, profile, detailTopK)
	dietContext := formatDocuments(docs)

	if !c.IsAvailable() {
		return &model.PlanResult{
			Response: dietContext,
			Sources:  extractSources(nil, docs),
			Stats:    &stats,
			Fallback: true,
		}
	}

	prompt := renderTemplate(dietPromptTemplate, map[string]string{
		"user_profile":       formatUserProfile(profile),
		"diet_context":       dietContext,
		"daily_calories":     fmt.Sprintf("%d", stats.DailyCalories),
		"protein_g":          fmt.Sprintf("%d", stats.ProteinG),
		"carbs_g":            fmt.Sprintf("%d", stats.CarbsG),
		"fats_g":             fmt.Sprintf("%d", stats.FatsG),
		"dietary_preference": profile.DietaryPreference,
		"allergies":          orDefault(profile.Allergies, "None"),
	})
	response, err := c.ai.Complete(ctx, prompt)
	if err != nil {
		logger.Error("diet plan generation failed, using retrieved context", zap.Error(err))
		return &model.PlanResult{
			Response: dietContext,
			Sources:  extractSources(nil, docs),
			Stats:    &stats,
			Fallback: true,
		}
	}
	return &model.PlanResult{
		Response: response,
		Sources:  extractSources(nil, docs),
		Stats:    &stats,
	}
}

func (c *Chain) fallbackResponse(profile model.Profile, stats model.MetricsResult, workoutContext, dietContext string, workouts, diets []model.RetrievedDocument) *model.PlanResult {
	response := fmt.Sprintf(`# Personalized Fitness & Diet Plan for %s

## Your Stats
- **BMI:** %.1f (%s)
- **Daily Calories:** %d kcal
- **Protein:** %dg | **Carbs:** %dg | **Fats:** %dg

## Workout Plan
%s

## Diet Plan
%s

---
*Note: This is a basic plan generated from our knowledge base. For more personalized AI-generated plans, please configure a generation provider.*
`,
		orDefault(profile.Name, "User"),
		stats.BMI, stats.BMICategory,
		stats.DailyCalories,
		stats.ProteinG, stats.CarbsG, stats.FatsG,
		workoutContext,
		dietContext,
	)
	return &model.PlanResult{
		Response: response,
		Sources:  extractSources(workouts, diets),
		Stats:    &stats,
		FollowUpQuestions: []string{
			"Do you have any specific exercises you'd like to include?",
			"Are there any foods you particularly enjoy?",
			"What time do you prefer to workout?",
		},
		Fallback: true,
	}
}

// formatDocuments renders retrieved documents as numbered, scored
// context blocks for the prompt.
func formatDocuments(docs []model.RetrievedDocument) string {
	if len(docs) == 0 {
		return "No relevant documents found."
	}
	blocks := make([]string, 0, len(docs))
	for i, doc := range docs {
		blocks = append(blocks, fmt.Sprintf("[Source %d, Relevance: %.2f]\n%s", i+1, doc.Score, doc.Content))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func formatProgress(progress *model.ProgressContext) string {
	if progress == nil {
		return "No previous progress data available."
	}
	var parts []string
	if len(progress.WeightHistory) > 0 {
		history := progress.WeightHistory
		if len(history) > 5 {
			history = history[len(history)-5:]
		}
		weights := make([]string, 0, len(history))
		for _, w := range history {
			weights = append(weights, fmt.Sprintf("%.1fkg", w))
		}
		parts = append(parts, "Recent weights: "+strings.Join(weights, ", "))
	}
	if progress.WorkoutCompletion > 0 {
		parts = append(parts, fmt.Sprintf("Workout completion rate: %.1f%%", progress.WorkoutCompletion))
	}
	if progress.CalorieAdherence > 0 {
		parts = append(parts, fmt.Sprintf("Calorie adherence: %.1f%%", progress.CalorieAdherence))
	}
	if len(parts) == 0 {
		return "No progress data available."
	}
	return strings.Join(parts, "\n")
}

func formatUserProfile(profile model.Profile) string {
	return fmt.Sprintf(`- Name: %s
- Age: %d years
- Gender: %s
- Height: %s cm
- Weight: %s kg
- Goal: %s
- Activity Level: %s
- Experience: %s
- Workout Location: %s
- Days/Week: %d
- Diet Preference: %s`,
		orDefault(profile.Name, "User"),
		profile.Age,
		profile.Gender,
		formatFloat(profile.HeightCM),
		formatFloat(profile.WeightKG),
		profile.FitnessGoal,
		profile.ActivityLevel,
		profile.ExperienceLevel,
		profile.WorkoutLocation,
		profile.WorkoutDaysPerWeek,
		profile.DietaryPreference,
	)
}

// extractSources lists every retrieved document, workouts first, in
// retrieval order.
func extractSources(workouts, diets []model.RetrievedDocument) []model.PlanSource {
	sources := make([]model.PlanSource, 0, len(workouts)+len(diets))
	for _, doc := range workouts {
		sources = append(sources, model.PlanSource{
			ID:    doc.ID,
			Type:  model.DocTypeWorkout,
			Score: doc.Score,
			Title: doc.Meta("title", "Workout Routine"),
		})
	}
	for _, doc := range diets {
		sources = append(sources, model.PlanSource{
			ID:    doc.ID,
			Type:  model.DocTypeDiet,
			Score: doc.Score,
			Title: doc.Meta("title", "Diet Plan"),
		})
	}
	return sources
}

// followUpQuestions asks about gaps in the profile first, then plan
// scoped specifics, capped at three.
func followUpQuestions(profile model.Profile, planType string) []string {
	var questions []string
	if profile.MedicalConditions == "" {
		questions = append(questions, "Do you have any medical conditions or injuries I should consider?")
	}
	if profile.Allergies == "" {
		questions = append(questions, "Do you have any food allergies or intolerances?")
	}
	if planType == model.PlanTypeWorkout || planType == model.PlanTypeBoth {
		questions = append(questions,
			"Do you have access to specific gym equipment?",
			"How much time can you dedicate to each workout session?")
	}
	if planType == model.PlanTypeDiet || planType == model.PlanTypeBoth {
		questions = append(questions,
			"Do you prefer meal prepping or cooking fresh daily?",
			"Are there any specific foods you dislike?")
	}
	if len(questions) > maxFollowUpQuestions {
		questions = questions[:maxFollowUpQuestions]
	}
	return questions
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
