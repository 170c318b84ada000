package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avverma/fitrag/internal/model"
)

func TestDefaultQuery(t *testing.T) {
	profile := model.Profile{
		FitnessGoal:        "muscle_gain",
		DietaryPreference:  "vegetarian",
		ExperienceLevel:    "beginner",
		WorkoutDaysPerWeek: 4,
	}

	require.Equal(t,
		"Create a complete 4-day workout plan for muscle_gain at beginner level",
		defaultQuery(profile, model.PlanTypeWorkout))
	require.Equal(t,
		"Create a vegetarian diet plan optimized for muscle_gain",
		defaultQuery(profile, model.PlanTypeDiet))
	require.Equal(t,
		"Create a complete 4-day workout and vegetarian diet plan for muscle_gain",
		defaultQuery(profile, model.PlanTypeBoth))
}

func TestDefaultQueryEmptyProfile(t *testing.T) {
	require.Equal(t,
		"Create a complete 4-day workout and balanced diet plan for general fitness",
		defaultQuery(model.Profile{}, model.PlanTypeBoth))
}

func TestProgressAwareQuery(t *testing.T) {
	require.Equal(t,
		"Generate an updated workout plan based on my current progress.",
		progressAwareQuery(nil, model.PlanTypeWorkout))

	progress := &model.ProgressContext{
		WeightTrend:       model.WeightTrendMaintaining,
		WorkoutCompletion: 40,
		CalorieAdherence:  60,
	}
	query := progressAwareQuery(progress, model.PlanTypeBoth)
	require.Equal(t,
		"Based on my progress: I've plateaued and need adjustments to continue progress; "+
			"I'm struggling with workout consistency, need a more manageable plan; "+
			"I'm having trouble following my diet, need simpler meal options. "+
			"Please generate an updated both plan.",
		query)
}

func TestProgressAwareQueryRapidLoss(t *testing.T) {
	progress := &model.ProgressContext{
		WeightTrend:       model.WeightTrendLosing,
		WeightChange:      -4.5,
		WorkoutCompletion: 90,
		CalorieAdherence:  90,
	}
	require.Equal(t,
		"Based on my progress: I'm losing weight faster than expected, may need to adjust. "+
			"Please generate an updated diet plan.",
		progressAwareQuery(progress, model.PlanTypeDiet))

	progress.WeightChange = -1
	require.Equal(t,
		"Generate an updated diet plan based on my current progress.",
		progressAwareQuery(progress, model.PlanTypeDiet))
}

func TestPlanName(t *testing.T) {
	require.Equal(t, "Muscle_gain Workout Plan", planName("muscle_gain", "Workout Plan"))
	require.Equal(t, "Vegetarian Diet Plan", planName("vegetarian", "Diet Plan"))
	require.Equal(t, "Diet Plan", planName("", "Diet Plan"))
	require.Equal(t, "Diet Plan", planName("  ", "Diet Plan"))
}
