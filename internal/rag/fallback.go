package rag

import "github.com/avverma/fitrag/internal/model"

// fallbackScore marks fallback documents as moderately relevant so
// they never outrank real matches with high similarity.
const fallbackScore = 0.5

const fallbackWorkoutContent = `# General Workout Guidelines

## Beginner Full Body Workout (3 days/week)
- Squats: 3 sets x 10-12 reps
- Push-ups: 3 sets x 8-12 reps
- Dumbbell Rows: 3 sets x 10 reps each arm
- Lunges: 3 sets x 10 reps each leg
- Plank: 3 sets x 30 seconds

## Intermediate Split (4 days/week)
Day 1: Chest & Triceps
Day 2: Back & Biceps
Day 3: Rest
Day 4: Legs
Day 5: Shoulders & Core

## Important Notes
- Always warm up for 5-10 minutes
- Rest 60-90 seconds between sets
- Stay hydrated
- Progressive overload is key`

const fallbackDietContent = `# General Diet Guidelines

## Indian Vegetarian High Protein Foods
- Paneer: 18g protein per 100g
- Dal (Lentils): 9g protein per 100g
- Chickpeas: 19g protein per 100g
- Greek Yogurt: 10g protein per 100g
- Soy chunks: 52g protein per 100g

## Sample Meal Plan (2000 kcal)
Breakfast: Paneer bhurji with 2 rotis (500 kcal)
Snack: Sprouts chaat (200 kcal)
Lunch: Rajma chawal with salad (600 kcal)
Snack: Protein shake with banana (250 kcal)
Dinner: Dal with roti and vegetables (450 kcal)

## Macro Split for Muscle Gain
- Protein: 30% (150g)
- Carbs: 45% (225g)
- Fats: 25% (55g)`

func fallbackWorkoutDocs() []model.RetrievedDocument {
	return []model.RetrievedDocument{
		{
			ID:      "fallback_workout",
			Content: fallbackWorkoutContent,
			Score:   fallbackScore,
			Metadata: map[string]string{
				"type":     model.DocTypeWorkout,
				"doc_type": model.DocTypeWorkout,
				"title":    "General Workout Guidelines",
				"source":   "fallback",
			},
		},
	}
}

func fallbackDietDocs() []model.RetrievedDocument {
	return []model.RetrievedDocument{
		{
			ID:      "fallback_diet",
			Content: fallbackDietContent,
			Score:   fallbackScore,
			Metadata: map[string]string{
				"type":     model.DocTypeDiet,
				"doc_type": model.DocTypeDiet,
				"title":    "General Diet Guidelines",
				"source":   "fallback",
			},
		},
	}
}
