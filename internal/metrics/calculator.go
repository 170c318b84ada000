// Package metrics computes body metrics and nutrition targets from a
// user profile. Everything here is a pure function of its inputs.
package metrics

import (
	"math"
	"strings"

	"github.com/avverma/fitrag/internal/model"
)

// MinDailyCalories is the safety floor: no goal adjustment may push
// the daily target below it.
const MinDailyCalories = 1200

const waterMLPerKG = 35

var activityMultipliers = map[string]float64{
	model.ActivitySedentary:        1.2,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityVeryActive:       1.725,
	model.ActivityExtremelyActive:  1.9,
}

var goalAdjustments = map[string]int{
	model.GoalLean:       -300,
	model.GoalMuscleGain: 300,
	model.GoalFatLoss:    -500,
}

// MacroRatio is the calorie share per macro nutrient. The three
// fractions sum to 1.
type MacroRatio struct {
	Protein float64
	Carbs   float64
	Fats    float64
}

var macroRatios = map[string]MacroRatio{
	model.GoalLean:       {Protein: 0.30, Carbs: 0.40, Fats: 0.30},
	model.GoalMuscleGain: {Protein: 0.30, Carbs: 0.45, Fats: 0.25},
	model.GoalFatLoss:    {Protein: 0.35, Carbs: 0.30, Fats: 0.35},
}

func BMI(weightKG, heightCM float64) float64 {
	heightM := heightCM / 100
	return weightKG / (heightM * heightM)
}

// BMICategory buckets a BMI value. Boundaries are half-open: 18.5 is
// Normal, 25.0 is Overweight.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// BMR uses the Mifflin-St Jeor equation. Any gender other than male
// uses the female constant.
func BMR(weightKG, heightCM float64, age int, gender string) int {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// TDEE scales BMR by the activity multiplier. An unrecognized activity
// level falls back to moderately active rather than erroring; enum
// validation is the API boundary's job.
func TDEE(bmr int, activityLevel string) int {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = activityMultipliers[model.ActivityModeratelyActive]
	}
	return int(math.Round(float64(bmr) * multiplier))
}

// DailyCalories applies the goal adjustment and clamps to the safety
// floor. Unknown goals adjust by zero.
func DailyCalories(tdee int, fitnessGoal string) int {
	calories := tdee + goalAdjustments[fitnessGoal]
	if calories < MinDailyCalories {
		return MinDailyCalories
	}
	return calories
}

// Macros splits daily calories into gram targets: protein and carbs at
// 4 kcal/g, fats at 9 kcal/g, truncated per macro. Unknown goals use
// the lean ratio set.
func Macros(dailyCalories int, fitnessGoal string) (proteinG, carbsG, fatsG int) {
	ratio, ok := macroRatios[fitnessGoal]
	if !ok {
		ratio = macroRatios[model.GoalLean]
	}
	proteinG = int(float64(dailyCalories) * ratio.Protein / 4)
	carbsG = int(float64(dailyCalories) * ratio.Carbs / 4)
	fatsG = int(float64(dailyCalories) * ratio.Fats / 9)
	return proteinG, carbsG, fatsG
}

// IdealWeightRange maps the healthy BMI band (18.5-24.9) back to
// kilograms for the given height.
func IdealWeightRange(heightCM float64) (minKG, maxKG float64) {
	heightM := heightCM / 100
	minKG = math.Round(18.5*heightM*heightM*10) / 10
	maxKG = math.Round(24.9*heightM*heightM*10) / 10
	return minKG, maxKG
}

func WaterTarget(weightKG float64) int {
	return int(weightKG * waterMLPerKG)
}

// CalculateAll derives every metric for a profile. It never fails on a
// range-validated profile; unknown enum values silently use documented
// defaults.
func CalculateAll(profile model.Profile) model.MetricsResult {
	bmi := BMI(profile.WeightKG, profile.HeightCM)
	bmr := BMR(profile.WeightKG, profile.HeightCM, profile.Age, profile.Gender)
	tdee := TDEE(bmr, profile.ActivityLevel)
	dailyCalories := DailyCalories(tdee, profile.FitnessGoal)
	proteinG, carbsG, fatsG := Macros(dailyCalories, profile.FitnessGoal)
	idealMin, idealMax := IdealWeightRange(profile.HeightCM)

	return model.MetricsResult{
		BMI:            math.Round(bmi*10) / 10,
		BMICategory:    BMICategory(bmi),
		BMR:            bmr,
		TDEE:           tdee,
		DailyCalories:  dailyCalories,
		ProteinG:       proteinG,
		CarbsG:         carbsG,
		FatsG:          fatsG,
		IdealWeightMin: idealMin,
		IdealWeightMax: idealMax,
		WaterML:        WaterTarget(profile.WeightKG),
	}
}
