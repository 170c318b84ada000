package metrics

import (
	"testing"

	"github.com/avverma/fitrag/internal/model"
)

func baseProfile() model.Profile {
	return model.Profile{
		Name:               "Test User",
		Age:                25,
		Gender:             "male",
		HeightCM:           175,
		WeightKG:           70,
		FitnessGoal:        model.GoalMuscleGain,
		ActivityLevel:      model.ActivityModeratelyActive,
		DietaryPreference:  "balanced",
		ExperienceLevel:    "intermediate",
		WorkoutLocation:    model.LocationGym,
		WorkoutDaysPerWeek: 4,
	}
}

func TestBMR_MifflinStJeor(t *testing.T) {
	// 10*70 + 6.25*175 - 5*25 + 5 = 1673.75 -> 1674
	if got := BMR(70, 175, 25, "male"); got != 1674 {
		t.Fatalf("male bmr = %d, want 1674", got)
	}
	// Female constant: 1673.75 - 5 - 161 + 161... 10*70+6.25*175-5*25-161 = 1507.75 -> 1508
	if got := BMR(70, 175, 25, "female"); got != 1508 {
		t.Fatalf("female bmr = %d, want 1508", got)
	}
	// Anything non-male uses the female constant.
	if got := BMR(70, 175, 25, "other"); got != 1508 {
		t.Fatalf("other bmr = %d, want 1508", got)
	}
}

func TestBMICategory_Boundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{18.4999, "Underweight"},
		{18.5, "Normal"},
		{24.9999, "Normal"},
		{25.0, "Overweight"},
		{29.9999, "Overweight"},
		{30.0, "Obese"},
	}
	for _, tt := range tests {
		if got := BMICategory(tt.bmi); got != tt.want {
			t.Errorf("BMICategory(%v) = %s, want %s", tt.bmi, got, tt.want)
		}
	}
}

func TestTDEE_UnknownActivityDefaultsToModerate(t *testing.T) {
	bmr := 1600
	if got := TDEE(bmr, "couch_potato"); got != TDEE(bmr, model.ActivityModeratelyActive) {
		t.Fatalf("unknown activity should use the moderate multiplier, got %d", got)
	}
	if got := TDEE(1600, model.ActivitySedentary); got != 1920 {
		t.Fatalf("sedentary tdee = %d, want 1920", got)
	}
	if got := TDEE(1600, model.ActivityExtremelyActive); got != 3040 {
		t.Fatalf("extremely active tdee = %d, want 3040", got)
	}
}

func TestDailyCalories_GoalAdjustments(t *testing.T) {
	tests := []struct {
		goal string
		want int
	}{
		{model.GoalLean, 1700},
		{model.GoalMuscleGain, 2300},
		{model.GoalFatLoss, 1500},
		{"unknown", 2000},
	}
	for _, tt := range tests {
		if got := DailyCalories(2000, tt.goal); got != tt.want {
			t.Errorf("DailyCalories(2000, %s) = %d, want %d", tt.goal, got, tt.want)
		}
	}
}

func TestDailyCalories_SafetyFloor(t *testing.T) {
	// A low TDEE with a fat loss deficit must never drop below 1200.
	if got := DailyCalories(1400, model.GoalFatLoss); got != MinDailyCalories {
		t.Fatalf("floored calories = %d, want %d", got, MinDailyCalories)
	}
	if got := DailyCalories(900, model.GoalLean); got != MinDailyCalories {
		t.Fatalf("floored calories = %d, want %d", got, MinDailyCalories)
	}
}

func TestMacros_SumApproximatesCalories(t *testing.T) {
	goals := []string{model.GoalLean, model.GoalMuscleGain, model.GoalFatLoss, "unknown"}
	for _, goal := range goals {
		for _, calories := range []int{1200, 1874, 2300, 3500} {
			proteinG, carbsG, fatsG := Macros(calories, goal)
			sum := proteinG*4 + carbsG*4 + fatsG*9
			if sum > calories {
				t.Errorf("goal=%s calories=%d: macro sum %d exceeds target", goal, calories, sum)
			}
			// Each macro truncates at most one gram's worth of calories.
			if calories-sum >= 4+4+9 {
				t.Errorf("goal=%s calories=%d: macro sum %d undershoots by %d", goal, calories, sum, calories-sum)
			}
		}
	}
}

func TestMacros_UnknownGoalUsesLeanRatios(t *testing.T) {
	p1, c1, f1 := Macros(2000, "unknown")
	p2, c2, f2 := Macros(2000, model.GoalLean)
	if p1 != p2 || c1 != c2 || f1 != f2 {
		t.Fatalf("unknown goal macros (%d/%d/%d) differ from lean (%d/%d/%d)", p1, c1, f1, p2, c2, f2)
	}
}

func TestCalculateAll_Deterministic(t *testing.T) {
	profile := baseProfile()
	first := CalculateAll(profile)
	second := CalculateAll(profile)
	if first != second {
		t.Fatalf("results differ for identical profile: %+v vs %+v", first, second)
	}
}

func TestCalculateAll_KnownProfile(t *testing.T) {
	result := CalculateAll(baseProfile())
	if result.BMR != 1674 {
		t.Errorf("bmr = %d, want 1674", result.BMR)
	}
	if result.TDEE != 2595 {
		t.Errorf("tdee = %d, want 2595", result.TDEE)
	}
	if result.DailyCalories != 2895 {
		t.Errorf("daily calories = %d, want 2895", result.DailyCalories)
	}
	if result.BMICategory != "Normal" {
		t.Errorf("bmi category = %s, want Normal", result.BMICategory)
	}
	if result.BMI != 22.9 {
		t.Errorf("bmi = %v, want 22.9", result.BMI)
	}
	if result.WaterML != 2450 {
		t.Errorf("water = %d, want 2450", result.WaterML)
	}
	if result.IdealWeightMin != 56.7 || result.IdealWeightMax != 76.3 {
		t.Errorf("ideal weight range = %v-%v, want 56.7-76.3", result.IdealWeightMin, result.IdealWeightMax)
	}
}

func TestCalculateAll_FloorAlwaysHolds(t *testing.T) {
	profile := baseProfile()
	profile.Gender = "female"
	profile.Age = 80
	profile.HeightCM = 100
	profile.WeightKG = 30
	profile.ActivityLevel = model.ActivitySedentary
	profile.FitnessGoal = model.GoalFatLoss
	result := CalculateAll(profile)
	if result.DailyCalories < MinDailyCalories {
		t.Fatalf("daily calories %d below safety floor", result.DailyCalories)
	}
}
