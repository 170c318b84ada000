package model

type WeightLog struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	WeightKG float64 `json:"weight_kg"`
	LogDate  string  `json:"log_date"`
	Notes    string  `json:"notes,omitempty"`
	Ctime    int64   `json:"ctime"`
}

type MeasurementLog struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	LogDate     string  `json:"log_date"`
	ChestCM     float64 `json:"chest_cm,omitempty"`
	WaistCM     float64 `json:"waist_cm,omitempty"`
	HipsCM      float64 `json:"hips_cm,omitempty"`
	BicepsCM    float64 `json:"biceps_cm,omitempty"`
	ThighsCM    float64 `json:"thighs_cm,omitempty"`
	BodyFatPct  float64 `json:"body_fat_percentage,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Ctime       int64   `json:"ctime"`
}

type WorkoutLog struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	LogDate      string `json:"log_date"`
	WorkoutDayID string `json:"workout_day_id"`
	Completed    bool   `json:"completed"`
	DurationMins int    `json:"duration_mins,omitempty"`
	EnergyLevel  int    `json:"energy_level,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Ctime        int64  `json:"ctime"`
}

type CalorieLog struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	LogDate       string  `json:"log_date"`
	TotalCalories int     `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein,omitempty"`
	TotalCarbs    float64 `json:"total_carbs,omitempty"`
	TotalFats     float64 `json:"total_fats,omitempty"`
	WaterLiters   float64 `json:"water_liters,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Ctime         int64   `json:"ctime"`
}

const (
	WeightTrendLosing       = "losing"
	WeightTrendGaining      = "gaining"
	WeightTrendMaintaining  = "maintaining"
	WeightTrendInsufficient = "insufficient_data"
)

// ProgressSummary aggregates a user's recent logs into trend metrics.
type ProgressSummary struct {
	UserID            string   `json:"user_id"`
	PeriodDays        int      `json:"period_days"`
	StartingWeight    float64  `json:"starting_weight"`
	CurrentWeight     float64  `json:"current_weight"`
	WeightChange      float64  `json:"weight_change"`
	WeightTrend       string   `json:"weight_trend"`
	WorkoutsPlanned   int      `json:"total_workouts_planned"`
	WorkoutsCompleted int      `json:"total_workouts_completed"`
	CompletionRate    float64  `json:"completion_rate"`
	AvgDailyCalories  float64  `json:"avg_daily_calories"`
	CalorieTarget     int      `json:"calorie_target"`
	AdherenceRate     float64  `json:"adherence_rate"`
	Insights          []string `json:"insights"`
	Adjustments       []string `json:"adjustments_needed"`
}

// ProgressContext is the compact slice of progress data fed into plan
// generation. Empty history fields are valid and mean "no data yet".
type ProgressContext struct {
	WeightHistory     []float64 `json:"weight_history"`
	WeightTrend       string    `json:"weight_trend"`
	WeightChange      float64   `json:"weight_change"`
	WorkoutCompletion float64   `json:"workout_completion"`
	CalorieAdherence  float64   `json:"calorie_adherence"`
}
