package model

// MetricsResult holds every derived body metric. It is recomputed fresh
// on each request and never persisted.
type MetricsResult struct {
	BMI            float64 `json:"bmi"`
	BMICategory    string  `json:"bmi_category"`
	BMR            int     `json:"bmr"`
	TDEE           int     `json:"tdee"`
	DailyCalories  int     `json:"daily_calories"`
	ProteinG       int     `json:"protein_g"`
	CarbsG         int     `json:"carbs_g"`
	FatsG          int     `json:"fats_g"`
	IdealWeightMin float64 `json:"ideal_weight_min"`
	IdealWeightMax float64 `json:"ideal_weight_max"`
	WaterML        int     `json:"water_ml"`
}
