package model

const (
	GoalLean       = "lean"
	GoalMuscleGain = "muscle_gain"
	GoalFatLoss    = "fat_loss"
)

const (
	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly_active"
	ActivityModeratelyActive = "moderately_active"
	ActivityVeryActive       = "very_active"
	ActivityExtremelyActive  = "extremely_active"
)

const (
	LocationHome = "home"
	LocationGym  = "gym"
	LocationBoth = "both"
)

type User struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	PasswordHash       string  `json:"-"`
	Name               string  `json:"name"`
	Age                int     `json:"age"`
	Gender             string  `json:"gender"`
	HeightCM           float64 `json:"height_cm"`
	WeightKG           float64 `json:"weight_kg"`
	FitnessGoal        string  `json:"fitness_goal"`
	ActivityLevel      string  `json:"activity_level"`
	DietaryPreference  string  `json:"dietary_preference"`
	ExperienceLevel    string  `json:"experience_level"`
	WorkoutLocation    string  `json:"workout_location"`
	WorkoutDaysPerWeek int     `json:"workout_days_per_week"`
	MedicalConditions  string  `json:"medical_conditions,omitempty"`
	Allergies          string  `json:"allergies,omitempty"`
	Ctime              int64   `json:"ctime"`
	Mtime              int64   `json:"mtime"`
}

// Profile is the read-only slice of a user that the planning pipeline
// consumes. Numeric ranges (age 16-80, height 100-250, weight 30-300)
// are enforced at the API boundary before a profile is ever built.
type Profile struct {
	Name               string
	Age                int
	Gender             string
	HeightCM           float64
	WeightKG           float64
	FitnessGoal        string
	ActivityLevel      string
	DietaryPreference  string
	ExperienceLevel    string
	WorkoutLocation    string
	WorkoutDaysPerWeek int
	MedicalConditions  string
	Allergies          string
}

func (u *User) Profile() Profile {
	return Profile{
		Name:               u.Name,
		Age:                u.Age,
		Gender:             u.Gender,
		HeightCM:           u.HeightCM,
		WeightKG:           u.WeightKG,
		FitnessGoal:        u.FitnessGoal,
		ActivityLevel:      u.ActivityLevel,
		DietaryPreference:  u.DietaryPreference,
		ExperienceLevel:    u.ExperienceLevel,
		WorkoutLocation:    u.WorkoutLocation,
		WorkoutDaysPerWeek: u.WorkoutDaysPerWeek,
		MedicalConditions:  u.MedicalConditions,
		Allergies:          u.Allergies,
	}
}
