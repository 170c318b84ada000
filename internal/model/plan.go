package model

const (
	PlanTypeWorkout = "workout"
	PlanTypeDiet    = "diet"
	PlanTypeBoth    = "both"
)

// PlanSource records which knowledge chunk grounded a generated plan.
type PlanSource struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
	Title string  `json:"title"`
}

// PlanResult is the outcome of one plan generation call. Downstream
// persistence is the caller's concern.
type PlanResult struct {
	Response          string         `json:"response"`
	Sources           []PlanSource   `json:"sources"`
	Stats             *MetricsResult `json:"stats,omitempty"`
	FollowUpQuestions []string       `json:"follow_up_questions,omitempty"`
	Fallback          bool           `json:"fallback"`
}

// Plan is a persisted generated plan.
type Plan struct {
	ID       string       `json:"id"`
	UserID   string       `json:"user_id"`
	PlanType string       `json:"plan_type"`
	Name     string       `json:"name"`
	Content  string       `json:"content"`
	Sources  []PlanSource `json:"sources,omitempty"`
	Active   bool         `json:"active"`
	Ctime    int64        `json:"ctime"`
}
