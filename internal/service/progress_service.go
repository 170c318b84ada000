package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/avverma/fitrag/internal/metrics"
	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/repo"
)

const defaultSummaryDays = 30

// weightStableBand is the change in kg below which the trend counts
// as maintaining rather than losing or gaining.
const weightStableBand = 0.5

type ProgressService struct {
	progress *repo.ProgressRepo
	users    *repo.UserRepo
}

func NewProgressService(progress *repo.ProgressRepo, users *repo.UserRepo) *ProgressService {
	return &ProgressService{progress: progress, users: users}
}

func (s *ProgressService) LogWeight(ctx context.Context, userID string, weightKG float64, logDate, notes string) (*model.WeightLog, error) {
	log := &model.WeightLog{
		ID:       newID(),
		UserID:   userID,
		WeightKG: weightKG,
		LogDate:  normalizeDate(logDate),
		Notes:    notes,
		Ctime:    time.Now().Unix(),
	}
	if err := s.progress.AddWeightLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *ProgressService) LogMeasurements(ctx context.Context, log *model.MeasurementLog) (*model.MeasurementLog, error) {
	log.ID = newID()
	log.LogDate = normalizeDate(log.LogDate)
	log.Ctime = time.Now().Unix()
	if err := s.progress.AddMeasurementLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *ProgressService) LogWorkout(ctx context.Context, log *model.WorkoutLog) (*model.WorkoutLog, error) {
	log.ID = newID()
	log.LogDate = normalizeDate(log.LogDate)
	log.Ctime = time.Now().Unix()
	if err := s.progress.AddWorkoutLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *ProgressService) LogCalories(ctx context.Context, log *model.CalorieLog) (*model.CalorieLog, error) {
	log.ID = newID()
	log.LogDate = normalizeDate(log.LogDate)
	log.Ctime = time.Now().Unix()
	if err := s.progress.AddCalorieLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *ProgressService) ListWeightLogs(ctx context.Context, userID string, days int) ([]model.WeightLog, error) {
	return s.progress.ListWeightLogs(ctx, userID, sinceDate(days))
}

func (s *ProgressService) ListMeasurementLogs(ctx context.Context, userID string, days int) ([]model.MeasurementLog, error) {
	return s.progress.ListMeasurementLogs(ctx, userID, sinceDate(days))
}

// Summary aggregates the last N days of logs into trends, insights and
// adjustment suggestions.
func (s *ProgressService) Summary(ctx context.Context, userID string, days int) (*model.ProgressSummary, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}
	since := sinceDate(days)

	weightLogs, err := s.progress.ListWeightLogs(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	workoutLogs, err := s.progress.ListWorkoutLogs(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	calorieLogs, err := s.progress.ListCalorieLogs(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	summary := &model.ProgressSummary{
		UserID:     userID,
		PeriodDays: days,
	}

	if len(weightLogs) >= 2 {
		summary.StartingWeight = weightLogs[0].WeightKG
		summary.CurrentWeight = weightLogs[len(weightLogs)-1].WeightKG
		change := summary.CurrentWeight - summary.StartingWeight
		summary.WeightChange = math.Round(change*10) / 10
		switch {
		case change < -weightStableBand:
			summary.WeightTrend = model.WeightTrendLosing
		case change > weightStableBand:
			summary.WeightTrend = model.WeightTrendGaining
		default:
			summary.WeightTrend = model.WeightTrendMaintaining
		}
	} else {
		if len(weightLogs) == 1 {
			summary.StartingWeight = weightLogs[0].WeightKG
			summary.CurrentWeight = weightLogs[0].WeightKG
		}
		summary.WeightTrend = model.WeightTrendInsufficient
	}

	summary.WorkoutsPlanned = len(workoutLogs)
	for _, log := range workoutLogs {
		if log.Completed {
			summary.WorkoutsCompleted++
		}
	}
	if summary.WorkoutsPlanned > 0 {
		rate := float64(summary.WorkoutsCompleted) / float64(summary.WorkoutsPlanned) * 100
		summary.CompletionRate = math.Round(rate*10) / 10
	}

	target := s.calorieTarget(ctx, userID)
	summary.CalorieTarget = target
	if len(calorieLogs) > 0 {
		total := 0
		adherence := 0.0
		for _, log := range calorieLogs {
			total += log.TotalCalories
			adherence += dayAdherence(log.TotalCalories, target)
		}
		summary.AvgDailyCalories = math.Round(float64(total) / float64(len(calorieLogs)))
		summary.AdherenceRate = math.Round(adherence/float64(len(calorieLogs))*10) / 10
	}

	summary.Insights = buildInsights(summary.WeightTrend, summary.CompletionRate, summary.AdherenceRate, summary.WeightChange)
	summary.Adjustments = buildAdjustments(summary.WeightTrend, summary.CompletionRate, summary.AdherenceRate)
	return summary, nil
}

// RAGContext condenses progress data for plan generation.
func (s *ProgressService) RAGContext(ctx context.Context, userID string) (*model.ProgressContext, error) {
	summary, err := s.Summary(ctx, userID, defaultSummaryDays)
	if err != nil {
		return nil, err
	}
	weightLogs, err := s.progress.ListWeightLogs(ctx, userID, sinceDate(defaultSummaryDays))
	if err != nil {
		return nil, err
	}
	history := make([]float64, 0, len(weightLogs))
	for _, log := range weightLogs {
		history = append(history, log.WeightKG)
	}
	return &model.ProgressContext{
		WeightHistory:     history,
		WeightTrend:       summary.WeightTrend,
		WeightChange:      summary.WeightChange,
		WorkoutCompletion: summary.CompletionRate,
		CalorieAdherence:  summary.AdherenceRate,
	}, nil
}

// calorieTarget derives the user's daily target from their profile;
// a missing profile falls back to a generic 2000 kcal.
func (s *ProgressService) calorieTarget(ctx context.Context, userID string) int {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 2000
	}
	result := metrics.CalculateAll(user.Profile())
	return result.DailyCalories
}

// dayAdherence scores one day against the target: 100 at the target,
// linearly down to 0 at a 100% miss.
func dayAdherence(intake, target int) float64 {
	if target <= 0 {
		return 0
	}
	miss := math.Abs(float64(intake-target)) / float64(target) * 100
	if miss >= 100 {
		return 0
	}
	return 100 - miss
}

func buildInsights(trend string, completionRate, adherenceRate, weightChange float64) []string {
	var insights []string
	if trend == model.WeightTrendLosing && weightChange < -2 {
		insights = append(insights, "Great progress! You're consistently losing weight.")
	} else if trend == model.WeightTrendGaining && weightChange > 2 {
		insights = append(insights, "You're gaining weight as planned for muscle building.")
	} else if trend == model.WeightTrendMaintaining {
		insights = append(insights, "Your weight is stable. Adjust calories if you want to change.")
	}

	if completionRate >= 80 {
		insights = append(insights, "Excellent workout consistency! Keep it up!")
	} else if completionRate >= 50 {
		insights = append(insights, "Good effort! Try to improve workout consistency.")
	} else if completionRate > 0 {
		insights = append(insights, "Workout consistency needs improvement. Start with smaller goals.")
	}

	if adherenceRate >= 80 {
		insights = append(insights, "You're following your nutrition plan well.")
	} else if adherenceRate >= 50 {
		insights = append(insights, "Nutrition adherence is moderate. Focus on meal prep.")
	}

	if len(insights) == 0 {
		return []string{"Start logging your progress to get personalized insights."}
	}
	return insights
}

func buildAdjustments(trend string, completionRate, adherenceRate float64) []string {
	var adjustments []string
	if trend == model.WeightTrendMaintaining && completionRate < 50 {
		adjustments = append(adjustments, "Increase workout frequency to break the plateau.")
	}
	if adherenceRate < 70 {
		adjustments = append(adjustments, "Consider meal prepping to improve nutrition adherence.")
	}
	if completionRate < 60 {
		adjustments = append(adjustments, "Try scheduling workouts at a consistent time each day.")
	}
	if len(adjustments) == 0 {
		return []string{"Keep following your current plan!"}
	}
	return adjustments
}

func sinceDate(days int) string {
	if days <= 0 {
		days = defaultSummaryDays
	}
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}

func normalizeDate(logDate string) string {
	if logDate == "" {
		return time.Now().Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01-02", logDate); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse(time.RFC3339, logDate); err == nil {
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%.10s", logDate)
}
