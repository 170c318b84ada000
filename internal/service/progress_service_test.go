package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avverma/fitrag/internal/model"
)

func TestDayAdherence(t *testing.T) {
	require.Equal(t, 100.0, dayAdherence(2000, 2000))
	require.Equal(t, 90.0, dayAdherence(2200, 2000))
	require.Equal(t, 90.0, dayAdherence(1800, 2000))
	require.Equal(t, 0.0, dayAdherence(4000, 2000))
	require.Equal(t, 0.0, dayAdherence(0, 2000))
	require.Equal(t, 0.0, dayAdherence(2000, 0))
}

func TestBuildInsights(t *testing.T) {
	insights := buildInsights(model.WeightTrendLosing, 85, 85, -3)
	require.Equal(t, []string{
		"Great progress! You're consistently losing weight.",
		"Excellent workout consistency! Keep it up!",
		"You're following your nutrition plan well.",
	}, insights)

	insights = buildInsights(model.WeightTrendMaintaining, 55, 60, 0)
	require.Equal(t, []string{
		"Your weight is stable. Adjust calories if you want to change.",
		"Good effort! Try to improve workout consistency.",
		"Nutrition adherence is moderate. Focus on meal prep.",
	}, insights)

	insights = buildInsights(model.WeightTrendInsufficient, 0, 0, 0)
	require.Equal(t, []string{"Start logging your progress to get personalized insights."}, insights)
}

func TestBuildInsightsLowCompletion(t *testing.T) {
	insights := buildInsights(model.WeightTrendGaining, 30, 0, 3)
	require.Equal(t, []string{
		"You're gaining weight as planned for muscle building.",
		"Workout consistency needs improvement. Start with smaller goals.",
	}, insights)
}

func TestBuildAdjustments(t *testing.T) {
	adjustments := buildAdjustments(model.WeightTrendMaintaining, 40, 60)
	require.Equal(t, []string{
		"Increase workout frequency to break the plateau.",
		"Consider meal prepping to improve nutrition adherence.",
		"Try scheduling workouts at a consistent time each day.",
	}, adjustments)

	adjustments = buildAdjustments(model.WeightTrendLosing, 90, 90)
	require.Equal(t, []string{"Keep following your current plan!"}, adjustments)
}

func TestNormalizeDate(t *testing.T) {
	require.Equal(t, "2026-08-15", normalizeDate("2026-08-15"))
	require.Equal(t, "2026-08-15", normalizeDate("2026-08-15T09:30:00Z"))
	require.Equal(t, time.Now().Format("2006-01-02"), normalizeDate(""))
	require.Equal(t, "not-a-date", normalizeDate("not-a-date"))
	require.Equal(t, "0123456789", normalizeDate("0123456789extra"))
}

func TestSinceDate(t *testing.T) {
	require.Equal(t, time.Now().AddDate(0, 0, -7).Format("2006-01-02"), sinceDate(7))
	require.Equal(t, time.Now().AddDate(0, 0, -defaultSummaryDays).Format("2006-01-02"), sinceDate(0))
}
