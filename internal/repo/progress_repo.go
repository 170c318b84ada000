package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/dbutil"
)

// ProgressRepo stores the four progress log streams. Log dates are
// ISO dates (YYYY-MM-DD), so lexicographic range filters work.
type ProgressRepo struct {
	db *sql.DB
}

func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

func (r *ProgressRepo) AddWeightLog(ctx context.Context, log *model.WeightLog) error {
	data := map[string]interface{}{
		"id":        log.ID,
		"user_id":   log.UserID,
		"weight_kg": log.WeightKG,
		"log_date":  log.LogDate,
		"notes":     log.Notes,
		"ctime":     log.Ctime,
	}
	return r.insert(ctx, "weight_logs", data)
}

func (r *ProgressRepo) ListWeightLogs(ctx context.Context, userID, sinceDate string) ([]model.WeightLog, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "log_date ASC, ctime ASC",
	}
	if sinceDate != "" {
		where["log_date >="] = sinceDate
	}
	sqlStr, args, err := builder.BuildSelect("weight_logs", where,
		[]string{"id", "user_id", "weight_kg", "log_date", "notes", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var logs []model.WeightLog
	for rows.Next() {
		var log model.WeightLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.WeightKG, &log.LogDate, &log.Notes, &log.Ctime); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *ProgressRepo) AddMeasurementLog(ctx context.Context, log *model.MeasurementLog) error {
	data := map[string]interface{}{
		"id":                  log.ID,
		"user_id":             log.UserID,
		"log_date":            log.LogDate,
		"chest_cm":            log.ChestCM,
		"waist_cm":            log.WaistCM,
		"hips_cm":             log.HipsCM,
		"biceps_cm":           log.BicepsCM,
		"thighs_cm":           log.ThighsCM,
		"body_fat_percentage": log.BodyFatPct,
		"notes":               log.Notes,
		"ctime":               log.Ctime,
	}
	return r.insert(ctx, "measurement_logs", data)
}

func (r *ProgressRepo) ListMeasurementLogs(ctx context.Context, userID, sinceDate string) ([]model.MeasurementLog, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "log_date ASC, ctime ASC",
	}
	if sinceDate != "" {
		where["log_date >="] = sinceDate
	}
	sqlStr, args, err := builder.BuildSelect("measurement_logs", where,
		[]string{"id", "user_id", "log_date", "chest_cm", "waist_cm", "hips_cm", "biceps_cm", "thighs_cm", "body_fat_percentage", "notes", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var logs []model.MeasurementLog
	for rows.Next() {
		var log model.MeasurementLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.LogDate, &log.ChestCM, &log.WaistCM, &log.HipsCM, &log.BicepsCM, &log.ThighsCM, &log.BodyFatPct, &log.Notes, &log.Ctime); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *ProgressRepo) AddWorkoutLog(ctx context.Context, log *model.WorkoutLog) error {
	data := map[string]interface{}{
		"id":             log.ID,
		"user_id":        log.UserID,
		"log_date":       log.LogDate,
		"workout_day_id": log.WorkoutDayID,
		"completed":      log.Completed,
		"duration_mins":  log.DurationMins,
		"energy_level":   log.EnergyLevel,
		"notes":          log.Notes,
		"ctime":          log.Ctime,
	}
	return r.insert(ctx, "workout_logs", data)
}

func (r *ProgressRepo) ListWorkoutLogs(ctx context.Context, userID, sinceDate string) ([]model.WorkoutLog, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "log_date ASC, ctime ASC",
	}
	if sinceDate != "" {
		where["log_date >="] = sinceDate
	}
	sqlStr, args, err := builder.BuildSelect("workout_logs", where,
		[]string{"id", "user_id", "log_date", "workout_day_id", "completed", "duration_mins", "energy_level", "notes", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var logs []model.WorkoutLog
	for rows.Next() {
		var log model.WorkoutLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.LogDate, &log.WorkoutDayID, &log.Completed, &log.DurationMins, &log.EnergyLevel, &log.Notes, &log.Ctime); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *ProgressRepo) AddCalorieLog(ctx context.Context, log *model.CalorieLog) error {
	data := map[string]interface{}{
		"id":             log.ID,
		"user_id":        log.UserID,
		"log_date":       log.LogDate,
		"total_calories": log.TotalCalories,
		"total_protein":  log.TotalProtein,
		"total_carbs":    log.TotalCarbs,
		"total_fats":     log.TotalFats,
		"water_liters":   log.WaterLiters,
		"notes":          log.Notes,
		"ctime":          log.Ctime,
	}
	return r.insert(ctx, "calorie_logs", data)
}

func (r *ProgressRepo) ListCalorieLogs(ctx context.Context, userID, sinceDate string) ([]model.CalorieLog, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "log_date ASC, ctime ASC",
	}
	if sinceDate != "" {
		where["log_date >="] = sinceDate
	}
	sqlStr, args, err := builder.BuildSelect("calorie_logs", where,
		[]string{"id", "user_id", "log_date", "total_calories", "total_protein", "total_carbs", "total_fats", "water_liters", "notes", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var logs []model.CalorieLog
	for rows.Next() {
		var log model.CalorieLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.LogDate, &log.TotalCalories, &log.TotalProtein, &log.TotalCarbs, &log.TotalFats, &log.WaterLiters, &log.Notes, &log.Ctime); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *ProgressRepo) insert(ctx context.Context, table string, data map[string]interface{}) error {
	sqlStr, args, err := builder.BuildInsert(table, []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
