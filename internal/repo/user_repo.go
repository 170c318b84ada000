package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/dbutil"
	"github.com/avverma/fitrag/internal/pkg/errs"
)

var userColumns = []string{
	"id", "email", "password_hash", "name", "age", "gender",
	"height_cm", "weight_kg", "fitness_goal", "activity_level",
	"dietary_preference", "experience_level", "workout_location",
	"workout_days_per_week", "medical_conditions", "allergies",
	"ctime", "mtime",
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":                    user.ID,
		"email":                 user.Email,
		"password_hash":         user.PasswordHash,
		"name":                  user.Name,
		"age":                   user.Age,
		"gender":                user.Gender,
		"height_cm":             user.HeightCM,
		"weight_kg":             user.WeightKG,
		"fitness_goal":          user.FitnessGoal,
		"activity_level":        user.ActivityLevel,
		"dietary_preference":    user.DietaryPreference,
		"experience_level":      user.ExperienceLevel,
		"workout_location":      user.WorkoutLocation,
		"workout_days_per_week": user.WorkoutDaysPerWeek,
		"medical_conditions":    user.MedicalConditions,
		"allergies":             user.Allergies,
		"ctime":                 user.Ctime,
		"mtime":                 user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return errs.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, errs.ErrNotFound
	}
	var user model.User
	if err := rows.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Age, &user.Gender,
		&user.HeightCM, &user.WeightKG, &user.FitnessGoal, &user.ActivityLevel,
		&user.DietaryPreference, &user.ExperienceLevel, &user.WorkoutLocation,
		&user.WorkoutDaysPerWeek, &user.MedicalConditions, &user.Allergies,
		&user.Ctime, &user.Mtime,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile overwrites the mutable profile fields. Email and
// password travel through their own operations.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *model.User) error {
	where := map[string]interface{}{"id": user.ID}
	update := map[string]interface{}{
		"name":                  user.Name,
		"age":                   user.Age,
		"gender":                user.Gender,
		"height_cm":             user.HeightCM,
		"weight_kg":             user.WeightKG,
		"fitness_goal":          user.FitnessGoal,
		"activity_level":        user.ActivityLevel,
		"dietary_preference":    user.DietaryPreference,
		"experience_level":      user.ExperienceLevel,
		"workout_location":      user.WorkoutLocation,
		"workout_days_per_week": user.WorkoutDaysPerWeek,
		"medical_conditions":    user.MedicalConditions,
		"allergies":             user.Allergies,
		"mtime":                 user.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string, mtime int64) error {
	where := map[string]interface{}{"id": userID}
	update := map[string]interface{}{
		"password_hash": passwordHash,
		"mtime":         mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
