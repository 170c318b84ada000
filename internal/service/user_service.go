package service

import (
	"context"
	"time"

	"github.com/avverma/fitrag/internal/metrics"
	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/repo"
)

type UserService struct {
	users *repo.UserRepo
}

func NewUserService(users *repo.UserRepo) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, profile model.Profile) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = profile.Name
	user.Age = profile.Age
	user.Gender = profile.Gender
	user.HeightCM = profile.HeightCM
	user.WeightKG = profile.WeightKG
	user.FitnessGoal = profile.FitnessGoal
	user.ActivityLevel = profile.ActivityLevel
	user.DietaryPreference = profile.DietaryPreference
	user.ExperienceLevel = profile.ExperienceLevel
	user.WorkoutLocation = profile.WorkoutLocation
	user.WorkoutDaysPerWeek = profile.WorkoutDaysPerWeek
	user.MedicalConditions = profile.MedicalConditions
	user.Allergies = profile.Allergies
	user.Mtime = time.Now().Unix()
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Stats computes the metric set fresh from the stored profile.
func (s *UserService) Stats(ctx context.Context, userID string) (*model.MetricsResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := metrics.CalculateAll(user.Profile())
	return &result, nil
}
