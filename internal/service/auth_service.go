package service

import (
	"context"
	"time"

	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/errs"
	"github.com/avverma/fitrag/internal/pkg/jwt"
	"github.com/avverma/fitrag/internal/pkg/password"
	"github.com/avverma/fitrag/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a user with their initial profile and returns a
// session token.
func (s *AuthService) Register(ctx context.Context, email, plainPassword string, profile model.Profile) (*model.User, string, error) {
	now := time.Now().Unix()
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		ID:                 newID(),
		Email:              email,
		PasswordHash:       hash,
		Name:               profile.Name,
		Age:                profile.Age,
		Gender:             profile.Gender,
		HeightCM:           profile.HeightCM,
		WeightKG:           profile.WeightKG,
		FitnessGoal:        profile.FitnessGoal,
		ActivityLevel:      profile.ActivityLevel,
		DietaryPreference:  profile.DietaryPreference,
		ExperienceLevel:    profile.ExperienceLevel,
		WorkoutLocation:    profile.WorkoutLocation,
		WorkoutDaysPerWeek: profile.WorkoutDaysPerWeek,
		MedicalConditions:  profile.MedicalConditions,
		Allergies:          profile.Allergies,
		Ctime:              now,
		Mtime:              now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", errs.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", errs.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, oldPassword); err != nil {
		return errs.ErrUnauthorized
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash, time.Now().Unix())
}
