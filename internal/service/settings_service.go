package service

import (
	"context"
	"errors"
	"strings"

	"github.com/supriety/kindness-track/internal/auth"
	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
	"gorm.io/gorm"
)

type UpdateAccountInput struct {
	Email           string
	CurrentPassword string
	NewPassword     string
}

type PreferencesInput struct {
	EmailLikes        bool
	EmailComments     bool
	EmailSummary      bool
	ProfileVisibility string
	HideFromFeed      bool
}

type SettingsService interface {
	UpdateAccount(ctx context.Context, userID string, in UpdateAccountInput) error
	GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error)
	UpdatePreferences(ctx context.Context, userID string, in PreferencesInput) (*model.UserPreferences, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type settingsService struct {
	users repository.UserRepository
	prefs repository.PreferencesRepository
}

func NewSettingsService(users repository.UserRepository, prefs repository.PreferencesRepository) SettingsService {
	return &settingsService{users: users, prefs: prefs}
}

func (s *settingsService) UpdateAccount(ctx context.Context, userID string, in UpdateAccountInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" && in.NewPassword == "" {
		return errors.New("nothing to update")
	}

	if email != "" {
		if !strings.Contains(email, "@") {
			return errors.New("valid email is required")
		}
		if _, err := s.users.UpdateFields(ctx, userID, map[string]interface{}{"email": email}); err != nil {
			return err
		}
	}

	if in.NewPassword != "" {
		if len(in.NewPassword) < 8 {
			return errors.New("password must be at least 8 characters")
		}
		if in.CurrentPassword == "" {
			return errors.New("current password required")
		}
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !auth.VerifyPassword(in.CurrentPassword, user.PasswordHash) {
			return errors.New("current password is incorrect")
		}
		hash, err := auth.HashPassword(in.NewPassword)
		if err != nil {
			return err
		}
		if _, err := s.users.UpdateFields(ctx, userID, map[string]interface{}{"password_hash": hash}); err != nil {
			return err
		}
	}
	return nil
}

func (s *settingsService) GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error) {
	return s.prefs.Get(ctx, userID)
}

func (s *settingsService) UpdatePreferences(ctx context.Context, userID string, in PreferencesInput) (*model.UserPreferences, error) {
	visibility := in.ProfileVisibility
	if visibility == "" {
		visibility = "public"
	}
	prefs := &model.UserPreferences{
		UserID:            userID,
		EmailLikes:        in.EmailLikes,
		EmailComments:     in.EmailComments,
		EmailSummary:      in.EmailSummary,
		ProfileVisibility: visibility,
		HideFromFeed:      in.HideFromFeed,
	}
	if err := s.prefs.Upsert(ctx, prefs); err != nil {
		return nil, err
	}
	return s.prefs.Get(ctx, userID)
}

func (s *settingsService) DeleteAccount(ctx context.Context, userID string) error {
	return s.users.Delete(ctx, userID)
}
