package repository

import (
	"context"

	"github.com/supriety/kindness-track/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferencesRepository interface {
	Get(ctx context.Context, userID string) (*model.UserPreferences, error)
	Upsert(ctx context.Context, prefs *model.UserPreferences) error
}

type preferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Get(ctx context.Context, userID string) (*model.UserPreferences, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var prefs model.UserPreferences
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&prefs, &model.UserPreferences{UserID: userID}).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, prefs *model.UserPreferences) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email_likes", "email_comments", "email_summary",
			"profile_visibility", "hide_from_feed", "updated_at",
		}),
	}).Create(prefs).Error
}
