package repository

import (
	"context"

	"github.com/supriety/kindness-track/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepository interface {
	// Upsert keeps one row per (act, user): inserting over an existing
	// reaction replaces its type. The unique index backs the conflict target.
	Upsert(ctx context.Context, reaction *model.ActReaction) error
	Delete(ctx context.Context, actID, userID string) (bool, error)
	Find(ctx context.Context, actID, userID string) (*model.ActReaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Upsert(ctx context.Context, reaction *model.ActReaction) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "act_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reaction_type"}),
	}).Create(reaction).Error
}

func (r *reactionRepository) Delete(ctx context.Context, actID, userID string) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Where("act_id = ? AND user_id = ?", actID, userID).
		Delete(&model.ActReaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) Find(ctx context.Context, actID, userID string) (*model.ActReaction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var reaction model.ActReaction
	if err := r.db.WithContext(ctx).
		Where("act_id = ? AND user_id = ?", actID, userID).
		First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}
