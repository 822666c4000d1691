package repository

import (
	"context"

	"github.com/supriety/kindness-track/internal/model"
	"gorm.io/gorm"
)

type StatsRepository interface {
	Create(ctx context.Context, userID string) error
	GetOrCreate(ctx context.Context, userID string) (*model.UserStats, error)
	// MostActive returns the top users by verified act count for the admin
	// overview.
	MostActive(ctx context.Context, limit int) ([]LeaderboardRow, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Create(ctx context.Context, userID string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).FirstOrCreate(&model.UserStats{}, &model.UserStats{UserID: userID}).Error
}

func (r *statsRepository) GetOrCreate(ctx context.Context, userID string) (*model.UserStats, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var stats model.UserStats
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&stats, &model.UserStats{UserID: userID}).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) MostActive(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []LeaderboardRow
	if err := r.db.WithContext(ctx).Model(&model.UserStats{}).
		Select(`u.username AS username, u.full_name AS full_name, u.avatar_url AS avatar_url,
			user_stats.total_credits AS credits,
			user_stats.total_acts_verified AS acts_verified,
			user_stats.current_streak AS current_streak,
			user_stats.service_leader_tier AS service_leader_tier`).
		Joins("JOIN users u ON u.id = user_stats.user_id").
		Order("user_stats.total_acts_verified desc").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
