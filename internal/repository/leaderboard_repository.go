package repository

import (
	"context"

	"github.com/supriety/kindness-track/internal/model"
	"gorm.io/gorm"
)

type LeaderboardRow struct {
	Username          string
	FullName          string
	AvatarURL         *string
	Credits           int64
	ActsVerified      int64
	CurrentStreak     int
	ServiceLeaderTier *model.LeaderTier
}

type LeaderboardWindow string

const (
	RangeWeek  LeaderboardWindow = "week"
	RangeMonth LeaderboardWindow = "month"
	RangeAll   LeaderboardWindow = "all"
)

type LeaderboardRepository interface {
	Top(ctx context.Context, window LeaderboardWindow, limit int) ([]LeaderboardRow, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) Top(ctx context.Context, window LeaderboardWindow, limit int) ([]LeaderboardRow, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if window == RangeAll {
		return r.allTime(ctx, limit)
	}
	return r.windowed(ctx, window, limit)
}

// allTime ranks by the accumulated user_stats totals.
func (r *leaderboardRepository) allTime(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).Model(&model.UserStats{}).
		Select(`u.username AS username, u.full_name AS full_name, u.avatar_url AS avatar_url,
			user_stats.total_credits AS credits,
			user_stats.total_acts_verified AS acts_verified,
			user_stats.current_streak AS current_streak,
			user_stats.service_leader_tier AS service_leader_tier`).
		Joins("JOIN users u ON u.id = user_stats.user_id").
		Order("credits desc, acts_verified desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// windowed recomputes credit sums over verified acts scoped by verified_at,
// since user_stats only carries lifetime totals.
func (r *leaderboardRepository) windowed(ctx context.Context, window LeaderboardWindow, limit int) ([]LeaderboardRow, error) {
	interval := "7 days"
	if window == RangeMonth {
		interval = "30 days"
	}
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select(`users.username AS username, users.full_name AS full_name, users.avatar_url AS avatar_url,
			COALESCE(SUM(ka.credits_awarded), 0) AS credits,
			COUNT(ka.id) AS acts_verified,
			COALESCE(us.current_streak, 0) AS current_streak,
			us.service_leader_tier AS service_leader_tier`).
		Joins(`LEFT JOIN kindness_acts ka ON ka.user_id = users.id
			AND ka.verification_status = 'verified'
			AND ka.verified_at >= CURRENT_DATE - INTERVAL '`+interval+`'`).
		Joins("LEFT JOIN user_stats us ON us.user_id = users.id").
		Group("users.id, users.username, users.full_name, users.avatar_url, us.current_streak, us.service_leader_tier").
		Order("credits desc, acts_verified desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
