package service

import (
	"context"
	"time"

	"github.com/supriety/kindness-track/internal/cache"
	"github.com/supriety/kindness-track/internal/repository"
)

const (
	leaderboardSize     = 100
	leaderboardCacheTTL = time.Minute
)

type LeaderboardService interface {
	Top(ctx context.Context, window string) ([]repository.LeaderboardRow, error)
}

type leaderboardService struct {
	repo  repository.LeaderboardRepository
	cache *cache.Cache[[]repository.LeaderboardRow]
}

func NewLeaderboardService(repo repository.LeaderboardRepository, c *cache.Cache[[]repository.LeaderboardRow]) LeaderboardService {
	return &leaderboardService{repo: repo, cache: c}
}

func (s *leaderboardService) Top(ctx context.Context, window string) ([]repository.LeaderboardRow, error) {
	w := repository.LeaderboardWindow(window)
	switch w {
	case repository.RangeWeek, repository.RangeMonth, repository.RangeAll:
	default:
		w = repository.RangeWeek
	}

	key := "leaderboard:" + string(w)
	if s.cache != nil {
		if rows, ok := s.cache.Get(key); ok {
			return rows, nil
		}
	}
	rows, err := s.repo.Top(ctx, w, leaderboardSize)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, rows, leaderboardCacheTTL)
	}
	return rows, nil
}
