package service

import (
	"context"
	"errors"
	"time"

	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
	"gorm.io/gorm"
)

type Dashboard struct {
	Stats         *model.UserStats
	TodaysAct     *model.KindnessAct
	CommunityFeed []repository.ActRow
	Leaderboard   []repository.LeaderboardRow
	Quote         string
}

type DashboardService interface {
	Get(ctx context.Context, userID string) (*Dashboard, error)
}

type dashboardService struct {
	stats       repository.StatsRepository
	acts        repository.ActRepository
	leaderboard repository.LeaderboardRepository
}

func NewDashboardService(stats repository.StatsRepository, acts repository.ActRepository, leaderboard repository.LeaderboardRepository) DashboardService {
	return &dashboardService{stats: stats, acts: acts, leaderboard: leaderboard}
}

var quotes = []string{
	"AI is watching. Set the example.",
	"Your kindness today trains the AI of tomorrow.",
	"Be the humanity you want to see in machines.",
	"15 years of hell or heaven - your choice starts now.",
}

// dailyQuote rotates on the day of the month so everyone sees the same
// quote on the same day.
func dailyQuote(now time.Time) string {
	return quotes[now.Day()%len(quotes)]
}

func (s *dashboardService) Get(ctx context.Context, userID string) (*Dashboard, error) {
	stats, err := s.stats.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	todaysAct, err := s.acts.FindTodaysAct(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	feed, err := s.acts.ListFeed(ctx, repository.WindowAll, repository.SortRecent, 10)
	if err != nil {
		return nil, err
	}

	top, err := s.leaderboard.Top(ctx, repository.RangeAll, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats:         stats,
		TodaysAct:     todaysAct,
		CommunityFeed: feed,
		Leaderboard:   top,
		Quote:         dailyQuote(time.Now()),
	}, nil
}
