package service

import (
	"context"
	"time"

	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
)

type StatsOverview struct {
	TotalUsers         int64
	VerifiedToday      int64
	VerifiedWeek       int64
	VerifiedMonth      int64
	CreditsDistributed int64
	MostActive         []repository.LeaderboardRow
}

type AdminService interface {
	ListUsers(ctx context.Context, search string) ([]model.User, error)
	Overview(ctx context.Context) (*StatsOverview, error)
}

type adminService struct {
	users repository.UserRepository
	acts  repository.ActRepository
	stats repository.StatsRepository
}

func NewAdminService(users repository.UserRepository, acts repository.ActRepository, stats repository.StatsRepository) AdminService {
	return &adminService{users: users, acts: acts, stats: stats}
}

func (s *adminService) ListUsers(ctx context.Context, search string) ([]model.User, error) {
	return s.users.List(ctx, search, 100)
}

func (s *adminService) Overview(ctx context.Context) (*StatsOverview, error) {
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	verifiedToday, err := s.acts.CountVerifiedSince(ctx, today)
	if err != nil {
		return nil, err
	}
	verifiedWeek, err := s.acts.CountVerifiedSince(ctx, today.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	verifiedMonth, err := s.acts.CountVerifiedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	credits, err := s.acts.SumCreditsAwarded(ctx)
	if err != nil {
		return nil, err
	}
	mostActive, err := s.stats.MostActive(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &StatsOverview{
		TotalUsers:         totalUsers,
		VerifiedToday:      verifiedToday,
		VerifiedWeek:       verifiedWeek,
		VerifiedMonth:      verifiedMonth,
		CreditsDistributed: credits,
		MostActive:         mostActive,
	}, nil
}
