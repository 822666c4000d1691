package service

import (
	"context"
	"errors"

	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
	"gorm.io/gorm"
)

// DefaultCreditsAwarded is applied when the reviewer does not set an
// explicit amount.
const DefaultCreditsAwarded = 1

type ReviewService interface {
	ListPending(ctx context.Context) ([]repository.ActRow, error)
	Verify(ctx context.Context, actID, adminID string, credits int) (*model.KindnessAct, *model.UserStats, error)
	Reject(ctx context.Context, actID, adminID, reason string) (*model.KindnessAct, error)
}

type reviewService struct {
	acts    repository.ActRepository
	reviews repository.ReviewRepository
}

func NewReviewService(acts repository.ActRepository, reviews repository.ReviewRepository) ReviewService {
	return &reviewService{acts: acts, reviews: reviews}
}

func (s *reviewService) ListPending(ctx context.Context) ([]repository.ActRow, error) {
	return s.acts.ListPending(ctx)
}

func (s *reviewService) Verify(ctx context.Context, actID, adminID string, credits int) (*model.KindnessAct, *model.UserStats, error) {
	if credits <= 0 {
		credits = DefaultCreditsAwarded
	}
	act, stats, err := s.reviews.Verify(ctx, actID, adminID, credits)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, nil, ErrNotFound
		case errors.Is(err, repository.ErrNotPending):
			return nil, nil, ErrAlreadyReviewed
		}
		return nil, nil, err
	}
	return act, stats, nil
}

func (s *reviewService) Reject(ctx context.Context, actID, adminID, reason string) (*model.KindnessAct, error) {
	if reason == "" {
		return nil, errors.New("rejection reason is required")
	}
	act, err := s.reviews.Reject(ctx, actID, adminID, reason)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrNotPending):
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return act, nil
}
