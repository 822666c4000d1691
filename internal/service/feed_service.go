package service

import (
	"context"
	"time"

	"github.com/supriety/kindness-track/internal/cache"
	"github.com/supriety/kindness-track/internal/repository"
)

const (
	feedPageSize = 100
	feedCacheTTL = time.Minute
)

type FeedService interface {
	Feed(ctx context.Context, window, sort string) ([]repository.ActRow, error)
}

type feedService struct {
	acts  repository.ActRepository
	cache *cache.Cache[[]repository.ActRow]
}

func NewFeedService(acts repository.ActRepository, c *cache.Cache[[]repository.ActRow]) FeedService {
	return &feedService{acts: acts, cache: c}
}

func (s *feedService) Feed(ctx context.Context, window, sort string) ([]repository.ActRow, error) {
	w := repository.FeedWindow(window)
	switch w {
	case repository.WindowToday, repository.WindowWeek, repository.WindowAll:
	default:
		w = repository.WindowAll
	}
	srt := repository.FeedSort(sort)
	switch srt {
	case repository.SortRecent, repository.SortLikes, repository.SortComments:
	default:
		srt = repository.SortRecent
	}

	key := "feed:" + string(w) + ":" + string(srt)
	if s.cache != nil {
		if rows, ok := s.cache.Get(key); ok {
			return rows, nil
		}
	}
	rows, err := s.acts.ListFeed(ctx, w, srt, feedPageSize)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, rows, feedCacheTTL)
	}
	return rows, nil
}
