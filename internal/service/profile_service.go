package service

import (
	"context"
	"errors"
	"strings"

	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
	"gorm.io/gorm"
)

type Profile struct {
	User  *model.User
	Stats *model.UserStats
	Acts  []repository.ActRow
}

type UpdateProfileInput struct {
	FullName *string
	Bio      *string
	Avatar   *MediaFile
}

type ProfileService interface {
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	Update(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error)
}

type profileService struct {
	users repository.UserRepository
	stats repository.StatsRepository
	acts  repository.ActRepository
	media MediaService
}

func NewProfileService(users repository.UserRepository, stats repository.StatsRepository, acts repository.ActRepository, media MediaService) ProfileService {
	return &profileService{users: users, stats: stats, acts: acts, media: media}
}

func (s *profileService) GetByUsername(ctx context.Context, username string) (*Profile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	stats, err := s.stats.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	acts, err := s.acts.ListVerifiedPublic(ctx, user.ID, 20)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Stats: stats, Acts: acts}, nil
}

func (s *profileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error) {
	fields := map[string]interface{}{}
	if in.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Bio != nil {
		fields["bio"] = strings.TrimSpace(*in.Bio)
	}
	if in.Avatar != nil {
		stored, err := s.media.Store(ctx, in.Avatar)
		if err != nil {
			return nil, err
		}
		fields["avatar_url"] = stored.URL
	}
	if len(fields) == 0 {
		return nil, errors.New("no fields provided for update")
	}
	return s.users.UpdateFields(ctx, userID, fields)
}
