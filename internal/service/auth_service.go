package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/supriety/kindness-track/internal/auth"
	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
	"gorm.io/gorm"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Signup(ctx context.Context, email, username, password, fullName string) (*model.User, *TokenPair, error)
	Login(ctx context.Context, identifier, password string) (*model.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.User, *TokenPair, error)
}

type authService struct {
	users  repository.UserRepository
	stats  repository.StatsRepository
	tokens *auth.TokenIssuer
}

func NewAuthService(users repository.UserRepository, stats repository.StatsRepository, tokens *auth.TokenIssuer) AuthService {
	return &authService{users: users, stats: stats, tokens: tokens}
}

func (s *authService) issuePair(user *model.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Signup(ctx context.Context, email, username, password, fullName string) (*model.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)

	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, errors.New("valid email is required")
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, nil, errors.New("username must be 3-50 characters")
	}
	if len(password) < 8 {
		return nil, nil, errors.New("password must be at least 8 characters")
	}

	taken, err := s.users.IdentityTaken(ctx, email, username)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, ErrIdentityTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		AccountTier:  "free",
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}
	if err := s.stats.Create(ctx, user.ID); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*model.User, *TokenPair, error) {
	user, err := s.users.FindByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer as a wrong password so identifiers cannot be
			// enumerated.
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*model.User, *TokenPair, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	// Reload the user so a role or identity change lands in the new pair.
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}
