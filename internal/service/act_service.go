package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
	"gorm.io/gorm"
)

// MaxDaysBack is the logging policy: acts must be recorded within a week
// of the day they happened. Exactly seven days back is still accepted.
const MaxDaysBack = 7

type CreateActInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	ActDate     time.Time
	Visibility  string
	Media       *MediaFile
}

type UpdateActInput struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	Visibility  *string
	Media       *MediaFile
}

type ActService interface {
	Create(ctx context.Context, userID string, in CreateActInput) (*repository.ActRow, error)
	Get(ctx context.Context, id string) (*repository.ActRow, error)
	ListMine(ctx context.Context, userID string, status string) ([]repository.ActRow, error)
	Update(ctx context.Context, id, userID string, in UpdateActInput) (*repository.ActRow, error)
	Delete(ctx context.Context, id, userID string) error
	React(ctx context.Context, actID, userID string, reactionType string) (*model.ActReaction, error)
	Unreact(ctx context.Context, actID, userID string) error
	Comment(ctx context.Context, actID, userID, text string) (*model.ActComment, error)
	ListComments(ctx context.Context, actID string) ([]repository.CommentRow, error)
}

type actService struct {
	acts      repository.ActRepository
	reactions repository.ReactionRepository
	comments  repository.CommentRepository
	media     MediaService
	now       func() time.Time
}

func NewActService(acts repository.ActRepository, reactions repository.ReactionRepository, comments repository.CommentRepository, media MediaService) ActService {
	return &actService{
		acts:      acts,
		reactions: reactions,
		comments:  comments,
		media:     media,
		now:       time.Now,
	}
}

func validCategory(c string) bool {
	switch model.ActCategory(c) {
	case model.CategoryOnline, model.CategoryOffline, model.CategoryCommunity:
		return true
	}
	return false
}

func validVisibility(v string) bool {
	switch model.Visibility(v) {
	case model.VisibilityPublic, model.VisibilityCommunity, model.VisibilityPrivate:
		return true
	}
	return false
}

func validReaction(r string) bool {
	switch model.ReactionType(r) {
	case model.ReactionHeart, model.ReactionFire, model.ReactionClap:
		return true
	}
	return false
}

// checkActDate enforces the logging window: no future dates, nothing older
// than MaxDaysBack days.
func (s *actService) checkActDate(actDate time.Time) error {
	today := s.now().UTC().Truncate(24 * time.Hour)
	day := actDate.UTC().Truncate(24 * time.Hour)
	if day.After(today) {
		return errors.New("act date cannot be in the future")
	}
	if today.Sub(day) > MaxDaysBack*24*time.Hour {
		return errors.New("acts must be logged within 7 days")
	}
	return nil
}

func (s *actService) Create(ctx context.Context, userID string, in CreateActInput) (*repository.ActRow, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || len(title) > 200 {
		return nil, errors.New("invalid title")
	}
	if description == "" {
		return nil, errors.New("description is required")
	}
	if !validCategory(in.Category) {
		return nil, errors.New("category must be online, offline or community")
	}
	if in.ActDate.IsZero() {
		return nil, errors.New("act date is required")
	}
	if err := s.checkActDate(in.ActDate); err != nil {
		return nil, err
	}
	visibility := in.Visibility
	if visibility == "" {
		visibility = string(model.VisibilityPublic)
	}
	if !validVisibility(visibility) {
		return nil, errors.New("invalid visibility")
	}

	act := &model.KindnessAct{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Title:              title,
		Description:        description,
		Category:           model.ActCategory(in.Category),
		ActDate:            in.ActDate.UTC().Truncate(24 * time.Hour),
		VerificationStatus: model.StatusPending,
		Visibility:         model.Visibility(visibility),
	}
	if loc := strings.TrimSpace(in.Location); loc != "" {
		act.Location = &loc
	}

	// Media lands first; if storage fails the act is never written.
	if in.Media != nil {
		stored, err := s.media.Store(ctx, in.Media)
		if err != nil {
			return nil, err
		}
		act.MediaURL = &stored.URL
		act.MediaType = &stored.Type
	}

	if err := s.acts.Create(ctx, act); err != nil {
		return nil, err
	}
	return s.acts.FindRowByID(ctx, act.ID)
}

func (s *actService) Get(ctx context.Context, id string) (*repository.ActRow, error) {
	row, err := s.acts.FindRowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *actService) ListMine(ctx context.Context, userID string, status string) ([]repository.ActRow, error) {
	return s.acts.ListByUser(ctx, userID, model.VerificationStatus(status), 100)
}

// ownedPending loads the act and applies the mutation gate: owner only,
// pending only.
func (s *actService) ownedPending(ctx context.Context, id, userID string) (*model.KindnessAct, error) {
	act, err := s.acts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if act.UserID != userID {
		return nil, ErrForbidden
	}
	if act.VerificationStatus != model.StatusPending {
		return nil, ErrNotPending
	}
	return act, nil
}

func (s *actService) Update(ctx context.Context, id, userID string, in UpdateActInput) (*repository.ActRow, error) {
	if _, err := s.ownedPending(ctx, id, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" || len(title) > 200 {
			return nil, errors.New("invalid title")
		}
		fields["title"] = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, errors.New("invalid description")
		}
		fields["description"] = description
	}
	if in.Category != nil {
		if !validCategory(*in.Category) {
			return nil, errors.New("category must be online, offline or community")
		}
		fields["category"] = *in.Category
	}
	if in.Location != nil {
		fields["location"] = strings.TrimSpace(*in.Location)
	}
	if in.Visibility != nil {
		if !validVisibility(*in.Visibility) {
			return nil, errors.New("invalid visibility")
		}
		fields["visibility"] = *in.Visibility
	}
	if in.Media != nil {
		stored, err := s.media.Store(ctx, in.Media)
		if err != nil {
			return nil, err
		}
		// URL and coarse type always move together.
		fields["media_url"] = stored.URL
		fields["media_type"] = stored.Type
	}

	if len(fields) == 0 {
		return nil, errors.New("no fields provided for update")
	}
	if err := s.acts.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.acts.FindRowByID(ctx, id)
}

func (s *actService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.ownedPending(ctx, id, userID); err != nil {
		return err
	}
	return s.acts.Delete(ctx, id)
}

func (s *actService) React(ctx context.Context, actID, userID string, reactionType string) (*model.ActReaction, error) {
	if reactionType == "" {
		reactionType = string(model.ReactionHeart)
	}
	if !validReaction(reactionType) {
		return nil, errors.New("reaction must be heart, fire or clap")
	}
	if _, err := s.Get(ctx, actID); err != nil {
		return nil, err
	}
	reaction := &model.ActReaction{
		ID:           uuid.NewString(),
		ActID:        actID,
		UserID:       userID,
		ReactionType: model.ReactionType(reactionType),
	}
	if err := s.reactions.Upsert(ctx, reaction); err != nil {
		return nil, err
	}
	return s.reactions.Find(ctx, actID, userID)
}

func (s *actService) Unreact(ctx context.Context, actID, userID string) error {
	removed, err := s.reactions.Delete(ctx, actID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *actService) Comment(ctx context.Context, actID, userID, text string) (*model.ActComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("comment is required")
	}
	if _, err := s.Get(ctx, actID); err != nil {
		return nil, err
	}
	comment := &model.ActComment{
		ID:          uuid.NewString(),
		ActID:       actID,
		UserID:      userID,
		CommentText: text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *actService) ListComments(ctx context.Context, actID string) ([]repository.CommentRow, error) {
	return s.comments.ListByAct(ctx, actID)
}
