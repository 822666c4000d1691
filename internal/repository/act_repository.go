package repository

import (
	"context"
	"time"

	"github.com/supriety/kindness-track/internal/model"
	"gorm.io/gorm"
)

// ActRow is an act joined with its owner's public identity and, for feed
// queries, the aggregate engagement counts.
type ActRow struct {
	model.KindnessAct
	Username       string
	FullName       string
	AvatarURL      *string
	ReactionsCount int64
	CommentsCount  int64
}

type FeedWindow string

const (
	WindowToday FeedWindow = "today"
	WindowWeek  FeedWindow = "week"
	WindowAll   FeedWindow = "all"
)

type FeedSort string

const (
	SortRecent   FeedSort = "recent"
	SortLikes    FeedSort = "likes"
	SortComments FeedSort = "comments"
)

type ActRepository interface {
	Create(ctx context.Context, act *model.KindnessAct) error
	FindByID(ctx context.Context, id string) (*model.KindnessAct, error)
	FindRowByID(ctx context.Context, id string) (*ActRow, error)
	ListByUser(ctx context.Context, userID string, status model.VerificationStatus, limit int) ([]ActRow, error)
	ListVerifiedPublic(ctx context.Context, userID string, limit int) ([]ActRow, error)
	ListPending(ctx context.Context) ([]ActRow, error)
	ListFeed(ctx context.Context, window FeedWindow, sort FeedSort, limit int) ([]ActRow, error)
	FindTodaysAct(ctx context.Context, userID string) (*model.KindnessAct, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	CountVerifiedSince(ctx context.Context, since time.Time) (int64, error)
	SumCreditsAwarded(ctx context.Context) (int64, error)
}

type actRepository struct {
	db *gorm.DB
}

func NewActRepository(db *gorm.DB) ActRepository {
	return &actRepository{db: db}
}

const ownerJoin = "JOIN users u ON u.id = kindness_acts.user_id"

func (r *actRepository) rowQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.KindnessAct{}).
		Select("kindness_acts.*, u.username AS username, u.full_name AS full_name, u.avatar_url AS avatar_url").
		Joins(ownerJoin)
}

func (r *actRepository) Create(ctx context.Context, act *model.KindnessAct) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(act).Error
}

func (r *actRepository) FindByID(ctx context.Context, id string) (*model.KindnessAct, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var act model.KindnessAct
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&act).Error; err != nil {
		return nil, err
	}
	return &act, nil
}

func (r *actRepository) FindRowByID(ctx context.Context, id string) (*ActRow, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var row ActRow
	if err := r.rowQuery(ctx).Where("kindness_acts.id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *actRepository) ListByUser(ctx context.Context, userID string, status model.VerificationStatus, limit int) ([]ActRow, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.rowQuery(ctx).Where("kindness_acts.user_id = ?", userID)
	if status != "" {
		q = q.Where("kindness_acts.verification_status = ?", status)
	}
	var rows []ActRow
	if err := q.Order("kindness_acts.created_at desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *actRepository) ListVerifiedPublic(ctx context.Context, userID string, limit int) ([]ActRow, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []ActRow
	if err := r.rowQuery(ctx).
		Where("kindness_acts.user_id = ?", userID).
		Where("kindness_acts.verification_status = ?", model.StatusVerified).
		Where("kindness_acts.visibility <> ?", model.VisibilityPrivate).
		Order("kindness_acts.act_date desc").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *actRepository) ListPending(ctx context.Context) ([]ActRow, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []ActRow
	if err := r.rowQuery(ctx).
		Where("kindness_acts.verification_status = ?", model.StatusPending).
		Order("kindness_acts.created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *actRepository) ListFeed(ctx context.Context, window FeedWindow, sort FeedSort, limit int) ([]ActRow, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).Model(&model.KindnessAct{}).
		Select(`kindness_acts.*, u.username AS username, u.full_name AS full_name, u.avatar_url AS avatar_url,
			COALESCE(reactions.count, 0) AS reactions_count,
			COALESCE(comments.count, 0) AS comments_count`).
		Joins(ownerJoin).
		Joins("LEFT JOIN (SELECT act_id, COUNT(*) AS count FROM act_reactions GROUP BY act_id) reactions ON reactions.act_id = kindness_acts.id").
		Joins("LEFT JOIN (SELECT act_id, COUNT(*) AS count FROM act_comments GROUP BY act_id) comments ON comments.act_id = kindness_acts.id").
		Where("kindness_acts.verification_status = ?", model.StatusVerified)

	switch window {
	case WindowToday:
		q = q.Where("kindness_acts.act_date = CURRENT_DATE")
	case WindowWeek:
		q = q.Where("kindness_acts.act_date >= CURRENT_DATE - INTERVAL '7 days'")
	}

	switch sort {
	case SortLikes:
		q = q.Order("reactions_count DESC NULLS LAST")
	case SortComments:
		q = q.Order("comments_count DESC NULLS LAST")
	default:
		q = q.Order("kindness_acts.created_at DESC")
	}

	var rows []ActRow
	if err := q.Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *actRepository) FindTodaysAct(ctx context.Context, userID string) (*model.KindnessAct, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var act model.KindnessAct
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND act_date = CURRENT_DATE", userID).
		Order("created_at desc").
		First(&act).Error
	if err != nil {
		return nil, err
	}
	return &act, nil
}

func (r *actRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.KindnessAct{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *actRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.KindnessAct{}).Error
}

func (r *actRepository) CountVerifiedSince(ctx context.Context, since time.Time) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.KindnessAct{}).
		Where("verification_status = ? AND act_date >= ?", model.StatusVerified, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *actRepository) SumCreditsAwarded(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.KindnessAct{}).
		Where("verification_status = ?", model.StatusVerified).
		Select("COALESCE(SUM(credits_awarded), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
