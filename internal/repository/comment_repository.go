package repository

import (
	"context"

	"github.com/supriety/kindness-track/internal/model"
	"gorm.io/gorm"
)

type CommentRow struct {
	model.ActComment
	Username  string
	AvatarURL *string
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.ActComment) error
	ListByAct(ctx context.Context, actID string) ([]CommentRow, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.ActComment) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByAct(ctx context.Context, actID string) ([]CommentRow, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []CommentRow
	if err := r.db.WithContext(ctx).Model(&model.ActComment{}).
		Select("act_comments.*, u.username AS username, u.avatar_url AS avatar_url").
		Joins("JOIN users u ON u.id = act_comments.user_id").
		Where("act_comments.act_id = ?", actID).
		Order("act_comments.created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
