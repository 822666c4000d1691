package repository

import (
	"context"
	"errors"
	"time"

	"github.com/supriety/kindness-track/internal/model"
	"gorm.io/gorm"
)

// ErrNotPending signals a review of an act that has already been reviewed.
// Review transitions are one-shot: pending is the only reviewable state.
var ErrNotPending = errors.New("act is not pending")

type ReviewRepository interface {
	// Verify marks the act verified and folds the awarded credits into the
	// owner's stats row. Both writes happen in one transaction.
	Verify(ctx context.Context, actID, adminID string, credits int) (*model.KindnessAct, *model.UserStats, error)
	Reject(ctx context.Context, actID, adminID, reason string) (*model.KindnessAct, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Verify(ctx context.Context, actID, adminID string, credits int) (*model.KindnessAct, *model.UserStats, error) {
	if r.db == nil {
		return nil, nil, ErrDBNotReady
	}
	var (
		act   model.KindnessAct
		stats model.UserStats
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", actID).First(&act).Error; err != nil {
			return err
		}
		if act.VerificationStatus != model.StatusPending {
			return ErrNotPending
		}

		now := time.Now().UTC()
		act.VerificationStatus = model.StatusVerified
		act.VerifiedAt = &now
		act.VerifiedBy = &adminID
		act.CreditsAwarded = credits
		if err := tx.Model(&model.KindnessAct{}).
			Where("id = ?", actID).
			Updates(map[string]interface{}{
				"verification_status": act.VerificationStatus,
				"verified_at":         act.VerifiedAt,
				"verified_by":         act.VerifiedBy,
				"credits_awarded":     act.CreditsAwarded,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", act.UserID).
			FirstOrCreate(&stats, &model.UserStats{UserID: act.UserID}).Error; err != nil {
			return err
		}
		stats.ApplyVerified(credits, act.ActDate)
		return tx.Save(&stats).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &act, &stats, nil
}

func (r *reviewRepository) Reject(ctx context.Context, actID, adminID, reason string) (*model.KindnessAct, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var act model.KindnessAct
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", actID).First(&act).Error; err != nil {
			return err
		}
		if act.VerificationStatus != model.StatusPending {
			return ErrNotPending
		}

		now := time.Now().UTC()
		act.VerificationStatus = model.StatusRejected
		act.VerifiedAt = &now
		act.VerifiedBy = &adminID
		act.RejectionReason = &reason
		return tx.Model(&model.KindnessAct{}).
			Where("id = ?", actID).
			Updates(map[string]interface{}{
				"verification_status": act.VerificationStatus,
				"verified_at":         act.VerifiedAt,
				"verified_by":         act.VerifiedBy,
				"rejection_reason":    act.RejectionReason,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &act, nil
}
