package model

import "time"

type ReactionType string

const (
	ReactionHeart ReactionType = "heart"
	ReactionFire  ReactionType = "fire"
	ReactionClap  ReactionType = "clap"
)

// ActReaction holds at most one row per (act, user) pair; re-reacting
// replaces the reaction type.
type ActReaction struct {
	ID           string       `gorm:"type:uuid;primaryKey"`
	ActID        string       `gorm:"type:uuid;index:idx_act_user,unique;not null"`
	UserID       string       `gorm:"type:uuid;index:idx_act_user,unique;not null"`
	ReactionType ReactionType `gorm:"size:16;not null"`
	CreatedAt    time.Time    `gorm:"autoCreateTime"`
}

func (ActReaction) TableName() string {
	return "act_reactions"
}
