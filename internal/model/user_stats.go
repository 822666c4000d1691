package model

import "time"

type LeaderTier string

const (
	TierBronze LeaderTier = "bronze"
	TierSilver LeaderTier = "silver"
	TierGold   LeaderTier = "gold"
)

// UserStats is mutated only by the verification workflow. The
// service_leader columns are a projection of total_credits and are
// recomputed on every write.
type UserStats struct {
	UserID            string      `gorm:"type:uuid;primaryKey"`
	TotalCredits      int         `gorm:"not null;default:0"`
	TotalActsVerified int         `gorm:"not null;default:0"`
	CurrentStreak     int         `gorm:"not null;default:0"`
	LongestStreak     int         `gorm:"not null;default:0"`
	ServiceLeader     bool        `gorm:"column:service_leader_status;not null;default:false"`
	ServiceLeaderTier *LeaderTier `gorm:"column:service_leader_tier;size:16"`
	LastVerifiedDate  *time.Time  `gorm:"column:last_verified_date;type:date"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
