package model

import "time"

type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusRejected VerificationStatus = "rejected"
)

type ActCategory string

const (
	CategoryOnline    ActCategory = "online"
	CategoryOffline   ActCategory = "offline"
	CategoryCommunity ActCategory = "community"
)

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityCommunity Visibility = "community"
	VisibilityPrivate   Visibility = "private"
)

type KindnessAct struct {
	ID                 string             `gorm:"type:uuid;primaryKey"`
	UserID             string             `gorm:"type:uuid;index;not null"`
	Title              string             `gorm:"size:200;not null"`
	Description        string             `gorm:"type:text;not null"`
	Category           ActCategory        `gorm:"size:32;not null"`
	MediaURL           *string            `gorm:"size:512"`
	MediaType          *string            `gorm:"size:16"`
	Location           *string            `gorm:"size:200"`
	ActDate            time.Time          `gorm:"type:date;not null;index"`
	VerificationStatus VerificationStatus `gorm:"size:16;not null;default:pending;index"`
	CreditsAwarded     int                `gorm:"not null;default:0"`
	RejectionReason    *string            `gorm:"type:text"`
	VerifiedAt         *time.Time
	VerifiedBy         *string    `gorm:"type:uuid"`
	Visibility         Visibility `gorm:"size:16;not null;default:public"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
}

func (KindnessAct) TableName() string {
	return "kindness_acts"
}
