package model

import "time"

type UserPreferences struct {
	UserID            string    `gorm:"type:uuid;primaryKey"`
	EmailLikes        bool      `gorm:"not null;default:true"`
	EmailComments     bool      `gorm:"not null;default:true"`
	EmailSummary      bool      `gorm:"not null;default:false"`
	ProfileVisibility string    `gorm:"size:16;not null;default:public"`
	HideFromFeed      bool      `gorm:"not null;default:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
