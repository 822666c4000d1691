package model

import "time"

type ActComment struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	ActID       string    `gorm:"type:uuid;index;not null"`
	UserID      string    `gorm:"type:uuid;index;not null"`
	CommentText string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ActComment) TableName() string {
	return "act_comments"
}
