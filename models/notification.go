package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types written by the match notifier.
const (
	NotificationTypeMatchCreated      = "match_created"
	NotificationTypeMatchTransitioned = "match_transitioned"
)

// Notification is an in-app notification row for a single user.
type Notification struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	UserId    string    `json:"user_id" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"type:varchar(32);not null"`
	Title     string    `json:"title" gorm:"not null"`
	Body      string    `json:"body"`
	MatchId   string    `json:"match_id" gorm:"index"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (notification *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	notification.Id = uuid.NewString()
	return
}
