package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// NotificationLog records one match digest message per booking, contractor and channel.
type NotificationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_target,priority:1"`
	ContractorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_target,priority:2;index"`
	Channel      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_notification_target,priority:3"` // sms, log
	Recipient    string    `gorm:"type:varchar(32)"`
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	ExternalID   string    `gorm:"type:varchar(64)"`
	SentAt       time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
