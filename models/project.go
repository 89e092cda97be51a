package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is created when a homeowner accepts a quote and shares the booking's ID.
type Project struct {
	BookingID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"bookingId"`
	ContractorID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"contractorId"`
	CreatedAt        time.Time  `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	SignalCompletion bool       `gorm:"default:false" json:"signalCompletion"`
	IsPublic         bool       `gorm:"default:false" json:"isPublic"`
	IsActive         bool       `gorm:"default:true" json:"isActive"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}
