package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	HomeownerID uuid.UUID `gorm:"type:uuid;index;not null" json:"homeownerId"`

	Title   string `gorm:"not null" json:"title"`
	Zipcode string `gorm:"not null;index" json:"zipcode"`
	Address string `gorm:"not null" json:"address"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	IsBooked  bool      `gorm:"default:false" json:"isBooked"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Units []BookingUnit `gorm:"foreignKey:BookingID" json:"units,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// Open reports whether the booking still takes invites.
func (b Booking) Open() bool {
	return b.IsActive && !b.IsBooked
}

type BookingUnit struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_booking_work_unit,priority:1" json:"bookingId"`
	WorkUnitID  uint      `gorm:"not null;uniqueIndex:idx_booking_work_unit,priority:2" json:"workUnitId"`
	Quantity    int       `gorm:"default:1" json:"quantity"`
	Description string    `json:"description,omitempty"`
}

func (u *BookingUnit) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

type BookingInvite struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invite_pair,priority:1" json:"bookingId"`
	ContractorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invite_pair,priority:2;index" json:"contractorId"`
	Accepted     bool      `gorm:"default:false" json:"accepted"`
	Rejected     bool      `gorm:"default:false" json:"rejected"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (i *BookingInvite) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// Pending reports whether the contractor has not decided yet.
func (i BookingInvite) Pending() bool {
	return !i.Accepted && !i.Rejected
}
