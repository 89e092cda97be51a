package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuoteItemOngoing   = "ongoing"
	QuoteItemDelayed   = "delayed"
	QuoteItemCompleted = "completed"
)

// Quote belongs to exactly one accepted invite. Amounts are stored as given.
type Quote struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID       uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`
	BookingInviteID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"bookingInviteId"`
	ContractorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"contractorId"`
	Accepted        bool      `gorm:"default:false" json:"accepted"`
	CreatedAt       time.Time `json:"createdAt"`

	Items []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}

type QuoteItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID       uuid.UUID `gorm:"type:uuid;index;not null" json:"quoteId"`
	BookingUnitID uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingUnitId"`

	WorkHours   *float64 `gorm:"type:decimal(10,3)" json:"workHours,omitempty"`
	WorkRate    *float64 `gorm:"type:decimal(10,3)" json:"workRate,omitempty"`
	WorkCost    *float64 `gorm:"type:decimal(10,3)" json:"workCost,omitempty"`
	Description string   `json:"description,omitempty"`
	Status      string   `gorm:"type:varchar(20);default:'ongoing'" json:"status"` // ongoing, delayed, completed
	IsActive    bool     `gorm:"default:true" json:"isActive"`

	Materials []MaterialUnit `gorm:"foreignKey:QuoteItemID;constraint:OnDelete:CASCADE" json:"materials,omitempty"`
}

func (i *QuoteItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = QuoteItemOngoing
	}
	return
}

type MaterialUnit struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuoteItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"quoteItemId"`
	Cost        *float64  `gorm:"type:decimal(10,3)" json:"cost,omitempty"`
	Description string    `json:"description"`
}

func (m *MaterialUnit) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
