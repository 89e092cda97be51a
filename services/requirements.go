package services

import (
	"context"
	"errors"
	"sort"

	"sitesync-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Requirement is what a booking asks of a contractor.
type Requirement struct {
	BookingID   uuid.UUID
	HomeownerID uuid.UUID
	Zipcode     string
	UnitIDs     []uint // distinct, ascending
	RowCount    int
	IsActive    bool
	IsBooked    bool
}

func (r Requirement) Count() int {
	return len(r.UnitIDs)
}

func (r Requirement) Open() bool {
	return r.IsActive && !r.IsBooked
}

// LoadRequirement reads a booking and the distinct work units it requests.
// Pass a transaction handle to read inside it.
func LoadRequirement(ctx context.Context, db *gorm.DB, bookingID uuid.UUID) (*Requirement, error) {
	db = db.WithContext(ctx)

	var booking models.Booking
	if err := db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	var rows []uint
	if err := db.Model(&models.BookingUnit{}).Where("booking_id = ?", bookingID).Pluck("work_unit_id", &rows).Error; err != nil {
		return nil, err
	}

	return &Requirement{
		BookingID:   booking.ID,
		HomeownerID: booking.HomeownerID,
		Zipcode:     booking.Zipcode,
		UnitIDs:     newUnitSet(rows).sorted(),
		RowCount:    len(rows),
		IsActive:    booking.IsActive,
		IsBooked:    booking.IsBooked,
	}, nil
}

type unitSet map[uint]struct{}

func newUnitSet(ids []uint) unitSet {
	s := make(unitSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// covers reports whether every id is in the set. An empty list is covered.
func (s unitSet) covers(ids []uint) bool {
	for _, id := range ids {
		if _, ok := s[id]; !ok {
			return false
		}
	}
	return true
}

func (s unitSet) sorted() []uint {
	out := make([]uint, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
