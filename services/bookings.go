package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sitesync-backend/models"
	"sitesync-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookingUnitView is a booking unit with its work unit spelled out.
type BookingUnitView struct {
	ID          uuid.UUID `json:"id"`
	WorkUnitID  uint      `json:"workUnitId"`
	Task        string    `json:"task"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	Profession  string    `json:"profession"`
	Description string    `json:"description,omitempty"`
}

type BookingDetail struct {
	Booking models.Booking    `json:"booking"`
	Units   []BookingUnitView `json:"units"`
}

// HomeownerBookingDetail adds the contractors that accepted an invite.
type HomeownerBookingDetail struct {
	BookingDetail
	AcceptedContractors []models.Contractor `json:"acceptedContractors"`
}

type BookingUnitInput struct {
	WorkUnitID  uint   `json:"workUnitId" binding:"required"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

type BookingInput struct {
	Title   string             `json:"title" binding:"required"`
	Zipcode string             `json:"zipcode" binding:"required"`
	Address string             `json:"address" binding:"required"`
	Units   []BookingUnitInput `json:"units"`
}

// InviteView is an invite together with the booking it belongs to.
type InviteView struct {
	Invite  models.BookingInvite `json:"invite"`
	Booking BookingDetail        `json:"booking"`
}

type BookingService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBookingService(db *gorm.DB, logger *zap.Logger) *BookingService {
	return &BookingService{db: db, logger: logger}
}

// Create stores a booking with at least one known, distinct work unit.
func (s *BookingService) Create(ctx context.Context, homeownerID uuid.UUID, input BookingInput) (*BookingDetail, error) {
	if len(input.Units) == 0 {
		return nil, ErrBookingWithoutTasks
	}

	booking := models.Booking{
		HomeownerID: homeownerID,
		Title:       strings.TrimSpace(input.Title),
		Zipcode:     utils.NormalizeZipcode(input.Zipcode),
		Address:     strings.TrimSpace(input.Address),
		IsActive:    true,
	}

	seen := make(map[uint]struct{}, len(input.Units))
	ids := make([]uint, 0, len(input.Units))
	for _, u := range input.Units {
		if _, dup := seen[u.WorkUnitID]; dup {
			return nil, validationError(fmt.Sprintf("Work unit %d requested more than once", u.WorkUnitID), nil)
		}
		if u.Quantity < 0 {
			return nil, validationError(fmt.Sprintf("Quantity for work unit %d must be positive", u.WorkUnitID), nil)
		}
		seen[u.WorkUnitID] = struct{}{}
		ids = append(ids, u.WorkUnitID)

		quantity := u.Quantity
		if quantity == 0 {
			quantity = 1
		}
		booking.Units = append(booking.Units, models.BookingUnit{
			WorkUnitID:  u.WorkUnitID,
			Quantity:    quantity,
			Description: strings.TrimSpace(u.Description),
		})
	}

	var detail *BookingDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var homeowner models.Homeowner
		if err := tx.Select("id").First(&homeowner, "id = ?", homeownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHomeownerNotFound
			}
			return err
		}

		units, err := unitsByIDs(tx, ids)
		if err != nil {
			return err
		}
		if len(units) != len(ids) {
			return validationError("Booking references unknown work units", nil)
		}

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		details, err := describeBookings(tx, []models.Booking{booking})
		if err != nil {
			return err
		}
		detail = &details[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("homeowner_id", homeownerID.String()),
		zap.Int("units", len(booking.Units)),
	)
	return detail, nil
}

// ListOpen returns the homeowner's bookings that still take invites.
func (s *BookingService) ListOpen(ctx context.Context, homeownerID uuid.UUID) ([]BookingDetail, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).Preload("Units").
		Where("homeowner_id = ? AND is_active = ? AND is_booked = ?", homeownerID, true, false).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return describeBookings(s.db.WithContext(ctx), bookings)
}

// Detail is the homeowner's view of an open booking they own.
func (s *BookingService) Detail(ctx context.Context, homeownerID, bookingID uuid.UUID) (*HomeownerBookingDetail, error) {
	db := s.db.WithContext(ctx)

	var booking models.Booking
	if err := db.Preload("Units").
		Where("id = ? AND homeowner_id = ? AND is_active = ? AND is_booked = ?", bookingID, homeownerID, true, false).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	details, err := describeBookings(db, []models.Booking{booking})
	if err != nil {
		return nil, err
	}

	var contractors []models.Contractor
	if err := db.Model(&models.Contractor{}).
		Joins("JOIN booking_invites i ON i.contractor_id = contractors.id").
		Where("i.booking_id = ? AND i.accepted = ?", bookingID, true).
		Order("contractors.id").
		Find(&contractors).Error; err != nil {
		return nil, err
	}

	return &HomeownerBookingDetail{BookingDetail: details[0], AcceptedContractors: contractors}, nil
}

// DetailForContractor shows an open booking to a contractor holding an invite for it.
func (s *BookingService) DetailForContractor(ctx context.Context, contractorID, bookingID uuid.UUID) (*InviteView, error) {
	views, err := s.invitesFor(ctx, contractorID, "booking_invites.booking_id = ?", bookingID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrBookingNotFound
	}
	return &views[0], nil
}

// PendingInvites are undecided invites on open bookings.
func (s *BookingService) PendingInvites(ctx context.Context, contractorID uuid.UUID) ([]InviteView, error) {
	return s.invitesFor(ctx, contractorID, "booking_invites.accepted = ? AND booking_invites.rejected = ?", false, false)
}

// AcceptedInvites are invites the contractor accepted on still open bookings.
func (s *BookingService) AcceptedInvites(ctx context.Context, contractorID uuid.UUID) ([]InviteView, error) {
	return s.invitesFor(ctx, contractorID, "booking_invites.accepted = ?", true)
}

func (s *BookingService) invitesFor(ctx context.Context, contractorID uuid.UUID, cond string, args ...interface{}) ([]InviteView, error) {
	db := s.db.WithContext(ctx)

	var invites []models.BookingInvite
	if err := db.Joins("JOIN bookings b ON b.id = booking_invites.booking_id").
		Where("booking_invites.contractor_id = ? AND b.is_active = ? AND b.is_booked = ?", contractorID, true, false).
		Where(cond, args...).
		Order("booking_invites.created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	if len(invites) == 0 {
		return []InviteView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(invites))
	for _, i := range invites {
		ids = append(ids, i.BookingID)
	}
	var bookings []models.Booking
	if err := db.Preload("Units").Where("id IN ?", ids).Find(&bookings).Error; err != nil {
		return nil, err
	}
	details, err := describeBookings(db, bookings)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]BookingDetail, len(details))
	for _, d := range details {
		byID[d.Booking.ID] = d
	}

	views := make([]InviteView, 0, len(invites))
	for _, i := range invites {
		views = append(views, InviteView{Invite: i, Booking: byID[i.BookingID]})
	}
	return views, nil
}

// OpenSince returns open bookings created at or after since, oldest first.
func (s *BookingService) OpenSince(ctx context.Context, since time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND is_booked = ? AND created_at >= ?", true, false, since).
		Order("created_at").
		Find(&bookings).Error
	return bookings, err
}

// describeBookings expects Units to be loaded on every booking.
func describeBookings(db *gorm.DB, bookings []models.Booking) ([]BookingDetail, error) {
	details := make([]BookingDetail, 0, len(bookings))
	if len(bookings) == 0 {
		return details, nil
	}

	seen := make(map[uint]struct{})
	var ids []uint
	for _, b := range bookings {
		for _, u := range b.Units {
			if _, ok := seen[u.WorkUnitID]; !ok {
				seen[u.WorkUnitID] = struct{}{}
				ids = append(ids, u.WorkUnitID)
			}
		}
	}
	units, err := unitsByIDs(db, ids)
	if err != nil {
		return nil, err
	}
	catalog := make(map[uint]models.WorkUnit, len(units))
	for _, u := range units {
		catalog[u.ID] = u
	}

	for _, b := range bookings {
		views := make([]BookingUnitView, 0, len(b.Units))
		for _, u := range b.Units {
			w := catalog[u.WorkUnitID]
			views = append(views, BookingUnitView{
				ID:          u.ID,
				WorkUnitID:  u.WorkUnitID,
				Task:        w.Describe(),
				Quantity:    u.Quantity,
				Unit:        w.Quantity,
				Profession:  w.Profession,
				Description: u.Description,
			})
		}
		b.Units = nil
		details = append(details, BookingDetail{Booking: b, Units: views})
	}
	return details, nil
}
