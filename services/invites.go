package services

import (
	"context"
	"errors"

	"sitesync-backend/events"
	"sitesync-backend/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InviteService struct {
	db       *gorm.DB
	logger   *zap.Logger
	notifier *notifier
}

func NewInviteService(db *gorm.DB, logger *zap.Logger, notifier *notifier) *InviteService {
	return &InviteService{db: db, logger: logger, notifier: notifier}
}

// Create invites a contractor to an open booking the homeowner owns. The
// contractor must cover every work unit and serve the booking's zipcode.
func (s *InviteService) Create(ctx context.Context, homeownerID, bookingID, contractorID uuid.UUID) (*models.BookingInvite, error) {
	ctx, span := tracer.Start(ctx, "invites.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("contractor.id", contractorID.String()),
	)

	var invite models.BookingInvite
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockOpenBooking(tx, bookingID, &homeownerID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.BookingInvite{}).
			Where("booking_id = ? AND contractor_id = ?", bookingID, contractorID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrInviteAlreadySent
		}

		if err := lockContractor(tx, contractorID, "SHARE"); err != nil {
			return err
		}
		match, err := checkPair(ctx, tx, bookingID, contractorID, homeownerID)
		if err != nil {
			return err
		}
		if match == nil {
			return ErrNotMatchingPrefs
		}

		invite = models.BookingInvite{BookingID: bookingID, ContractorID: contractorID}
		if err := tx.Create(&invite).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrInviteAlreadySent
			}
			return err
		}
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.logger.Info("booking invite created",
		zap.String("booking_id", bookingID.String()),
		zap.String("contractor_id", contractorID.String()),
	)
	s.notifier.notify(ctx, events.Event{
		Key:          events.InviteCreated,
		BookingID:    bookingID,
		ContractorID: contractorID,
		HomeownerID:  homeownerID,
	})
	return &invite, nil
}

func (s *InviteService) Accept(ctx context.Context, contractorID, bookingID uuid.UUID) (*models.BookingInvite, error) {
	return s.decide(ctx, contractorID, bookingID, true)
}

func (s *InviteService) Reject(ctx context.Context, contractorID, bookingID uuid.UUID) (*models.BookingInvite, error) {
	return s.decide(ctx, contractorID, bookingID, false)
}

func (s *InviteService) decide(ctx context.Context, contractorID, bookingID uuid.UUID, accept bool) (*models.BookingInvite, error) {
	name, key := "invites.Reject", events.InviteRejected
	if accept {
		name, key = "invites.Accept", events.InviteAccepted
	}
	ctx, span := tracer.Start(ctx, name)
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("contractor.id", contractorID.String()),
	)

	var (
		invite  *models.BookingInvite
		booking *models.Booking
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = lockOpenBooking(tx, bookingID, nil)
		if err != nil {
			return err
		}
		invite, err = findInvite(tx, bookingID, contractorID)
		if err != nil {
			return err
		}
		if invite.Rejected {
			return ErrInviteAlreadyRejected
		}
		if invite.Accepted {
			return ErrInviteAlreadyAccepted
		}

		column := "rejected"
		if accept {
			column = "accepted"
		}
		if err := tx.Model(invite).Update(column, true).Error; err != nil {
			return err
		}
		invite.Accepted = accept
		invite.Rejected = !accept
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.logger.Info("booking invite decided",
		zap.String("booking_id", bookingID.String()),
		zap.String("contractor_id", contractorID.String()),
		zap.Bool("accepted", accept),
	)
	s.notifier.notify(ctx, events.Event{
		Key:          key,
		BookingID:    bookingID,
		ContractorID: contractorID,
		HomeownerID:  booking.HomeownerID,
	})
	return invite, nil
}

// Get returns the invite for a pair, or nil when none exists. Only the
// homeowner owning the booking or the invited contractor may read it.
func (s *InviteService) Get(ctx context.Context, callerID, bookingID, contractorID uuid.UUID) (*models.BookingInvite, error) {
	db := s.db.WithContext(ctx)

	var booking models.Booking
	if err := db.Select("id", "homeowner_id").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if callerID != booking.HomeownerID && callerID != contractorID {
		return nil, ErrBookingNotFound
	}

	var invite models.BookingInvite
	if err := db.Where("booking_id = ? AND contractor_id = ?", bookingID, contractorID).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invite, nil
}

// lockOpenBooking locks an active, unbooked booking for update. A non-nil
// homeownerID also requires ownership.
func lockOpenBooking(tx *gorm.DB, bookingID uuid.UUID, homeownerID *uuid.UUID) (*models.Booking, error) {
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_active = ? AND is_booked = ?", bookingID, true, false)
	if homeownerID != nil {
		q = q.Where("homeowner_id = ?", *homeownerID)
	}
	var booking models.Booking
	if err := q.First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}
