package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sitesync-backend/events"
	"sitesync-backend/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialInput struct {
	Cost        *float64 `json:"cost"`
	Description string   `json:"description" binding:"required"`
}

type QuoteItemInput struct {
	BookingUnitID uuid.UUID       `json:"bookingUnitId" binding:"required"`
	WorkHours     *float64        `json:"workHours"`
	WorkRate      *float64        `json:"workRate"`
	WorkCost      *float64        `json:"workCost"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	Materials     []MaterialInput `json:"materials"`
}

type QuoteService struct {
	db       *gorm.DB
	logger   *zap.Logger
	notifier *notifier
}

func NewQuoteService(db *gorm.DB, logger *zap.Logger, notifier *notifier) *QuoteService {
	return &QuoteService{db: db, logger: logger, notifier: notifier}
}

var quoteItemStatuses = map[string]bool{
	models.QuoteItemOngoing:   true,
	models.QuoteItemDelayed:   true,
	models.QuoteItemCompleted: true,
}

// Submit creates the contractor's quote for a booking, replacing any
// previous one. The contractor must have accepted the invite and the
// booking must still be open.
func (s *QuoteService) Submit(ctx context.Context, contractorID, bookingID uuid.UUID, items []QuoteItemInput) (*models.Quote, error) {
	ctx, span := tracer.Start(ctx, "quotes.Submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("contractor.id", contractorID.String()),
		attribute.Int("quote.items", len(items)),
	)

	var (
		quote   models.Quote
		booking *models.Booking
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = lockOpenBooking(tx, bookingID, nil)
		if err != nil {
			return err
		}
		invite, err := findInvite(tx, bookingID, contractorID)
		if err != nil {
			return err
		}
		if !invite.Accepted {
			return ErrInviteNotAccepted
		}

		var unitIDs []uuid.UUID
		if err := tx.Model(&models.BookingUnit{}).Where("booking_id = ?", bookingID).Pluck("id", &unitIDs).Error; err != nil {
			return err
		}
		units := make(map[uuid.UUID]bool, len(unitIDs))
		for _, id := range unitIDs {
			units[id] = true
		}

		quote = models.Quote{BookingID: bookingID, BookingInviteID: invite.ID, ContractorID: contractorID}
		for _, in := range items {
			if !units[in.BookingUnitID] {
				return validationError(fmt.Sprintf("Booking unit %s is not part of this booking", in.BookingUnitID), nil)
			}
			status := strings.ToLower(strings.TrimSpace(in.Status))
			if status == "" {
				status = models.QuoteItemOngoing
			}
			if !quoteItemStatuses[status] {
				return validationError(fmt.Sprintf("Unknown quote item status %q", in.Status), nil)
			}
			item := models.QuoteItem{
				BookingUnitID: in.BookingUnitID,
				WorkHours:     in.WorkHours,
				WorkRate:      in.WorkRate,
				WorkCost:      in.WorkCost,
				Description:   strings.TrimSpace(in.Description),
				Status:        status,
				IsActive:      true,
			}
			for _, m := range in.Materials {
				item.Materials = append(item.Materials, models.MaterialUnit{Cost: m.Cost, Description: strings.TrimSpace(m.Description)})
			}
			quote.Items = append(quote.Items, item)
		}

		if err := deleteQuote(tx, invite.ID); err != nil {
			return err
		}
		return tx.Create(&quote).Error
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.logger.Info("quote submitted",
		zap.String("booking_id", bookingID.String()),
		zap.String("contractor_id", contractorID.String()),
		zap.Int("items", len(quote.Items)),
	)
	s.notifier.notify(ctx, events.Event{
		Key:          events.QuoteSubmitted,
		BookingID:    bookingID,
		ContractorID: contractorID,
		HomeownerID:  booking.HomeownerID,
	})
	return &quote, nil
}

// ForContractor returns the contractor's own quote on a booking.
func (s *QuoteService) ForContractor(ctx context.Context, contractorID, bookingID uuid.UUID) (*models.Quote, error) {
	return s.find(s.db.WithContext(ctx), bookingID, contractorID)
}

// ForHomeowner returns a contractor's quote on a booking the homeowner owns.
func (s *QuoteService) ForHomeowner(ctx context.Context, homeownerID, bookingID, contractorID uuid.UUID) (*models.Quote, error) {
	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Booking{}).Where("id = ? AND homeowner_id = ?", bookingID, homeownerID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrBookingNotFound
	}
	return s.find(db, bookingID, contractorID)
}

func (s *QuoteService) find(db *gorm.DB, bookingID, contractorID uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	if err := db.Preload("Items.Materials").
		Where("booking_id = ? AND contractor_id = ?", bookingID, contractorID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// Accept turns the contractor's quote into a project and closes the booking
// to every other contractor.
func (s *QuoteService) Accept(ctx context.Context, homeownerID, bookingID, contractorID uuid.UUID) (*models.Project, error) {
	ctx, span := tracer.Start(ctx, "quotes.Accept")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("contractor.id", contractorID.String()),
	)

	var project models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockOpenBooking(tx, bookingID, &homeownerID); err != nil {
			return err
		}
		invite, err := findInvite(tx, bookingID, contractorID)
		if err != nil {
			return err
		}
		if !invite.Accepted {
			return ErrInviteNotAccepted
		}

		var quote models.Quote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_invite_id = ?", invite.ID).
			First(&quote).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuoteNotFound
			}
			return err
		}
		if quote.Accepted {
			return ErrQuoteAlreadyAccepted
		}

		if err := tx.Model(&quote).Update("accepted", true).Error; err != nil {
			return err
		}
		project = models.Project{BookingID: bookingID, ContractorID: contractorID, IsActive: true}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).Where("id = ?", bookingID).
			Updates(map[string]interface{}{"is_booked": true, "is_active": false}).Error
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.logger.Info("quote accepted, booking booked",
		zap.String("booking_id", bookingID.String()),
		zap.String("contractor_id", contractorID.String()),
	)
	s.notifier.notify(ctx, events.Event{
		Key:          events.BookingBooked,
		BookingID:    bookingID,
		ContractorID: contractorID,
		HomeownerID:  homeownerID,
	})
	return &project, nil
}

func findInvite(tx *gorm.DB, bookingID, contractorID uuid.UUID) (*models.BookingInvite, error) {
	var invite models.BookingInvite
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("booking_id = ? AND contractor_id = ?", bookingID, contractorID).
		First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// deleteQuote removes a quote with its items and materials.
func deleteQuote(tx *gorm.DB, inviteID uuid.UUID) error {
	var quote models.Quote
	err := tx.Where("booking_invite_id = ?", inviteID).First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if quote.Accepted {
		return ErrQuoteAlreadyAccepted
	}

	var itemIDs []uuid.UUID
	if err := tx.Model(&models.QuoteItem{}).Where("quote_id = ?", quote.ID).Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) > 0 {
		if err := tx.Where("quote_item_id IN ?", itemIDs).Delete(&models.MaterialUnit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", quote.ID).Delete(&models.QuoteItem{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&quote).Error
}
