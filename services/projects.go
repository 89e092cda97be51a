package services

import (
	"context"
	"errors"
	"time"

	"sitesync-backend/events"
	"sitesync-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectService struct {
	db       *gorm.DB
	logger   *zap.Logger
	notifier *notifier
}

func NewProjectService(db *gorm.DB, logger *zap.Logger, notifier *notifier) *ProjectService {
	return &ProjectService{db: db, logger: logger, notifier: notifier}
}

func (s *ProjectService) ListForContractor(ctx context.Context, contractorID uuid.UUID) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.WithContext(ctx).Preload("Booking").
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (s *ProjectService) ListForHomeowner(ctx context.Context, homeownerID uuid.UUID) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.WithContext(ctx).Preload("Booking").
		Joins("JOIN bookings b ON b.id = projects.booking_id").
		Where("b.homeowner_id = ?", homeownerID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}

// SignalCompletion is the contractor telling the homeowner the work is done.
func (s *ProjectService) SignalCompletion(ctx context.Context, contractorID, bookingID uuid.UUID) (*models.Project, error) {
	var (
		project     *models.Project
		homeownerID uuid.UUID
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		project, homeownerID, err = lockProject(tx, bookingID)
		if err != nil {
			return err
		}
		if project.ContractorID != contractorID || !project.IsActive {
			return ErrProjectNotFound
		}
		if project.SignalCompletion {
			return ErrCompletionAlreadySignaled
		}
		project.SignalCompletion = true
		return tx.Model(project).Update("signal_completion", true).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.notify(ctx, events.Event{
		Key:          events.ProjectCompletionSignaled,
		BookingID:    bookingID,
		ContractorID: contractorID,
		HomeownerID:  homeownerID,
	})
	return project, nil
}

// AcceptCompletion closes the project. isPublic lets it appear on the
// contractor's public profile.
func (s *ProjectService) AcceptCompletion(ctx context.Context, homeownerID, bookingID uuid.UUID, isPublic bool) (*models.Project, error) {
	var project *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var (
			owner uuid.UUID
			err   error
		)
		project, owner, err = lockProject(tx, bookingID)
		if err != nil {
			return err
		}
		if owner != homeownerID {
			return ErrProjectNotFound
		}
		if !project.IsActive {
			return ErrCompletionAlreadyAccepted
		}
		if !project.SignalCompletion {
			return ErrCompletionNotSignaled
		}
		now := time.Now()
		project.IsActive = false
		project.IsPublic = isPublic
		project.CompletedAt = &now
		return tx.Model(project).Updates(map[string]interface{}{
			"is_active":    false,
			"is_public":    isPublic,
			"completed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project completed", zap.String("booking_id", bookingID.String()), zap.Bool("public", isPublic))
	s.notifier.notify(ctx, events.Event{
		Key:          events.ProjectCompletionAccepted,
		BookingID:    bookingID,
		ContractorID: project.ContractorID,
		HomeownerID:  homeownerID,
	})
	return project, nil
}

// RejectCompletion sends the project back to the contractor.
func (s *ProjectService) RejectCompletion(ctx context.Context, homeownerID, bookingID uuid.UUID) (*models.Project, error) {
	var project *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var (
			owner uuid.UUID
			err   error
		)
		project, owner, err = lockProject(tx, bookingID)
		if err != nil {
			return err
		}
		if owner != homeownerID {
			return ErrProjectNotFound
		}
		if !project.IsActive {
			return ErrCompletionAlreadyAccepted
		}
		if !project.SignalCompletion {
			return ErrCompletionNotSignaled
		}
		project.SignalCompletion = false
		return tx.Model(project).Update("signal_completion", false).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.notify(ctx, events.Event{
		Key:          events.ProjectCompletionRejected,
		BookingID:    bookingID,
		ContractorID: project.ContractorID,
		HomeownerID:  homeownerID,
	})
	return project, nil
}

// lockProject also returns the homeowner owning the project's booking.
func lockProject(tx *gorm.DB, bookingID uuid.UUID) (*models.Project, uuid.UUID, error) {
	var project models.Project
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, ErrProjectNotFound
		}
		return nil, uuid.Nil, err
	}
	var booking models.Booking
	if err := tx.Select("id", "homeowner_id").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, ErrProjectNotFound
		}
		return nil, uuid.Nil, err
	}
	return &project, booking.HomeownerID, nil
}
