package services

import (
	"context"

	"sitesync-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContractorOverview struct {
	PendingInvites    int64 `json:"pendingInvites"`
	AcceptedInvites   int64 `json:"acceptedInvites"`
	QuotesSubmitted   int64 `json:"quotesSubmitted"`
	ActiveProjects    int64 `json:"activeProjects"`
	CompletedProjects int64 `json:"completedProjects"`
}

type HomeownerOverview struct {
	OpenBookings      int64 `json:"openBookings"`
	InvitesSent       int64 `json:"invitesSent"`
	QuotesReceived    int64 `json:"quotesReceived"`
	ActiveProjects    int64 `json:"activeProjects"`
	CompletedProjects int64 `json:"completedProjects"`
}

// DashboardService counts what each role has in flight.
type DashboardService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDashboardService(db *gorm.DB, logger *zap.Logger) *DashboardService {
	return &DashboardService{db: db, logger: logger}
}

func (s *DashboardService) Contractor(ctx context.Context, contractorID uuid.UUID) (*ContractorOverview, error) {
	db := s.db.WithContext(ctx)
	var o ContractorOverview

	invites := func(cond string, args ...interface{}) *gorm.DB {
		return db.Model(&models.BookingInvite{}).
			Joins("JOIN bookings b ON b.id = booking_invites.booking_id").
			Where("booking_invites.contractor_id = ? AND b.is_active = ? AND b.is_booked = ?", contractorID, true, false).
			Where(cond, args...)
	}
	if err := invites("booking_invites.accepted = ? AND booking_invites.rejected = ?", false, false).Count(&o.PendingInvites).Error; err != nil {
		return nil, err
	}
	if err := invites("booking_invites.accepted = ?", true).Count(&o.AcceptedInvites).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Quote{}).Where("contractor_id = ?", contractorID).Count(&o.QuotesSubmitted).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Where("contractor_id = ? AND is_active = ?", contractorID, true).Count(&o.ActiveProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Where("contractor_id = ? AND is_active = ?", contractorID, false).Count(&o.CompletedProjects).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *DashboardService) Homeowner(ctx context.Context, homeownerID uuid.UUID) (*HomeownerOverview, error) {
	db := s.db.WithContext(ctx)
	var o HomeownerOverview

	if err := db.Model(&models.Booking{}).
		Where("homeowner_id = ? AND is_active = ? AND is_booked = ?", homeownerID, true, false).
		Count(&o.OpenBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.BookingInvite{}).
		Joins("JOIN bookings b ON b.id = booking_invites.booking_id").
		Where("b.homeowner_id = ?", homeownerID).
		Count(&o.InvitesSent).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Quote{}).
		Joins("JOIN bookings b ON b.id = quotes.booking_id").
		Where("b.homeowner_id = ?", homeownerID).
		Count(&o.QuotesReceived).Error; err != nil {
		return nil, err
	}

	projects := func(active bool) *gorm.DB {
		return db.Model(&models.Project{}).
			Joins("JOIN bookings b ON b.id = projects.booking_id").
			Where("b.homeowner_id = ? AND projects.is_active = ?", homeownerID, active)
	}
	if err := projects(true).Count(&o.ActiveProjects).Error; err != nil {
		return nil, err
	}
	if err := projects(false).Count(&o.CompletedProjects).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
