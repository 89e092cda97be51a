package services

import (
	"context"
	"time"

	"sitesync-backend/events"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Logger    *zap.Logger
	Cache     CatalogCache
	CacheTTL  time.Duration
	Publisher events.Publisher
}

// Services bundles every domain service over one database handle.
type Services struct {
	Catalog     *CatalogService
	Preferences *PreferenceService
	Matching    *MatchingService
	Bookings    *BookingService
	Invites     *InviteService
	Quotes      *QuoteService
	Projects    *ProjectService
	Users       *UserService
	Dashboard   *DashboardService
}

func New(db *gorm.DB, opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.Nop{}
	}
	notifier := &notifier{publisher: publisher, logger: logger}

	catalog := NewCatalogService(db, logger, opts.Cache, opts.CacheTTL)

	return &Services{
		Catalog:     catalog,
		Preferences: NewPreferenceService(db, logger, catalog),
		Matching:    NewMatchingService(db, logger),
		Bookings:    NewBookingService(db, logger),
		Invites:     NewInviteService(db, logger, notifier),
		Quotes:      NewQuoteService(db, logger, notifier),
		Projects:    NewProjectService(db, logger, notifier),
		Users:       NewUserService(db, logger),
		Dashboard:   NewDashboardService(db, logger),
	}
}

// notifier publishes committed transitions. A failed publish is logged and
// never undoes the transition.
type notifier struct {
	publisher events.Publisher
	logger    *zap.Logger
}

func (n *notifier) notify(ctx context.Context, e events.Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if err := n.publisher.Publish(ctx, e); err != nil {
		n.logger.Warn("publish event failed",
			zap.String("event", e.Key),
			zap.String("booking_id", e.BookingID.String()),
			zap.Error(err),
		)
	}
}
