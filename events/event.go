package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	InviteCreated             = "invite.created"
	InviteAccepted            = "invite.accepted"
	InviteRejected            = "invite.rejected"
	QuoteSubmitted            = "quote.submitted"
	BookingBooked             = "booking.booked"
	ProjectCompletionSignaled = "project.completion_signaled"
	ProjectCompletionAccepted = "project.completion_accepted"
	ProjectCompletionRejected = "project.completion_rejected"
)

// Event is a booking lifecycle transition that already committed.
type Event struct {
	Key          string    `json:"key"`
	BookingID    uuid.UUID `json:"bookingId"`
	ContractorID uuid.UUID `json:"contractorId"`
	HomeownerID  uuid.UUID `json:"homeownerId"`
	OccurredAt   time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Fanout publishes to each publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
