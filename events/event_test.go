package events

import (
	"context"
	"errors"
	"testing"
)

type countingPublisher struct {
	calls int
	err   error
}

func (p *countingPublisher) Publish(context.Context, Event) error {
	p.calls++
	return p.err
}

func TestFanoutPublishesToEveryPublisher(t *testing.T) {
	boom := errors.New("broker down")
	first := &countingPublisher{}
	failing := &countingPublisher{err: boom}
	last := &countingPublisher{}

	err := Fanout{first, nil, failing, last}.Publish(context.Background(), Event{Key: InviteCreated})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the broker error, got %v", err)
	}
	if first.calls != 1 || failing.calls != 1 || last.calls != 1 {
		t.Fatalf("a failing publisher must not stop the others: %d %d %d", first.calls, failing.calls, last.calls)
	}

	if err := (Fanout{first, Nop{}}).Publish(context.Background(), Event{Key: InviteAccepted}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
