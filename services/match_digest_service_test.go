package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sitesync-backend/models"

	"go.uber.org/zap"
)

type stubSender struct {
	mu   sync.Mutex
	fail map[string]bool
	sent []string
}

func (s *stubSender) Channel() string { return "sms" }

func (s *stubSender) Send(to, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[to] {
		return "", errors.New("carrier rejected the number")
	}
	s.sent = append(s.sent, to)
	return "SM" + to, nil
}

func TestSendDigestNotifiesEachContractorOnce(t *testing.T) {
	db, svc, _ := newTestServices(t)
	ctx := context.Background()

	hid := registerHomeowner(t, svc, "owner@example.com")
	a := registerContractor(t, svc, "a@example.com", "+14045550100")
	d := registerContractor(t, svc, "d@example.com", "+14045550101")
	silent := registerContractor(t, svc, "silent@example.com", "")
	setUnitPreferences(t, db, a, "30332", 5, 9)
	setUnitPreferences(t, db, d, "30332", 5, 9)
	setUnitPreferences(t, db, silent, "30332", 5, 9)
	createBooking(t, svc, hid, "30332", 5, 9)

	sender := &stubSender{fail: map[string]bool{"+14045550101": true}}
	digest := NewMatchDigestService(db, zap.NewNop(), svc, sender, 24*time.Hour)

	report, err := digest.SendDigest(ctx)
	if err != nil {
		t.Fatalf("send digest: %v", err)
	}
	if report.Bookings != 1 || report.Sent != 1 || report.Failed != 1 || report.Skipped != 1 {
		t.Fatalf("unexpected first report: %+v", report)
	}

	var failed models.NotificationLog
	if err := db.Where("contractor_id = ?", d).First(&failed).Error; err != nil {
		t.Fatalf("failed delivery not logged: %v", err)
	}
	if failed.Status != models.NotificationFailed || failed.ErrorMessage == "" {
		t.Fatalf("unexpected log entry: %+v", failed)
	}

	delete(sender.fail, "+14045550101")
	report, err = digest.SendDigest(ctx)
	if err != nil {
		t.Fatalf("second digest: %v", err)
	}
	if report.Sent != 1 || report.Failed != 0 || report.Skipped != 2 {
		t.Fatalf("expected only the failed delivery to be retried, got %+v", report)
	}

	var logs int64
	db.Model(&models.NotificationLog{}).Count(&logs)
	if logs != 2 {
		t.Fatalf("expected one log row per contractor, got %d", logs)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected two deliveries in total, got %v", sender.sent)
	}
}

func TestSendDigestSkipsOldBookings(t *testing.T) {
	db, svc, _ := newTestServices(t)
	hid := registerHomeowner(t, svc, "owner@example.com")
	a := registerContractor(t, svc, "a@example.com", "+14045550100")
	setUnitPreferences(t, db, a, "30332", 5)
	createBooking(t, svc, hid, "30332", 5)

	sender := &stubSender{}
	digest := NewMatchDigestService(db, zap.NewNop(), svc, sender, time.Hour)
	digest.now = func() time.Time { return time.Now().Add(72 * time.Hour) }

	report, err := digest.SendDigest(context.Background())
	if err != nil {
		t.Fatalf("send digest: %v", err)
	}
	if report.Bookings != 0 || len(sender.sent) != 0 {
		t.Fatalf("expected no bookings in the window, got %+v", report)
	}
}
