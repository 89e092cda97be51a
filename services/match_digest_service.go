// services/match_digest_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"sitesync-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageSender delivers one text message and returns the provider's id.
type MessageSender interface {
	Channel() string
	Send(to, body string) (string, error)
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSid, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioSender) Channel() string { return "sms" }

func (t *TwilioSender) Send(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}

// LogSender only logs messages. It is used when no SMS provider is configured.
type LogSender struct {
	Logger *zap.Logger
}

func (l LogSender) Channel() string { return "log" }

func (l LogSender) Send(to, body string) (string, error) {
	l.Logger.Info("match digest message", zap.String("to", to), zap.String("body", body))
	return "", nil
}

type DigestReport struct {
	Bookings int `json:"bookings"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// MatchDigestService tells contractors about fresh open bookings they could
// be invited to. Each (booking, contractor) pair is messaged at most once
// per channel; failed deliveries are retried on the next run.
type MatchDigestService struct {
	db       *gorm.DB
	logger   *zap.Logger
	matching *MatchingService
	bookings *BookingService
	sender   MessageSender
	lookback time.Duration
	now      func() time.Time
}

func NewMatchDigestService(db *gorm.DB, logger *zap.Logger, svc *Services, sender MessageSender, lookback time.Duration) *MatchDigestService {
	if sender == nil {
		sender = LogSender{Logger: logger}
	}
	return &MatchDigestService{
		db:       db,
		logger:   logger,
		matching: svc.Matching,
		bookings: svc.Bookings,
		sender:   sender,
		lookback: lookback,
		now:      time.Now,
	}
}

func (s *MatchDigestService) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.SendDigest(ctx); err != nil {
			s.logger.Error("match digest failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule match digest %q: %w", spec, err)
	}
	c.Start()
	s.logger.Info("match digest scheduler started", zap.String("spec", spec), zap.String("channel", s.sender.Channel()))
	return c, nil
}

func (s *MatchDigestService) SendDigest(ctx context.Context) (DigestReport, error) {
	var report DigestReport
	s.logger.Info("starting match digest")

	bookings, err := s.bookings.OpenSince(ctx, s.now().Add(-s.lookback))
	if err != nil {
		return report, fmt.Errorf("fetch open bookings: %w", err)
	}
	report.Bookings = len(bookings)

	for _, booking := range bookings {
		matches, err := s.matching.BookingToContractors(ctx, booking.ID)
		if err != nil {
			s.logger.Warn("match digest: matching failed", zap.String("booking_id", booking.ID.String()), zap.Error(err))
			continue
		}
		if len(matches) == 0 {
			continue
		}

		ids := make([]uuid.UUID, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.Contractor.ID)
		}
		phones, notified, err := s.targets(ctx, booking.ID, ids)
		if err != nil {
			return report, err
		}

		for _, m := range matches {
			cid := m.Contractor.ID
			if notified[cid] {
				report.Skipped++
				continue
			}
			phone := phones[cid]
			if phone == "" {
				report.Skipped++
				continue
			}

			message := fmt.Sprintf("Hi %s, a new booking \"%s\" in %s matches your services. Open SiteSync to view it.",
				m.Contractor.FirstName, booking.Title, booking.Zipcode)
			externalID, sendErr := s.sender.Send(phone, message)

			entry := models.NotificationLog{
				BookingID:    booking.ID,
				ContractorID: cid,
				Channel:      s.sender.Channel(),
				Recipient:    phone,
				Message:      message,
				Status:       models.NotificationSent,
				ExternalID:   externalID,
				SentAt:       s.now(),
			}
			if sendErr != nil {
				s.logger.Warn("match digest: send failed", zap.String("contractor_id", cid.String()), zap.Error(sendErr))
				entry.Status = models.NotificationFailed
				entry.ErrorMessage = sendErr.Error()
				report.Failed++
			} else {
				report.Sent++
			}

			if err := s.record(ctx, &entry); err != nil {
				s.logger.Error("match digest: failed to log notification",
					zap.String("booking_id", booking.ID.String()),
					zap.String("contractor_id", cid.String()),
					zap.Error(err),
				)
			}
		}
	}

	s.logger.Info("match digest completed",
		zap.Int("bookings", report.Bookings),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// targets returns contractor phone numbers and which contractors already
// received this booking on the current channel.
func (s *MatchDigestService) targets(ctx context.Context, bookingID uuid.UUID, contractorIDs []uuid.UUID) (map[uuid.UUID]string, map[uuid.UUID]bool, error) {
	db := s.db.WithContext(ctx)

	var users []models.User
	if err := db.Select("id", "phone").Where("id IN ? AND is_active = ?", contractorIDs, true).Find(&users).Error; err != nil {
		return nil, nil, fmt.Errorf("fetch contractor phones: %w", err)
	}
	phones := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		phones[u.ID] = u.Phone
	}

	var sent []uuid.UUID
	if err := db.Model(&models.NotificationLog{}).
		Where("booking_id = ? AND channel = ? AND status = ?", bookingID, s.sender.Channel(), models.NotificationSent).
		Pluck("contractor_id", &sent).Error; err != nil {
		return nil, nil, fmt.Errorf("fetch notification log: %w", err)
	}
	notified := make(map[uuid.UUID]bool, len(sent))
	for _, id := range sent {
		notified[id] = true
	}
	return phones, notified, nil
}

// record inserts the log entry or overwrites an earlier failed attempt.
func (s *MatchDigestService) record(ctx context.Context, entry *models.NotificationLog) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "booking_id"}, {Name: "contractor_id"}, {Name: "channel"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"recipient", "message", "status", "error_message", "external_id", "sent_at", "updated_at",
		}),
	}).Create(entry).Error
}
