package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"sitesync-backend/events"
	"sitesync-backend/models"
	"sitesync-backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.Key)
	}
	return keys
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestServices returns services over a fresh database holding the
// built-in catalog.
func newTestServices(t *testing.T) (*gorm.DB, *Services, *recordingPublisher) {
	t.Helper()
	utils.BcryptCost = bcrypt.MinCost

	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := New(db, Options{Logger: zap.NewNop(), Publisher: pub})
	if _, err := svc.Catalog.Seed(context.Background()); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return db, svc, pub
}

func registerContractor(t *testing.T, svc *Services, email, phone string) uuid.UUID {
	t.Helper()
	user, err := svc.Users.RegisterContractor(context.Background(), SignupInput{
		Email:     email,
		Password:  "password123",
		Phone:     phone,
		FirstName: "Casey",
		LastName:  "Builder",
	})
	if err != nil {
		t.Fatalf("register contractor %s: %v", email, err)
	}
	return user.ID
}

func registerHomeowner(t *testing.T, svc *Services, email string) uuid.UUID {
	t.Helper()
	user, err := svc.Users.RegisterHomeowner(context.Background(), SignupInput{
		Email:     email,
		Password:  "password123",
		FirstName: "Harper",
		LastName:  "Owner",
	})
	if err != nil {
		t.Fatalf("register homeowner %s: %v", email, err)
	}
	return user.ID
}

// setUnitPreferences stores raw preferences, bypassing profession expansion.
func setUnitPreferences(t *testing.T, db *gorm.DB, contractorID uuid.UUID, area string, units ...uint) {
	t.Helper()
	if err := db.Create(&models.ContractorAreaPreference{Area: area, ContractorID: contractorID}).Error; err != nil {
		t.Fatalf("area preference: %v", err)
	}
	for _, u := range units {
		if err := db.Create(&models.ContractorUnitPreference{WorkUnitID: u, ContractorID: contractorID}).Error; err != nil {
			t.Fatalf("unit preference %d: %v", u, err)
		}
	}
}

func createBooking(t *testing.T, svc *Services, homeownerID uuid.UUID, zipcode string, units ...uint) *BookingDetail {
	t.Helper()
	input := BookingInput{Title: "Living room refresh", Zipcode: zipcode, Address: "1 Tech Way"}
	for _, u := range units {
		input.Units = append(input.Units, BookingUnitInput{WorkUnitID: u, Quantity: 2})
	}
	detail, err := svc.Bookings.Create(context.Background(), homeownerID, input)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return detail
}
