package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sitesync-backend/config"
	"sitesync-backend/events"
	"sitesync-backend/models"
	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.BcryptCost = bcrypt.MinCost

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := zap.NewNop()
	hub := events.NewHub(log, nil)
	svc := services.New(db, services.Options{Logger: log, Publisher: hub})
	if _, err := svc.Catalog.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	router := SetupRouter(Options{
		Config:   &config.Config{Env: "test", CORSOrigins: "*", JWTExpiryHours: 1},
		Logger:   log,
		Services: svc,
		JWT:      utils.NewJWTManager("test-secret", time.Hour),
		Hub:      hub,
	})
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) expect(w *httptest.ResponseRecorder, status int, out interface{}) {
	a.t.Helper()
	if w.Code != status {
		a.t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			a.t.Fatalf("decode %s: %v", w.Body.String(), err)
		}
	}
}

type signupResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID uuid.UUID `json:"id"`
	} `json:"user"`
}

func (a *testAPI) signup(role, email string) signupResponse {
	a.t.Helper()
	var resp signupResponse
	a.expect(a.do(http.MethodPost, "/auth/"+role+"/signup", "", gin.H{
		"email":     email,
		"password":  "password123",
		"firstName": "Sam",
		"lastName":  "Doe",
	}), http.StatusCreated, &resp)
	return resp
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	api.expect(api.do(http.MethodGet, "/health", "", nil), http.StatusOK, nil)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)
	created := api.signup("homeowner", "owner@example.com")

	api.expect(api.do(http.MethodPost, "/auth/homeowner/signup", "", gin.H{
		"email": "owner@example.com", "password": "password123", "firstName": "a", "lastName": "b",
	}), http.StatusConflict, nil)
	api.expect(api.do(http.MethodPost, "/auth/token", "", gin.H{"email": "owner@example.com", "password": "nope-nope"}), http.StatusUnauthorized, nil)

	var login signupResponse
	api.expect(api.do(http.MethodPost, "/auth/token", "", gin.H{"email": "owner@example.com", "password": "password123"}), http.StatusOK, &login)
	if login.User.ID != created.User.ID || login.AccessToken == "" {
		t.Fatalf("unexpected login: %+v", login)
	}

	var me struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	api.expect(api.do(http.MethodGet, "/auth/me", login.AccessToken, nil), http.StatusOK, &me)
	if me.User.Role != models.RoleHomeowner {
		t.Fatalf("unexpected role: %s", me.User.Role)
	}
	api.expect(api.do(http.MethodGet, "/auth/me", "", nil), http.StatusUnauthorized, nil)
}

func TestBookingToProjectOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	owner := api.signup("homeowner", "owner@example.com")
	pro := api.signup("contractor", "pro@example.com")
	other := api.signup("contractor", "other@example.com")

	var professions struct {
		Professions []string `json:"professions"`
	}
	api.expect(api.do(http.MethodGet, "/api/professions", pro.AccessToken, nil), http.StatusOK, &professions)
	if len(professions.Professions) != 22 {
		t.Fatalf("expected 22 professions, got %d", len(professions.Professions))
	}

	api.expect(api.do(http.MethodPost, "/api/search", owner.AccessToken, gin.H{"professions": []string{"Electrician"}, "area": "30332"}), http.StatusNoContent, nil)
	api.expect(api.do(http.MethodPost, "/api/contractor/preferences", owner.AccessToken, gin.H{"areas": []string{"30332"}}), http.StatusForbidden, nil)
	api.expect(api.do(http.MethodPost, "/api/contractor/preferences", pro.AccessToken, gin.H{"areas": []string{"30332"}, "professions": []string{"Furniture Repair Specialist"}}), http.StatusOK, nil)
	api.expect(api.do(http.MethodPost, "/api/contractor/preferences", pro.AccessToken, gin.H{"professions": []string{"Astronaut"}}), http.StatusBadRequest, nil)

	var search []services.ContractorMatch
	api.expect(api.do(http.MethodPost, "/api/search", owner.AccessToken, gin.H{"professions": []string{"Furniture Repair Specialist"}, "area": "30332"}), http.StatusOK, &search)
	if len(search) != 1 || search[0].Contractor.ID != pro.User.ID {
		t.Fatalf("unexpected search result: %+v", search)
	}

	api.expect(api.do(http.MethodGet, "/api/homeowner/bookings", owner.AccessToken, nil), http.StatusNoContent, nil)
	api.expect(api.do(http.MethodPost, "/api/homeowner/booking", owner.AccessToken, gin.H{
		"title": "Chairs", "zipcode": "30332", "address": "1 Tech Way", "units": []gin.H{},
	}), http.StatusBadRequest, nil)

	// unit 1 is a couch repair, unit 5 a chair replacement
	var booking services.BookingDetail
	api.expect(api.do(http.MethodPost, "/api/homeowner/booking", owner.AccessToken, gin.H{
		"title": "Chairs", "zipcode": "30332", "address": "1 Tech Way",
		"units": []gin.H{{"workUnitId": 1, "quantity": 2}, {"workUnitId": 5}},
	}), http.StatusCreated, &booking)
	bid := booking.Booking.ID

	var contractors []services.ContractorMatch
	api.expect(api.do(http.MethodGet, fmt.Sprintf("/api/homeowner/booking/%s/search", bid), owner.AccessToken, nil), http.StatusOK, &contractors)
	if len(contractors) != 1 {
		t.Fatalf("expected one matching contractor, got %d", len(contractors))
	}

	invitePath := fmt.Sprintf("/api/booking/%s/invite/%s", bid, pro.User.ID)
	api.expect(api.do(http.MethodGet, invitePath, owner.AccessToken, nil), http.StatusNoContent, nil)

	invite := gin.H{"bookingId": bid, "contractorId": pro.User.ID}
	api.expect(api.do(http.MethodPost, "/api/homeowner/booking/invite", owner.AccessToken, invite), http.StatusCreated, nil)
	api.expect(api.do(http.MethodPost, "/api/homeowner/booking/invite", owner.AccessToken, invite), http.StatusConflict, nil)
	api.expect(api.do(http.MethodPost, "/api/homeowner/booking/invite", owner.AccessToken, gin.H{"bookingId": bid, "contractorId": other.User.ID}), http.StatusUnprocessableEntity, nil)
	api.expect(api.do(http.MethodGet, invitePath, pro.AccessToken, nil), http.StatusOK, nil)

	var pending []services.InviteView
	api.expect(api.do(http.MethodGet, "/api/contractor/invites", pro.AccessToken, nil), http.StatusOK, &pending)
	if len(pending) != 1 || len(pending[0].Booking.Units) != 2 {
		t.Fatalf("unexpected pending invites: %+v", pending)
	}

	api.expect(api.do(http.MethodPost, fmt.Sprintf("/api/contractor/booking/%s/accept", bid), pro.AccessToken, nil), http.StatusOK, nil)
	api.expect(api.do(http.MethodPost, fmt.Sprintf("/api/contractor/booking/%s/accept", bid), pro.AccessToken, nil), http.StatusConflict, nil)

	api.expect(api.do(http.MethodPost, fmt.Sprintf("/api/contractor/booking/%s/quote", bid), pro.AccessToken, gin.H{
		"items": []gin.H{{"bookingUnitId": booking.Units[0].ID, "workHours": 2.5, "workRate": 40}},
	}), http.StatusCreated, nil)

	quotePath := fmt.Sprintf("/api/homeowner/booking/%s/quote/%s", bid, pro.User.ID)
	api.expect(api.do(http.MethodGet, quotePath, owner.AccessToken, nil), http.StatusOK, nil)
	api.expect(api.do(http.MethodPost, quotePath+"/accept", owner.AccessToken, nil), http.StatusCreated, nil)
	api.expect(api.do(http.MethodPost, quotePath+"/accept", owner.AccessToken, nil), http.StatusNotFound, nil)

	completePath := fmt.Sprintf("/api/homeowner/project/%s/complete", bid)
	api.expect(api.do(http.MethodPost, completePath+"/accept", owner.AccessToken, gin.H{"isPublic": true}), http.StatusConflict, nil)
	api.expect(api.do(http.MethodPost, fmt.Sprintf("/api/contractor/project/%s/complete", bid), pro.AccessToken, nil), http.StatusOK, nil)

	var project models.Project
	api.expect(api.do(http.MethodPost, completePath+"/accept", owner.AccessToken, gin.H{"isPublic": true}), http.StatusOK, &project)
	if project.IsActive || !project.IsPublic {
		t.Fatalf("unexpected project: %+v", project)
	}

	var profile services.ContractorProfile
	api.expect(api.do(http.MethodGet, fmt.Sprintf("/api/contractors/%s/public", pro.User.ID), owner.AccessToken, nil), http.StatusOK, &profile)
	if len(profile.Projects) != 1 {
		t.Fatalf("expected the public project on the profile, got %d", len(profile.Projects))
	}

	var overview services.HomeownerOverview
	api.expect(api.do(http.MethodGet, "/api/dashboard", owner.AccessToken, nil), http.StatusOK, &overview)
	if overview.CompletedProjects != 1 || overview.OpenBookings != 0 {
		t.Fatalf("unexpected overview: %+v", overview)
	}

	api.expect(api.do(http.MethodGet, "/api/contractors/not-a-uuid/public", owner.AccessToken, nil), http.StatusBadRequest, nil)
}
