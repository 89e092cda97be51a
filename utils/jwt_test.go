package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGenerateAndParseToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateToken(id, "contractor", "c@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Sub != id.String() || claims.Role != "contractor" || claims.Email != "c@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := NewJWTManager("other-secret", time.Hour).Parse(token); err == nil {
		t.Fatalf("expected a foreign signature to be rejected")
	}
	expired, _ := NewJWTManager("test-secret", -time.Minute).GenerateToken(id, "contractor", "c@example.com")
	if _, err := m.Parse(expired); err == nil {
		t.Fatalf("expected an expired token to be rejected")
	}
	if _, err := NewJWTManager("", time.Hour).GenerateToken(id, "contractor", ""); err == nil {
		t.Fatalf("expected an empty secret to be refused")
	}
}

func TestAuthMiddleware(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	id := uuid.New()
	token, err := m.GenerateToken(id, "homeowner", "h@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	r := gin.New()
	r.GET("/me", m.AuthMiddleware(), RequireRole("homeowner"), func(c *gin.Context) {
		got, ok := CurrentUserID(c)
		if !ok || got != id || CurrentRole(c) != "homeowner" {
			c.Status(http.StatusTeapot)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/contractors-only", m.AuthMiddleware(), RequireRole("contractor"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		path   string
		setup  func(*http.Request)
		status int
	}{
		{name: "bearer header", path: "/me", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, status: http.StatusOK},
		{name: "cookie", path: "/me", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: token}) }, status: http.StatusOK},
		{name: "query", path: "/me?token=" + token, setup: func(*http.Request) {}, status: http.StatusOK},
		{name: "missing", path: "/me", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "garbage", path: "/me", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, status: http.StatusUnauthorized},
		{name: "wrong role", path: "/contractors-only", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}
