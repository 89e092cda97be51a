package services

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	_, svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Users.RegisterContractor(ctx, SignupInput{
		Email:     " Casey@Example.com ",
		Password:  "password123",
		Phone:     "+1 (404) 555-0100",
		FirstName: "Casey",
		LastName:  "Builder",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "casey@example.com" || user.Phone != "+14045550100" || user.Password == "password123" {
		t.Fatalf("unexpected stored user: %+v", user)
	}

	_, err = svc.Users.RegisterHomeowner(ctx, SignupInput{Email: "casey@example.com", Password: "password123", FirstName: "a", LastName: "b"})
	if !errors.Is(err, ErrEmailRegistered) {
		t.Fatalf("expected email registered, got %v", err)
	}
	_, err = svc.Users.RegisterHomeowner(ctx, SignupInput{Email: "x@example.com", Password: "password123", Phone: "call me", FirstName: "a", LastName: "b"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for phone, got %v", err)
	}

	if _, err := svc.Users.Authenticate(ctx, "casey@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Users.Authenticate(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	authed, err := svc.Users.Authenticate(ctx, "CASEY@example.com", "password123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID || authed.LastLogin == nil {
		t.Fatalf("unexpected authenticated user: %+v", authed)
	}

	profile, err := svc.Users.ContractorProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Contractor.FirstName != "Casey" || len(profile.Projects) != 0 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}
