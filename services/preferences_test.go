package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestReplacePreferencesIsIdempotent(t *testing.T) {
	_, svc, _ := newTestServices(t)
	ctx := context.Background()
	cid := registerContractor(t, svc, "idem@example.com", "")

	first, err := svc.Preferences.Replace(ctx, cid, []string{"30332", " 30332 ", "10001"}, []string{"Upholsterer", "Electrician", "Upholsterer"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	stored, err := svc.Preferences.Get(ctx, cid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	second, err := svc.Preferences.Replace(ctx, cid, []string{"10001", "30332"}, []string{"Electrician", "Upholsterer"})
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}
	again, err := svc.Preferences.Get(ctx, cid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if strings.Join(first.Areas, ",") != "10001,30332" || strings.Join(second.Areas, ",") != "10001,30332" {
		t.Fatalf("unexpected areas: %v then %v", first.Areas, second.Areas)
	}
	if strings.Join(first.Professions, ",") != "Electrician,Upholsterer" {
		t.Fatalf("unexpected professions: %v", first.Professions)
	}
	if len(stored.UnitIDs) == 0 || len(stored.UnitIDs) != len(again.UnitIDs) {
		t.Fatalf("unit sets differ: %d vs %d", len(stored.UnitIDs), len(again.UnitIDs))
	}
	for i := range stored.UnitIDs {
		if stored.UnitIDs[i] != again.UnitIDs[i] {
			t.Fatalf("unit sets differ at %d", i)
		}
	}

	expected, err := svc.Catalog.UnitsForProfessions(ctx, []string{"Electrician", "Upholsterer"})
	if err != nil {
		t.Fatalf("units for professions: %v", err)
	}
	if len(expected) != len(again.UnitIDs) {
		t.Fatalf("expected every unit of both professions, got %d of %d", len(again.UnitIDs), len(expected))
	}
}

func TestReplaceWithEmptySetsClears(t *testing.T) {
	_, svc, _ := newTestServices(t)
	ctx := context.Background()
	cid := registerContractor(t, svc, "clear@example.com", "")

	if _, err := svc.Preferences.Replace(ctx, cid, []string{"30332"}, []string{"Electrician"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	view, err := svc.Preferences.Replace(ctx, cid, nil, nil)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(view.Areas) != 0 || len(view.Professions) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
	prefs, err := svc.Preferences.Get(ctx, cid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(prefs.Areas) != 0 || len(prefs.UnitIDs) != 0 {
		t.Fatalf("preferences were not cleared: %+v", prefs)
	}
}

func TestReplaceRejectsUnknownProfession(t *testing.T) {
	_, svc, _ := newTestServices(t)
	ctx := context.Background()
	cid := registerContractor(t, svc, "unknown@example.com", "")

	if _, err := svc.Preferences.Replace(ctx, cid, []string{"30332"}, []string{"Electrician"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	_, err := svc.Preferences.Replace(ctx, cid, []string{"10001"}, []string{"Electrician", "Astronaut"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Astronaut") {
		t.Fatalf("error should name the profession: %v", err)
	}

	view, err := svc.Preferences.View(ctx, cid)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if strings.Join(view.Areas, ",") != "30332" || strings.Join(view.Professions, ",") != "Electrician" {
		t.Fatalf("failed replace changed preferences: %+v", view)
	}
}

func TestReplaceForUnknownContractor(t *testing.T) {
	_, svc, _ := newTestServices(t)

	_, err := svc.Preferences.Replace(context.Background(), uuid.New(), []string{"30332"}, nil)
	if !errors.Is(err, ErrContractorNotFound) {
		t.Fatalf("expected contractor not found, got %v", err)
	}
}
