package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"sitesync-backend/models"

	"go.uber.org/zap"
)

func TestParseDescriptor(t *testing.T) {
	units, err := ParseDescriptor("Indoors-Living Room:Furniture/Couches_[Repair.Count.Furniture Repair Specialist, Maintenance . Count . Upholsterer]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	got := units[1]
	if got.Area != "Indoors" || got.Location != "Living Room" || got.Category != "Furniture" || got.Subcategory != "Couches" {
		t.Fatalf("unexpected head fields: %+v", got)
	}
	if got.Action != "Maintenance" || got.Quantity != "Count" || got.Profession != "Upholsterer" {
		t.Fatalf("fields were not trimmed: %+v", got)
	}
}

func TestParseDescriptorRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "no colon", line: "Indoors-Living Room Furniture/Couches_[Repair.Count.Upholsterer]"},
		{name: "two colons", line: "Indoors-Living:Room:Furniture/Couches_[Repair.Count.Upholsterer]"},
		{name: "two dashes", line: "Indoors-Living-Room:Furniture/Couches_[Repair.Count.Upholsterer]"},
		{name: "no underscore", line: "Indoors-Living Room:Furniture/Couches[Repair.Count.Upholsterer]"},
		{name: "no slash", line: "Indoors-Living Room:Furniture Couches_[Repair.Count.Upholsterer]"},
		{name: "missing brackets", line: "Indoors-Living Room:Furniture/Couches_Repair.Count.Upholsterer"},
		{name: "two part action", line: "Indoors-Living Room:Furniture/Couches_[Repair.Count]"},
		{name: "four part action", line: "Indoors-Living Room:Furniture/Couches_[Repair.Count.Up.holsterer]"},
		{name: "empty area", line: " -Living Room:Furniture/Couches_[Repair.Count.Upholsterer]"},
		{name: "empty action field", line: "Indoors-Living Room:Furniture/Couches_[Repair..Upholsterer]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDescriptor(tt.line); err == nil {
				t.Fatalf("expected %q to be rejected", tt.line)
			}
		})
	}
}

func TestDefaultDescriptorsParse(t *testing.T) {
	var total int
	digests := map[string]bool{}
	for i, line := range DefaultDescriptors {
		units, err := ParseDescriptor(line)
		if err != nil {
			t.Fatalf("line %d: %v", i+1, err)
		}
		for _, u := range units {
			d := u.ComputeDigest()
			if digests[d] {
				t.Fatalf("line %d repeats %s", i+1, u.Describe())
			}
			digests[d] = true
		}
		total += len(units)
	}
	if len(DefaultDescriptors) != 75 || total != 275 {
		t.Fatalf("expected 75 lines and 275 units, got %d and %d", len(DefaultDescriptors), total)
	}
}

func TestSeedAssignsIDsInLoadOrder(t *testing.T) {
	_, svc, _ := newTestServices(t)
	ctx := context.Background()

	units, err := svc.Catalog.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(units) != 275 {
		t.Fatalf("expected 275 units, got %d", len(units))
	}
	for i, u := range units {
		if u.ID != uint(i+1) {
			t.Fatalf("unit %d has id %d", i, u.ID)
		}
	}
	if u := units[4]; u.Subcategory != "Chairs" || u.Action != "Replacement" {
		t.Fatalf("unexpected unit 5: %s", u.Describe())
	}

	n, err := svc.Catalog.Seed(ctx)
	if err != nil || n != 0 {
		t.Fatalf("second seed should be a no-op, got %d, %v", n, err)
	}

	professions, err := svc.Catalog.Professions(ctx)
	if err != nil {
		t.Fatalf("professions: %v", err)
	}
	if len(professions) != 22 {
		t.Fatalf("expected 22 professions, got %d", len(professions))
	}
}

func TestLoadIsDeterministic(t *testing.T) {
	lines := DefaultDescriptors[:5]
	var first []string
	for run := 0; run < 2; run++ {
		svc := New(newTestDB(t), Options{Logger: zap.NewNop()})
		units, err := svc.Catalog.Load(context.Background(), lines)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		var got []string
		for _, u := range units {
			got = append(got, strconv.Itoa(int(u.ID))+"#"+u.Describe()+"#"+u.Profession)
		}
		if run == 0 {
			first = got
			continue
		}
		if strings.Join(first, "|") != strings.Join(got, "|") {
			t.Fatalf("load order differs between runs")
		}
	}
}

func TestLoadRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := New(db, Options{Logger: zap.NewNop()})
	ctx := context.Background()

	_, err := svc.Catalog.Load(ctx, []string{DefaultDescriptors[0], DefaultDescriptors[1], DefaultDescriptors[0]})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var count int64
	db.Model(&models.WorkUnit{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed load stored %d units", count)
	}

	if _, err := svc.Catalog.Load(ctx, DefaultDescriptors[:2]); err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err = svc.Catalog.Load(ctx, []string{DefaultDescriptors[2], DefaultDescriptors[1]})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for a stored unit, got %v", err)
	}
	db.Model(&models.WorkUnit{}).Count(&count)
	if count != 6 {
		t.Fatalf("expected the first load's 6 units only, got %d", count)
	}
}

func TestLoadRejectsMalformedLineAtomically(t *testing.T) {
	db := newTestDB(t)
	svc := New(db, Options{Logger: zap.NewNop()})

	_, err := svc.Catalog.Load(context.Background(), []string{DefaultDescriptors[0], "not a descriptor"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the line: %v", err)
	}
	var count int64
	db.Model(&models.WorkUnit{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected nothing stored, got %d", count)
	}
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	hits    int
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if ok {
		m.hits++
	}
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func TestTreeIsCached(t *testing.T) {
	cache := &memoryCache{entries: map[string]string{}}
	svc := New(newTestDB(t), Options{Logger: zap.NewNop(), Cache: cache, CacheTTL: time.Minute})
	ctx := context.Background()

	if _, err := svc.Catalog.Load(ctx, DefaultDescriptors[:1]); err != nil {
		t.Fatalf("load: %v", err)
	}
	tree, err := svc.Catalog.Tree(ctx)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	leaves := tree["Indoors"]["Living Room"]["Furniture"]["Couches"]
	if len(leaves) != 3 || leaves[2][3].Profession != "Upholsterer" {
		t.Fatalf("unexpected leaves: %+v", leaves)
	}
	if _, ok := cache.entries[cacheKeyTree]; !ok {
		t.Fatalf("tree was not cached")
	}

	again, err := svc.Catalog.Tree(ctx)
	if err != nil {
		t.Fatalf("cached tree: %v", err)
	}
	if cache.hits != 1 || len(again["Indoors"]["Living Room"]["Furniture"]["Couches"]) != 3 {
		t.Fatalf("expected the second read to come from cache")
	}

	if _, err := svc.Catalog.Load(ctx, DefaultDescriptors[1:2]); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := cache.entries[cacheKeyTree]; ok {
		t.Fatalf("load should invalidate the cached tree")
	}
}

func TestByActions(t *testing.T) {
	_, svc, _ := newTestServices(t)
	ctx := context.Background()

	units, err := svc.Catalog.ByActions(ctx, []string{"Replacement"})
	if err != nil {
		t.Fatalf("by actions: %v", err)
	}
	if len(units) == 0 || units[0].ID != 2 {
		t.Fatalf("expected unit 2 first, got %+v", units)
	}
	for _, u := range units {
		if u.Action != "Replacement" {
			t.Fatalf("unexpected unit %s", u.Describe())
		}
	}

	units, err = svc.Catalog.ByActions(ctx, nil)
	if err != nil || len(units) != 0 {
		t.Fatalf("expected no units for no actions, got %d, %v", len(units), err)
	}
}
