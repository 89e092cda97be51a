package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"sitesync-backend/models"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	cacheKeyTree        = "catalog:tree"
	cacheKeyProfessions = "catalog:professions"
)

// CatalogCache keeps rendered catalog views. The catalog never changes after
// load so entries only expire by TTL or an explicit Delete after Load.
type CatalogCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type TreeLeaf struct {
	Quantity   string `json:"quantity"`
	Action     string `json:"action"`
	Profession string `json:"profession"`
}

// CatalogTree is area -> location -> category -> subcategory -> [{id: leaf}].
type CatalogTree map[string]map[string]map[string]map[string][]map[uint]TreeLeaf

type CatalogService struct {
	db     *gorm.DB
	logger *zap.Logger
	cache  CatalogCache
	ttl    time.Duration
}

func NewCatalogService(db *gorm.DB, logger *zap.Logger, cache CatalogCache, ttl time.Duration) *CatalogService {
	return &CatalogService{db: db, logger: logger, cache: cache, ttl: ttl}
}

// ParseDescriptor expands one descriptor line into unsaved work units.
func ParseDescriptor(line string) ([]models.WorkUnit, error) {
	if strings.Count(line, ":") != 1 {
		return nil, fmt.Errorf("expected exactly one ':'")
	}
	geo, rest, _ := strings.Cut(line, ":")
	if strings.Count(geo, "-") != 1 {
		return nil, fmt.Errorf("expected exactly one '-' in %q", geo)
	}
	if strings.Count(rest, "_") != 1 {
		return nil, fmt.Errorf("expected exactly one '_' after ':'")
	}
	categories, group, _ := strings.Cut(rest, "_")
	if strings.Count(categories, "/") != 1 {
		return nil, fmt.Errorf("expected exactly one '/' in %q", categories)
	}

	area, location, _ := strings.Cut(geo, "-")
	category, subcategory, _ := strings.Cut(categories, "/")
	head := []string{
		strings.TrimSpace(area),
		strings.TrimSpace(location),
		strings.TrimSpace(category),
		strings.TrimSpace(subcategory),
	}
	for _, f := range head {
		if f == "" {
			return nil, fmt.Errorf("empty area, location, category or subcategory")
		}
	}

	group = strings.TrimSpace(group)
	if len(group) < 2 || group[0] != '[' || group[len(group)-1] != ']' {
		return nil, fmt.Errorf("missing [...] action group")
	}

	var units []models.WorkUnit
	for _, triple := range strings.Split(group[1:len(group)-1], ",") {
		parts := strings.Split(triple, ".")
		if len(parts) != 3 {
			return nil, fmt.Errorf("action %q must have exactly three dot separated fields", strings.TrimSpace(triple))
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
			if parts[i] == "" {
				return nil, fmt.Errorf("action %q has an empty field", strings.TrimSpace(triple))
			}
		}
		units = append(units, models.WorkUnit{
			Area:        head[0],
			Location:    head[1],
			Category:    head[2],
			Subcategory: head[3],
			Action:      parts[0],
			Quantity:    parts[1],
			Profession:  parts[2],
		})
	}
	return units, nil
}

// Load parses every line before touching storage, then inserts all rows in
// one transaction so ids follow line order. Any bad or duplicate line aborts
// the whole load.
func (s *CatalogService) Load(ctx context.Context, lines []string) ([]models.WorkUnit, error) {
	ctx, span := tracer.Start(ctx, "catalog.Load")
	defer span.End()
	span.SetAttributes(attribute.Int("catalog.lines", len(lines)))

	var units []models.WorkUnit
	seen := make(map[string]int)
	for i, line := range lines {
		parsed, err := ParseDescriptor(line)
		if err != nil {
			return nil, validationError(fmt.Sprintf("catalog line %d is malformed", i+1), err)
		}
		for _, u := range parsed {
			digest := u.ComputeDigest()
			if first, ok := seen[digest]; ok {
				return nil, validationError(fmt.Sprintf("catalog line %d duplicates work unit %q from line %d", i+1, u.Describe(), first), nil)
			}
			seen[digest] = i + 1
			units = append(units, u)
		}
	}

	digests := make([]string, 0, len(seen))
	for d := range seen {
		digests = append(digests, d)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.WorkUnit
		if err := tx.Where("digest IN ?", digests).Limit(1).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			return validationError(fmt.Sprintf("catalog line %d duplicates stored work unit %q", seen[existing[0].Digest], existing[0].Describe()), nil)
		}
		for i := range units {
			if err := tx.Create(&units[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("catalog loaded", zap.Int("lines", len(lines)), zap.Int("units", len(units)))
	return units, nil
}

// Seed loads DefaultDescriptors into an empty catalog. It reports how many
// units were inserted.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.WorkUnit{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Debug("catalog already seeded", zap.Int64("units", count))
		return 0, nil
	}
	units, err := s.Load(ctx, DefaultDescriptors)
	if err != nil {
		return 0, err
	}
	return len(units), nil
}

func (s *CatalogService) All(ctx context.Context) ([]models.WorkUnit, error) {
	var units []models.WorkUnit
	err := s.db.WithContext(ctx).Order("id").Find(&units).Error
	return units, err
}

func (s *CatalogService) ByIDs(ctx context.Context, ids []uint) ([]models.WorkUnit, error) {
	return unitsByIDs(s.db.WithContext(ctx), ids)
}

func (s *CatalogService) ByActions(ctx context.Context, actions []string) ([]models.WorkUnit, error) {
	var units []models.WorkUnit
	if len(actions) == 0 {
		return units, nil
	}
	err := s.db.WithContext(ctx).Where("action IN ?", actions).Order("id").Find(&units).Error
	return units, err
}

func (s *CatalogService) ByProfessions(ctx context.Context, professions []string) ([]models.WorkUnit, error) {
	var units []models.WorkUnit
	if len(professions) == 0 {
		return units, nil
	}
	err := s.db.WithContext(ctx).Where("profession IN ?", professions).Order("id").Find(&units).Error
	return units, err
}

// Professions returns the distinct profession names in sorted order.
func (s *CatalogService) Professions(ctx context.Context) ([]string, error) {
	var names []string
	if s.cached(ctx, cacheKeyProfessions, &names) {
		return names, nil
	}
	if err := s.db.WithContext(ctx).Model(&models.WorkUnit{}).Distinct().Order("profession").Pluck("profession", &names).Error; err != nil {
		return nil, err
	}
	s.store(ctx, cacheKeyProfessions, names)
	return names, nil
}

func (s *CatalogService) UnitsForProfessions(ctx context.Context, names []string) ([]uint, error) {
	return unitIDsForProfessions(s.db.WithContext(ctx), names)
}

func (s *CatalogService) ProfessionsForUnits(ctx context.Context, ids []uint) ([]string, error) {
	return professionsForUnits(s.db.WithContext(ctx), ids)
}

func (s *CatalogService) Tree(ctx context.Context) (CatalogTree, error) {
	tree := CatalogTree{}
	if s.cached(ctx, cacheKeyTree, &tree) {
		return tree, nil
	}
	units, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	tree = BuildTree(units)
	s.store(ctx, cacheKeyTree, tree)
	return tree, nil
}

// BuildTree nests units in the order given.
func BuildTree(units []models.WorkUnit) CatalogTree {
	tree := CatalogTree{}
	for _, u := range units {
		locations, ok := tree[u.Area]
		if !ok {
			locations = map[string]map[string]map[string][]map[uint]TreeLeaf{}
			tree[u.Area] = locations
		}
		categories, ok := locations[u.Location]
		if !ok {
			categories = map[string]map[string][]map[uint]TreeLeaf{}
			locations[u.Location] = categories
		}
		subcategories, ok := categories[u.Category]
		if !ok {
			subcategories = map[string][]map[uint]TreeLeaf{}
			categories[u.Category] = subcategories
		}
		subcategories[u.Subcategory] = append(subcategories[u.Subcategory], map[uint]TreeLeaf{
			u.ID: {Quantity: u.Quantity, Action: u.Action, Profession: u.Profession},
		})
	}
	return tree
}

func (s *CatalogService) cached(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CatalogService) store(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(b), s.ttl); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyTree, cacheKeyProfessions); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

// The helpers below take a handle so they can run inside a caller's transaction.

func unitsByIDs(db *gorm.DB, ids []uint) ([]models.WorkUnit, error) {
	var units []models.WorkUnit
	if len(ids) == 0 {
		return units, nil
	}
	err := db.Where("id IN ?", ids).Order("id").Find(&units).Error
	return units, err
}

func unitIDsForProfessions(db *gorm.DB, names []string) ([]uint, error) {
	var ids []uint
	if len(names) == 0 {
		return ids, nil
	}
	err := db.Model(&models.WorkUnit{}).Where("profession IN ?", names).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func professionsForUnits(db *gorm.DB, ids []uint) ([]string, error) {
	var names []string
	if len(ids) == 0 {
		return names, nil
	}
	err := db.Model(&models.WorkUnit{}).Distinct().Where("id IN ?", ids).Order("profession").Pluck("profession", &names).Error
	return names, err
}

// unknownProfessions returns the names that no work unit carries.
func unknownProfessions(db *gorm.DB, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var known []string
	if err := db.Model(&models.WorkUnit{}).Distinct().Where("profession IN ?", names).Pluck("profession", &known).Error; err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(known))
	for _, k := range known {
		have[k] = struct{}{}
	}
	var missing []string
	for _, n := range names {
		if _, ok := have[n]; !ok {
			missing = append(missing, n)
		}
	}
	sort.Strings(missing)
	return missing, nil
}
