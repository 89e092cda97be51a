package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"sitesync-backend/models"
	"sitesync-backend/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preferences is the stored shape: areas plus work unit ids.
type Preferences struct {
	ContractorID uuid.UUID `json:"contractorId"`
	Areas        []string  `json:"areas"`
	UnitIDs      []uint    `json:"unitIds"`
}

// PreferenceView shows units translated back to profession names.
type PreferenceView struct {
	ContractorID uuid.UUID `json:"contractorId"`
	Areas        []string  `json:"areas"`
	Professions  []string  `json:"professions"`
}

type PreferenceService struct {
	db      *gorm.DB
	logger  *zap.Logger
	catalog *CatalogService
}

func NewPreferenceService(db *gorm.DB, logger *zap.Logger, catalog *CatalogService) *PreferenceService {
	return &PreferenceService{db: db, logger: logger, catalog: catalog}
}

func (s *PreferenceService) Get(ctx context.Context, contractorID uuid.UUID) (*Preferences, error) {
	var prefs *Preferences
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureContractor(tx, contractorID); err != nil {
			return err
		}
		var err error
		prefs, err = loadPreferences(tx, contractorID)
		return err
	})
	return prefs, err
}

func (s *PreferenceService) View(ctx context.Context, contractorID uuid.UUID) (*PreferenceView, error) {
	var view *PreferenceView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureContractor(tx, contractorID); err != nil {
			return err
		}
		var err error
		view, err = viewPreferences(tx, contractorID)
		return err
	})
	return view, err
}

// Replace overwrites both preference sets. Unknown professions fail the call
// and leave the stored preferences untouched.
func (s *PreferenceService) Replace(ctx context.Context, contractorID uuid.UUID, areas, professions []string) (*PreferenceView, error) {
	ctx, span := tracer.Start(ctx, "preferences.Replace")
	defer span.End()
	span.SetAttributes(
		attribute.String("contractor.id", contractorID.String()),
		attribute.Int("preferences.areas", len(areas)),
		attribute.Int("preferences.professions", len(professions)),
	)

	areas = dedupe(areas, utils.NormalizeZipcode)
	professions = dedupe(professions, strings.TrimSpace)

	var view *PreferenceView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockContractor(tx, contractorID, "UPDATE"); err != nil {
			return err
		}

		missing, err := unknownProfessions(tx, professions)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return validationError(fmt.Sprintf("Unknown professions: %s", strings.Join(missing, ", ")), nil)
		}

		unitIDs, err := unitIDsForProfessions(tx, professions)
		if err != nil {
			return err
		}

		if err := tx.Where("contractor_id = ?", contractorID).Delete(&models.ContractorAreaPreference{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contractor_id = ?", contractorID).Delete(&models.ContractorUnitPreference{}).Error; err != nil {
			return err
		}

		if len(areas) > 0 {
			rows := make([]models.ContractorAreaPreference, 0, len(areas))
			for _, a := range areas {
				rows = append(rows, models.ContractorAreaPreference{Area: a, ContractorID: contractorID})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if ids := newUnitSet(unitIDs).sorted(); len(ids) > 0 {
			rows := make([]models.ContractorUnitPreference, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, models.ContractorUnitPreference{WorkUnitID: id, ContractorID: contractorID})
			}
			if err := tx.CreateInBatches(&rows, 200).Error; err != nil {
				return err
			}
		}

		view, err = viewPreferences(tx, contractorID)
		return err
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.logger.Info("contractor preferences replaced",
		zap.String("contractor_id", contractorID.String()),
		zap.Int("areas", len(view.Areas)),
		zap.Int("professions", len(view.Professions)),
	)
	return view, nil
}

func ensureContractor(db *gorm.DB, contractorID uuid.UUID) error {
	var contractor models.Contractor
	if err := db.Select("id").First(&contractor, "id = ?", contractorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContractorNotFound
		}
		return err
	}
	return nil
}

// lockContractor locks the contractor row. Replace takes it for UPDATE and
// the invite gate for SHARE, so a gate never reads half of a replacement.
func lockContractor(tx *gorm.DB, contractorID uuid.UUID, strength string) error {
	var contractor models.Contractor
	if err := tx.Clauses(clause.Locking{Strength: strength}).Select("id").First(&contractor, "id = ?", contractorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContractorNotFound
		}
		return err
	}
	return nil
}

func loadPreferences(db *gorm.DB, contractorID uuid.UUID) (*Preferences, error) {
	prefs := &Preferences{ContractorID: contractorID, Areas: []string{}, UnitIDs: []uint{}}
	if err := db.Model(&models.ContractorAreaPreference{}).Where("contractor_id = ?", contractorID).Order("area").Pluck("area", &prefs.Areas).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ContractorUnitPreference{}).Where("contractor_id = ?", contractorID).Order("work_unit_id").Pluck("work_unit_id", &prefs.UnitIDs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func viewPreferences(db *gorm.DB, contractorID uuid.UUID) (*PreferenceView, error) {
	prefs, err := loadPreferences(db, contractorID)
	if err != nil {
		return nil, err
	}
	professions, err := professionsForUnits(db, prefs.UnitIDs)
	if err != nil {
		return nil, err
	}
	if professions == nil {
		professions = []string{}
	}
	return &PreferenceView{ContractorID: contractorID, Areas: prefs.Areas, Professions: professions}, nil
}

// dedupe normalizes values and returns the distinct non-empty ones sorted.
func dedupe(values []string, normalize func(string) string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = normalize(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
