package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"sitesync-backend/models"
	"sitesync-backend/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContractorMatch is a contractor with its full preference lists, not only
// the part that matched.
type ContractorMatch struct {
	Contractor  models.Contractor `json:"contractor"`
	Professions []string          `json:"professions"`
	Areas       []string          `json:"areas"`
}

// BookingMatch is an open booking the contractor can take on. AreaCovered
// tells whether the contractor also serves the booking's zipcode.
type BookingMatch struct {
	BookingDetail
	AreaCovered bool `json:"areaCovered"`
}

// PairMatch confirms that one contractor covers one booking.
type PairMatch struct {
	BookingID    uuid.UUID `json:"bookingId"`
	ContractorID uuid.UUID `json:"contractorId"`
	Zipcode      string    `json:"zipcode"`
	UnitIDs      []uint    `json:"unitIds"`
}

// snapshot keeps the separate area and unit reads of one match on a single
// committed view of the preference tables.
var snapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

type MatchingService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMatchingService(db *gorm.DB, logger *zap.Logger) *MatchingService {
	return &MatchingService{db: db, logger: logger}
}

// BookingToContractors returns every contractor whose unit preferences
// contain all of the booking's units and who serves its zipcode.
func (s *MatchingService) BookingToContractors(ctx context.Context, bookingID uuid.UUID) ([]ContractorMatch, error) {
	ctx, span := tracer.Start(ctx, "matching.BookingToContractors")
	defer span.End()
	span.SetAttributes(attribute.String("booking.id", bookingID.String()))

	var matches []ContractorMatch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := LoadRequirement(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		ids, err := coveringContractors(tx, req.UnitIDs, req.Zipcode)
		if err != nil {
			return err
		}
		matches, err = describeContractors(tx, ids)
		return err
	}, snapshot)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("matching.results", len(matches)))
	return matches, nil
}

// ContractorToBookings returns the homeowner's open bookings whose distinct
// work units are all in the contractor's unit preferences. The zipcode is
// not required to match.
func (s *MatchingService) ContractorToBookings(ctx context.Context, homeownerID, contractorID uuid.UUID) ([]BookingMatch, error) {
	ctx, span := tracer.Start(ctx, "matching.ContractorToBookings")
	defer span.End()
	span.SetAttributes(
		attribute.String("homeowner.id", homeownerID.String()),
		attribute.String("contractor.id", contractorID.String()),
	)

	var matches []BookingMatch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureContractor(tx, contractorID); err != nil {
			return err
		}
		prefs, err := loadPreferences(tx, contractorID)
		if err != nil {
			return err
		}
		preferred := newUnitSet(prefs.UnitIDs)
		areas := make(map[string]struct{}, len(prefs.Areas))
		for _, a := range prefs.Areas {
			areas[a] = struct{}{}
		}

		var bookings []models.Booking
		if err := tx.Preload("Units").
			Where("homeowner_id = ? AND is_active = ? AND is_booked = ?", homeownerID, true, false).
			Order("created_at DESC").
			Find(&bookings).Error; err != nil {
			return err
		}

		var covered []models.Booking
		for _, b := range bookings {
			ids := make([]uint, 0, len(b.Units))
			for _, u := range b.Units {
				ids = append(ids, u.WorkUnitID)
			}
			if preferred.covers(ids) {
				covered = append(covered, b)
			}
		}

		details, err := describeBookings(tx, covered)
		if err != nil {
			return err
		}
		matches = make([]BookingMatch, 0, len(details))
		for _, d := range details {
			_, ok := areas[d.Booking.Zipcode]
			matches = append(matches, BookingMatch{BookingDetail: d, AreaCovered: ok})
		}
		return nil
	}, snapshot)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("matching.results", len(matches)))
	return matches, nil
}

// CheckPair returns nil without error when the contractor cannot be invited
// to the homeowner's booking.
func (s *MatchingService) CheckPair(ctx context.Context, bookingID, contractorID, homeownerID uuid.UUID) (*PairMatch, error) {
	ctx, span := tracer.Start(ctx, "matching.CheckPair")
	defer span.End()

	var match *PairMatch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		match, err = checkPair(ctx, tx, bookingID, contractorID, homeownerID)
		return err
	}, snapshot)
	span.SetAttributes(attribute.Bool("matching.matched", match != nil))
	return match, err
}

// checkPair runs inside the caller's transaction.
func checkPair(ctx context.Context, tx *gorm.DB, bookingID, contractorID, homeownerID uuid.UUID) (*PairMatch, error) {
	req, err := LoadRequirement(ctx, tx, bookingID)
	if errors.Is(err, ErrBookingNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if req.HomeownerID != homeownerID || !req.Open() {
		return nil, nil
	}

	var areaHits int64
	if err := tx.Model(&models.ContractorAreaPreference{}).
		Where("contractor_id = ? AND area = ?", contractorID, req.Zipcode).
		Count(&areaHits).Error; err != nil {
		return nil, err
	}
	if areaHits == 0 {
		return nil, nil
	}

	if req.Count() > 0 {
		var unitHits int64
		if err := tx.Model(&models.ContractorUnitPreference{}).
			Where("contractor_id = ? AND work_unit_id IN ?", contractorID, req.UnitIDs).
			Count(&unitHits).Error; err != nil {
			return nil, err
		}
		if int(unitHits) != req.Count() {
			return nil, nil
		}
	}

	return &PairMatch{
		BookingID:    req.BookingID,
		ContractorID: contractorID,
		Zipcode:      req.Zipcode,
		UnitIDs:      req.UnitIDs,
	}, nil
}

// FilterSearch finds contractors covering every unit of the given
// professions in one area. Unknown professions or areas give no results.
func (s *MatchingService) FilterSearch(ctx context.Context, professions []string, area string) ([]ContractorMatch, error) {
	ctx, span := tracer.Start(ctx, "matching.FilterSearch")
	defer span.End()
	span.SetAttributes(
		attribute.StringSlice("search.professions", professions),
		attribute.String("search.area", area),
	)

	professions = dedupe(professions, strings.TrimSpace)
	area = utils.NormalizeZipcode(area)

	matches := []ContractorMatch{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		missing, err := unknownProfessions(tx, professions)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return nil
		}
		unitIDs, err := unitIDsForProfessions(tx, professions)
		if err != nil {
			return err
		}
		ids, err := coveringContractors(tx, newUnitSet(unitIDs).sorted(), area)
		if err != nil {
			return err
		}
		matches, err = describeContractors(tx, ids)
		return err
	}, snapshot)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("matching.results", len(matches)))
	return matches, nil
}

// coveringContractors returns contractors serving area whose unit
// preferences contain every id in units. units must be distinct.
func coveringContractors(tx *gorm.DB, units []uint, area string) ([]uuid.UUID, error) {
	var candidates []uuid.UUID
	if err := tx.Model(&models.ContractorAreaPreference{}).
		Where("area = ?", area).
		Order("contractor_id").
		Pluck("contractor_id", &candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 0 || len(units) == 0 {
		return candidates, nil
	}

	var covering []uuid.UUID
	err := tx.Model(&models.ContractorUnitPreference{}).
		Where("contractor_id IN ? AND work_unit_id IN ?", candidates, units).
		Group("contractor_id").
		Having("COUNT(*) = ?", len(units)).
		Order("contractor_id").
		Pluck("contractor_id", &covering).Error
	return covering, err
}

type contractorProfession struct {
	ContractorID uuid.UUID
	Profession   string
}

func describeContractors(tx *gorm.DB, ids []uuid.UUID) ([]ContractorMatch, error) {
	matches := []ContractorMatch{}
	if len(ids) == 0 {
		return matches, nil
	}

	var contractors []models.Contractor
	if err := tx.Where("id IN ?", ids).Order("id").Find(&contractors).Error; err != nil {
		return nil, err
	}

	var areaRows []models.ContractorAreaPreference
	if err := tx.Where("contractor_id IN ?", ids).Find(&areaRows).Error; err != nil {
		return nil, err
	}
	areas := make(map[uuid.UUID][]string)
	for _, r := range areaRows {
		areas[r.ContractorID] = append(areas[r.ContractorID], r.Area)
	}

	var profRows []contractorProfession
	if err := tx.Table("contractor_profession_preferences AS p").
		Select("DISTINCT p.contractor_id AS contractor_id, w.profession AS profession").
		Joins("JOIN work_units w ON w.id = p.work_unit_id").
		Where("p.contractor_id IN ?", ids).
		Scan(&profRows).Error; err != nil {
		return nil, err
	}
	professions := make(map[uuid.UUID][]string)
	for _, r := range profRows {
		professions[r.ContractorID] = append(professions[r.ContractorID], r.Profession)
	}

	for _, c := range contractors {
		a := append([]string{}, areas[c.ID]...)
		p := append([]string{}, professions[c.ID]...)
		sort.Strings(a)
		sort.Strings(p)
		matches = append(matches, ContractorMatch{Contractor: c, Professions: p, Areas: a})
	}
	return matches, nil
}
