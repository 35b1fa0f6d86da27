package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/qualair/airquality-backend/internal/logger"
	"github.com/qualair/airquality-backend/internal/repos"
	"github.com/qualair/airquality-backend/internal/types"
)

const (
	minAnnee = 2000
	maxAnnee = 2030

	DefaultPageSize = 50
	MaxPageSize     = 1000
)

// pollutantColumns maps the accepted pollutant names to their storage
// columns. Unrecognized names are rejected before any query runs.
var pollutantColumns = map[string]string{
	"no2":    "no2",
	"pm10":   "pm10",
	"pm25":   "pm25",
	"o3":     "o3",
	"somo35": "somo35",
	"aot40":  "aot40",
}

// PollutantNames lists the accepted pollutant names in a stable order,
// for error messages.
func PollutantNames() []string {
	return []string{"no2", "pm10", "pm25", "o3", "somo35", "aot40"}
}

type MeasurementService interface {
	Create(ctx context.Context, in types.MeasurementCreate) (*types.Measurement, error)
	Get(ctx context.Context, id int64) (*types.Measurement, error)
	List(ctx context.Context, filter types.ListFilter, page, pageSize int) (*types.MeasurementPage, error)
	Update(ctx context.Context, id int64, patch types.MeasurementPatch) (*types.Measurement, error)
	Delete(ctx context.Context, id int64) error
	Regions(ctx context.Context) ([]string, error)
	Communes(ctx context.Context, region string) ([]string, error)
	Years(ctx context.Context) ([]int, error)
	StatsByRegion(ctx context.Context, region string, annee *int) (*types.RegionStats, error)
	StatsByCommune(ctx context.Context, commune string) (*types.CommuneStats, error)
	Trend(ctx context.Context, pollutant, region, commune string) (*types.TrendSeries, error)
	CompareRegions(ctx context.Context, regions []string, annee *int) (*types.RegionComparison, error)
	Summary(ctx context.Context) (*types.DatasetSummary, error)
}

type measurementService struct {
	log  *logger.Logger
	repo repos.MeasurementRepo
}

func NewMeasurementService(log *logger.Logger, repo repos.MeasurementRepo) MeasurementService {
	serviceLog := log.With("service", "MeasurementService")
	return &measurementService{log: serviceLog, repo: repo}
}

func round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}

func validateCreate(in types.MeasurementCreate) error {
	if strings.TrimSpace(in.Commune) == "" {
		return validationErr("commune", "is required")
	}
	if l := len(in.CodeInsee); l < 5 || l > 10 {
		return validationErr("code_insee", "must be between 5 and 10 characters")
	}
	if strings.TrimSpace(in.Region) == "" {
		return validationErr("region", "is required")
	}
	if strings.TrimSpace(in.Departement) == "" {
		return validationErr("departement", "is required")
	}
	if in.Annee < minAnnee || in.Annee > maxAnnee {
		return validationErr("annee", fmt.Sprintf("must be between %d and %d", minAnnee, maxAnnee))
	}
	for name, v := range map[string]*float64{
		"no2": in.No2, "pm10": in.Pm10, "pm25": in.Pm25,
		"o3": in.O3, "somo35": in.Somo35, "aot40": in.Aot40,
	} {
		if v != nil && *v < 0 {
			return validationErr(name, "must not be negative")
		}
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return validationErr("latitude", "must be between -90 and 90")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return validationErr("longitude", "must be between -180 and 180")
	}
	return nil
}

func (s *measurementService) Create(ctx context.Context, in types.MeasurementCreate) (*types.Measurement, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	m := &types.Measurement{
		Commune:     in.Commune,
		CodeInsee:   in.CodeInsee,
		Region:      in.Region,
		Departement: in.Departement,
		Annee:       in.Annee,
		No2:         in.No2,
		Pm10:        in.Pm10,
		Pm25:        in.Pm25,
		O3:          in.O3,
		Somo35:      in.Somo35,
		Aot40:       in.Aot40,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create measurement: %w", err)
	}
	s.log.Debug("Created measurement", "id", created.ID, "commune", created.Commune, "annee", created.Annee)
	return created, nil
}

func (s *measurementService) Get(ctx context.Context, id int64) (*types.Measurement, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get measurement %d: %w", id, err)
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *measurementService) List(ctx context.Context, filter types.ListFilter, page, pageSize int) (*types.MeasurementPage, error) {
	if page < 1 {
		return nil, validationErr("page", "must be at least 1")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, validationErr("page_size", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	}
	offset := (page - 1) * pageSize
	records, err := s.repo.List(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count measurements: %w", err)
	}
	return &types.MeasurementPage{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Data:     records,
	}, nil
}

// Update applies the patch field by field; absent fields keep their prior
// values and an explicit null clears a nullable reading. Unlike Create it
// does not re-check the create-time bounds, so a caller may move a record
// outside the create invariants (year range, nonnegative readings). That
// asymmetry is inherited behavior, kept on purpose rather than silently
// harmonized.
func (s *measurementService) Update(ctx context.Context, id int64, patch types.MeasurementPatch) (*types.Measurement, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get measurement %d: %w", id, err)
	}
	if m == nil {
		return nil, ErrNotFound
	}
	if err := applyPatch(m, patch); err != nil {
		return nil, err
	}
	updated, err := s.repo.Save(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("update measurement %d: %w", id, err)
	}
	s.log.Debug("Updated measurement", "id", id)
	return updated, nil
}

// applyPatch copies present patch fields onto the record. Required fields
// cannot be nulled out; nullable readings take the patch value as-is, nil
// included, so a stored reading can be unset again.
func applyPatch(m *types.Measurement, patch types.MeasurementPatch) error {
	required := []struct {
		name string
		set  bool
		null bool
	}{
		{"commune", patch.Commune.Set, patch.Commune.Value == nil},
		{"code_insee", patch.CodeInsee.Set, patch.CodeInsee.Value == nil},
		{"region", patch.Region.Set, patch.Region.Value == nil},
		{"departement", patch.Departement.Set, patch.Departement.Value == nil},
		{"annee", patch.Annee.Set, patch.Annee.Value == nil},
	}
	for _, field := range required {
		if field.set && field.null {
			return validationErr(field.name, "must not be null")
		}
	}
	if patch.Commune.Set {
		m.Commune = *patch.Commune.Value
	}
	if patch.CodeInsee.Set {
		m.CodeInsee = *patch.CodeInsee.Value
	}
	if patch.Region.Set {
		m.Region = *patch.Region.Value
	}
	if patch.Departement.Set {
		m.Departement = *patch.Departement.Value
	}
	if patch.Annee.Set {
		m.Annee = *patch.Annee.Value
	}
	if patch.No2.Set {
		m.No2 = patch.No2.Value
	}
	if patch.Pm10.Set {
		m.Pm10 = patch.Pm10.Value
	}
	if patch.Pm25.Set {
		m.Pm25 = patch.Pm25.Value
	}
	if patch.O3.Set {
		m.O3 = patch.O3.Value
	}
	if patch.Somo35.Set {
		m.Somo35 = patch.Somo35.Value
	}
	if patch.Aot40.Set {
		m.Aot40 = patch.Aot40.Value
	}
	if patch.Latitude.Set {
		m.Latitude = patch.Latitude.Value
	}
	if patch.Longitude.Set {
		m.Longitude = patch.Longitude.Value
	}
	return nil
}

func (s *measurementService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete measurement %d: %w", id, err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.log.Debug("Deleted measurement", "id", id)
	return nil
}

func (s *measurementService) Regions(ctx context.Context) ([]string, error) {
	return s.repo.DistinctRegions(ctx)
}

func (s *measurementService) Communes(ctx context.Context, region string) ([]string, error) {
	return s.repo.DistinctCommunes(ctx, region)
}

func (s *measurementService) Years(ctx context.Context) ([]int, error) {
	return s.repo.DistinctYears(ctx)
}

// StatsByRegion aggregates over records whose region contains the given text.
// A zero count is returned as-is with absent aggregates; the endpoint decides
// whether that is a not-found condition.
func (s *measurementService) StatsByRegion(ctx context.Context, region string, annee *int) (*types.RegionStats, error) {
	agg, err := s.repo.AggregateByRegion(ctx, region, annee)
	if err != nil {
		return nil, fmt.Errorf("aggregate region %q: %w", region, err)
	}
	return &types.RegionStats{
		Region:  region,
		Annee:   annee,
		Count:   agg.Count,
		AvgNo2:  round2(agg.AvgNo2),
		AvgPm10: round2(agg.AvgPm10),
		AvgPm25: round2(agg.AvgPm25),
		AvgO3:   round2(agg.AvgO3),
		MaxNo2:  agg.MaxNo2,
		MaxPm10: agg.MaxPm10,
		MinNo2:  agg.MinNo2,
		MinPm10: agg.MinPm10,
	}, nil
}

func (s *measurementService) StatsByCommune(ctx context.Context, commune string) (*types.CommuneStats, error) {
	agg, err := s.repo.AggregateByCommune(ctx, commune)
	if err != nil {
		return nil, fmt.Errorf("aggregate commune %q: %w", commune, err)
	}
	return &types.CommuneStats{
		Commune: commune,
		Count:   agg.Count,
		AvgNo2:  round2(agg.AvgNo2),
		AvgPm10: round2(agg.AvgPm10),
		AvgPm25: round2(agg.AvgPm25),
		AvgO3:   round2(agg.AvgO3),
	}, nil
}

// Trend computes the per-year average of one pollutant, ordered by year
// ascending so the series reads chronologically forward.
func (s *measurementService) Trend(ctx context.Context, pollutant, region, commune string) (*types.TrendSeries, error) {
	column, ok := pollutantColumns[strings.ToLower(pollutant)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pollutant %q, valid options: %s",
			ErrInvalidArgument, pollutant, strings.Join(PollutantNames(), ", "))
	}
	rows, err := s.repo.AveragesByYear(ctx, column, region, commune)
	if err != nil {
		return nil, fmt.Errorf("trend for %s: %w", pollutant, err)
	}
	points := make([]types.TrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, types.TrendPoint{Annee: row.Annee, Value: round2(row.Value)})
	}
	series := &types.TrendSeries{Pollutant: pollutant, Data: points}
	if region != "" {
		series.Region = &region
	}
	if commune != "" {
		series.Commune = &commune
	}
	return series, nil
}

// CompareRegions computes region stats independently per name and keeps only
// regions with at least one matching record. It fails only when every region
// comes back empty.
func (s *measurementService) CompareRegions(ctx context.Context, regions []string, annee *int) (*types.RegionComparison, error) {
	if len(regions) < 2 {
		return nil, fmt.Errorf("%w: at least 2 regions are required to compare", ErrInvalidArgument)
	}
	results := make([]*types.RegionStats, 0, len(regions))
	for _, region := range regions {
		stats, err := s.StatsByRegion(ctx, region, annee)
		if err != nil {
			return nil, err
		}
		if stats.Count > 0 {
			results = append(results, stats)
		}
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return &types.RegionComparison{Comparison: results, Annee: annee}, nil
}

func (s *measurementService) Summary(ctx context.Context) (*types.DatasetSummary, error) {
	agg, err := s.repo.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset summary: %w", err)
	}
	return &types.DatasetSummary{
		TotalRecords:  agg.TotalRecords,
		TotalRegions:  agg.TotalRegions,
		TotalCommunes: agg.TotalCommunes,
		YearRange:     types.YearRange{Min: agg.MinAnnee, Max: agg.MaxAnnee},
		GlobalAverages: types.GlobalAverages{
			No2:  round2(agg.AvgNo2),
			Pm10: round2(agg.AvgPm10),
			Pm25: round2(agg.AvgPm25),
			O3:   round2(agg.AvgO3),
		},
	}, nil
}
