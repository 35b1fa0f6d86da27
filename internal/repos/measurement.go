package repos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/qualair/airquality-backend/internal/logger"
	"github.com/qualair/airquality-backend/internal/types"
)

// aggregableColumns whitelists the pollutant columns that can be averaged per
// year. Anything else is rejected before touching the database.
var aggregableColumns = map[string]struct{}{
	"no2":    {},
	"pm10":   {},
	"pm25":   {},
	"o3":     {},
	"somo35": {},
	"aot40":  {},
}

// RegionAggregate carries raw region-level aggregates as returned by the
// database. Rounding happens in the service layer.
type RegionAggregate struct {
	Count   int64
	AvgNo2  *float64
	AvgPm10 *float64
	AvgPm25 *float64
	AvgO3   *float64
	MaxNo2  *float64
	MaxPm10 *float64
	MinNo2  *float64
	MinPm10 *float64
}

// CommuneAggregate carries raw commune-level aggregates.
type CommuneAggregate struct {
	Count   int64
	AvgNo2  *float64
	AvgPm10 *float64
	AvgPm25 *float64
	AvgO3   *float64
}

// YearAverage is the raw per-year average of one pollutant column.
type YearAverage struct {
	Annee int
	Value *float64
}

// GlobalAggregate describes the whole table in one scan.
type GlobalAggregate struct {
	TotalRecords  int64
	TotalRegions  int64
	TotalCommunes int64
	MinAnnee      *int
	MaxAnnee      *int
	AvgNo2        *float64
	AvgPm10       *float64
	AvgPm25       *float64
	AvgO3         *float64
}

type MeasurementRepo interface {
	Create(ctx context.Context, m *types.Measurement) (*types.Measurement, error)
	GetByID(ctx context.Context, id int64) (*types.Measurement, error)
	Save(ctx context.Context, m *types.Measurement) (*types.Measurement, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter types.ListFilter, offset, limit int) ([]*types.Measurement, error)
	Count(ctx context.Context, filter types.ListFilter) (int64, error)
	DistinctRegions(ctx context.Context) ([]string, error)
	DistinctCommunes(ctx context.Context, region string) ([]string, error)
	DistinctYears(ctx context.Context) ([]int, error)
	AggregateByRegion(ctx context.Context, region string, annee *int) (*RegionAggregate, error)
	AggregateByCommune(ctx context.Context, commune string) (*CommuneAggregate, error)
	AveragesByYear(ctx context.Context, column, region, commune string) ([]YearAverage, error)
	Aggregate(ctx context.Context) (*GlobalAggregate, error)
}

type measurementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeasurementRepo(db *gorm.DB, baseLog *logger.Logger) MeasurementRepo {
	repoLog := baseLog.With("repo", "MeasurementRepo")
	return &measurementRepo{db: db, log: repoLog}
}

// containsPattern builds a case-insensitive substring pattern. Matching is
// done via LOWER(col) LIKE so it behaves the same on SQLite and Postgres.
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func (r *measurementRepo) filtered(ctx context.Context, filter types.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&types.Measurement{})
	if filter.Commune != "" {
		q = q.Where("LOWER(commune) LIKE ?", containsPattern(filter.Commune))
	}
	if filter.Region != "" {
		q = q.Where("LOWER(region) LIKE ?", containsPattern(filter.Region))
	}
	if filter.Annee != nil {
		q = q.Where("annee = ?", *filter.Annee)
	}
	return q
}

func (r *measurementRepo) Create(ctx context.Context, m *types.Measurement) (*types.Measurement, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *measurementRepo) GetByID(ctx context.Context, id int64) (*types.Measurement, error) {
	var m types.Measurement
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *measurementRepo) Save(ctx context.Context, m *types.Measurement) (*types.Measurement, error) {
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *measurementRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&types.Measurement{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List returns one page ordered by year descending. The id tiebreak keeps
// pagination stable when many records share a year.
func (r *measurementRepo) List(ctx context.Context, filter types.ListFilter, offset, limit int) ([]*types.Measurement, error) {
	results := make([]*types.Measurement, 0)
	err := r.filtered(ctx, filter).
		Order("annee DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *measurementRepo) Count(ctx context.Context, filter types.ListFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *measurementRepo) DistinctRegions(ctx context.Context) ([]string, error) {
	regions := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Distinct("region").
		Order("region ASC").
		Pluck("region", &regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}

// DistinctCommunes lists commune names, optionally restricted to one region.
// The region filter is an exact match here, unlike the substring filters used
// for listing and stats.
func (r *measurementRepo) DistinctCommunes(ctx context.Context, region string) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&types.Measurement{}).Distinct("commune")
	if region != "" {
		q = q.Where("region = ?", region)
	}
	communes := make([]string, 0)
	if err := q.Order("commune ASC").Pluck("commune", &communes).Error; err != nil {
		return nil, err
	}
	return communes, nil
}

// DistinctYears is ordered descending so the most recent year comes first,
// matching the default listing order.
func (r *measurementRepo) DistinctYears(ctx context.Context) ([]int, error) {
	years := make([]int, 0)
	err := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Distinct("annee").
		Order("annee DESC").
		Pluck("annee", &years).Error
	if err != nil {
		return nil, err
	}
	return years, nil
}

func (r *measurementRepo) AggregateByRegion(ctx context.Context, region string, annee *int) (*RegionAggregate, error) {
	q := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Select(`COUNT(id) AS count,
			AVG(no2) AS avg_no2, AVG(pm10) AS avg_pm10, AVG(pm25) AS avg_pm25, AVG(o3) AS avg_o3,
			MAX(no2) AS max_no2, MAX(pm10) AS max_pm10,
			MIN(no2) AS min_no2, MIN(pm10) AS min_pm10`).
		Where("LOWER(region) LIKE ?", containsPattern(region))
	if annee != nil {
		q = q.Where("annee = ?", *annee)
	}
	var agg RegionAggregate
	if err := q.Scan(&agg).Error; err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *measurementRepo) AggregateByCommune(ctx context.Context, commune string) (*CommuneAggregate, error) {
	var agg CommuneAggregate
	err := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Select(`COUNT(id) AS count,
			AVG(no2) AS avg_no2, AVG(pm10) AS avg_pm10, AVG(pm25) AS avg_pm25, AVG(o3) AS avg_o3`).
		Where("LOWER(commune) LIKE ?", containsPattern(commune)).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// AveragesByYear groups matching records by year and averages the named
// pollutant column. Years with no matching records do not appear in the
// result. The column must be one of the aggregable pollutant columns.
func (r *measurementRepo) AveragesByYear(ctx context.Context, column, region, commune string) ([]YearAverage, error) {
	if _, ok := aggregableColumns[column]; !ok {
		return nil, fmt.Errorf("column %q is not aggregable", column)
	}
	q := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Select(fmt.Sprintf("annee, AVG(%s) AS value", column))
	if region != "" {
		q = q.Where("LOWER(region) LIKE ?", containsPattern(region))
	}
	if commune != "" {
		q = q.Where("LOWER(commune) LIKE ?", containsPattern(commune))
	}
	rows := make([]YearAverage, 0)
	err := q.Group("annee").Order("annee ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *measurementRepo) Aggregate(ctx context.Context) (*GlobalAggregate, error) {
	var agg GlobalAggregate
	err := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Select(`COUNT(id) AS total_records,
			COUNT(DISTINCT region) AS total_regions,
			COUNT(DISTINCT commune) AS total_communes,
			MIN(annee) AS min_annee, MAX(annee) AS max_annee,
			AVG(no2) AS avg_no2, AVG(pm10) AS avg_pm10, AVG(pm25) AS avg_pm25, AVG(o3) AS avg_o3`).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
