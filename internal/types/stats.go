package types

// RegionStats aggregates matching records for one region. Averages are
// rounded to two decimals; extrema are reported as stored. All aggregate
// fields are nil when no row carried a value for that pollutant.
type RegionStats struct {
	Region  string   `json:"region"`
	Annee   *int     `json:"annee"`
	Count   int64    `json:"count"`
	AvgNo2  *float64 `json:"avg_no2"`
	AvgPm10 *float64 `json:"avg_pm10"`
	AvgPm25 *float64 `json:"avg_pm25"`
	AvgO3   *float64 `json:"avg_o3"`
	MaxNo2  *float64 `json:"max_no2"`
	MaxPm10 *float64 `json:"max_pm10"`
	MinNo2  *float64 `json:"min_no2"`
	MinPm10 *float64 `json:"min_pm10"`
}

// CommuneStats carries count and rounded averages for one commune.
type CommuneStats struct {
	Commune string   `json:"commune"`
	Count   int64    `json:"count"`
	AvgNo2  *float64 `json:"avg_no2"`
	AvgPm10 *float64 `json:"avg_pm10"`
	AvgPm25 *float64 `json:"avg_pm25"`
	AvgO3   *float64 `json:"avg_o3"`
}

// TrendPoint is the average of one pollutant over all matching records of a
// single year. Value is nil when every matching record left the pollutant
// unset for that year.
type TrendPoint struct {
	Annee int      `json:"annee"`
	Value *float64 `json:"value"`
}

// TrendSeries is a per-year pollutant trend ordered chronologically.
type TrendSeries struct {
	Pollutant string       `json:"pollutant"`
	Region    *string      `json:"region"`
	Commune   *string      `json:"commune"`
	Data      []TrendPoint `json:"data"`
}

// RegionComparison holds per-region statistics side by side. Regions with no
// matching records are dropped.
type RegionComparison struct {
	Comparison []*RegionStats `json:"comparison"`
	Annee      *int           `json:"annee"`
}

// YearRange is the span of distinct years present in the dataset.
type YearRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// GlobalAverages are dataset-wide pollutant averages rounded to two decimals.
type GlobalAverages struct {
	No2  *float64 `json:"no2"`
	Pm10 *float64 `json:"pm10"`
	Pm25 *float64 `json:"pm25"`
	O3   *float64 `json:"o3"`
}

// DatasetSummary describes the whole collection at a glance.
type DatasetSummary struct {
	TotalRecords   int64          `json:"total_records"`
	TotalRegions   int64          `json:"total_regions"`
	TotalCommunes  int64          `json:"total_communes"`
	YearRange      YearRange      `json:"year_range"`
	GlobalAverages GlobalAverages `json:"global_averages"`
}
