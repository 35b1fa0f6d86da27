package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qualair/airquality-backend/internal/handlers"
	"github.com/qualair/airquality-backend/internal/logger"
	"github.com/qualair/airquality-backend/internal/middleware"
	"github.com/qualair/airquality-backend/internal/observability"
	"github.com/qualair/airquality-backend/internal/repos"
	"github.com/qualair/airquality-backend/internal/server"
	"github.com/qualair/airquality-backend/internal/services"
	"github.com/qualair/airquality-backend/internal/types"
)

func f(v float64) *float64 { return &v }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&types.Measurement{}))

	seed := []*types.Measurement{
		{Commune: "Paris", CodeInsee: "75056", Region: "Ile-de-France", Departement: "Paris", Annee: 2020, No2: f(32.5), Pm10: f(22.1), Pm25: f(14.2), O3: f(45.3), Latitude: f(48.8566), Longitude: f(2.3522)},
		{Commune: "Paris", CodeInsee: "75056", Region: "Ile-de-France", Departement: "Paris", Annee: 2021, No2: f(28.3), Pm10: f(20.5), Pm25: f(12.8), O3: f(48.1), Latitude: f(48.8566), Longitude: f(2.3522)},
		{Commune: "Lyon", CodeInsee: "69123", Region: "Auvergne-Rhone-Alpes", Departement: "Rhône", Annee: 2020, No2: f(28.4), Pm10: f(20.3), Pm25: f(13.1), O3: f(48.5), Latitude: f(45.7640), Longitude: f(4.8357)},
		{Commune: "Marseille", CodeInsee: "13055", Region: "Provence-Alpes-Cote d'Azur", Departement: "Bouches-du-Rhône", Annee: 2020, No2: f(30.2), Pm10: f(24.5), Pm25: f(15.8), O3: f(58.3), Latitude: f(43.2965), Longitude: f(5.3698)},
	}
	require.NoError(t, gdb.Create(&seed).Error)

	log := logger.NewNop()
	measurementService := services.NewMeasurementService(log, repos.NewMeasurementRepo(gdb, log))

	return server.NewRouter(server.RouterConfig{
		MeasurementHandler: handlers.NewMeasurementHandler(measurementService),
		StatsHandler:       handlers.NewStatsHandler(measurementService),
		RequestLogger:      middleware.NewRequestLogger(log),
		HTTPMetrics:        middleware.NewHTTPMetrics(observability.NewMetricsForTesting()),
	})
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestRootAndHealthAlwaysOK(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListRecords(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.MeasurementPage
	decode(t, rec, &page)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.PageSize)
	require.Len(t, page.Data, 4)
	// Default order is year descending.
	assert.Equal(t, 2021, page.Data[0].Annee)
}

func TestListRecordsFilteredByCommune(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/records?commune=Paris", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.MeasurementPage
	decode(t, rec, &page)
	assert.Equal(t, int64(2), page.Total)
}

func TestListRecordsTotalIndependentOfPageSize(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/records?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.MeasurementPage
	decode(t, rec, &page)
	assert.Equal(t, int64(4), page.Total)
	assert.Len(t, page.Data, 2)
}

func TestListRecordsRejectsBadPagination(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/records?page=0", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/records?page_size=1001", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/records?annee=notayear", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/records/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var m types.Measurement
	decode(t, rec, &m)
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, "Paris", m.Commune)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/records/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/records", map[string]any{
		"commune":     "Toulouse",
		"code_insee":  "31555",
		"region":      "Occitanie",
		"departement": "Haute-Garonne",
		"annee":       2022,
		"no2":         20.1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created types.Measurement
	decode(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Toulouse", created.Commune)
	assert.Nil(t, created.Pm10)

	got := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/records/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, got.Code)
	var fetched types.Measurement
	decode(t, got, &fetched)
	assert.Equal(t, created, fetched)
}

func TestCreateRecordValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/records", map[string]any{
		"commune":     "Toulouse",
		"code_insee":  "31555",
		"region":      "Occitanie",
		"departement": "Haute-Garonne",
		"annee":       1950,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/records", map[string]any{
		"commune":     "Toulouse",
		"code_insee":  "31555",
		"region":      "Occitanie",
		"departement": "Haute-Garonne",
		"annee":       2022,
		"pm25":        -1.0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateRecordPartial(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/records/1", map[string]any{
		"no2": 35.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.Measurement
	decode(t, rec, &updated)
	require.NotNil(t, updated.No2)
	assert.InDelta(t, 35.0, *updated.No2, 1e-9)
	// Untouched fields keep their prior values.
	assert.Equal(t, "Paris", updated.Commune)
	require.NotNil(t, updated.Pm10)
	assert.InDelta(t, 22.1, *updated.Pm10, 1e-9)

	rec = doRequest(t, router, http.MethodPut, "/api/v1/records/9999", map[string]any{"no2": 1.0})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRecordNullClearsReading(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/records/1", map[string]any{
		"no2": nil,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.Measurement
	decode(t, rec, &updated)
	assert.Nil(t, updated.No2)
	// Readings absent from the payload are untouched.
	require.NotNil(t, updated.Pm10)
	assert.InDelta(t, 22.1, *updated.Pm10, 1e-9)

	got := doRequest(t, router, http.MethodGet, "/api/v1/records/1", nil)
	require.Equal(t, http.StatusOK, got.Code)
	var fetched types.Measurement
	decode(t, got, &fetched)
	assert.Nil(t, fetched.No2)
}

func TestUpdateRecordRejectsNullRequiredField(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/records/1", map[string]any{
		"commune": nil,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/records/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = doRequest(t, router, http.MethodGet, "/api/v1/records/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/records/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDimensionListings(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/regions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var regions map[string][]string
	decode(t, rec, &regions)
	assert.Equal(t, []string{"Auvergne-Rhone-Alpes", "Ile-de-France", "Provence-Alpes-Cote d'Azur"}, regions["regions"])

	rec = doRequest(t, router, http.MethodGet, "/api/v1/communes?region=Ile-de-France", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var communes map[string][]string
	decode(t, rec, &communes)
	assert.Equal(t, []string{"Paris"}, communes["communes"])

	rec = doRequest(t, router, http.MethodGet, "/api/v1/years", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var years map[string][]int
	decode(t, rec, &years)
	assert.Equal(t, []int{2021, 2020}, years["years"])
}

func TestRegionStats(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/stats/region/Ile-de-France", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.RegionStats
	decode(t, rec, &stats)
	assert.Equal(t, int64(2), stats.Count)
	require.NotNil(t, stats.AvgNo2)
	assert.InDelta(t, 30.4, *stats.AvgNo2, 1e-9)
	require.NotNil(t, stats.MaxNo2)
	assert.InDelta(t, 32.5, *stats.MaxNo2, 1e-9)
	require.NotNil(t, stats.MinNo2)
	assert.InDelta(t, 28.3, *stats.MinNo2, 1e-9)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/stats/region/Atlantis", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegionStatsWithYearFilter(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/stats/region/Ile-de-France?annee=2021", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.RegionStats
	decode(t, rec, &stats)
	assert.Equal(t, int64(1), stats.Count)
	require.NotNil(t, stats.Annee)
	assert.Equal(t, 2021, *stats.Annee)
	require.NotNil(t, stats.AvgNo2)
	assert.InDelta(t, 28.3, *stats.AvgNo2, 1e-9)
}

func TestCommuneStats(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/stats/commune/Paris", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.CommuneStats
	decode(t, rec, &stats)
	assert.Equal(t, int64(2), stats.Count)
	require.NotNil(t, stats.AvgNo2)
	assert.InDelta(t, 30.4, *stats.AvgNo2, 1e-9)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/stats/commune/Atlantis", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPollutantTrend(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/trends/no2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var series types.TrendSeries
	decode(t, rec, &series)
	assert.Equal(t, "no2", series.Pollutant)
	require.Len(t, series.Data, 2)
	// Trends read chronologically forward.
	assert.Equal(t, 2020, series.Data[0].Annee)
	require.NotNil(t, series.Data[0].Value)
	assert.InDelta(t, 30.37, *series.Data[0].Value, 1e-9)
	assert.Equal(t, 2021, series.Data[1].Annee)
}

func TestPollutantTrendErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/trends/co2", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid pollutant, empty series.
	rec = doRequest(t, router, http.MethodGet, "/api/v1/trends/no2?region=Atlantis", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompareRegions(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/compare?regions=Ile-de-France,NonExistent", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result types.RegionComparison
	decode(t, rec, &result)
	require.Len(t, result.Comparison, 1)
	assert.Equal(t, "Ile-de-France", result.Comparison[0].Region)
}

func TestCompareRegionsErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/compare?regions=Ile-de-France", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/compare?regions=Nowhere,AlsoNowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/compare", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary types.DatasetSummary
	decode(t, rec, &summary)
	assert.Equal(t, int64(4), summary.TotalRecords)
	assert.Equal(t, int64(3), summary.TotalRegions)
	assert.Equal(t, int64(3), summary.TotalCommunes)
	require.NotNil(t, summary.YearRange.Min)
	assert.Equal(t, 2020, *summary.YearRange.Min)
	require.NotNil(t, summary.YearRange.Max)
	assert.Equal(t, 2021, *summary.YearRange.Max)
	require.NotNil(t, summary.GlobalAverages.No2)
	assert.InDelta(t, 29.85, *summary.GlobalAverages.No2, 1e-9)
}
