package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qualair/airquality-backend/internal/services"
)

type StatsHandler struct {
	measurementService services.MeasurementService
}

func NewStatsHandler(measurementService services.MeasurementService) *StatsHandler {
	return &StatsHandler{measurementService: measurementService}
}

// RegionStats handles GET /stats/region/:region. A region matching zero
// records is a 404, not an empty stats object.
func (sh *StatsHandler) RegionStats(c *gin.Context) {
	annee, err := intQuery(c, "annee")
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	region := c.Param("region")
	stats, err := sh.measurementService.StatsByRegion(c.Request.Context(), region, annee)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if stats.Count == 0 {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("no data found for region: %s", region))
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (sh *StatsHandler) CommuneStats(c *gin.Context) {
	commune := c.Param("commune")
	stats, err := sh.measurementService.StatsByCommune(c.Request.Context(), commune)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if stats.Count == 0 {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("no data found for commune: %s", commune))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Trend handles GET /trends/:pollutant. An unknown pollutant name is a 400
// regardless of data contents; an empty series is a 404.
func (sh *StatsHandler) Trend(c *gin.Context) {
	series, err := sh.measurementService.Trend(
		c.Request.Context(),
		c.Param("pollutant"),
		c.Query("region"),
		c.Query("commune"),
	)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if len(series.Data) == 0 {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("no trend data found"))
		return
	}
	c.JSON(http.StatusOK, series)
}

// Compare handles GET /compare?regions=a,b&annee=. Region names are split on
// commas and trimmed; regions without data are dropped from the result.
func (sh *StatsHandler) Compare(c *gin.Context) {
	raw, ok := c.GetQuery("regions")
	if !ok {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error",
			fmt.Errorf("query parameter \"regions\" is required"))
		return
	}
	annee, err := intQuery(c, "annee")
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	names := strings.Split(raw, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	comparison, err := sh.measurementService.CompareRegions(c.Request.Context(), names, annee)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

func (sh *StatsHandler) Summary(c *gin.Context) {
	summary, err := sh.measurementService.Summary(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
