package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qualair/airquality-backend/internal/services"
	"github.com/qualair/airquality-backend/internal/types"
)

type MeasurementHandler struct {
	measurementService services.MeasurementService
}

func NewMeasurementHandler(measurementService services.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurementService: measurementService}
}

// List handles GET /records with optional commune/region substring filters,
// an exact annee filter, and 1-indexed pagination.
func (mh *MeasurementHandler) List(c *gin.Context) {
	annee, err := intQuery(c, "annee")
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	page, err := intQueryDefault(c, "page", 1)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	pageSize, err := intQueryDefault(c, "page_size", services.DefaultPageSize)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}

	filter := types.ListFilter{
		Commune: c.Query("commune"),
		Region:  c.Query("region"),
		Annee:   annee,
	}
	result, err := mh.measurementService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (mh *MeasurementHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	record, err := mh.measurementService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (mh *MeasurementHandler) Create(c *gin.Context) {
	var in types.MeasurementCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	record, err := mh.measurementService.Create(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (mh *MeasurementHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	var patch types.MeasurementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	record, err := mh.measurementService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (mh *MeasurementHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	if err := mh.measurementService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (mh *MeasurementHandler) Regions(c *gin.Context) {
	regions, err := mh.measurementService.Regions(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

func (mh *MeasurementHandler) Communes(c *gin.Context) {
	communes, err := mh.measurementService.Communes(c.Request.Context(), c.Query("region"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"communes": communes})
}

func (mh *MeasurementHandler) Years(c *gin.Context) {
	years, err := mh.measurementService.Years(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}
