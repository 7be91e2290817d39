package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"adherence-srv/internal/store/postgre"
	postgresPkg "adherence-srv/pkg/postgre"
	"adherence-srv/pkg/response"
)

// runMissedDose triggers the missed-dose reminder tiers
// @Summary Run missed-dose detector
// @Description Run the patient reminder and caregiver escalation tiers once, immediately
// @Tags Detectors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.Body "Run summary"
// @Failure 401 {object} response.Body "Missing or invalid service token"
// @Failure 500 {object} response.Body "Run failed"
// @Router /internal/api/v1/detectors/missed-dose/run [post]
func (srv *HTTPServer) runMissedDose(c *gin.Context) {
	summary, err := srv.detector.RunReminderTiers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.OK(c, summary)
}

// runLowStock triggers the low-stock sweep
// @Summary Run low-stock detector
// @Description Run the all-medication low-stock sweep once, immediately
// @Tags Detectors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.Body "Run summary"
// @Failure 401 {object} response.Body "Missing or invalid service token"
// @Failure 500 {object} response.Body "Run failed"
// @Router /internal/api/v1/detectors/low-stock/run [post]
func (srv *HTTPServer) runLowStock(c *gin.Context) {
	summary, err := srv.detector.RunStockSweep(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.OK(c, summary)
}

// runLowStockCheck runs the inline low-stock check for one medication
// @Summary Check one medication's stock
// @Description Run the idempotent low-stock check for a single medication, fired after a stock-affecting change
// @Tags Detectors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param medicationID path string true "Medication ID"
// @Success 200 {object} response.Body "Check summary"
// @Failure 400 {object} response.Body "Malformed medication id"
// @Failure 401 {object} response.Body "Missing or invalid service token"
// @Failure 404 {object} response.Body "Unknown medication"
// @Failure 500 {object} response.Body "Check failed"
// @Router /internal/api/v1/detectors/low-stock/check/{medicationID} [post]
func (srv *HTTPServer) runLowStockCheck(c *gin.Context) {
	medicationID := c.Param("medicationID")
	if err := postgresPkg.IsUUID(medicationID); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := srv.detector.CheckMedication(c.Request.Context(), medicationID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "medication not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.OK(c, summary)
}

// runWeeklyDigest triggers the weekly digest
// @Summary Run weekly digest
// @Description Aggregate the previous Monday-Sunday window and email caregiver digests now
// @Tags Detectors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.Body "Run summary"
// @Failure 401 {object} response.Body "Missing or invalid service token"
// @Failure 500 {object} response.Body "Run failed"
// @Router /internal/api/v1/detectors/weekly-digest/run [post]
func (srv *HTTPServer) runWeeklyDigest(c *gin.Context) {
	summary, err := srv.detector.RunWeeklyDigest(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.OK(c, summary)
}
