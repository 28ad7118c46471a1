package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/services"
	"sports_complex_backend/pkg/utils"
)

// FacilityHandler holds the facility service.
type FacilityHandler struct {
	facilityService services.FacilityService
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(fs services.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilityService: fs}
}

// CreateFacility handles the creation of a new facility.
func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var req services.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	facility, err := h.facilityService.CreateFacility(req)
	if err != nil {
		utils.LogError(err, "CreateFacility: Error from facilityService.CreateFacility")
		if errors.Is(err, services.ErrFacilityValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, facility)
}

// GetFacilities handles fetching all facilities.
func (h *FacilityHandler) GetFacilities(c *gin.Context) {
	facilities, err := h.facilityService.GetFacilities()
	if err != nil {
		utils.LogError(err, "GetFacilities: Error from facilityService.GetFacilities")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch facilities.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, facilities)
}

// GetFacilityByID handles fetching a single facility by ID.
func (h *FacilityHandler) GetFacilityByID(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility ID format.", err.Error()))
		return
	}

	facility, err := h.facilityService.GetFacilityByID(facilityID)
	if err != nil {
		if errors.Is(err, services.ErrFacilityNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Facility not found.", ""))
		} else {
			utils.LogError(err, "GetFacilityByID: Error from facilityService.GetFacilityByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, facility)
}

// UpdateFacility handles updating a facility.
func (h *FacilityHandler) UpdateFacility(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility ID format.", err.Error()))
		return
	}

	var req services.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	facility, err := h.facilityService.UpdateFacility(facilityID, req)
	if err != nil {
		utils.LogError(err, "UpdateFacility: Error from facilityService.UpdateFacility")
		if errors.Is(err, services.ErrFacilityNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Facility not found to update.", ""))
		} else if errors.Is(err, services.ErrFacilityValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, facility)
}

// DeleteFacility handles deleting a facility. Historical bookings referencing
// the facility remain.
func (h *FacilityHandler) DeleteFacility(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility ID format.", err.Error()))
		return
	}

	if err := h.facilityService.DeleteFacility(facilityID); err != nil {
		if errors.Is(err, services.ErrFacilityNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Facility not found to delete.", ""))
		} else {
			utils.LogError(err, "DeleteFacility: Error from facilityService.DeleteFacility")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Facility deleted successfully"})
}
