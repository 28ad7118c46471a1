package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/services"
	"sports_complex_backend/pkg/utils"
)

// ScheduleHandler holds the schedule service.
type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// CreateEntry handles the creation of a new schedule entry.
func (h *ScheduleHandler) CreateEntry(c *gin.Context) {
	var req services.CreateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	entry, err := h.scheduleService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateEntry: Error from scheduleService.CreateEntry")
		if apiErr := reservationAPIError(err); apiErr != nil {
			utils.RespondWithError(c, apiErr)
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create schedule entry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetEntries handles fetching schedule entries with optional filters.
func (h *ScheduleHandler) GetEntries(c *gin.Context) {
	var filters models.ScheduleFilters

	if facilityIDStr := c.Query("facility_id"); facilityIDStr != "" {
		id, err := strconv.ParseInt(facilityIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility_id format.", err.Error()))
			return
		}
		filters.FacilityID = &id
	}
	if dateStr := c.Query("date"); dateStr != "" {
		filters.Date = &dateStr
	}

	entries, err := h.scheduleService.GetEntries(filters)
	if err != nil {
		utils.LogError(err, "GetEntries: Error from scheduleService.GetEntries")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch schedule entries.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetEntryByID handles fetching a single schedule entry by ID.
func (h *ScheduleHandler) GetEntryByID(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid schedule entry ID format.", err.Error()))
		return
	}

	entry, err := h.scheduleService.GetEntryByID(entryID)
	if err != nil {
		if errors.Is(err, services.ErrScheduleEntryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Schedule entry not found.", ""))
		} else {
			utils.LogError(err, "GetEntryByID: Error from scheduleService.GetEntryByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch schedule entry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateEntry handles moving or editing a schedule entry.
func (h *ScheduleHandler) UpdateEntry(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid schedule entry ID format.", err.Error()))
		return
	}

	var req services.UpdateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	entry, err := h.scheduleService.UpdateEntry(c.Request.Context(), entryID, req)
	if err != nil {
		utils.LogError(err, "UpdateEntry: Error from scheduleService.UpdateEntry")
		if errors.Is(err, services.ErrScheduleEntryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Schedule entry not found to update.", ""))
		} else if apiErr := reservationAPIError(err); apiErr != nil {
			utils.RespondWithError(c, apiErr)
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update schedule entry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry handles deleting a schedule entry.
func (h *ScheduleHandler) DeleteEntry(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid schedule entry ID format.", err.Error()))
		return
	}

	if err := h.scheduleService.DeleteEntry(entryID); err != nil {
		if errors.Is(err, services.ErrScheduleEntryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Schedule entry not found to delete.", ""))
		} else {
			utils.LogError(err, "DeleteEntry: Error from scheduleService.DeleteEntry")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete schedule entry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule entry deleted successfully"})
}
