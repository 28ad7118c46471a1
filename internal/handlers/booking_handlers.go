package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/services"
	"sports_complex_backend/pkg/utils"
)

// BookingHandler holds the booking service.
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// CreateBooking handles the creation of a new booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateBooking: Error from bookingService.CreateBooking")
		if apiErr := reservationAPIError(err); apiErr != nil {
			utils.RespondWithError(c, apiErr)
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create booking.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookings handles fetching bookings with pagination and filters.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	var filters models.BookingFilters
	filters.Page = page
	filters.PageSize = pageSize

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		id, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client_id format.", err.Error()))
			return
		}
		filters.ClientID = &id
	}
	if facilityIDStr := c.Query("facility_id"); facilityIDStr != "" {
		id, err := strconv.ParseInt(facilityIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility_id format.", err.Error()))
			return
		}
		filters.FacilityID = &id
	}
	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		t, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_from format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		filters.DateFrom = &t
	}
	if dateToStr := c.Query("date_to"); dateToStr != "" {
		t, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_to format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		filters.DateTo = &t
	}

	bookings, totalCount, err := h.bookingService.GetBookings(filters)
	if err != nil {
		utils.LogError(err, "GetBookings: Error from bookingService.GetBookings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch bookings.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      bookings,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetBookingByID handles fetching a single booking by ID.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	booking, err := h.bookingService.GetBookingByID(bookingID)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Booking not found.", ""))
		} else {
			utils.LogError(err, "GetBookingByID: Error from bookingService.GetBookingByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch booking.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking handles moving a booking to another slot or facility.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), bookingID, req)
	if err != nil {
		utils.LogError(err, "UpdateBooking: Error from bookingService.UpdateBooking")
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Booking not found to update.", ""))
		} else if apiErr := reservationAPIError(err); apiErr != nil {
			utils.RespondWithError(c, apiErr)
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update booking.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles deleting a booking.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	if err := h.bookingService.DeleteBooking(bookingID); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Booking not found to delete.", ""))
		} else {
			utils.LogError(err, "DeleteBooking: Error from bookingService.DeleteBooking")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete booking.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
