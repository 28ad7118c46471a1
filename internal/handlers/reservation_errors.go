package handlers

import (
	"errors"
	"net/http"

	"sports_complex_backend/internal/services"
	"sports_complex_backend/pkg/utils"
)

// reservationAPIError maps the shared eligibility/overlap failure modes of the
// booking and schedule engines to API errors. Returns nil for errors outside
// the engine's taxonomy so callers can apply their own mapping.
func reservationAPIError(err error) *utils.APIError {
	switch {
	case errors.Is(err, services.ErrNoActiveMembership):
		return utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeNoMembership, err.Error(), "")
	case errors.Is(err, services.ErrMembershipExpired):
		return utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeMembershipExpired, err.Error(), "")
	case errors.Is(err, services.ErrFacilityMismatch):
		return utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeFacilityMismatch, err.Error(), "")
	case errors.Is(err, services.ErrSlotTaken):
		return utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeSlotTaken, err.Error(), "")
	case errors.Is(err, services.ErrTimeFormat),
		errors.Is(err, services.ErrInvalidBookingTime),
		errors.Is(err, services.ErrScheduleValidation),
		errors.Is(err, services.ErrScheduleDateFormat),
		errors.Is(err, services.ErrScheduleTimeFormat):
		return utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), "")
	}
	return nil
}
