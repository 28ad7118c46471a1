package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/services"
	"sports_complex_backend/pkg/utils"
)

// MembershipHandler holds the membership service.
type MembershipHandler struct {
	membershipService services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(ms services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: ms}
}

// CreatePlan handles the creation of a new membership plan.
func (h *MembershipHandler) CreatePlan(c *gin.Context) {
	var req services.CreateMembershipPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	plan, err := h.membershipService.CreatePlan(req)
	if err != nil {
		utils.LogError(err, "CreatePlan: Error from membershipService.CreatePlan")
		if errors.Is(err, services.ErrPlanValidation) || errors.Is(err, services.ErrFacilityForPlan) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create membership plan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetPlans handles fetching all membership plans.
func (h *MembershipHandler) GetPlans(c *gin.Context) {
	plans, err := h.membershipService.GetPlans()
	if err != nil {
		utils.LogError(err, "GetPlans: Error from membershipService.GetPlans")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch membership plans.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlanByID handles fetching a single membership plan by ID.
func (h *MembershipHandler) GetPlanByID(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership plan ID format.", err.Error()))
		return
	}

	plan, err := h.membershipService.GetPlanByID(planID)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership plan not found.", ""))
		} else {
			utils.LogError(err, "GetPlanByID: Error from membershipService.GetPlanByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch membership plan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdatePlan handles updating a membership plan.
func (h *MembershipHandler) UpdatePlan(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership plan ID format.", err.Error()))
		return
	}

	var req services.UpdateMembershipPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	plan, err := h.membershipService.UpdatePlan(planID, req)
	if err != nil {
		utils.LogError(err, "UpdatePlan: Error from membershipService.UpdatePlan")
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership plan not found to update.", ""))
		} else if errors.Is(err, services.ErrPlanValidation) || errors.Is(err, services.ErrFacilityForPlan) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update membership plan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan handles deleting a membership plan.
func (h *MembershipHandler) DeletePlan(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership plan ID format.", err.Error()))
		return
	}

	if err := h.membershipService.DeletePlan(planID); err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership plan not found to delete.", ""))
		} else {
			utils.LogError(err, "DeletePlan: Error from membershipService.DeletePlan")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete membership plan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Membership plan deleted successfully"})
}

// GetClientActiveMembership returns the derived active membership of a client:
// the plan of their most recent payment and its validity window.
func (h *MembershipHandler) GetClientActiveMembership(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client ID format.", err.Error()))
		return
	}

	membership, err := h.membershipService.GetActiveMembership(clientID)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveMembership) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeNoMembership, "no active membership", ""))
		} else {
			utils.LogError(err, "GetClientActiveMembership: Error from membershipService.GetActiveMembership")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch active membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}
