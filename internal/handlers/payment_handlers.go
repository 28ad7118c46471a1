package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/services"
	"sports_complex_backend/pkg/utils"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// CreatePayment handles recording a new membership payment.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	payment, err := h.paymentService.CreatePayment(req)
	if err != nil {
		utils.LogError(err, "CreatePayment: Error from paymentService.CreatePayment")
		if errors.Is(err, services.ErrPaymentValidation) || errors.Is(err, services.ErrTimeFormat) ||
			errors.Is(err, services.ErrClientForPaymentAbsent) || errors.Is(err, services.ErrPlanForPaymentAbsent) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPayments handles fetching all payments with joined display names.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	payments, err := h.paymentService.GetPayments()
	if err != nil {
		utils.LogError(err, "GetPayments: Error from paymentService.GetPayments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payments.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, payments)
}

// DeletePayment handles deleting a payment.
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment ID format.", err.Error()))
		return
	}

	if err := h.paymentService.DeletePayment(paymentID); err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found to delete.", ""))
		} else {
			utils.LogError(err, "DeletePayment: Error from paymentService.DeletePayment")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}

// ExportPayments streams all payments as a CSV download.
func (h *PaymentHandler) ExportPayments(c *gin.Context) {
	filename := "payments-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.paymentService.ExportPaymentsCSV(c.Writer); err != nil {
		utils.LogError(err, "ExportPayments: Error from paymentService.ExportPaymentsCSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export payments.", "Internal error"))
		return
	}
}
