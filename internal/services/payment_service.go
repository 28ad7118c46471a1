package services

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// --- Custom Service Errors for Payment ---
var (
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentValidation      = errors.New("payment data validation error")
	ErrClientForPaymentAbsent = errors.New("client specified for payment not found")
	ErrPlanForPaymentAbsent   = errors.New("membership plan specified for payment not found")
)

// --- Payment DTOs ---
type CreatePaymentRequest struct {
	ClientID     int64   `json:"client_id" binding:"required"`
	MembershipID int64   `json:"membership_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	PaymentDate  *string `json:"payment_date"`
}

// PaymentService records membership payments. Each payment potentially
// changes which plan is the client's active membership, since the derivation
// always follows the most recent payment row.
type PaymentService interface {
	CreatePayment(req CreatePaymentRequest) (*models.Payment, error)
	GetPayments() ([]models.Payment, error)
	DeletePayment(paymentID int64) error

	// ExportPaymentsCSV streams all payments as CSV to w.
	ExportPaymentsCSV(w io.Writer) error
}

type paymentService struct {
	paymentRepo    repositories.PaymentRepository
	clientRepo     repositories.ClientRepository
	membershipRepo repositories.MembershipRepository
	db             *sql.DB
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	pr repositories.PaymentRepository,
	cr repositories.ClientRepository,
	mr repositories.MembershipRepository,
	db *sql.DB,
) PaymentService {
	return &paymentService{
		paymentRepo:    pr,
		clientRepo:     cr,
		membershipRepo: mr,
		db:             db,
	}
}

func (s *paymentService) CreatePayment(req CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrPaymentValidation)
	}

	if _, err := s.clientRepo.GetClientByID(req.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrClientForPaymentAbsent, req.ClientID)
		}
		return nil, fmt.Errorf("failed to validate client for payment: %w", err)
	}
	if _, err := s.membershipRepo.GetPlanByID(req.MembershipID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrPlanForPaymentAbsent, req.MembershipID)
		}
		return nil, fmt.Errorf("failed to validate membership plan for payment: %w", err)
	}

	payment := &models.Payment{
		ClientID:     req.ClientID,
		MembershipID: req.MembershipID,
		Amount:       req.Amount,
	}
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		paymentDate, err := parseDateTime(*req.PaymentDate)
		if err != nil {
			// Bare dates are also accepted for backdated payments.
			paymentDate, err = time.Parse("2006-01-02", *req.PaymentDate)
			if err != nil {
				return nil, fmt.Errorf("payment_date: %w", ErrTimeFormat)
			}
		}
		payment.PaymentDate = paymentDate
	}

	if _, err := s.paymentRepo.CreatePayment(s.db, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) GetPayments() ([]models.Payment, error) {
	payments, err := s.paymentRepo.GetPayments()
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) DeletePayment(paymentID int64) error {
	if err := s.paymentRepo.DeletePayment(s.db, paymentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (s *paymentService) ExportPaymentsCSV(w io.Writer) error {
	payments, err := s.paymentRepo.GetPayments()
	if err != nil {
		return fmt.Errorf("failed to load payments for export: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "client", "membership_plan", "amount", "payment_date"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, payment := range payments {
		clientName := ""
		if payment.ClientName != nil {
			clientName = *payment.ClientName
		}
		planName := ""
		if payment.PlanName != nil {
			planName = *payment.PlanName
		}
		record := []string{
			strconv.FormatInt(payment.ID, 10),
			clientName,
			planName,
			strconv.FormatFloat(payment.Amount, 'f', 2, 64),
			payment.PaymentDate.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
