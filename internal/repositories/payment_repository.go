package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sports_complex_backend/internal/models"
)

// PaymentRepository defines the interface for payment-related database operations.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPayments() ([]models.Payment, error)
	DeletePayment(executor SQLExecutor, id int64) error

	// GetLatestPaymentWithPlan returns the client's most recent payment joined
	// to the paid plan. Returns ErrNotFound when the client has no payment
	// history. Only the single latest row is considered: a newer payment
	// replaces which plan is active, windows are never merged.
	GetLatestPaymentWithPlan(clientID int64) (*models.LatestPayment, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payments (client_id, membership_id, amount, payment_date)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}

	err := executor.QueryRow(query, payment.ClientID, payment.MembershipID, payment.Amount, payment.PaymentDate).Scan(&payment.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

func (r *paymentRepository) GetPayments() ([]models.Payment, error) {
	payments := []models.Payment{}
	// LEFT JOINs: clients and plans may have been deleted since the payment
	// was taken; historical rows stay listable regardless.
	query := `SELECT p.id, p.client_id, p.membership_id, p.amount, p.payment_date,
	                 c.name, m.name
	          FROM payments p
	          LEFT JOIN clients c ON p.client_id = c.id
	          LEFT JOIN memberships m ON p.membership_id = m.id
	          ORDER BY p.payment_date DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(&payment.ID, &payment.ClientID, &payment.MembershipID, &payment.Amount,
			&payment.PaymentDate, &payment.ClientName, &payment.PlanName); err != nil {
			return nil, fmt.Errorf("%w: scanning payment row: %v", ErrDatabaseError, err)
		}
		payments = append(payments, payment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

func (r *paymentRepository) DeletePayment(executor SQLExecutor, id int64) error {
	query := `DELETE FROM payments WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting payment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *paymentRepository) GetLatestPaymentWithPlan(clientID int64) (*models.LatestPayment, error) {
	latest := &models.LatestPayment{}
	query := `SELECT m.id, m.name, m.duration, m.facility_id, p.payment_date
	          FROM payments p
	          JOIN memberships m ON p.membership_id = m.id
	          WHERE p.client_id = $1
	          ORDER BY p.payment_date DESC
	          LIMIT 1`

	err := r.db.QueryRow(query, clientID).Scan(
		&latest.PlanID, &latest.PlanName, &latest.DurationMonths, &latest.FacilityID, &latest.PaymentDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting latest payment for client %d: %v", ErrDatabaseError, clientID, err)
	}
	return latest, nil
}
