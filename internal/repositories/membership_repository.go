package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"sports_complex_backend/internal/models"
)

// MembershipRepository defines the interface for membership-plan database operations.
type MembershipRepository interface {
	CreatePlan(executor SQLExecutor, plan *models.MembershipPlan) (int64, error)
	GetPlanByID(id int64) (*models.MembershipPlan, error)
	GetPlans() ([]models.MembershipPlan, error)
	UpdatePlan(executor SQLExecutor, plan *models.MembershipPlan) error
	DeletePlan(executor SQLExecutor, id int64) error
}

type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository.
func NewMembershipRepository(db *sql.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) CreatePlan(executor SQLExecutor, plan *models.MembershipPlan) (int64, error) {
	query := `INSERT INTO memberships (name, duration, price, description, facility_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := executor.QueryRow(query, plan.Name, plan.DurationMonths, plan.Price, plan.Description, plan.FacilityID).Scan(&plan.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating membership plan: %v", ErrDatabaseError, err)
	}
	return plan.ID, nil
}

func (r *membershipRepository) GetPlanByID(id int64) (*models.MembershipPlan, error) {
	plan := &models.MembershipPlan{}
	query := `SELECT id, name, duration, price, description, facility_id FROM memberships WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&plan.ID, &plan.Name, &plan.DurationMonths, &plan.Price, &plan.Description, &plan.FacilityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting membership plan by ID %d: %v", ErrDatabaseError, id, err)
	}
	return plan, nil
}

func (r *membershipRepository) GetPlans() ([]models.MembershipPlan, error) {
	plans := []models.MembershipPlan{}
	query := `SELECT id, name, duration, price, description, facility_id FROM memberships ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying membership plans: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var plan models.MembershipPlan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.DurationMonths, &plan.Price, &plan.Description, &plan.FacilityID); err != nil {
			return nil, fmt.Errorf("%w: scanning membership plan row: %v", ErrDatabaseError, err)
		}
		plans = append(plans, plan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating membership plan rows: %v", ErrDatabaseError, err)
	}
	return plans, nil
}

func (r *membershipRepository) UpdatePlan(executor SQLExecutor, plan *models.MembershipPlan) error {
	query := `UPDATE memberships SET name = $1, duration = $2, price = $3, description = $4, facility_id = $5 WHERE id = $6`
	result, err := executor.Exec(query, plan.Name, plan.DurationMonths, plan.Price, plan.Description, plan.FacilityID, plan.ID)
	if err != nil {
		return fmt.Errorf("%w: updating membership plan ID %d: %v", ErrDatabaseError, plan.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *membershipRepository) DeletePlan(executor SQLExecutor, id int64) error {
	query := `DELETE FROM memberships WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting membership plan ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
