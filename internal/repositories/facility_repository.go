package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"sports_complex_backend/internal/models"
)

// FacilityRepository defines the interface for facility-related database operations.
type FacilityRepository interface {
	CreateFacility(executor SQLExecutor, facility *models.Facility) (int64, error)
	GetFacilityByID(id int64) (*models.Facility, error)
	GetFacilities() ([]models.Facility, error)
	UpdateFacility(executor SQLExecutor, facility *models.Facility) error
	DeleteFacility(executor SQLExecutor, id int64) error
}

type facilityRepository struct {
	db *sql.DB
}

// NewFacilityRepository creates a new instance of FacilityRepository.
func NewFacilityRepository(db *sql.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

func (r *facilityRepository) CreateFacility(executor SQLExecutor, facility *models.Facility) (int64, error) {
	query := `INSERT INTO facilities (name, type, capacity) VALUES ($1, $2, $3) RETURNING id`
	err := executor.QueryRow(query, facility.Name, facility.Type, facility.Capacity).Scan(&facility.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating facility: %v", ErrDatabaseError, err)
	}
	return facility.ID, nil
}

func (r *facilityRepository) GetFacilityByID(id int64) (*models.Facility, error) {
	facility := &models.Facility{}
	query := `SELECT id, name, type, capacity FROM facilities WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&facility.ID, &facility.Name, &facility.Type, &facility.Capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting facility by ID %d: %v", ErrDatabaseError, id, err)
	}
	return facility, nil
}

func (r *facilityRepository) GetFacilities() ([]models.Facility, error) {
	facilities := []models.Facility{}
	query := `SELECT id, name, type, capacity FROM facilities ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying facilities: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var facility models.Facility
		if err := rows.Scan(&facility.ID, &facility.Name, &facility.Type, &facility.Capacity); err != nil {
			return nil, fmt.Errorf("%w: scanning facility row: %v", ErrDatabaseError, err)
		}
		facilities = append(facilities, facility)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating facility rows: %v", ErrDatabaseError, err)
	}
	return facilities, nil
}

func (r *facilityRepository) UpdateFacility(executor SQLExecutor, facility *models.Facility) error {
	query := `UPDATE facilities SET name = $1, type = $2, capacity = $3 WHERE id = $4`
	result, err := executor.Exec(query, facility.Name, facility.Type, facility.Capacity, facility.ID)
	if err != nil {
		return fmt.Errorf("%w: updating facility ID %d: %v", ErrDatabaseError, facility.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFacility removes a facility row. Bookings and schedule entries that
// reference it are not cascaded; dangling references are tolerated.
func (r *facilityRepository) DeleteFacility(executor SQLExecutor, id int64) error {
	query := `DELETE FROM facilities WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting facility ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
