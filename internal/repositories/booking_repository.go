package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"sports_complex_backend/internal/models"
)

// BookingRepository defines the interface for booking-related database operations.
//
// CreateBooking is a pure append: it performs no availability checking of its
// own and trusts the caller to have run the eligibility and overlap checks.
// CreateBookingExclusive composes the overlap check and the append inside a
// single serializable transaction so two concurrent requests for the same slot
// cannot both commit.
type BookingRepository interface {
	CreateBooking(executor SQLExecutor, booking *models.Booking) (int64, error)
	CreateBookingExclusive(ctx context.Context, booking *models.Booking) (int64, error)
	GetBookingByID(id int64) (*models.Booking, error)
	GetBookings(filters models.BookingFilters) ([]models.Booking, int, error)
	UpdateBookingExclusive(ctx context.Context, booking *models.Booking) error
	DeleteBooking(executor SQLExecutor, id int64) error
	CheckFacilityAvailability(executor SQLExecutor, facilityID int64, startTime, endTime time.Time, excludeBookingID *int64) (bool, error)
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) CreateBooking(executor SQLExecutor, booking *models.Booking) (int64, error) {
	query := `INSERT INTO bookings (client_id, facility_id, start_time, end_time, status)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}

	err := executor.QueryRow(query,
		booking.ClientID, booking.FacilityID, booking.StartTime, booking.EndTime, booking.Status,
	).Scan(&booking.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating booking: %v", ErrDatabaseError, err)
	}
	return booking.ID, nil
}

// CreateBookingExclusive runs the overlap check and the insert in one
// serializable transaction. A concurrent conflicting writer aborts one of the
// transactions with SQLSTATE 40001, reported here as ErrSlotConflict.
func (r *bookingRepository) CreateBookingExclusive(ctx context.Context, booking *models.Booking) (int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, fmt.Errorf("%w: beginning booking transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	available, err := r.CheckFacilityAvailability(tx, booking.FacilityID, booking.StartTime, booking.EndTime, nil)
	if err != nil {
		return 0, err
	}
	if !available {
		return 0, ErrSlotConflict
	}

	id, err := r.CreateBooking(tx, booking)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return 0, ErrSlotConflict
		}
		return 0, fmt.Errorf("%w: committing booking: %v", ErrDatabaseError, err)
	}
	return id, nil
}

const getBookingJoins = `
	FROM bookings b
	LEFT JOIN clients c ON b.client_id = c.id
	LEFT JOIN facilities f ON b.facility_id = f.id
`
const selectBookingFields = `
	b.id, b.client_id, b.facility_id, b.start_time, b.end_time, b.status,
	c.name, f.name
`

func scanBookingRow(row scanner, isList bool) (*models.Booking, int, error) {
	var booking models.Booking
	var totalCount int

	scanDest := []interface{}{
		&booking.ID, &booking.ClientID, &booking.FacilityID,
		&booking.StartTime, &booking.EndTime, &booking.Status,
		&booking.ClientName, &booking.FacilityName,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning booking row: %v", ErrDatabaseError, err)
	}
	return &booking, totalCount, nil
}

func (r *bookingRepository) GetBookingByID(id int64) (*models.Booking, error) {
	query := "SELECT " + selectBookingFields + getBookingJoins + " WHERE b.id = $1"
	booking, _, err := scanBookingRow(r.db.QueryRow(query, id), false)
	return booking, err
}

func (r *bookingRepository) GetBookings(filters models.BookingFilters) ([]models.Booking, int, error) {
	bookings := []models.Booking{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectBookingFields + ", COUNT(*) OVER() AS total_count " + getBookingJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("b.client_id = $%d", argCount))
		args = append(args, *filters.ClientID)
		argCount++
	}
	if filters.FacilityID != nil {
		conditions = append(conditions, fmt.Sprintf("b.facility_id = $%d", argCount))
		args = append(args, *filters.FacilityID)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("b.start_time >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("b.end_time <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY b.start_time DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		booking, scannedTotalCount, scanErr := scanBookingRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		bookings = append(bookings, *booking)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating booking rows: %v", ErrDatabaseError, err)
	}
	if len(bookings) == 0 {
		totalCount = 0
	}
	return bookings, totalCount, nil
}

// UpdateBookingExclusive re-checks availability (excluding the row being
// moved) and applies the update inside one serializable transaction.
func (r *bookingRepository) UpdateBookingExclusive(ctx context.Context, booking *models.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: beginning booking update transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	available, err := r.CheckFacilityAvailability(tx, booking.FacilityID, booking.StartTime, booking.EndTime, &booking.ID)
	if err != nil {
		return err
	}
	if !available {
		return ErrSlotConflict
	}

	query := `UPDATE bookings SET client_id = $1, facility_id = $2, start_time = $3, end_time = $4, status = $5
	          WHERE id = $6`
	result, err := tx.Exec(query,
		booking.ClientID, booking.FacilityID, booking.StartTime, booking.EndTime, booking.Status, booking.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating booking ID %d: %v", ErrDatabaseError, booking.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: committing booking update: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *bookingRepository) DeleteBooking(executor SQLExecutor, id int64) error {
	query := `DELETE FROM bookings WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting booking ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckFacilityAvailability reports whether the [startTime, endTime) interval
// is free for the facility. Half-open comparison: an existing row conflicts
// only when existing.start < requested.end AND existing.end > requested.start,
// so back-to-back reservations never collide. Rows in other facilities never
// conflict regardless of time.
func (r *bookingRepository) CheckFacilityAvailability(executor SQLExecutor, facilityID int64, startTime, endTime time.Time, excludeBookingID *int64) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
	          WHERE facility_id = $1
	          AND start_time < $3 AND end_time > $2`
	args := []interface{}{facilityID, startTime, endTime}

	if excludeBookingID != nil {
		query += " AND id != $4"
		args = append(args, *excludeBookingID)
	}

	var count int
	if err := executor.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: checking facility availability: %v", ErrDatabaseError, err)
	}
	return count == 0, nil
}

// isSerializationFailure reports whether err is a PostgreSQL serialization
// failure (SQLSTATE 40001), which surfaces when two serializable transactions
// race for the same slot.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}
