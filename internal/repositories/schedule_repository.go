package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sports_complex_backend/internal/models"
)

// ScheduleRepository defines the interface for schedule-entry database operations.
// Entries live on a single calendar date; overlap is scoped to facility AND
// date, so the same time range on different days never conflicts.
type ScheduleRepository interface {
	CreateEntry(executor SQLExecutor, entry *models.ScheduleEntry) (int64, error)
	CreateEntryExclusive(ctx context.Context, entry *models.ScheduleEntry) (int64, error)
	GetEntryByID(id int64) (*models.ScheduleEntry, error)
	GetEntries(filters models.ScheduleFilters) ([]models.ScheduleEntry, error)
	UpdateEntryExclusive(ctx context.Context, entry *models.ScheduleEntry) error
	DeleteEntry(executor SQLExecutor, id int64) error
	CheckSlotAvailability(executor SQLExecutor, facilityID int64, date, startTime, endTime string, excludeEntryID *int64) (bool, error)
}

type scheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) CreateEntry(executor SQLExecutor, entry *models.ScheduleEntry) (int64, error) {
	query := `INSERT INTO schedule_entries (client_id, facility_id, date, start_time, end_time, activity_name, trainer)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	err := executor.QueryRow(query,
		entry.ClientID, entry.FacilityID, entry.Date, entry.StartTime, entry.EndTime,
		entry.ActivityName, entry.Trainer,
	).Scan(&entry.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating schedule entry: %v", ErrDatabaseError, err)
	}
	return entry.ID, nil
}

// CreateEntryExclusive runs the overlap check and the insert in one
// serializable transaction, mirroring the booking writer.
func (r *scheduleRepository) CreateEntryExclusive(ctx context.Context, entry *models.ScheduleEntry) (int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, fmt.Errorf("%w: beginning schedule transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	available, err := r.CheckSlotAvailability(tx, entry.FacilityID, entry.Date, entry.StartTime, entry.EndTime, nil)
	if err != nil {
		return 0, err
	}
	if !available {
		return 0, ErrSlotConflict
	}

	id, err := r.CreateEntry(tx, entry)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return 0, ErrSlotConflict
		}
		return 0, fmt.Errorf("%w: committing schedule entry: %v", ErrDatabaseError, err)
	}
	return id, nil
}

const getScheduleJoins = `
	FROM schedule_entries s
	LEFT JOIN clients c ON s.client_id = c.id
	LEFT JOIN facilities f ON s.facility_id = f.id
`
const selectScheduleFields = `
	s.id, s.client_id, s.facility_id, s.date, s.start_time, s.end_time,
	s.activity_name, s.trainer, c.name, f.name
`

func scanScheduleRow(row scanner) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	err := row.Scan(
		&entry.ID, &entry.ClientID, &entry.FacilityID, &entry.Date,
		&entry.StartTime, &entry.EndTime, &entry.ActivityName, &entry.Trainer,
		&entry.ClientName, &entry.FacilityName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning schedule entry row: %v", ErrDatabaseError, err)
	}
	return &entry, nil
}

func (r *scheduleRepository) GetEntryByID(id int64) (*models.ScheduleEntry, error) {
	query := "SELECT " + selectScheduleFields + getScheduleJoins + " WHERE s.id = $1"
	return scanScheduleRow(r.db.QueryRow(query, id))
}

func (r *scheduleRepository) GetEntries(filters models.ScheduleFilters) ([]models.ScheduleEntry, error) {
	entries := []models.ScheduleEntry{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectScheduleFields + getScheduleJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.FacilityID != nil {
		conditions = append(conditions, fmt.Sprintf("s.facility_id = $%d", argCount))
		args = append(args, *filters.FacilityID)
		argCount++
	}
	if filters.Date != nil && *filters.Date != "" {
		conditions = append(conditions, fmt.Sprintf("s.date = $%d", argCount))
		args = append(args, *filters.Date)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY s.date ASC, s.start_time ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying schedule entries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, scanErr := scanScheduleRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, *entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating schedule entry rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// UpdateEntryExclusive re-checks the slot (excluding the entry being moved)
// and applies the update inside one serializable transaction.
func (r *scheduleRepository) UpdateEntryExclusive(ctx context.Context, entry *models.ScheduleEntry) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: beginning schedule update transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	available, err := r.CheckSlotAvailability(tx, entry.FacilityID, entry.Date, entry.StartTime, entry.EndTime, &entry.ID)
	if err != nil {
		return err
	}
	if !available {
		return ErrSlotConflict
	}

	query := `UPDATE schedule_entries
	          SET client_id = $1, facility_id = $2, date = $3, start_time = $4, end_time = $5, activity_name = $6, trainer = $7
	          WHERE id = $8`
	result, err := tx.Exec(query,
		entry.ClientID, entry.FacilityID, entry.Date, entry.StartTime, entry.EndTime,
		entry.ActivityName, entry.Trainer, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating schedule entry ID %d: %v", ErrDatabaseError, entry.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: committing schedule entry update: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *scheduleRepository) DeleteEntry(executor SQLExecutor, id int64) error {
	query := `DELETE FROM schedule_entries WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting schedule entry ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckSlotAvailability reports whether the [startTime, endTime) wall-clock
// range is free for the facility on the given date. Times are zero-padded
// HH:MM strings, so text comparison matches time ordering.
func (r *scheduleRepository) CheckSlotAvailability(executor SQLExecutor, facilityID int64, date, startTime, endTime string, excludeEntryID *int64) (bool, error) {
	query := `SELECT COUNT(*) FROM schedule_entries
	          WHERE facility_id = $1 AND date = $2
	          AND start_time < $4 AND end_time > $3`
	args := []interface{}{facilityID, date, startTime, endTime}

	if excludeEntryID != nil {
		query += " AND id != $5"
		args = append(args, *excludeEntryID)
	}

	var count int
	if err := executor.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: checking schedule slot availability: %v", ErrDatabaseError, err)
	}
	return count == 0, nil
}
