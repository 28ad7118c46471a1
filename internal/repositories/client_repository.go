package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sports_complex_backend/internal/models"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeleteClient(executor SQLExecutor, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (name, phone, email, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query, client.Name, client.Phone, client.Email, client.CreatedAt).Scan(&client.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return client.ID, nil
}

func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT id, name, phone, email, created_at FROM clients WHERE id = $1`

	err := r.db.QueryRow(query, id).Scan(&client.ID, &client.Name, &client.Phone, &client.Email, &client.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

func (r *clientRepository) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	clients := []models.Client{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, phone, email, created_at, COUNT(*) OVER() AS total_count FROM clients`)

	var args []interface{}
	argCount := 1
	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE name ILIKE $%d OR phone ILIKE $%d", argCount, argCount))
		args = append(args, "%"+*searchTerm+"%")
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var client models.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Phone, &client.Email, &client.CreatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning client row: %v", ErrDatabaseError, err)
		}
		clients = append(clients, client)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	if len(clients) == 0 {
		totalCount = 0
	}
	return clients, totalCount, nil
}

func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET name = $1, phone = $2, email = $3 WHERE id = $4`
	result, err := executor.Exec(query, client.Name, client.Phone, client.Email, client.ID)
	if err != nil {
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes a client row. Historical bookings and payments that
// reference the client are deliberately left in place (dangling references
// are tolerated).
func (r *clientRepository) DeleteClient(executor SQLExecutor, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
