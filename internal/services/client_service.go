package services

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientValidation = errors.New("client data validation error")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// ClientService manages the client register. Deleting a client does not
// cascade to bookings or payments; historical rows keep their references.
type ClientService interface {
	CreateClient(req CreateClientRequest) (*models.Client, error)
	GetClientByID(clientID int64) (*models.Client, error)
	GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(clientID int64) error
}

type clientService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, db *sql.DB) ClientService {
	return &clientService{
		clientRepo: repo,
		db:         db,
	}
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

func validateClientData(name string, email *string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrClientValidation)
	}
	if email != nil && *email != "" && !emailRegex.MatchString(strings.ToLower(*email)) {
		return fmt.Errorf("%w: invalid email format", ErrClientValidation)
	}
	return nil
}

func (s *clientService) CreateClient(req CreateClientRequest) (*models.Client, error) {
	if err := validateClientData(req.Name, req.Email); err != nil {
		return nil, err
	}

	client := &models.Client{
		Name:  strings.TrimSpace(req.Name),
		Phone: req.Phone,
		Email: req.Email,
	}
	if _, err := s.clientRepo.CreateClient(s.db, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClientByID(clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	clients, totalCount, err := s.clientRepo.GetClients(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, totalCount, nil
}

func (s *clientService) UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Email != nil {
		client.Email = req.Email
	}

	if err := validateClientData(client.Name, client.Email); err != nil {
		return nil, err
	}

	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) DeleteClient(clientID int64) error {
	if err := s.clientRepo.DeleteClient(s.db, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
