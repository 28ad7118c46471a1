package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/services"
	"sports_complex_backend/pkg/utils"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// CreateClient handles the creation of a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(req)
	if err != nil {
		utils.LogError(err, "CreateClient: Error from clientService.CreateClient")
		if errors.Is(err, services.ErrClientValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients handles fetching clients with pagination and optional search.
func (h *ClientHandler) GetClients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	var searchTerm *string
	if search := c.Query("search"); search != "" {
		searchTerm = &search
	}

	clients, totalCount, err := h.clientService.GetClients(page, pageSize, searchTerm)
	if err != nil {
		utils.LogError(err, "GetClients: Error from clientService.GetClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch clients.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  clients,
		"total": totalCount,
	})
}

// GetClientByID handles fetching a single client by ID.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client ID format.", err.Error()))
		return
	}

	client, err := h.clientService.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
		} else {
			utils.LogError(err, "GetClientByID: Error from clientService.GetClientByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles updating a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client ID format.", err.Error()))
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.UpdateClient(clientID, req)
	if err != nil {
		utils.LogError(err, "UpdateClient: Error from clientService.UpdateClient")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found to update.", ""))
		} else if errors.Is(err, services.ErrClientValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles deleting a client. Bookings and payments referencing
// the client are left untouched.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client ID format.", err.Error()))
		return
	}

	if err := h.clientService.DeleteClient(clientID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found to delete.", ""))
		} else {
			utils.LogError(err, "DeleteClient: Error from clientService.DeleteClient")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
