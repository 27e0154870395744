package handlers

import (
	"net/http"

	"carrental-backend/internal/services"
	"carrental-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUsers retrieves all accounts
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve users", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", users)
}

// GetClients retrieves all client accounts
func (h *UserHandler) GetClients(c *gin.Context) {
	clients, err := h.userService.GetAllClients()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve clients", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Clients retrieved successfully", clients)
}

// GetManagers retrieves all manager accounts
func (h *UserHandler) GetManagers(c *gin.Context) {
	managers, err := h.userService.GetAllManagers()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve managers", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Managers retrieved successfully", managers)
}

// GetUser retrieves a specific account by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "User ID is required", nil)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", user)
}

// SearchUsers searches accounts by name fragment
func (h *UserHandler) SearchUsers(c *gin.Context) {
	name := c.Query("name")

	users, err := h.userService.SearchUsersByName(name)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", users)
}

// ApproveManager flips a pending manager account to approved
func (h *UserHandler) ApproveManager(c *gin.Context) {
	managerID := c.Param("id")
	actorID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	manager, err := h.userService.ApproveManager(managerID, actorID.(string))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Manager approved successfully", manager)
}
