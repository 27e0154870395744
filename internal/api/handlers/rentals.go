package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"carrental-backend/internal/models"
	"carrental-backend/internal/services"
	"carrental-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RentalHandler struct {
	rentalService *services.RentalService
	validator     *validator.Validate
}

func NewRentalHandler(rentalService *services.RentalService) *RentalHandler {
	return &RentalHandler{
		rentalService: rentalService,
		validator:     validator.New(),
	}
}

// CreateRental submits a new rental request for the acting client
func (h *RentalHandler) CreateRental(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	rental, err := h.rentalService.CreateRental(userID.(string), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Rental request created successfully", rental)
}

// GetMyRentals lists the acting user's rental history
func (h *RentalHandler) GetMyRentals(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	rentals, err := h.rentalService.GetUserRentals(userID.(string))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve rentals", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rentals retrieved successfully", rentals)
}

// GetRental retrieves a rental by ID
func (h *RentalHandler) GetRental(c *gin.Context) {
	rentalID := c.Param("id")
	if rentalID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Rental ID is required", nil)
		return
	}

	rental, err := h.rentalService.GetRentalByID(rentalID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rental retrieved successfully", rental)
}

// GetCarRentals lists the rental history for a car
func (h *RentalHandler) GetCarRentals(c *gin.Context) {
	carID := c.Param("carId")
	if carID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Car ID is required", nil)
		return
	}

	rentals, err := h.rentalService.GetCarRentals(carID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve rentals", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rentals retrieved successfully", rentals)
}

// GetManagerRentals lists rentals for the acting manager's cars,
// optionally narrowed by ?status=
func (h *RentalHandler) GetManagerRentals(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	statusParam := strings.TrimSpace(c.Query("status"))
	if statusParam == "" {
		rentals, err := h.rentalService.GetManagerRentals(userID.(string))
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve rentals", err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Rentals retrieved successfully", rentals)
		return
	}

	var statuses []models.RentalStatus
	for _, s := range strings.Split(statusParam, ",") {
		statuses = append(statuses, models.RentalStatus(strings.ToUpper(strings.TrimSpace(s))))
	}

	rentals, err := h.rentalService.GetManagerRentalsByStatus(userID.(string), statuses...)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve rentals", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rentals retrieved successfully", rentals)
}

// GetManagerStats returns the acting manager's rental dashboard numbers
func (h *RentalHandler) GetManagerStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	stats, err := h.rentalService.GetManagerRentalStats(userID.(string))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve rental statistics", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rental statistics retrieved successfully", stats)
}

// ApproveRental confirms a pending rental
func (h *RentalHandler) ApproveRental(c *gin.Context) {
	rentalID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	rental, err := h.rentalService.ApproveRental(rentalID, userID.(string))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rental approved successfully", rental)
}

// RejectRental declines a pending rental with an optional reason
func (h *RentalHandler) RejectRental(c *gin.Context) {
	rentalID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	// An empty body is fine; the reason is optional.
	var req services.RejectRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	rental, err := h.rentalService.RejectRental(rentalID, userID.(string), req.Reason)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rental rejected", rental)
}

// StartRental marks a confirmed rental as picked up
func (h *RentalHandler) StartRental(c *gin.Context) {
	rentalID := c.Param("id")

	rental, err := h.rentalService.StartRental(rentalID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rental started successfully", rental)
}

// CompleteRental closes out a rental and settles the final price
func (h *RentalHandler) CompleteRental(c *gin.Context) {
	rentalID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	rental, err := h.rentalService.CompleteRental(rentalID, userID.(string))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rental completed successfully", rental)
}

// CancelRental cancels a non-terminal rental
func (h *RentalHandler) CancelRental(c *gin.Context) {
	rentalID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	rental, err := h.rentalService.CancelRental(rentalID, userID.(string))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rental cancelled successfully", rental)
}
