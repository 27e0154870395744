package handlers

import (
	"net/http"
	"strconv"

	"carrental-backend/internal/models"
	"carrental-backend/internal/services"
	"carrental-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CarHandler struct {
	carService *services.CarService
	validator  *validator.Validate
}

func NewCarHandler(carService *services.CarService) *CarHandler {
	return &CarHandler{
		carService: carService,
		validator:  validator.New(),
	}
}

// GetCars retrieves all cars
func (h *CarHandler) GetCars(c *gin.Context) {
	cars, err := h.carService.GetAllCars()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve cars", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cars retrieved successfully", cars)
}

// GetAvailableCars retrieves cars currently open for rent
func (h *CarHandler) GetAvailableCars(c *gin.Context) {
	cars, err := h.carService.GetAvailableCars()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve cars", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Available cars retrieved successfully", cars)
}

// GetCar retrieves a specific car by ID
func (h *CarHandler) GetCar(c *gin.Context) {
	carID := c.Param("id")
	if carID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Car ID is required", nil)
		return
	}

	car, err := h.carService.GetCarByID(carID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Car retrieved successfully", car)
}

// FilterCars runs the combined catalog search from query parameters
func (h *CarHandler) FilterCars(c *gin.Context) {
	var filter models.CarFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid filter parameters", err)
		return
	}

	cars, err := h.carService.GetCarsWithFilters(&filter)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cars retrieved successfully", cars)
}

// GetFilterOptions returns the distinct values usable as filter criteria
func (h *CarHandler) GetFilterOptions(c *gin.Context) {
	options, err := h.carService.GetFilterOptions()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve filter options", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Filter options retrieved successfully", options)
}

// CreateCar adds a new listing owned by the acting manager
func (h *CarHandler) CreateCar(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.AddCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	car, err := h.carService.AddCar(userID.(string), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Car created successfully", car)
}

// GetMyCars retrieves the acting manager's listings
func (h *CarHandler) GetMyCars(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	cars, err := h.carService.GetCarsByManager(userID.(string))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve cars", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cars retrieved successfully", cars)
}

// UpdateAvailability flips the availability flag on a listing
func (h *CarHandler) UpdateAvailability(c *gin.Context) {
	carID := c.Param("id")
	if carID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Car ID is required", nil)
		return
	}

	availableStr := c.Query("available")
	available, err := strconv.ParseBool(availableStr)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "available must be true or false", err)
		return
	}

	car, err := h.carService.UpdateCarAvailability(carID, available)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Car availability updated successfully", car)
}

// RentCar is the direct availability-flip shortcut for clients
func (h *CarHandler) RentCar(c *gin.Context) {
	carID := c.Param("id")
	if carID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Car ID is required", nil)
		return
	}

	car, err := h.carService.RentCar(carID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Car rented successfully", car)
}
