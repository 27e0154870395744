package handlers

import (
	"net/http"

	"carrental-backend/internal/services"
	"carrental-backend/pkg/storage"
	"carrental-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	carService *services.CarService
	images     *storage.ImageStore
}

func NewPhotoHandler(carService *services.CarService, images *storage.ImageStore) *PhotoHandler {
	return &PhotoHandler{
		carService: carService,
		images:     images,
	}
}

// UploadCarPhoto stores an uploaded image and attaches its URL to the car.
// A previous photo is removed from disk once the replacement is persisted.
func (h *PhotoHandler) UploadCarPhoto(c *gin.Context) {
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

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "photo file is required", err)
		return
	}

	imageURL, err := h.images.SaveImage(fileHeader)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to store image", err)
		return
	}

	previousURL := car.ImageURL

	updated, err := h.carService.UpdateCarPhoto(carID, imageURL)
	if err != nil {
		h.images.Remove(imageURL)
		utils.AppErrorResponse(c, err)
		return
	}

	if previousURL != "" && previousURL != imageURL {
		h.images.Remove(previousURL)
	}

	utils.SuccessResponse(c, http.StatusOK, "Car photo uploaded successfully", updated)
}
