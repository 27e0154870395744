package services

import (
	"time"

	"carrental-backend/internal/models"
)

// The services consume persistence through these narrow contracts; the
// mongo repositories in internal/repository implement them.

type UserStore interface {
	Create(user *models.User) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByDriverLicense(license string) (bool, error)
	FindAll() ([]*models.User, error)
	FindByRole(role models.Role) ([]*models.User, error)
	SearchByName(name string) ([]*models.User, error)
	Update(id string, user *models.User) (*models.User, error)
}

type CarStore interface {
	Create(car *models.Car) (*models.Car, error)
	FindByID(id string) (*models.Car, error)
	FindByVIN(vin string) (*models.Car, error)
	FindAll() ([]*models.Car, error)
	FindAvailable() ([]*models.Car, error)
	FindByManager(managerID string) ([]*models.Car, error)
	FindWithFilters(f *models.CarFilter) ([]*models.Car, error)
	FilterOptions() (*models.FilterOptions, error)
	Update(id string, car *models.Car) (*models.Car, error)
}

type RentalStore interface {
	Create(rental *models.Rental) (*models.Rental, error)
	FindByID(id string) (*models.Rental, error)
	FindByUser(userID string) ([]*models.Rental, error)
	FindByCar(carID string) ([]*models.Rental, error)
	FindByStatus(status models.RentalStatus) ([]*models.Rental, error)
	FindByManager(managerID string) ([]*models.Rental, error)
	FindByManagerAndStatus(managerID string, statuses ...models.RentalStatus) ([]*models.Rental, error)
	ExistsOverlapping(carID string, start, end time.Time, excludeID string, statuses []models.RentalStatus) (bool, error)
	TotalRevenueByManager(managerID string) (float64, error)
	Update(id string, rental *models.Rental) (*models.Rental, error)
}
