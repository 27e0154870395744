package services

import (
	"fmt"
	"log"
	"time"

	"carrental-backend/internal/apperr"
	"carrental-backend/internal/models"
	"carrental-backend/pkg/cache"
)

type CarService struct {
	carRepo        CarStore
	userRepo       UserStore
	cacheManager   cache.CacheManager
	cacheConfig    cache.CacheConfig
	maxPricePerDay float64
}

func NewCarService(carRepo CarStore, userRepo UserStore, maxPricePerDay float64) *CarService {
	return &CarService{
		carRepo:        carRepo,
		userRepo:       userRepo,
		cacheConfig:    cache.DefaultCacheConfig(),
		maxPricePerDay: maxPricePerDay,
	}
}

// SetCacheManager allows setting the cache manager for read caching
func (s *CarService) SetCacheManager(cacheManager cache.CacheManager) {
	s.cacheManager = cacheManager
}

// SetCacheConfig allows setting custom cache configuration
func (s *CarService) SetCacheConfig(config cache.CacheConfig) {
	s.cacheConfig = config
}

type AddCarRequest struct {
	Brand          string  `json:"brand" validate:"required,min=1,max=50"`
	Model          string  `json:"model" validate:"required,min=1,max=50"`
	Year           int     `json:"year,omitempty" validate:"omitempty,min=1900,max=2030"`
	Color          string  `json:"color,omitempty" validate:"omitempty,max=30"`
	PricePerDay    float64 `json:"pricePerDay" validate:"required,gt=0"`
	VIN            string  `json:"vin" validate:"required,min=1,max=17"`
	FuelType       string  `json:"fuelType,omitempty"`
	Transmission   string  `json:"transmission,omitempty"`
	BodyType       string  `json:"bodyType,omitempty"`
	HorsePower     int     `json:"horsePower,omitempty"`
	Mileage        int     `json:"mileage,omitempty"`
	EngineCapacity float64 `json:"engineCapacity,omitempty"`
	Description    string  `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// AddCar creates a listing owned by the acting manager. Admins may add
// cars as well; clients may not.
func (s *CarService) AddCar(actorID string, req *AddCarRequest) (*models.Car, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleManager, models.RoleAdmin:
	case models.RoleClient:
		return nil, apperr.Unauthorized("only managers and administrators can add cars")
	default:
		return nil, apperr.Unauthorized("only managers and administrators can add cars")
	}

	existing, err := s.carRepo.FindByVIN(req.VIN)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.InvalidInput("car with VIN %s already exists", req.VIN)
	}

	if req.PricePerDay > s.maxPricePerDay {
		return nil, apperr.InvalidInput("price ceiling exceeded: maximum %.0f per day", s.maxPricePerDay)
	}

	car := &models.Car{
		Brand:          req.Brand,
		Model:          req.Model,
		Year:           req.Year,
		Color:          req.Color,
		PricePerDay:    req.PricePerDay,
		Available:      true,
		VIN:            req.VIN,
		FuelType:       req.FuelType,
		Transmission:   req.Transmission,
		BodyType:       req.BodyType,
		HorsePower:     req.HorsePower,
		Mileage:        req.Mileage,
		EngineCapacity: req.EngineCapacity,
		Description:    req.Description,
		ManagerID:      actor.ID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	created, err := s.carRepo.Create(car)
	if err != nil {
		return nil, err
	}

	s.invalidateListCaches()
	return created, nil
}

func (s *CarService) GetCarByID(id string) (*models.Car, error) {
	if s.cacheManager != nil {
		cached, err := s.cacheManager.GetCar(id)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Printf("Cache error for GetCarByID(%s): %v", id, err)
		}
	}

	car, err := s.carRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil {
		ttl := s.cacheConfig.GetTTLForDataType("car")
		if cacheErr := s.cacheManager.SetCar(id, car, ttl); cacheErr != nil {
			log.Printf("Failed to cache car %s: %v", id, cacheErr)
		}
	}

	return car, nil
}

func (s *CarService) GetAllCars() ([]*models.Car, error) {
	return s.cachedList("all_cars", s.carRepo.FindAll)
}

func (s *CarService) GetAvailableCars() ([]*models.Car, error) {
	return s.cachedList("available_cars", s.carRepo.FindAvailable)
}

func (s *CarService) GetCarsByManager(managerID string) ([]*models.Car, error) {
	return s.carRepo.FindByManager(managerID)
}

// GetCarsWithFilters runs the combined catalog search. Filtered results
// are not cached; the criteria space is unbounded.
func (s *CarService) GetCarsWithFilters(filter *models.CarFilter) ([]*models.Car, error) {
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return nil, apperr.InvalidInput("price cannot be negative")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, apperr.InvalidInput("price cannot be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, apperr.InvalidInput("minimum price cannot exceed maximum price")
	}
	return s.carRepo.FindWithFilters(filter)
}

func (s *CarService) GetFilterOptions() (*models.FilterOptions, error) {
	return s.carRepo.FilterOptions()
}

func (s *CarService) UpdateCarAvailability(carID string, available bool) (*models.Car, error) {
	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		return nil, err
	}

	car.Available = available
	updated, err := s.carRepo.Update(carID, car)
	if err != nil {
		return nil, err
	}

	s.invalidateCarCaches(carID)
	return updated, nil
}

// RentCar is the direct availability-flip shortcut. It lives outside the
// rental workflow and does not create a rental record.
func (s *CarService) RentCar(carID string) (*models.Car, error) {
	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		return nil, err
	}

	if !car.Available {
		return nil, apperr.InvalidState("car is already rented")
	}

	car.Available = false
	updated, err := s.carRepo.Update(carID, car)
	if err != nil {
		return nil, err
	}

	s.invalidateCarCaches(carID)
	return updated, nil
}

func (s *CarService) UpdateCarPhoto(carID, imageURL string) (*models.Car, error) {
	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		return nil, err
	}

	car.ImageURL = imageURL
	updated, err := s.carRepo.Update(carID, car)
	if err != nil {
		return nil, err
	}

	s.invalidateCarCaches(carID)
	return updated, nil
}

func (s *CarService) cachedList(key string, load func() ([]*models.Car, error)) ([]*models.Car, error) {
	if s.cacheManager != nil {
		cached, err := s.cacheManager.GetCarList(key)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Printf("Cache error for car list %s: %v", key, err)
		}
	}

	cars, err := load()
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil {
		ttl := s.cacheConfig.GetTTLForDataType("car_list")
		if cacheErr := s.cacheManager.SetCarList(key, cars, ttl); cacheErr != nil {
			log.Printf("Failed to cache car list %s: %v", key, cacheErr)
		}
	}

	return cars, nil
}

func (s *CarService) invalidateCarCaches(carID string) {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.InvalidateCar(carID); err != nil {
		log.Printf("Failed to invalidate car cache for %s: %v", carID, err)
	}
	s.invalidateListCaches()
}

func (s *CarService) invalidateListCaches() {
	if s.cacheManager == nil {
		return
	}
	for _, key := range []string{"all_cars", "available_cars"} {
		fullKey := fmt.Sprintf("%scar_list:%s", s.cacheConfig.KeyPrefix, key)
		if err := s.cacheManager.Delete(fullKey); err != nil {
			log.Printf("Failed to invalidate car list cache %s: %v", key, err)
		}
	}
}
