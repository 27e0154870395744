package services

import (
	"time"

	"carrental-backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock implementation of the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(user *models.User) (*models.User, error) {
	args := m.Called(user)
	if fn, ok := args.Get(0).(func(*models.User) *models.User); ok {
		return fn(user), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) ExistsByDriverLicense(license string) (bool, error) {
	args := m.Called(license)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) FindAll() ([]*models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserStore) FindByRole(role models.Role) ([]*models.User, error) {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserStore) SearchByName(name string) ([]*models.User, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserStore) Update(id string, user *models.User) (*models.User, error) {
	args := m.Called(id, user)
	if fn, ok := args.Get(0).(func(string, *models.User) *models.User); ok {
		return fn(id, user), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCarStore is a mock implementation of the CarStore interface
type MockCarStore struct {
	mock.Mock
}

func (m *MockCarStore) Create(car *models.Car) (*models.Car, error) {
	args := m.Called(car)
	if fn, ok := args.Get(0).(func(*models.Car) *models.Car); ok {
		return fn(car), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarStore) FindByID(id string) (*models.Car, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarStore) FindByVIN(vin string) (*models.Car, error) {
	args := m.Called(vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarStore) FindAll() ([]*models.Car, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Car), args.Error(1)
}

func (m *MockCarStore) FindAvailable() ([]*models.Car, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Car), args.Error(1)
}

func (m *MockCarStore) FindByManager(managerID string) ([]*models.Car, error) {
	args := m.Called(managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Car), args.Error(1)
}

func (m *MockCarStore) FindWithFilters(f *models.CarFilter) ([]*models.Car, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Car), args.Error(1)
}

func (m *MockCarStore) FilterOptions() (*models.FilterOptions, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FilterOptions), args.Error(1)
}

func (m *MockCarStore) Update(id string, car *models.Car) (*models.Car, error) {
	args := m.Called(id, car)
	if fn, ok := args.Get(0).(func(string, *models.Car) *models.Car); ok {
		return fn(id, car), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

// MockRentalStore is a mock implementation of the RentalStore interface
type MockRentalStore struct {
	mock.Mock
}

func (m *MockRentalStore) Create(rental *models.Rental) (*models.Rental, error) {
	args := m.Called(rental)
	if fn, ok := args.Get(0).(func(*models.Rental) *models.Rental); ok {
		return fn(rental), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *MockRentalStore) FindByID(id string) (*models.Rental, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *MockRentalStore) FindByUser(userID string) ([]*models.Rental, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}

func (m *MockRentalStore) FindByCar(carID string) ([]*models.Rental, error) {
	args := m.Called(carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}

func (m *MockRentalStore) FindByStatus(status models.RentalStatus) ([]*models.Rental, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}

func (m *MockRentalStore) FindByManager(managerID string) ([]*models.Rental, error) {
	args := m.Called(managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}

func (m *MockRentalStore) FindByManagerAndStatus(managerID string, statuses ...models.RentalStatus) ([]*models.Rental, error) {
	args := m.Called(managerID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}

func (m *MockRentalStore) ExistsOverlapping(carID string, start, end time.Time, excludeID string, statuses []models.RentalStatus) (bool, error) {
	args := m.Called(carID, start, end, excludeID, statuses)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalStore) TotalRevenueByManager(managerID string) (float64, error) {
	args := m.Called(managerID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRentalStore) Update(id string, rental *models.Rental) (*models.Rental, error) {
	args := m.Called(id, rental)
	if fn, ok := args.Get(0).(func(string, *models.Rental) *models.Rental); ok {
		return fn(id, rental), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}
