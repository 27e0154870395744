package services

import (
	"errors"
	"testing"

	"carrental-backend/internal/apperr"
	"carrental-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddCar(t *testing.T) {
	manager := testManager()
	client := testClient()

	validRequest := func() *AddCarRequest {
		return &AddCarRequest{
			Brand:       "Toyota",
			Model:       "Corolla",
			Year:        2022,
			PricePerDay: 800,
			VIN:         "JT2BF22K1W0123456",
		}
	}

	t.Run("Success", func(t *testing.T) {
		carStore := new(MockCarStore)
		userStore := new(MockUserStore)
		svc := NewCarService(carStore, userStore, 1000)

		userStore.On("FindByID", manager.ID.Hex()).Return(manager, nil)
		carStore.On("FindByVIN", "JT2BF22K1W0123456").Return(nil, apperr.NotFound("car not found"))
		carStore.On("Create", mock.AnythingOfType("*models.Car")).
			Return(func(c *models.Car) *models.Car { return c }, nil)

		car, err := svc.AddCar(manager.ID.Hex(), validRequest())

		require.NoError(t, err)
		assert.True(t, car.Available)
		assert.Equal(t, manager.ID, car.ManagerID)
	})

	t.Run("ClientCannotAdd", func(t *testing.T) {
		carStore := new(MockCarStore)
		userStore := new(MockUserStore)
		svc := NewCarService(carStore, userStore, 1000)

		userStore.On("FindByID", client.ID.Hex()).Return(client, nil)

		_, err := svc.AddCar(client.ID.Hex(), validRequest())

		require.Error(t, err)
		assert.True(t, apperr.IsUnauthorized(err))
		carStore.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("DuplicateVIN", func(t *testing.T) {
		carStore := new(MockCarStore)
		userStore := new(MockUserStore)
		svc := NewCarService(carStore, userStore, 1000)

		existing := testCar(manager)

		userStore.On("FindByID", manager.ID.Hex()).Return(manager, nil)
		carStore.On("FindByVIN", "JT2BF22K1W0123456").Return(existing, nil)

		_, err := svc.AddCar(manager.ID.Hex(), validRequest())

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	})

	t.Run("VINLookupFailurePropagates", func(t *testing.T) {
		carStore := new(MockCarStore)
		userStore := new(MockUserStore)
		svc := NewCarService(carStore, userStore, 1000)

		lookupErr := errors.New("connection reset by peer")

		userStore.On("FindByID", manager.ID.Hex()).Return(manager, nil)
		carStore.On("FindByVIN", "JT2BF22K1W0123456").Return(nil, lookupErr)

		_, err := svc.AddCar(manager.ID.Hex(), validRequest())

		require.Error(t, err)
		assert.ErrorIs(t, err, lookupErr)
		carStore.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("PriceCeilingExceeded", func(t *testing.T) {
		carStore := new(MockCarStore)
		userStore := new(MockUserStore)
		svc := NewCarService(carStore, userStore, 1000)

		req := validRequest()
		req.PricePerDay = 1500

		userStore.On("FindByID", manager.ID.Hex()).Return(manager, nil)
		carStore.On("FindByVIN", "JT2BF22K1W0123456").Return(nil, apperr.NotFound("car not found"))

		_, err := svc.AddCar(manager.ID.Hex(), req)

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
		assert.Contains(t, err.Error(), "price ceiling")
	})

	t.Run("PriceAtCeilingAllowed", func(t *testing.T) {
		carStore := new(MockCarStore)
		userStore := new(MockUserStore)
		svc := NewCarService(carStore, userStore, 1000)

		req := validRequest()
		req.PricePerDay = 1000

		userStore.On("FindByID", manager.ID.Hex()).Return(manager, nil)
		carStore.On("FindByVIN", "JT2BF22K1W0123456").Return(nil, apperr.NotFound("car not found"))
		carStore.On("Create", mock.AnythingOfType("*models.Car")).
			Return(func(c *models.Car) *models.Car { return c }, nil)

		_, err := svc.AddCar(manager.ID.Hex(), req)

		require.NoError(t, err)
	})
}

func TestGetCarsWithFilters(t *testing.T) {
	t.Run("NegativePriceRejected", func(t *testing.T) {
		svc := NewCarService(new(MockCarStore), new(MockUserStore), 1000)

		minPrice := -10.0
		_, err := svc.GetCarsWithFilters(&models.CarFilter{MinPrice: &minPrice})

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	})

	t.Run("MinAboveMaxRejected", func(t *testing.T) {
		svc := NewCarService(new(MockCarStore), new(MockUserStore), 1000)

		minPrice, maxPrice := 500.0, 100.0
		_, err := svc.GetCarsWithFilters(&models.CarFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	})

	t.Run("DelegatesToStore", func(t *testing.T) {
		carStore := new(MockCarStore)
		svc := NewCarService(carStore, new(MockUserStore), 1000)

		filter := &models.CarFilter{Brand: "Toyota"}
		carStore.On("FindWithFilters", filter).Return([]*models.Car{}, nil)

		_, err := svc.GetCarsWithFilters(filter)

		require.NoError(t, err)
		carStore.AssertExpectations(t)
	})
}

func TestRentCarShortcut(t *testing.T) {
	manager := testManager()

	t.Run("FlipsAvailability", func(t *testing.T) {
		carStore := new(MockCarStore)
		svc := NewCarService(carStore, new(MockUserStore), 1000)

		car := testCar(manager)

		carStore.On("FindByID", car.ID.Hex()).Return(car, nil)
		carStore.On("Update", car.ID.Hex(), mock.AnythingOfType("*models.Car")).
			Return(func(_ string, c *models.Car) *models.Car { return c }, nil)

		rented, err := svc.RentCar(car.ID.Hex())

		require.NoError(t, err)
		assert.False(t, rented.Available)
	})

	t.Run("AlreadyRented", func(t *testing.T) {
		carStore := new(MockCarStore)
		svc := NewCarService(carStore, new(MockUserStore), 1000)

		car := testCar(manager)
		car.Available = false

		carStore.On("FindByID", car.ID.Hex()).Return(car, nil)

		_, err := svc.RentCar(car.ID.Hex())

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidState(err))
		carStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUpdateCarAvailability(t *testing.T) {
	manager := testManager()
	carStore := new(MockCarStore)
	svc := NewCarService(carStore, new(MockUserStore), 1000)

	car := testCar(manager)

	carStore.On("FindByID", car.ID.Hex()).Return(car, nil)
	carStore.On("Update", car.ID.Hex(), mock.AnythingOfType("*models.Car")).
		Return(func(_ string, c *models.Car) *models.Car { return c }, nil)

	updated, err := svc.UpdateCarAvailability(car.ID.Hex(), false)

	require.NoError(t, err)
	assert.False(t, updated.Available)
}
