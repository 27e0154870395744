package services

import (
	"testing"

	"carrental-backend/internal/apperr"
	"carrental-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterClient(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("ExistsByEmail", "new@example.com").Return(false, nil)
		userStore.On("ExistsByDriverLicense", "DL-12345").Return(false, nil)
		userStore.On("Create", mock.AnythingOfType("*models.User")).
			Return(func(u *models.User) *models.User { return u }, nil)

		user, err := svc.RegisterClient(&RegisterClientRequest{
			Email:         "new@example.com",
			Password:      "secret123",
			FullName:      "New Client",
			DriverLicense: "DL-12345",
		})

		require.NoError(t, err)
		assert.Equal(t, models.RoleClient, user.Role)
		assert.True(t, user.Approved)
		assert.NotEqual(t, "secret123", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("ExistsByEmail", "taken@example.com").Return(true, nil)

		_, err := svc.RegisterClient(&RegisterClientRequest{
			Email:         "taken@example.com",
			Password:      "secret123",
			FullName:      "New Client",
			DriverLicense: "DL-12345",
		})

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	})

	t.Run("BlankDriverLicense", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("ExistsByEmail", "new@example.com").Return(false, nil)

		_, err := svc.RegisterClient(&RegisterClientRequest{
			Email:         "new@example.com",
			Password:      "secret123",
			FullName:      "New Client",
			DriverLicense: "   ",
		})

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
		userStore.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("DuplicateDriverLicense", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("ExistsByEmail", "new@example.com").Return(false, nil)
		userStore.On("ExistsByDriverLicense", "DL-TAKEN").Return(true, nil)

		_, err := svc.RegisterClient(&RegisterClientRequest{
			Email:         "new@example.com",
			Password:      "secret123",
			FullName:      "New Client",
			DriverLicense: "DL-TAKEN",
		})

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	})
}

func TestRegisterManager(t *testing.T) {
	userStore := new(MockUserStore)
	svc := NewUserService(userStore)

	userStore.On("ExistsByEmail", "manager@example.com").Return(false, nil)
	userStore.On("Create", mock.AnythingOfType("*models.User")).
		Return(func(u *models.User) *models.User { return u }, nil)

	user, err := svc.RegisterManager(&RegisterManagerRequest{
		Email:    "manager@example.com",
		Password: "secret123",
		FullName: "New Manager",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, user.Role)
	assert.False(t, user.Approved)
	assert.Empty(t, user.DriverLicense)
}

func TestApproveManager(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	pending := &models.User{ID: primitive.NewObjectID(), Role: models.RoleManager, Approved: false}

	t.Run("Success", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("FindByID", admin.ID.Hex()).Return(admin, nil)
		userStore.On("FindByID", pending.ID.Hex()).Return(pending, nil)
		userStore.On("Update", pending.ID.Hex(), mock.AnythingOfType("*models.User")).
			Return(func(_ string, u *models.User) *models.User { return u }, nil)

		approved, err := svc.ApproveManager(pending.ID.Hex(), admin.ID.Hex())

		require.NoError(t, err)
		assert.True(t, approved.Approved)
	})

	t.Run("ManagerCannotApprove", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		otherManager := &models.User{ID: primitive.NewObjectID(), Role: models.RoleManager, Approved: true}
		userStore.On("FindByID", otherManager.ID.Hex()).Return(otherManager, nil)

		_, err := svc.ApproveManager(pending.ID.Hex(), otherManager.ID.Hex())

		require.Error(t, err)
		assert.True(t, apperr.IsUnauthorized(err))
	})

	t.Run("TargetNotManager", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		client := &models.User{ID: primitive.NewObjectID(), Role: models.RoleClient}
		userStore.On("FindByID", admin.ID.Hex()).Return(admin, nil)
		userStore.On("FindByID", client.ID.Hex()).Return(client, nil)

		_, err := svc.ApproveManager(client.ID.Hex(), admin.ID.Hex())

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	})
}

func TestAuthenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	account := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "user@example.com",
		Password: string(hashed),
		Role:     models.RoleClient,
	}

	t.Run("Success", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("FindByEmail", "user@example.com").Return(account, nil)

		user, err := svc.Authenticate("user@example.com", "correct-password")

		require.NoError(t, err)
		assert.Equal(t, account.ID, user.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("FindByEmail", "user@example.com").Return(account, nil)

		_, err := svc.Authenticate("user@example.com", "wrong-password")

		require.Error(t, err)
		assert.True(t, apperr.IsUnauthorized(err))
	})

	t.Run("UnknownEmailMapsToUnauthorized", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("FindByEmail", "ghost@example.com").
			Return(nil, apperr.NotFound("user not found"))

		_, err := svc.Authenticate("ghost@example.com", "whatever")

		require.Error(t, err)
		assert.True(t, apperr.IsUnauthorized(err))
	})
}

func TestSearchUsersByName(t *testing.T) {
	t.Run("QueryTooShort", func(t *testing.T) {
		svc := NewUserService(new(MockUserStore))

		_, err := svc.SearchUsersByName(" a ")

		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	})

	t.Run("TrimsQuery", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		userStore.On("SearchByName", "jo").Return([]*models.User{}, nil)

		_, err := svc.SearchUsersByName("  jo  ")

		require.NoError(t, err)
		userStore.AssertExpectations(t)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("ManagerLicenseIgnored", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		manager := &models.User{ID: primitive.NewObjectID(), Role: models.RoleManager, FullName: "Old Name"}

		userStore.On("FindByID", manager.ID.Hex()).Return(manager, nil)
		userStore.On("Update", manager.ID.Hex(), mock.AnythingOfType("*models.User")).
			Return(func(_ string, u *models.User) *models.User { return u }, nil)

		updated, err := svc.UpdateProfile(manager.ID.Hex(), &UpdateProfileRequest{
			FullName:      "New Name",
			DriverLicense: "DL-99999",
		})

		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.FullName)
		assert.Empty(t, updated.DriverLicense)
	})

	t.Run("ClientLicenseUpdated", func(t *testing.T) {
		userStore := new(MockUserStore)
		svc := NewUserService(userStore)

		client := &models.User{ID: primitive.NewObjectID(), Role: models.RoleClient, DriverLicense: "DL-OLD"}

		userStore.On("FindByID", client.ID.Hex()).Return(client, nil)
		userStore.On("Update", client.ID.Hex(), mock.AnythingOfType("*models.User")).
			Return(func(_ string, u *models.User) *models.User { return u }, nil)

		updated, err := svc.UpdateProfile(client.ID.Hex(), &UpdateProfileRequest{
			DriverLicense: "DL-NEW",
		})

		require.NoError(t, err)
		assert.Equal(t, "DL-NEW", updated.DriverLicense)
	})
}
