package services

import (
	"strings"
	"time"

	"carrental-backend/internal/apperr"
	"carrental-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo UserStore
}

func NewUserService(userRepo UserStore) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

type RegisterClientRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	FullName      string `json:"fullName" validate:"required,min=1,max=100"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=20"`
	DriverLicense string `json:"driverLicense" validate:"required,max=20"`
}

type RegisterManagerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=1,max=100"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type UpdateProfileRequest struct {
	FullName      string `json:"fullName,omitempty" validate:"omitempty,min=1,max=100"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=20"`
	DriverLicense string `json:"driverLicense,omitempty" validate:"omitempty,max=20"`
}

// RegisterClient creates a client account. Clients are approved
// immediately and must present a driver license.
func (s *UserService) RegisterClient(req *RegisterClientRequest) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.InvalidInput("user with email %s already exists", req.Email)
	}

	if strings.TrimSpace(req.DriverLicense) == "" {
		return nil, apperr.InvalidInput("driver license is required for clients")
	}

	licenseTaken, err := s.userRepo.ExistsByDriverLicense(req.DriverLicense)
	if err != nil {
		return nil, err
	}
	if licenseTaken {
		return nil, apperr.InvalidInput("driver license %s is already registered", req.DriverLicense)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client := &models.User{
		Email:         req.Email,
		Password:      string(hashed),
		FullName:      req.FullName,
		Phone:         req.Phone,
		DriverLicense: req.DriverLicense,
		Role:          models.RoleClient,
		Approved:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	return s.userRepo.Create(client)
}

// RegisterManager creates a manager account that waits for admin approval.
func (s *UserService) RegisterManager(req *RegisterManagerRequest) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.InvalidInput("user with email %s already exists", req.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	manager := &models.User{
		Email:     req.Email,
		Password:  string(hashed),
		FullName:  req.FullName,
		Phone:     req.Phone,
		Role:      models.RoleManager,
		Approved:  false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return s.userRepo.Create(manager)
}

// ApproveManager flips a manager's approval flag. Only admins may do it.
func (s *UserService) ApproveManager(managerID, actorID string) (*models.User, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleClient, models.RoleManager:
		return nil, apperr.Unauthorized("only administrators can approve managers")
	default:
		return nil, apperr.Unauthorized("only administrators can approve managers")
	}

	manager, err := s.userRepo.FindByID(managerID)
	if err != nil {
		return nil, err
	}

	if manager.Role != models.RoleManager {
		return nil, apperr.InvalidInput("only manager accounts can be approved")
	}

	manager.Approved = true
	return s.userRepo.Update(managerID, manager)
}

// Authenticate verifies credentials and returns the account. bcrypt's
// comparison is constant-time.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	return user, nil
}

func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.FindByEmail(email)
}

func (s *UserService) GetAllUsers() ([]*models.User, error) {
	return s.userRepo.FindAll()
}

func (s *UserService) GetAllClients() ([]*models.User, error) {
	return s.userRepo.FindByRole(models.RoleClient)
}

func (s *UserService) GetAllManagers() ([]*models.User, error) {
	return s.userRepo.FindByRole(models.RoleManager)
}

// SearchUsersByName requires at least two characters of query.
func (s *UserService) SearchUsersByName(name string) ([]*models.User, error) {
	if len(strings.TrimSpace(name)) < 2 {
		return nil, apperr.InvalidInput("search query must contain at least 2 characters")
	}
	return s.userRepo.SearchByName(strings.TrimSpace(name))
}

// UpdateProfile updates name, phone and, for clients only, the driver
// license.
func (s *UserService) UpdateProfile(userID string, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.DriverLicense != "" && user.Role == models.RoleClient {
		user.DriverLicense = req.DriverLicense
	}

	return s.userRepo.Update(userID, user)
}
