package services

import (
	"carrental-backend/internal/apperr"
	"carrental-backend/internal/models"
	"carrental-backend/pkg/jwt"
)

type AuthService struct {
	userService *UserService
	jwtUtil     *jwt.JWTUtil
}

func NewAuthService(userService *UserService) *AuthService {
	return &AuthService{
		userService: userService,
		jwtUtil:     jwt.NewJWTUtil(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *models.AuthUser `json:"user"`
	Token string           `json:"token"`
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:  toAuthUser(user),
		Token: token,
	}, nil
}

// GetProfile resolves the authoritative current account record; role and
// approval may have changed since the token was issued.
func (s *AuthService) GetProfile(userID string) (*models.AuthUser, error) {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return toAuthUser(user), nil
}

// RefreshToken re-issues a token that is within an hour of expiry.
func (s *AuthService) RefreshToken(tokenString string) (string, error) {
	refreshed, err := s.jwtUtil.RefreshToken(tokenString)
	if err != nil {
		return "", apperr.Unauthorized("invalid or expired token")
	}
	return refreshed, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*models.AuthUser, error) {
	claims, err := s.jwtUtil.ValidateToken(tokenString)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	user, err := s.userService.GetUserByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	return toAuthUser(user), nil
}

func toAuthUser(user *models.User) *models.AuthUser {
	return &models.AuthUser{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		Approved: user.Approved,
	}
}
