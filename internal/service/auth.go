package service

import (
	"crypto/subtle"

	"wordmatch/internal/repository"
)

// AuthService handles authentication logic
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	if password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// IsAuthorized checks if user is authorized, registering unknown users
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	user, err := s.userRepo.EnsureUser(userID)
	if err != nil {
		return false, err
	}
	return user.Authorized, nil
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(userID int64) error {
	return s.userRepo.AuthorizeUser(userID)
}
