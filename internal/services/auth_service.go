package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/lanlyastar/reservation-backend/internal/database"
	"github.com/lanlyastar/reservation-backend/internal/models"
	"github.com/lanlyastar/reservation-backend/pkg/jwt"
)

var (
	// ErrInvalidCredentials indicates a wrong username or password
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrClerkDisabled indicates the account exists but may not sign in
	ErrClerkDisabled = errors.New("account is disabled")
)

// AuthService handles front-desk clerk authentication
type AuthService struct {
	clerks *database.ClerkRepository
	jwt    *jwt.Service
	logger *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(clerks *database.ClerkRepository, jwtService *jwt.Service, logger *logrus.Logger) *AuthService {
	return &AuthService{clerks: clerks, jwt: jwtService, logger: logger}
}

// Login verifies the credentials and issues a token pair. Lookup and bcrypt
// failures collapse into one error so the response does not reveal which
// part was wrong.
func (s *AuthService) Login(username, password string) (*models.LoginResponse, error) {
	clerk, err := s.clerks.GetByUsername(username)
	if err != nil {
		s.logger.WithField("username", username).Warn("Login attempt for unknown clerk")
		return nil, ErrInvalidCredentials
	}

	if !clerk.IsActive() {
		return nil, ErrClerkDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(clerk.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("username", username).Warn("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(clerk)
}

// Refresh validates a refresh token and issues a fresh token pair.
func (s *AuthService) Refresh(refreshToken string) (*models.LoginResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	clerk, err := s.clerks.GetByUsername(claims.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !clerk.IsActive() {
		return nil, ErrClerkDisabled
	}

	return s.issueTokens(clerk)
}

func (s *AuthService) issueTokens(clerk *models.Clerk) (*models.LoginResponse, error) {
	access, err := s.jwt.GenerateAccessToken(clerk.ID, clerk.Username, clerk.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(clerk.ID, clerk.Username)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     clerk.Username,
		Role:         clerk.Role,
	}, nil
}
