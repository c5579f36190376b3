package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/globaldefense/index-server/internal/auth"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"github.com/globaldefense/index-server/internal/validation"
)

// AuthService authenticates the single admin identity. There are no user
// records and no roles: one email, one password hash, one write capability.
type AuthService struct {
	adminEmail   string
	passwordHash string
	tokens       *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates the admin authentication service.
func NewAuthService(adminEmail, passwordHash string, tokens *auth.TokenService, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		tokens:       tokens,
		validator:    validator,
		logger:       logger,
	}
}

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Login verifies the admin credentials and issues an access token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(_ context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if s.adminEmail == "" || s.passwordHash == "" {
		s.logger.Warn("login attempted but no admin credentials are configured")
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	emailMatches := strings.EqualFold(req.Email, s.adminEmail)

	// Always run the hash comparison so timing does not reveal whether the
	// email matched.
	passwordMatches, err := auth.VerifyPassword(s.passwordHash, req.Password)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "password verification failed")
	}

	if !emailMatches || !passwordMatches {
		s.logger.Warn("failed login attempt", "email", req.Email)
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(s.adminEmail)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to issue token")
	}

	s.logger.Info("admin logged in", "email", s.adminEmail)

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.AccessTokenDuration() / time.Second),
	}, nil
}

// Verify checks an access token and returns its claims.
func (s *AuthService) Verify(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
