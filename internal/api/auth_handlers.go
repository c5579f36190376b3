package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/globaldefense/index-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Admin login",
		Description: "Authenticates the admin and returns an access token",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "verifyToken",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/verify",
		Summary:     "Verify token",
		Description: "Checks whether the supplied access token is still valid",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleVerify)
}

// === DTOs ===

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254" doc:"Admin email"`
	Password string `json:"password" validate:"required,max=1024" doc:"Admin password"`
}

// LoginInput wraps the login request with headers for Huma.
type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// AuthResponse contains the issued access token.
type AuthResponse struct {
	AccessToken string `json:"access_token" doc:"PASETO access token"`
	TokenType   string `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresIn   int64  `json:"expires_in" doc:"Token expiry in seconds"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// VerifyInput carries the token to check.
type VerifyInput struct {
	Authorization string `header:"Authorization"`
}

// VerifyResponse reports the token holder.
type VerifyResponse struct {
	Email string `json:"email" doc:"Authenticated admin email"`
}

// VerifyOutput wraps the verify response for Huma.
type VerifyOutput struct {
	Body VerifyResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	key := clientKey(input.XForwardedFor, input.XRealIP)
	if !s.authRateLimiter.Allow(key) {
		s.logger.Warn("login rate limit exceeded", "ip", key)
		return nil, huma.Error429TooManyRequests("Too many login attempts. Please try again later.")
	}

	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: AuthResponse{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
	}}, nil
}

func (s *Server) handleVerify(_ context.Context, input *VerifyInput) (*VerifyOutput, error) {
	claims, err := s.authenticateAdmin(input.Authorization)
	if err != nil {
		return nil, err
	}

	return &VerifyOutput{Body: VerifyResponse{Email: claims.Email}}, nil
}
