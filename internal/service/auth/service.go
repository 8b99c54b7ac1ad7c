package auth

import (
	internaljwt "blackarrow-backend/internal/jwt"
	"context"
	"crypto/subtle"
	"errors"
	"strings"
)

const adminUserID = "admin"

type Service struct {
	account Account
	issuer  TokenIssuer
}

func New(account Account, issuer TokenIssuer) *Service {
	account.Email = normalizeEmail(account.Email)
	account.PasswordHash = strings.TrimSpace(account.PasswordHash)
	return &Service{
		account: account,
		issuer:  issuer,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := params.Password
	if email == "" || strings.TrimSpace(password) == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}
	if s.account.Email == "" || s.account.PasswordHash == "" {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(s.account.Email)) == 1
	// always run bcrypt so a wrong email costs the same as a wrong password
	passwordMatch := internaljwt.ValidatePassword(s.account.PasswordHash, password)
	if !emailMatch || !passwordMatch {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
	}

	identity := Identity{UserID: adminUserID, Email: s.account.Email}
	tokens, err := s.issuer.CreateTokenWithRefresh(ctx, internaljwt.User{Id: identity.UserID, Email: identity.Email}, internaljwt.RoleAdmin)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}
	return AuthResult{Identity: identity, Tokens: tokens}, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (internaljwt.TokenResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return internaljwt.TokenResponse{}, newError(ErrorCodeValidation, "refresh token is required", nil)
	}
	tokens, err := s.issuer.RefreshToken(ctx, refreshToken, internaljwt.RoleAdmin)
	if errors.Is(err, internaljwt.ErrInvalidRefreshToken) {
		return internaljwt.TokenResponse{}, newError(ErrorCodeUnauthorized, "invalid refresh token", err)
	}
	if err != nil {
		return internaljwt.TokenResponse{}, newError(ErrorCodeInternal, "failed to refresh token", err)
	}
	return tokens, nil
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return newError(ErrorCodeValidation, "refresh token is required", nil)
	}
	err := s.issuer.RevokeRefreshToken(ctx, refreshToken, internaljwt.RoleAdmin)
	if errors.Is(err, internaljwt.ErrInvalidRefreshToken) {
		return newError(ErrorCodeUnauthorized, "invalid refresh token", err)
	}
	if err != nil {
		return newError(ErrorCodeInternal, "failed to revoke token", err)
	}
	return nil
}
