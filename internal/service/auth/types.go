package auth

import (
	internaljwt "blackarrow-backend/internal/jwt"
	"context"
)

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_error"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeInternal     ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type LoginParams struct {
	Email    string
	Password string
}

// Account is the single back-office login.
type Account struct {
	Email        string
	PasswordHash string
}

type Identity struct {
	UserID string
	Email  string
}

type AuthResult struct {
	Identity Identity
	Tokens   internaljwt.TokenResponse
}

type TokenIssuer interface {
	CreateTokenWithRefresh(ctx context.Context, user internaljwt.User, role internaljwt.Role) (internaljwt.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string, role internaljwt.Role) (internaljwt.TokenResponse, error)
	RevokeRefreshToken(ctx context.Context, refreshToken string, role internaljwt.Role) error
}
