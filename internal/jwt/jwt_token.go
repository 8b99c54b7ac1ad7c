package jwt

import (
	"blackarrow-backend/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 24 * 30 * time.Hour

	refreshKeyPrefix = "refresh:"
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type refreshStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Issuer signs access tokens per role and keeps refresh tokens in Redis.
type Issuer struct {
	secrets map[Role]string
	refresh refreshStore
	now     func() time.Time
}

func NewIssuer(secrets map[Role]string, refresh refreshStore) *Issuer {
	return &Issuer{secrets: secrets, refresh: refresh, now: time.Now}
}

func roleChar(role Role) string {
	switch role {
	case RoleAdmin:
		return "a"
	}
	return ""
}

func splitRole(token string, role Role) (string, error) {
	if len(token) == 0 {
		return "", fmt.Errorf("token string is empty")
	}
	suffix := roleChar(role)
	if suffix == "" || token[len(token)-1:] != suffix {
		return "", fmt.Errorf("invalid role character in token")
	}
	return token[:len(token)-1], nil
}

func (i *Issuer) secret(role Role) ([]byte, error) {
	secret, ok := i.secrets[role]
	if !ok || secret == "" {
		return nil, fmt.Errorf("invalid role specified")
	}
	return []byte(secret), nil
}

func (i *Issuer) CreateToken(user User, role Role, validUntil int64) (string, error) {
	secret, err := i.secret(role)
	if err != nil {
		return "", err
	}
	if validUntil == 0 {
		validUntil = i.now().Add(AccessTokenTTL).Unix()
	}

	claims := jwt.MapClaims{
		"id":    user.Id,
		"email": user.Email,
		"exp":   validUntil,
		"iat":   i.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}
	return tokenString + roleChar(role), nil
}

func (i *Issuer) CreateTokenWithRefresh(ctx context.Context, user User, role Role) (TokenResponse, error) {
	validUntil := i.now().Add(AccessTokenTTL).Unix()
	accessToken, err := i.CreateToken(user, role, validUntil)
	if err != nil {
		return TokenResponse{}, err
	}

	refreshTokenRaw := utils.CreateToken()
	userDataJSON, err := json.Marshal(map[string]string{
		"id":    user.Id,
		"email": user.Email,
	})
	if err != nil {
		return TokenResponse{}, err
	}

	if err := i.refresh.Set(ctx, refreshKeyPrefix+refreshTokenRaw, userDataJSON, RefreshTokenTTL).Err(); err != nil {
		return TokenResponse{}, fmt.Errorf("store refresh token: %w", err)
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenRaw + roleChar(role),
		ExpiresAt:    validUntil,
	}, nil
}

// ParseToken validates an access token issued for role.
func (i *Issuer) ParseToken(tokenString string, role Role) (jwt.MapClaims, error) {
	raw, err := splitRole(tokenString, role)
	if err != nil {
		return nil, err
	}
	secret, err := i.secret(role)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %v", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid - unauthorized")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("claims of unauthorized type")
	}
	return claims, nil
}

// RefreshToken issues a new access token and slides the refresh token's expiry.
func (i *Issuer) RefreshToken(ctx context.Context, refreshToken string, role Role) (TokenResponse, error) {
	raw, err := splitRole(refreshToken, role)
	if err != nil {
		return TokenResponse{}, ErrInvalidRefreshToken
	}
	key := refreshKeyPrefix + raw

	val, err := i.refresh.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return TokenResponse{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return TokenResponse{}, fmt.Errorf("load refresh token: %w", err)
	}

	var userData map[string]string
	if err := json.Unmarshal([]byte(val), &userData); err != nil {
		return TokenResponse{}, ErrInvalidRefreshToken
	}

	if err := i.refresh.Expire(ctx, key, RefreshTokenTTL).Err(); err != nil {
		return TokenResponse{}, fmt.Errorf("failed to update refresh token expiration: %w", err)
	}

	validUntil := i.now().Add(AccessTokenTTL).Unix()
	access, err := i.CreateToken(User{Id: userData["id"], Email: userData["email"]}, role, validUntil)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{AccessToken: access, ExpiresAt: validUntil}, nil
}

func (i *Issuer) RevokeRefreshToken(ctx context.Context, refreshToken string, role Role) error {
	raw, err := splitRole(refreshToken, role)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return i.refresh.Del(ctx, refreshKeyPrefix+raw).Err()
}
