package middleware

import (
	internaljwt "blackarrow-backend/internal/jwt"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

type TokenParser interface {
	ParseToken(tokenString string, role internaljwt.Role) (jwt.MapClaims, error)
}

type claimsKey struct{}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}

func ValidateJWTMiddleware(parser TokenParser, role internaljwt.Role) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := BearerToken(r)
			if tokenString == "" {
				reject(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := parser.ParseToken(tokenString, role)
			if err != nil {
				reject(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			expires, ok := claims["exp"].(float64)
			if !ok || time.Now().Unix() > int64(expires) {
				reject(w, http.StatusUnauthorized, "Token expired")
				return
			}

			next(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		}
	}
}

// Claims returns the verified token claims placed by ValidateJWTMiddleware.
func Claims(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.MapClaims)
	return claims, ok
}

// ClaimString reads a string claim, empty when absent.
func ClaimString(ctx context.Context, name string) string {
	claims, ok := Claims(ctx)
	if !ok {
		return ""
	}
	v, _ := claims[name].(string)
	return v
}
