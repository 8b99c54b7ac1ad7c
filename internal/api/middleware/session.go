package middleware

import (
	"blackarrow-backend/utils"
	"context"
	"net/http"
	"strings"
)

// SessionHeader carries the visitor session minted by POST /sessions.
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

// RequireSession rejects requests without a well-formed visitor session id.
func RequireSession() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(SessionHeader))
			if id == "" {
				reject(w, http.StatusBadRequest, "missing "+SessionHeader+" header")
				return
			}
			if !utils.ValidSessionID(id) {
				reject(w, http.StatusBadRequest, "invalid session id")
				return
			}
			next(w, r.WithContext(WithSessionID(r.Context(), id)))
		}
	}
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
