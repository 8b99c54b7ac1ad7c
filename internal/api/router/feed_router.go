package router

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// FeedRoutes serves the admin live lead feed. The upgrade bypasses the request
// queue because the connection outlives any worker slot.
func FeedRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		r.Get(prefix+"/feed", middleware.Chain(s.Deps().Feed.ServeFeed, middleware.Logging()))
	}
}
