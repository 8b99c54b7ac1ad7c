package router

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/endpoints"
	"blackarrow-backend/internal/api/middleware"
	internaljwt "blackarrow-backend/internal/jwt"

	"github.com/go-chi/chi/v5"
)

func adminOnly(s *api.APIServer) middleware.Middleware {
	return middleware.ValidateJWTMiddleware(s.Deps().Tokens, internaljwt.RoleAdmin)
}

func AuthRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		authEndpoints := endpoints.NewAuthEndpoints(s.Deps().Auth)

		r.Post(prefix+"/auth/login", s.MakeHTTPHandleFunc(authEndpoints.Login))
		r.Post(prefix+"/auth/refresh", s.MakeHTTPHandleFunc(authEndpoints.Refresh))
		r.Post(prefix+"/auth/logout", s.MakeHTTPHandleFunc(authEndpoints.Logout))
	}
}
