package router

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/endpoints"

	"github.com/go-chi/chi/v5"
)

func UtilsRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		utilsEndpoints := endpoints.NewUtilsEndpoints()
		r.Get(prefix+"/health", s.MakeHTTPHandleFunc(utilsEndpoints.Health))
	}
}
