package router

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/endpoints"
	"blackarrow-backend/internal/service/region"

	"github.com/go-chi/chi/v5"
)

func RegionPublicRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		regionEndpoints := endpoints.NewRegionEndpoints(region.New(s.Store()))

		r.Get(prefix+"/regions", s.MakeHTTPHandleFunc(regionEndpoints.List))
		r.Get(prefix+"/regions/{code}", s.MakeHTTPHandleFunc(regionEndpoints.Resolve))
	}
}

func RegionAdminRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		regionEndpoints := endpoints.NewRegionEndpoints(region.New(s.Store()))
		admin := adminOnly(s)

		r.Get(prefix+"/regions", s.MakeHTTPHandleFunc(regionEndpoints.List, admin))
		r.Put(prefix+"/regions/{code}", s.MakeHTTPHandleFunc(regionEndpoints.Upsert, admin))
		r.Delete(prefix+"/regions/{code}", s.MakeHTTPHandleFunc(regionEndpoints.Delete, admin))
	}
}
