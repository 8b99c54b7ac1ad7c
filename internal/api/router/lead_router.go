package router

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/endpoints"
	"blackarrow-backend/internal/service/lead"

	"github.com/go-chi/chi/v5"
)

func LeadPublicRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		service := lead.New(s.Store(), s.Deps().Publisher)
		leadEndpoints := endpoints.NewLeadEndpoints(service)

		r.Post(prefix+"/leads", s.MakeHTTPHandleFunc(leadEndpoints.Contact))
		r.Post(prefix+"/newsletter", s.MakeHTTPHandleFunc(leadEndpoints.Newsletter))
	}
}

func LeadAdminRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		service := lead.New(s.Store(), s.Deps().Publisher)
		leadEndpoints := endpoints.NewLeadEndpoints(service)
		admin := adminOnly(s)

		r.Get(prefix+"/leads", s.MakeHTTPHandleFunc(leadEndpoints.List, admin))
		r.Patch(prefix+"/leads/{id}", s.MakeHTTPHandleFunc(leadEndpoints.UpdateStatus, admin))
		r.Delete(prefix+"/leads/{id}", s.MakeHTTPHandleFunc(leadEndpoints.Delete, admin))
	}
}
