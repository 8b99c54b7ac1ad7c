package router

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/endpoints"
	"blackarrow-backend/internal/service/content"

	"github.com/go-chi/chi/v5"
)

func ContentPublicRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		contentEndpoints := endpoints.NewContentEndpoints(content.New(s.Store()))

		r.Get(prefix+"/posts", s.MakeHTTPHandleFunc(contentEndpoints.PublishedPosts))
		r.Get(prefix+"/posts/{slug}", s.MakeHTTPHandleFunc(contentEndpoints.PostBySlug))
		r.Get(prefix+"/projects", s.MakeHTTPHandleFunc(contentEndpoints.Projects))
	}
}

func ContentAdminRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		contentEndpoints := endpoints.NewContentEndpoints(content.New(s.Store()))
		admin := adminOnly(s)

		r.Get(prefix+"/posts", s.MakeHTTPHandleFunc(contentEndpoints.AllPosts, admin))
		r.Post(prefix+"/posts", s.MakeHTTPHandleFunc(contentEndpoints.CreatePost, admin))
		r.Get(prefix+"/posts/{id}", s.MakeHTTPHandleFunc(contentEndpoints.GetPost, admin))
		r.Patch(prefix+"/posts/{id}", s.MakeHTTPHandleFunc(contentEndpoints.UpdatePost, admin))
		r.Delete(prefix+"/posts/{id}", s.MakeHTTPHandleFunc(contentEndpoints.DeletePost, admin))

		r.Get(prefix+"/projects", s.MakeHTTPHandleFunc(contentEndpoints.Projects, admin))
		r.Post(prefix+"/projects", s.MakeHTTPHandleFunc(contentEndpoints.CreateProject, admin))
		r.Patch(prefix+"/projects/{id}", s.MakeHTTPHandleFunc(contentEndpoints.UpdateProject, admin))
		r.Delete(prefix+"/projects/{id}", s.MakeHTTPHandleFunc(contentEndpoints.DeleteProject, admin))
	}
}
