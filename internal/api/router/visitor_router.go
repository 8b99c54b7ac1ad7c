package router

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/endpoints"
	"blackarrow-backend/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

func SessionRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		sessionEndpoints := endpoints.NewSessionEndpoints()
		r.Post(prefix+"/sessions", s.MakeHTTPHandleFunc(sessionEndpoints.Create))
	}
}

func PopupRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		popupEndpoints := endpoints.NewPopupEndpoints(s.Deps().Popups)
		session := middleware.RequireSession()

		r.Get(prefix+"/popups", s.MakeHTTPHandleFunc(popupEndpoints.List, session))
		r.Post(prefix+"/popups/{popupID}/show", s.MakeHTTPHandleFunc(popupEndpoints.Show, session))
		r.Post(prefix+"/popups/{popupID}/dismiss", s.MakeHTTPHandleFunc(popupEndpoints.Dismiss, session))
	}
}

func ChatRoutes(prefix string) api.RouteRegistrar {
	return func(r chi.Router, s *api.APIServer) {
		chatEndpoints := endpoints.NewChatEndpoints(s.Deps().Chat)
		session := middleware.RequireSession()

		r.Get(prefix+"/chat/messages", s.MakeHTTPHandleFunc(chatEndpoints.History, session))
		r.Post(prefix+"/chat/messages", s.MakeHTTPHandleFunc(chatEndpoints.Send, session))
	}
}
