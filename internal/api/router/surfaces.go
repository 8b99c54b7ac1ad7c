package router

import "blackarrow-backend/internal/api"

const (
	PublicPrefix = "/api/public/v1"
	AdminPrefix  = "/api/admin/v1"
	WSPrefix     = "/api/ws/v1"
)

// Public is everything the marketing site calls.
func Public() []api.RouteRegistrar {
	return []api.RouteRegistrar{
		UtilsRoutes(PublicPrefix),
		SessionRoutes(PublicPrefix),
		PopupRoutes(PublicPrefix),
		ChatRoutes(PublicPrefix),
		LeadPublicRoutes(PublicPrefix),
		ContentPublicRoutes(PublicPrefix),
		RegionPublicRoutes(PublicPrefix),
	}
}

// Admin is the back-office surface; everything but auth requires an admin token.
func Admin() []api.RouteRegistrar {
	return []api.RouteRegistrar{
		UtilsRoutes(AdminPrefix),
		AuthRoutes(AdminPrefix),
		LeadAdminRoutes(AdminPrefix),
		ContentAdminRoutes(AdminPrefix),
		RegionAdminRoutes(AdminPrefix),
	}
}

func WS() []api.RouteRegistrar {
	return []api.RouteRegistrar{
		UtilsRoutes(WSPrefix),
		FeedRoutes(WSPrefix),
	}
}
