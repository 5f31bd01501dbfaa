package api

import (
	"github.com/craftly-living/backend/database"
	"github.com/rs/zerolog/log"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(store database.Storage, router router) *routeHandlers {
	return &routeHandlers{
		renovationProjectHandler: newRenovationProjectHandler(store, router.maxBodyBytes),
		builderHandler:           newBuilderHandler(store, router.maxBodyBytes),
		dashboardHandler:         newDashboardHandler(store, router.matcher),
		healthHandler:            newHealthHandler(router.startupTime),
		fallbackHandler:          fallbackHandler{responder: NewResponder(log.With().Str("handlerName", "fallbackHandler").Logger())},
	}
}
