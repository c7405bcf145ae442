package api

import (
	"campus-route-finder/internal/api/handlers"
	"campus-route-finder/internal/ports"
	"campus-route-finder/internal/services"

	"github.com/gin-gonic/gin"
)

// NewRouter wires HTTP handlers with their dependencies.
// When identity is nil the route endpoints are open; otherwise every request
// needs a bearer token and may only read the token owner's routes.
func NewRouter(routes ports.RouteRepository, buildings ports.BuildingDirectory, identity ports.IdentityProvider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	h := &handlers.RouteHandler{
		Routes: routes,
		Map:    services.NewRouteMap(buildings),
	}

	r.GET("/health", handlers.Health)

	authed := r.Group("/")
	if identity != nil {
		authed.Use(requireUser(identity))
	}
	authed.GET("/users/:id/routes", h.ListForUser)
	authed.GET("/routes/:id/steps", h.Steps)
	authed.GET("/routes/:id/geojson", h.GeoJSON)

	return r
}
