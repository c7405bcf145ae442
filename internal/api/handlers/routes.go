package handlers

import (
	"campus-route-finder/internal/api/dto"
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/ports"
	"campus-route-finder/internal/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RouteHandler exposes read-only route endpoints.
type RouteHandler struct {
	Routes ports.RouteRepository
	Map    *services.RouteMap
}

func toRouteResponse(r domain.Route) dto.RouteResponse {
	return dto.RouteResponse{
		RouteID:        r.ID,
		OwnerID:        r.OwnerID,
		Weekday:        string(r.Weekday),
		Locations:      r.LocationPath,
		DistanceMiles:  r.TotalDistanceMiles,
		TimeMinutes:    r.TotalTimeMinutes,
		DistanceSteps:  r.DistanceSteps(),
		CaloriesBurned: r.CaloriesBurned(),
	}
}

func (h *RouteHandler) ListForUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "user id must be a positive integer")
		return
	}
	if !allowed(c, id) {
		writeError(c, http.StatusForbidden, "forbidden")
		return
	}

	routes, err := h.Routes.ListRoutesForUser(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, "list routes", err)
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, r := range routes {
		res.Routes = append(res.Routes, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, res)
}

// route loads the route named in the path and checks the caller may see it.
func (h *RouteHandler) route(c *gin.Context) (*domain.Route, bool) {
	r, err := h.Routes.GetRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, "get route", err)
		return nil, false
	}
	if !allowed(c, r.OwnerID) {
		writeError(c, http.StatusForbidden, "forbidden")
		return nil, false
	}
	return r, true
}

func (h *RouteHandler) Steps(c *gin.Context) {
	r, ok := h.route(c)
	if !ok {
		return
	}

	steps, err := h.Routes.ListSteps(c.Request.Context(), r.ID)
	if err != nil {
		writeRepoError(c, "list steps", err)
		return
	}

	res := dto.ListStepsResponse{RouteID: r.ID, Steps: make([]dto.StepResponse, 0, len(steps))}
	for _, s := range steps {
		res.Steps = append(res.Steps, dto.StepResponse{
			Order:           s.Order,
			Weekday:         string(s.Weekday),
			StartLocation:   s.StartLocation,
			EndLocation:     s.EndLocation,
			DistanceMiles:   s.DistanceMiles,
			DurationMinutes: s.DurationMinutes,
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *RouteHandler) GeoJSON(c *gin.Context) {
	r, ok := h.route(c)
	if !ok {
		return
	}

	b, err := h.Map.GeoJSON(c.Request.Context(), *r)
	if err != nil {
		writeRepoError(c, "route geojson", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", b)
}
