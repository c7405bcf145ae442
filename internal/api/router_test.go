package api

import (
	"campus-route-finder/internal/adapters/identity"
	"campus-route-finder/internal/api/dto"
	"campus-route-finder/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

type stubRoutes struct {
	routes map[string]domain.Route
	steps  map[string][]domain.Step
	err    error
}

func (s *stubRoutes) ReplaceRoute(context.Context, string, domain.Route, []domain.Step) error {
	return errors.New("read only")
}

func (s *stubRoutes) ListRoutesForUser(_ context.Context, owner int64) ([]domain.Route, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Route
	for _, r := range s.routes {
		if r.OwnerID == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRoutes) GetRoute(_ context.Context, id string) (*domain.Route, error) {
	r, ok := s.routes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (s *stubRoutes) ListSteps(_ context.Context, id string) ([]domain.Step, error) {
	return s.steps[id], nil
}

func (s *stubRoutes) DeleteRoute(context.Context, string) error                   { return nil }
func (s *stubRoutes) DeleteAllRoutes(context.Context, int64) error                { return nil }
func (s *stubRoutes) UpdateWeekday(context.Context, string, domain.Weekday) error { return nil }

type stubBuildings map[string]domain.Building

func (b stubBuildings) GetBuilding(_ context.Context, acronym string) (*domain.Building, error) {
	v, ok := b[acronym]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (b stubBuildings) FindByName(context.Context, string) (*domain.Building, error) {
	return nil, domain.ErrNotFound
}

func (b stubBuildings) ListBuildings(context.Context) ([]domain.Building, error) { return nil, nil }

func fixtures() (*stubRoutes, stubBuildings) {
	routes := &stubRoutes{
		routes: map[string]domain.Route{
			"r1": {ID: "r1", OwnerID: 42, Weekday: domain.Monday, LocationPath: []string{"JKB", "TMCB"}, TotalDistanceMiles: 0.5, TotalTimeMinutes: 9},
		},
		steps: map[string][]domain.Step{
			"r1": {{Order: 1, RouteID: "r1", OwnerID: 42, Weekday: domain.Monday, StartLocation: "JKB", EndLocation: "TMCB", DistanceMiles: 0.5, DurationMinutes: 9}},
		},
	}
	buildings := stubBuildings{
		"JKB":  {Acronym: "JKB", Coordinates: domain.Coordinates{Lat: 40.2497, Lon: -111.6494}},
		"TMCB": {Acronym: "TMCB", Coordinates: domain.Coordinates{Lat: 40.2493, Lon: -111.6508}},
	}
	return routes, buildings
}

func do(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	routes, buildings := fixtures()
	rec := do(t, NewRouter(routes, buildings, nil), "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestListRoutesForUser(t *testing.T) {
	routes, buildings := fixtures()
	rec := do(t, NewRouter(routes, buildings, nil), "/users/42/routes", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ListRoutesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	got := res.Routes[0]
	if got.RouteID != "r1" || got.DistanceSteps != 1100 || got.CaloriesBurned != 50 {
		t.Fatalf("route = %+v", got)
	}
}

func TestListRoutesBadID(t *testing.T) {
	routes, buildings := fixtures()
	rec := do(t, NewRouter(routes, buildings, nil), "/users/abc/routes", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListRoutesRepositoryFailure(t *testing.T) {
	routes, buildings := fixtures()
	routes.err = errors.New("connection reset")
	rec := do(t, NewRouter(routes, buildings, nil), "/users/42/routes", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatal("internal error leaked to client")
	}
}

func TestSteps(t *testing.T) {
	routes, buildings := fixtures()
	h := NewRouter(routes, buildings, nil)

	rec := do(t, h, "/routes/r1/steps", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res dto.ListStepsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Steps) != 1 || res.Steps[0].EndLocation != "TMCB" {
		t.Fatalf("steps = %+v", res.Steps)
	}

	if rec := do(t, h, "/routes/missing/steps", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing route status = %d, want 404", rec.Code)
	}
}

func TestGeoJSON(t *testing.T) {
	routes, buildings := fixtures()
	rec := do(t, NewRouter(routes, buildings, nil), "/routes/r1/geojson", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"LineString"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestAuthenticatedAccess(t *testing.T) {
	routes, buildings := fixtures()
	ids, err := identity.NewJWTIdentity("secret")
	if err != nil {
		t.Fatal(err)
	}
	h := NewRouter(routes, buildings, ids)

	owner, err := ids.Issue(domain.User{ID: 42}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	other, err := ids.Issue(domain.User{ID: 7}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"no token", "/users/42/routes", "", http.StatusUnauthorized},
		{"garbage token", "/users/42/routes", "nope", http.StatusUnauthorized},
		{"owner", "/users/42/routes", owner, http.StatusOK},
		{"other user", "/users/42/routes", other, http.StatusForbidden},
		{"other user's steps", "/routes/r1/steps", other, http.StatusForbidden},
		{"health stays open", "/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, h, tt.path, tt.token); rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
