package cli

import (
	"bytes"
	"campus-route-finder/internal/adapters/distance"
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/services"
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"
)

// scripted answers prompts from a fixed list. Select answers may be an option
// index or a string matching the start of an option. Input answers are tried
// in turn until one passes validation, the way a user retypes at a re-prompt.
type scripted struct {
	t       *testing.T
	answers []any
	asked   []string
}

func script(t *testing.T, answers ...any) *scripted {
	return &scripted{t: t, answers: answers}
}

func (s *scripted) next(message string) (any, error) {
	s.asked = append(s.asked, message)
	if len(s.answers) == 0 {
		return nil, ErrInterrupted
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scripted) Select(message string, options []string) (int, error) {
	a, err := s.next(message)
	if err != nil {
		return 0, err
	}
	switch v := a.(type) {
	case int:
		return v, nil
	case string:
		for i, o := range options {
			if strings.HasPrefix(o, v) {
				return i, nil
			}
		}
	}
	s.t.Fatalf("no option %v for %q in %v", a, message, options)
	return 0, nil
}

func (s *scripted) Input(message string, validate func(string) error) (string, error) {
	for {
		a, err := s.next(message)
		if err != nil {
			return "", err
		}
		v, ok := a.(string)
		if !ok {
			s.t.Fatalf("want string answer for %q, got %v", message, a)
		}
		if validate == nil || validate(v) == nil {
			return v, nil
		}
	}
}

func (s *scripted) Confirm(message string) (bool, error) {
	a, err := s.next(message)
	if err != nil {
		return false, err
	}
	v, ok := a.(bool)
	if !ok {
		s.t.Fatalf("want bool answer for %q, got %v", message, a)
	}
	return v, nil
}

func (s *scripted) Secret(message string) (string, error) {
	return s.Input(message, nil)
}

type memBuildings []domain.Building

func (m memBuildings) GetBuilding(_ context.Context, acronym string) (*domain.Building, error) {
	for _, b := range m {
		if b.Acronym == acronym {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memBuildings) FindByName(_ context.Context, name string) (*domain.Building, error) {
	for _, b := range m {
		if b.Name == name {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memBuildings) ListBuildings(context.Context) ([]domain.Building, error) {
	return slices.Clone(m), nil
}

type memRoutes struct {
	routes []domain.Route
	steps  map[string][]domain.Step
}

func (m *memRoutes) ReplaceRoute(_ context.Context, old string, r domain.Route, steps []domain.Step) error {
	m.remove(old)
	m.routes = append(m.routes, r)
	m.steps[r.ID] = slices.Clone(steps)
	return nil
}

func (m *memRoutes) remove(id string) bool {
	i := slices.IndexFunc(m.routes, func(r domain.Route) bool { return r.ID == id })
	if i < 0 {
		return false
	}
	m.routes = slices.Delete(m.routes, i, i+1)
	delete(m.steps, id)
	return true
}

func (m *memRoutes) ListRoutesForUser(_ context.Context, owner int64) ([]domain.Route, error) {
	var out []domain.Route
	for _, r := range m.routes {
		if r.OwnerID == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRoutes) GetRoute(_ context.Context, id string) (*domain.Route, error) {
	for _, r := range m.routes {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRoutes) ListSteps(_ context.Context, id string) ([]domain.Step, error) {
	return slices.Clone(m.steps[id]), nil
}

func (m *memRoutes) DeleteRoute(_ context.Context, id string) error {
	if !m.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}

func (m *memRoutes) DeleteAllRoutes(_ context.Context, owner int64) error {
	m.routes = slices.DeleteFunc(m.routes, func(r domain.Route) bool { return r.OwnerID == owner })
	return nil
}

func (m *memRoutes) UpdateWeekday(_ context.Context, id string, day domain.Weekday) error {
	for i := range m.routes {
		if m.routes[i].ID == id {
			m.routes[i].Weekday = day
			return nil
		}
	}
	return domain.ErrNotFound
}

type memUsers map[int64]domain.User

func (m memUsers) GetUser(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (m memUsers) AddUser(_ context.Context, u domain.User) error {
	m[u.ID] = u
	return nil
}

func (m memUsers) UpdateGoals(_ context.Context, id int64, steps, calories int) error {
	u := m[id]
	u.StepGoal, u.CalorieGoal = steps, calories
	m[id] = u
	return nil
}

var campus = memBuildings{
	{Acronym: "A", Name: "Alpha Hall", Coordinates: domain.Coordinates{Lat: 40.0, Lon: -111.0}},
	{Acronym: "B", Name: "Beta Hall", Coordinates: domain.Coordinates{Lat: 40.1, Lon: -111.0}},
	{Acronym: "C", Name: "Gamma Hall", Coordinates: domain.Coordinates{Lat: 40.2, Lon: -111.0}},
	{Acronym: "D", Name: "Delta Hall", Coordinates: domain.Coordinates{Lat: 40.3, Lon: -111.0}},
	// No distances are known to or from E.
	{Acronym: "E", Name: "Echo Hall", Coordinates: domain.Coordinates{Lat: 41.0, Lon: -112.0}},
}

type testApp struct {
	*App
	out    *bytes.Buffer
	routes *memRoutes
	users  memUsers
}

func newTestApp(prompt Prompter) *testApp {
	var pairs []distance.MockPair
	for i, from := range campus[:4] {
		for j, to := range campus[:4] {
			if i != j {
				hops := float64(max(i-j, j-i))
				pairs = append(pairs, distance.MockPair{From: from.Coordinates, To: to.Coordinates, Miles: 0.25 * hops, Minutes: 5 * hops})
			}
		}
	}

	routes := &memRoutes{steps: map[string][]domain.Step{}}
	users := memUsers{7: {ID: 7, FirstName: "Cosmo", StepGoal: 2000, CalorieGoal: 50}}
	editor := services.NewRouteEditor(campus, distance.NewMockDistanceProvider(pairs), routes)
	out := &bytes.Buffer{}

	return &testApp{
		App: &App{
			Prompt:    prompt,
			Out:       out,
			Users:     users,
			Routes:    routes,
			Buildings: campus,
			Editor:    editor,
			Map:       services.NewRouteMap(campus),
			User:      users[7],
		},
		out:    out,
		routes: routes,
		users:  users,
	}
}
