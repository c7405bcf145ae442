package services

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/platform/obs"
	"campus-route-finder/internal/ports"
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Class routes are generated for the teaching week only.
var classDays = []domain.Weekday{
	domain.Monday,
	domain.Tuesday,
	domain.Wednesday,
	domain.Thursday,
	domain.Friday,
}

// DaySchedule lists the buildings a student walks between on day.
//
// Classes taught that day are ordered by start time; buildings are upper-cased
// and a building repeated by consecutive classes is visited once. Classes with
// unreadable day codes are skipped.
func DaySchedule(classes []domain.ClassMeeting, day domain.Weekday) []string {
	today := make([]domain.ClassMeeting, 0, len(classes))
	for _, c := range classes {
		days, err := domain.ParseDayCodes(c.DaysTaught)
		if err != nil {
			logrus.WithError(err).WithField("class", c.Title).Warn("skipping class with unreadable days")
			continue
		}
		if slices.Contains(days, day) {
			today = append(today, c)
		}
	}

	slices.SortStableFunc(today, func(a, b domain.ClassMeeting) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})

	buildings := make([]string, 0, len(today))
	for _, c := range today {
		b := strings.ToUpper(strings.TrimSpace(c.Building))
		if len(buildings) > 0 && buildings[len(buildings)-1] == b {
			continue
		}
		buildings = append(buildings, b)
	}
	return buildings
}

// ClassRoutePlanner builds starting routes from a student's class schedule.
type ClassRoutePlanner struct {
	Schedule ports.ScheduleProvider
	Editor   *RouteEditor
}

func NewClassRoutePlanner(schedule ports.ScheduleProvider, editor *RouteEditor) *ClassRoutePlanner {
	return &ClassRoutePlanner{Schedule: schedule, Editor: editor}
}

// PlanClassRoutes creates one route per weekday, Monday to Friday, walking
// between that day's class buildings in start-time order. Days with fewer than
// two buildings get no route. Existing routes are left alone.
//
// It returns the routes that were saved; an empty result with a nil error
// means the schedule produced no walkable day. When a day fails, the routes
// already saved for earlier days come back along with the error.
func (p *ClassRoutePlanner) PlanClassRoutes(ctx context.Context, u domain.User) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "route.PlanClassRoutes")(&err)

	if p.Schedule == nil || p.Editor == nil {
		return nil, errors.New("plan class routes: planner is not configured")
	}

	classes, err := p.Schedule.EnrolledClasses(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("plan class routes: enrolled classes for %d: %w", u.ID, err)
	}

	routes := make([]domain.Route, 0, len(classDays))
	for _, day := range classDays {
		buildings := DaySchedule(classes, day)
		if len(buildings) < 2 {
			continue
		}

		route, _, err := p.Editor.CreateRoute(ctx, u.ID, day, buildings)
		if err != nil {
			return routes, fmt.Errorf("plan class routes: %s: %w", day, err)
		}
		routes = append(routes, *route)
	}

	return routes, nil
}
