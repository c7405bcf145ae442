package cli

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/ports"
	"campus-route-finder/internal/services"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// stateFn is one screen of the menu. It returns the next screen, or nil to exit.
type stateFn func(ctx context.Context) (stateFn, error)

// App is the interactive route finder for one signed-in student.
type App struct {
	Prompt    Prompter
	Out       io.Writer
	Users     ports.UserRepository
	Routes    ports.RouteRepository
	Buildings ports.BuildingDirectory
	Editor    *services.RouteEditor
	Planner   *services.ClassRoutePlanner
	Map       *services.RouteMap
	// OpenURL shows a link to the user, usually in a browser. Nil only prints it.
	OpenURL func(url string) error

	// Used by Login only.
	Identity ports.IdentityProvider
	Source   ports.BuildingSource
	Store    ports.BuildingStore

	User domain.User

	routes []domain.Route
}

// promptError marks failures of the prompter itself, which end the session.
type promptError struct{ err error }

func (e *promptError) Error() string { return "prompt: " + e.err.Error() }
func (e *promptError) Unwrap() error { return e.err }

func (a *App) choose(message string, options []string) (int, error) {
	i, err := a.Prompt.Select(message, options)
	if err != nil {
		return 0, &promptError{err}
	}
	return i, nil
}

func (a *App) input(message string, validate func(string) error) (string, error) {
	s, err := a.Prompt.Input(message, validate)
	if err != nil {
		return "", &promptError{err}
	}
	return s, nil
}

func (a *App) confirm(message string) (bool, error) {
	ok, err := a.Prompt.Confirm(message)
	if err != nil {
		return false, &promptError{err}
	}
	return ok, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

// Run drives the menu until the user exits.
//
// Input errors never reach here: they are re-prompted. A collaborator error
// (storage, distance provider, campus API) abandons the current edit, is
// reported, and returns the user to the main menu with stored routes intact.
func (a *App) Run(ctx context.Context) error {
	a.printf("%s\n", title)

	state := stateFn(a.mainMenu)
	for state != nil {
		next, err := state(ctx)

		var pe *promptError
		switch {
		case err == nil:
			state = next
		case errors.As(err, &pe) && errors.Is(err, ErrInterrupted):
			state = nil
		case errors.As(err, &pe):
			return err
		default:
			logrus.WithError(err).Error("menu action failed")
			a.printf("Sorry, something went wrong: %v\n", err)
			state = a.mainMenu
		}
	}

	a.printf("Thank you for using the Route Finder! Log in anytime to continue to create and view your routes!\nGoodbye!\n")
	return nil
}

func (a *App) mainMenu(ctx context.Context) (stateFn, error) {
	options := []string{
		"View/Modify goals",
		"Create a new route",
		"View/Modify existing routes",
		"Regenerate class routes",
		"Exit",
	}
	i, err := a.choose("Please select an option from the menu below:", options)
	if err != nil {
		return nil, err
	}

	switch i {
	case 0:
		return a.goals, nil
	case 1:
		return a.createRoute, nil
	case 2:
		return a.modifyRoutes, nil
	case 3:
		return a.regenerateRoutes, nil
	default:
		return nil, nil
	}
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("please enter a whole number of zero or more")
	}
	return nil
}

// intInRange validates an integer answer in [lo, hi].
func intInRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("please enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}

func (a *App) askInt(message string, validate func(string) error) (int, error) {
	s, err := a.input(message, validate)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

// AskGoals prompts for both daily goals and stores them on a.User.
func (a *App) AskGoals() error {
	steps, err := a.askInt("What is your daily step goal?", nonNegativeInt)
	if err != nil {
		return err
	}
	calories, err := a.askInt("What is your daily calories burned goal?", nonNegativeInt)
	if err != nil {
		return err
	}
	a.User.StepGoal, a.User.CalorieGoal = steps, calories
	return nil
}

func (a *App) goals(ctx context.Context) (stateFn, error) {
	renderGoals(a.Out, a.User)

	i, err := a.choose("Please select what you want to do:", []string{"Modify goals", "Back to main menu"})
	if err != nil || i != 0 {
		return a.mainMenu, err
	}

	if err := a.AskGoals(); err != nil {
		return nil, err
	}
	if err := a.Users.UpdateGoals(ctx, a.User.ID, a.User.StepGoal, a.User.CalorieGoal); err != nil {
		return nil, fmt.Errorf("update goals: %w", err)
	}

	a.printf("Goals updated.\n")
	renderGoals(a.Out, a.User)
	return a.mainMenu, nil
}

// chooseBuilding lists buildings by name, leaving out the acronym exclude,
// and returns the chosen building's acronym.
func (a *App) chooseBuilding(ctx context.Context, role, exclude string) (string, error) {
	all, err := a.Buildings.ListBuildings(ctx)
	if err != nil {
		return "", fmt.Errorf("list buildings: %w", err)
	}

	names := make([]string, 0, len(all))
	for _, b := range all {
		if b.Acronym != exclude {
			names = append(names, b.Name)
		}
	}
	slices.Sort(names)
	if len(names) == 0 {
		return "", fmt.Errorf("choose %s building: %w", role, domain.ErrNotFound)
	}

	i, err := a.choose(fmt.Sprintf("Please select a %s building", role), names)
	if err != nil {
		return "", err
	}

	b, err := a.Buildings.FindByName(ctx, names[i])
	if err != nil {
		return "", fmt.Errorf("choose %s building: %w", role, err)
	}
	return b.Acronym, nil
}

func (a *App) chooseWeekday(message string) (domain.Weekday, error) {
	names := make([]string, len(domain.Weekdays))
	for i, d := range domain.Weekdays {
		names[i] = string(d)
	}
	i, err := a.choose(message, names)
	if err != nil {
		return "", err
	}
	return domain.Weekdays[i], nil
}

func (a *App) createRoute(ctx context.Context) (stateFn, error) {
	day, err := a.chooseWeekday("What is the weekday for the new route?")
	if err != nil {
		return nil, err
	}

	d := services.Draft{OwnerID: a.User.ID, Weekday: day}
	for {
		var start, end string
		if len(d.Steps) == 0 {
			if start, err = a.chooseBuilding(ctx, "starting", ""); err != nil {
				return nil, err
			}
			if end, err = a.chooseBuilding(ctx, "destination", start); err != nil {
				return nil, err
			}
		} else {
			prev := d.Steps[len(d.Steps)-1].EndLocation
			if end, err = a.chooseBuilding(ctx, "destination", prev); err != nil {
				return nil, err
			}
		}

		if d, err = a.Editor.AddLeg(ctx, d, len(d.Steps)+1, start, end); err != nil {
			return nil, err
		}

		a.printf("Here are your current steps\n")
		renderSteps(a.Out, d.Steps)

		more, err := a.confirm("Would you like to add another step?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	_, steps, err := a.Editor.Save(ctx, d)
	if err != nil {
		return nil, err
	}
	a.printf("Here is your new route!\n")
	renderSteps(a.Out, steps)
	return a.mainMenu, nil
}

// loadRoutes refreshes the listing that route indexes refer to and shows it.
func (a *App) loadRoutes(ctx context.Context) error {
	routes, err := a.Routes.ListRoutesForUser(ctx, a.User.ID)
	if err != nil {
		return fmt.Errorf("list routes: %w", err)
	}
	a.routes = routes

	renderRoutes(a.Out, routes)
	a.printf("You have %d routes saved.\n", len(routes))
	renderShortfalls(a.Out, domain.CheckGoals(routes, a.User))
	return nil
}

func (a *App) chooseRoute(message string) (domain.Route, error) {
	labels := make([]string, len(a.routes))
	for i, r := range a.routes {
		labels[i] = routeLabel(i, r)
	}
	i, err := a.choose(message, labels)
	if err != nil {
		return domain.Route{}, err
	}
	return a.routes[i], nil
}

func (a *App) modifyRoutes(ctx context.Context) (stateFn, error) {
	if err := a.loadRoutes(ctx); err != nil {
		return nil, err
	}
	if len(a.routes) == 0 {
		a.printf("Looks like you don't have any routes saved. Create a route and try again!\n")
		return a.mainMenu, nil
	}

	options := []string{
		"Show route steps",
		"Modify a route",
		"Delete a route",
		"Delete all routes",
		"Open route in browser",
		"Export route as GeoJSON",
		"Back to main menu",
	}
	i, err := a.choose("Please select what you want to do:", options)
	if err != nil {
		return nil, err
	}

	switch i {
	case 0:
		return a.showSteps, nil
	case 1:
		return a.modifyRoute, nil
	case 2:
		return a.deleteRoute, nil
	case 3:
		return a.deleteAllRoutes, nil
	case 4:
		return a.openInBrowser, nil
	case 5:
		return a.exportGeoJSON, nil
	default:
		return a.mainMenu, nil
	}
}

func (a *App) showSteps(ctx context.Context) (stateFn, error) {
	r, err := a.chooseRoute("Which route's steps do you want to see?")
	if err != nil {
		return nil, err
	}

	steps, err := a.Routes.ListSteps(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	a.printf("Steps for selected route:\n")
	renderSteps(a.Out, steps)
	return a.modifyRoutes, nil
}

func (a *App) modifyRoute(ctx context.Context) (stateFn, error) {
	options := []string{"Add a step", "Delete a step", "Change weekday", "Remeasure distances", "Back"}
	i, err := a.choose("How do you want to modify the route?", options)
	if err != nil {
		return nil, err
	}

	switch i {
	case 0:
		return a.addStep, nil
	case 1:
		return a.deleteStep, nil
	case 2:
		return a.changeWeekday, nil
	case 3:
		return a.remeasure, nil
	default:
		return a.modifyRoutes, nil
	}
}

func (a *App) loadDraft(ctx context.Context, message string) (services.Draft, error) {
	r, err := a.chooseRoute(message)
	if err != nil {
		return services.Draft{}, err
	}
	return a.Editor.LoadDraft(ctx, r)
}

func (a *App) addStep(ctx context.Context) (stateFn, error) {
	d, err := a.loadDraft(ctx, "Which route do you want to add steps to?")
	if err != nil {
		return nil, err
	}

	for {
		a.printf("Current steps for selected route:\n")
		renderSteps(a.Out, d.Steps)

		pos, err := a.askInt(
			"Enter the new step order (1 for first step, 2 for second, etc.):",
			intInRange(1, len(d.Steps)+1),
		)
		if err != nil {
			return nil, err
		}

		slot, err := services.InsertSlot(d.Steps, pos)
		if err != nil {
			return nil, err
		}

		var start, end string
		if slot.FixedEnd != "" {
			start, err = a.chooseBuilding(ctx, "starting", slot.FixedEnd)
		} else {
			end, err = a.chooseBuilding(ctx, "destination", slot.FixedStart)
		}
		if err != nil {
			return nil, err
		}

		if d, err = a.Editor.AddLeg(ctx, d, pos, start, end); err != nil {
			return nil, err
		}
		a.printf("Step added!\n")

		done, err := a.confirm("Are you finished adding steps?")
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	return a.save(ctx, d)
}

func (a *App) save(ctx context.Context, d services.Draft) (stateFn, error) {
	route, steps, err := a.Editor.Save(ctx, d)
	if err != nil {
		return nil, err
	}
	if route == nil {
		a.printf("The route had no steps left and was deleted.\n")
		return a.modifyRoutes, nil
	}

	a.printf("Here is your new route!\n")
	renderSteps(a.Out, steps)
	return a.modifyRoutes, nil
}

func (a *App) deleteStep(ctx context.Context) (stateFn, error) {
	d, err := a.loadDraft(ctx, "Which route do you want to delete a step from?")
	if err != nil {
		return nil, err
	}
	if len(d.Steps) == 0 {
		return a.modifyRoutes, nil
	}

	a.printf("Current steps for selected route:\n")
	renderSteps(a.Out, d.Steps)

	index, err := a.askInt("Enter the index of the step you wish to delete:", intInRange(0, len(d.Steps)-1))
	if err != nil {
		return nil, err
	}

	confirmed := true
	if len(d.Steps) == 1 {
		confirmed, err = a.confirm("Deleting this step will delete the entire route. Are you sure you wish to proceed?")
		if err != nil {
			return nil, err
		}
		if !confirmed {
			return a.modifyRoutes, nil
		}
	}

	if d, err = a.Editor.RemoveLeg(d, index, confirmed); err != nil {
		return nil, err
	}
	a.printf("Step deleted!\n")
	return a.save(ctx, d)
}

func (a *App) changeWeekday(ctx context.Context) (stateFn, error) {
	r, err := a.chooseRoute("Which route do you want to move?")
	if err != nil {
		return nil, err
	}
	day, err := a.chooseWeekday("What is the new weekday for the route?")
	if err != nil {
		return nil, err
	}

	if err := a.Editor.ChangeWeekday(ctx, r.ID, day); err != nil {
		return nil, err
	}
	a.printf("Updated route.\n")
	return a.modifyRoutes, nil
}

func (a *App) remeasure(ctx context.Context) (stateFn, error) {
	d, err := a.loadDraft(ctx, "Which route do you want to remeasure?")
	if err != nil {
		return nil, err
	}
	if d, err = a.Editor.RemeasureRoute(ctx, d); err != nil {
		return nil, err
	}
	return a.save(ctx, d)
}

func (a *App) deleteRoute(ctx context.Context) (stateFn, error) {
	r, err := a.chooseRoute("Which route do you want to delete?")
	if err != nil {
		return nil, err
	}

	ok, err := a.confirm(fmt.Sprintf("Are you sure you want to delete the %s route %s?", r.Weekday, strings.Join(r.LocationPath, " > ")))
	if err != nil || !ok {
		return a.modifyRoutes, err
	}

	if err := a.Routes.DeleteRoute(ctx, r.ID); err != nil {
		return nil, fmt.Errorf("delete route: %w", err)
	}
	a.printf("Deleted route successfully.\n")
	return a.modifyRoutes, nil
}

func (a *App) deleteAllRoutes(ctx context.Context) (stateFn, error) {
	ok, err := a.confirm("Are you sure you want to delete all your saved routes?")
	if err != nil || !ok {
		return a.modifyRoutes, err
	}

	if err := a.Routes.DeleteAllRoutes(ctx, a.User.ID); err != nil {
		return nil, fmt.Errorf("delete all routes: %w", err)
	}
	a.printf("Deleted routes successfully.\n")
	return a.mainMenu, nil
}

func (a *App) openInBrowser(ctx context.Context) (stateFn, error) {
	r, err := a.chooseRoute("Which route do you want to open?")
	if err != nil {
		return nil, err
	}

	url, err := a.Map.MapsURL(ctx, r)
	if err != nil {
		return nil, err
	}
	a.printf("%s\n", url)

	if a.OpenURL != nil {
		if err := a.OpenURL(url); err != nil {
			logrus.WithError(err).Warn("open browser failed")
			a.printf("Could not open a browser; copy the link above instead.\n")
		}
	}
	return a.modifyRoutes, nil
}

func (a *App) exportGeoJSON(ctx context.Context) (stateFn, error) {
	r, err := a.chooseRoute("Which route do you want to export?")
	if err != nil {
		return nil, err
	}

	path, err := a.input("File to write (leave empty for route-<id>.geojson):", nil)
	if err != nil {
		return nil, err
	}
	if path = strings.TrimSpace(path); path == "" {
		path = "route-" + r.ID + ".geojson"
	}

	b, err := a.Map.GeoJSON(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return nil, fmt.Errorf("export geojson: %w", err)
	}
	a.printf("Wrote %s\n", path)
	return a.modifyRoutes, nil
}

func (a *App) regenerateRoutes(ctx context.Context) (stateFn, error) {
	a.printf("Generating starting routes...\n")

	routes, err := a.Planner.PlanClassRoutes(ctx, a.User)
	if err != nil {
		if len(routes) > 0 {
			days := make([]string, 0, len(routes))
			for _, r := range routes {
				days = append(days, string(r.Weekday))
			}
			a.printf("Routes were saved for %s before generation stopped:\n", strings.Join(days, ", "))
			renderRoutes(a.Out, routes)
		}
		return nil, err
	}
	if len(routes) == 0 {
		a.printf("Could not generate starting class routes, no classes found.\n")
		return a.mainMenu, nil
	}

	a.printf("Starting routes have been generated for you based on your current class schedule!\n")
	renderRoutes(a.Out, routes)
	return a.mainMenu, nil
}
