package cli

import (
	"campus-route-finder/internal/domain"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Login asks for a bearer token until one resolves to a student, fills an
// empty building directory from the campus API, and registers first-time users
// with their goals and class-schedule routes.
func (a *App) Login(ctx context.Context) error {
	for {
		token, err := a.Prompt.Secret("Please enter your Bearer Token:")
		if err != nil {
			return &promptError{err}
		}

		u, err := a.Identity.UserFromToken(ctx, token)
		if err != nil {
			logrus.WithError(err).Info("token rejected")
			a.printf("Sorry, that isn't an active or valid bearer token.\n")
			continue
		}
		a.User = *u
		break
	}

	if err := a.ensureBuildings(ctx); err != nil {
		return err
	}

	stored, err := a.Users.GetUser(ctx, a.User.ID)
	switch {
	case err == nil:
		a.User.StepGoal, a.User.CalorieGoal = stored.StepGoal, stored.CalorieGoal
		a.printf("Welcome back %s to the Route Finder app!\n", a.User.FirstName)
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("login: %w", err)
	}

	a.printf("Welcome %s to the Route Finder app!\n", a.User.FirstName)
	if err := a.AskGoals(); err != nil {
		return err
	}
	if err := a.Users.AddUser(ctx, a.User); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	// A failed schedule lookup leaves the new user without starting routes.
	if _, err := a.regenerateRoutes(ctx); err != nil {
		logrus.WithError(err).Warn("starting routes not created")
		a.printf("Starting routes could not be created for new user.\n")
	}
	return nil
}

func (a *App) ensureBuildings(ctx context.Context) error {
	if a.Store == nil || a.Source == nil {
		return nil
	}

	n, err := a.Store.CountBuildings(ctx)
	if err != nil {
		return fmt.Errorf("count buildings: %w", err)
	}
	if n > 0 {
		return nil
	}

	buildings, err := a.Source.FetchBuildings(ctx, a.User.Token)
	if err != nil {
		return fmt.Errorf("fetch buildings: %w", err)
	}
	if err := a.Store.AddBuildings(ctx, buildings); err != nil {
		return fmt.Errorf("store buildings: %w", err)
	}
	logrus.WithField("count", len(buildings)).Info("building directory populated")
	return nil
}
