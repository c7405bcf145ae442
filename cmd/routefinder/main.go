package main

import (
	"campus-route-finder/internal/adapters/cache"
	"campus-route-finder/internal/adapters/campus"
	"campus-route-finder/internal/adapters/distance"
	"campus-route-finder/internal/adapters/identity"
	"campus-route-finder/internal/adapters/params"
	"campus-route-finder/internal/adapters/repositories"
	"campus-route-finder/internal/cli"
	"campus-route-finder/internal/config"
	"campus-route-finder/internal/platform/db"
	"campus-route-finder/internal/platform/logging"
	"campus-route-finder/internal/ports"
	"campus-route-finder/internal/services"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
)

// main is the interactive tool's composition root.
// It wires Postgres, the cached Google distance provider and the campus APIs
// behind ports and hands them to the menu.
func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()

	// File only: log lines must not interleave with prompts.
	closer, err := logging.Setup(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.SSMPrefix != "" {
		store, err := params.NewSSMParamStore(ctx, cfg.AWSRegion)
		if err != nil {
			return err
		}
		if cfg, err = config.ResolveSecrets(ctx, cfg, store); err != nil {
			return err
		}
	}

	conn, err := db.Open(ctx, cfg.DSN(), db.CLIPool)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}

	google, err := distance.NewGoogleDistanceProvider(cfg.GoogleAPIKey, cfg.GoogleBaseURL)
	if err != nil {
		return err
	}
	// Walking distances between buildings do not change; cache them for a day in memory and forever in Postgres.
	provider := distance.NewCachedDistanceProvider(google, cache.NewSQLDistanceCache(conn), 1024, 24*time.Hour)

	campusAPI, err := campus.NewClient(cfg.CampusBaseURL, cfg.TermCode)
	if err != nil {
		return err
	}

	var ident ports.IdentityProvider = campusAPI
	if cfg.JWTSecret != "" {
		if ident, err = identity.NewJWTIdentity(cfg.JWTSecret); err != nil {
			return err
		}
		logrus.Info("using locally issued tokens")
	}

	buildings := repositories.NewPostgresBuildingRepository(conn)
	routes := repositories.NewPostgresRouteRepository(conn)
	editor := services.NewRouteEditor(buildings, provider, routes)

	browser.Stdout, browser.Stderr = io.Discard, io.Discard

	app := &cli.App{
		Prompt:    cli.NewSurveyPrompter(),
		Out:       os.Stdout,
		Users:     repositories.NewPostgresUserRepository(conn),
		Routes:    routes,
		Buildings: buildings,
		Editor:    editor,
		Planner:   services.NewClassRoutePlanner(campusAPI, editor),
		Map:       services.NewRouteMap(buildings),
		OpenURL:   browser.OpenURL,
		Identity:  ident,
		Source:    campusAPI,
		Store:     buildings,
	}

	if err := app.Login(ctx); err != nil {
		if errors.Is(err, cli.ErrInterrupted) {
			return nil
		}
		return err
	}
	return app.Run(ctx)
}
