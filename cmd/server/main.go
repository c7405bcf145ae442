package main

import (
	"campus-route-finder/internal/adapters/identity"
	"campus-route-finder/internal/adapters/repositories"
	"campus-route-finder/internal/api"
	"campus-route-finder/internal/config"
	"campus-route-finder/internal/platform/db"
	"campus-route-finder/internal/platform/logging"
	"campus-route-finder/internal/ports"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// main is the read-only API composition root.
func main() {
	cfg := config.Load()

	closer, err := logging.Setup(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Stderr: true})
	if err != nil {
		logrus.Fatal(err)
	}
	defer closer.Close()

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DSN(), db.ServerPool)
	if err != nil {
		logrus.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		logrus.Fatal(err)
	}

	// Without a secret the API is open; use that for local runs only.
	var ident ports.IdentityProvider
	if cfg.JWTSecret != "" {
		j, err := identity.NewJWTIdentity(cfg.JWTSecret)
		if err != nil {
			logrus.Fatal(err)
		}
		ident = j
	} else {
		logrus.Warn("JWT_SECRET not set, route endpoints are unauthenticated")
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(
		repositories.NewPostgresRouteRepository(conn),
		repositories.NewPostgresBuildingRepository(conn),
		ident,
	)

	logrus.WithField("addr", ":"+cfg.Port).Info("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logrus.Fatal(srv.ListenAndServe())
}
