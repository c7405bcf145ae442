package main

import (
	"campus-route-finder/internal/adapters/campus"
	"campus-route-finder/internal/adapters/identity"
	"campus-route-finder/internal/adapters/params"
	"campus-route-finder/internal/adapters/repositories"
	"campus-route-finder/internal/config"
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/platform/db"
	"campus-route-finder/internal/platform/logging"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the route finder database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg = config.Load()
			if _, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Stderr: true}); err != nil {
				return err
			}
			return nil
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create tables and indexes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd.Context(), cfg, func(*sql.DB) error { return nil })
			},
		},
		newSeedCmd(&cfg),
		newTokenCmd(&cfg),
	)
	return root
}

func newSeedCmd(cfg *config.Config) *cobra.Command {
	var file, token string
	var fromAPI bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load buildings from a JSON file or the campus API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" && !fromAPI {
				return errors.New("seed: one of --file or --from-api is required")
			}

			return withDB(cmd.Context(), *cfg, func(conn *sql.DB) error {
				if file != "" {
					n, err := repositories.SeedBuildingsFromJSON(cmd.Context(), conn, file)
					if err != nil {
						return fmt.Errorf("seed: %w", err)
					}
					logrus.WithField("count", n).Info("Seeding complete.")
					return nil
				}
				return seedFromAPI(cmd.Context(), conn, *cfg, token)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", config.Get("SEED_PATH", ""), "buildings JSON file")
	cmd.Flags().BoolVar(&fromAPI, "from-api", false, "fetch buildings from the campus API")
	cmd.Flags().StringVar(&token, "token", os.Getenv("CAMPUS_TOKEN"), "bearer token for --from-api")
	return cmd
}

func newTokenCmd(cfg *config.Config) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <student-id>",
		Short: "Issue a locally signed token (needs JWT_SECRET)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("token: student id %q: %w", args[0], err)
			}

			j, err := identity.NewJWTIdentity(cfg.JWTSecret)
			if err != nil {
				return err
			}

			tok, err := j.Issue(domain.User{ID: id}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 72*time.Hour, "token lifetime")
	return cmd
}

// withDB resolves secrets, opens the database, ensures the schema and runs fn.
func withDB(ctx context.Context, cfg config.Config, fn func(*sql.DB) error) error {
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
		return err
	}
	defer conn.Close()

	logrus.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	logrus.Info("Schema ready.")

	return fn(conn)
}

func seedFromAPI(ctx context.Context, conn *sql.DB, cfg config.Config, token string) error {
	client, err := campus.NewClient(cfg.CampusBaseURL, cfg.TermCode)
	if err != nil {
		return err
	}

	buildings, err := client.FetchBuildings(ctx, token)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := repositories.NewPostgresBuildingRepository(conn).AddBuildings(ctx, buildings); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	logrus.WithField("count", len(buildings)).Info("Seeding complete.")
	return nil
}
