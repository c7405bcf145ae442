package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// Pool sizes the database/sql connection pool.
type Pool struct {
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	// PingAttempts is how many times Open tries to reach the server before giving up.
	PingAttempts int
}

var (
	// CLIPool fits the single-user interactive tool.
	CLIPool = Pool{MaxOpenConns: 2, ConnMaxLifetime: 30 * time.Minute, PingAttempts: 1}
	// ServerPool waits for a database that is still starting.
	ServerPool = Pool{MaxOpenConns: 10, ConnMaxLifetime: 30 * time.Minute, PingAttempts: 5}
)

// Open connects to Postgres through the pgx database/sql driver and verifies the connection.
func Open(ctx context.Context, databaseURL string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxOpenConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err := ping(ctx, db, max(pool.PingAttempts, 1)); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}

func ping(ctx context.Context, db *sql.DB, attempts int) error {
	backoff := 500 * time.Millisecond

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		logrus.WithFields(logrus.Fields{"attempt": attempt, "err": err}).Warn("database not ready")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
