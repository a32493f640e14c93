package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightlog/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open connects the flight store selected by cfg.Driver and makes sure the
// schema exists. The returned func releases the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (FlightRepository, func(), error) {
	switch cfg.Driver {
	case "pgx", "":
		pool, err := pgxpool.New(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := &PGFlightRepository{db: pool}
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	case "postgres", "sqlite3":
		db, err := OpenSQL(cfg.Driver, cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		repo := NewSQLFlightRepository(db, cfg.Driver)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
