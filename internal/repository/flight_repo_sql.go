package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightlog/internal/domain"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLFlightRepository stores flights through database/sql. It backs the
// single-user SQLite mode and PostgreSQL through lib/pq.
type SQLFlightRepository struct {
	db     *sql.DB
	driver string
}

// OpenSQL opens and pings a database/sql connection for driver ("sqlite3" or "postgres").
func OpenSQL(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if driver == "sqlite3" {
		// one writer at a time
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return db, nil
}

func NewSQLFlightRepository(db *sql.DB, driver string) *SQLFlightRepository {
	return &SQLFlightRepository{db: db, driver: driver}
}

func (r *SQLFlightRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders into $n for PostgreSQL.
func (r *SQLFlightRepository) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (r *SQLFlightRepository) List(ctx context.Context, userID string) ([]domain.RawFlight, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(`SELECT `+flightColumns+` FROM flights WHERE user_id=? ORDER BY departure_date DESC, created_at DESC`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.RawFlight, 0)
	for rows.Next() {
		var f domain.RawFlight
		if err := scanSQLFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *SQLFlightRepository) GetByID(ctx context.Context, userID, id string) (*domain.RawFlight, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`SELECT `+flightColumns+` FROM flights WHERE user_id=? AND id=?`), userID, id)
	var f domain.RawFlight
	if err := scanSQLFlight(row, &f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

const insertFlightSQL = `INSERT INTO flights (` + flightColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *SQLFlightRepository) Create(ctx context.Context, flight *domain.RawFlight) error {
	_, err := r.db.ExecContext(ctx, r.rebind(insertFlightSQL), sqlArgs(flight)...)
	return err
}

func (r *SQLFlightRepository) CreateBatch(ctx context.Context, flights []domain.RawFlight) (n int, err error) {
	if len(flights) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, r.rebind(insertFlightSQL))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range flights {
		if _, err = stmt.ExecContext(ctx, sqlArgs(&flights[i])...); err != nil {
			return 0, fmt.Errorf("insert flight %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(flights), nil
}

func sqlArgs(f *domain.RawFlight) []any {
	return []any{
		f.ID, f.UserID, f.DepartureDate, f.DepartureTime,
		f.DepartureAirportIATA, f.ArrivalAirportIATA, f.AirlineIATA, f.FlightNumber, f.CreatedAt.UTC(),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLFlight(row scanner, f *domain.RawFlight) error {
	return row.Scan(&f.ID, &f.UserID, &f.DepartureDate, &f.DepartureTime, &f.DepartureAirportIATA, &f.ArrivalAirportIATA, &f.AirlineIATA, &f.FlightNumber, &f.CreatedAt)
}

var _ FlightRepository = (*SQLFlightRepository)(nil)
