package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// EnsureSchema creates the flights table when it is missing.
func (r *PGFlightRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *PGFlightRepository) List(ctx context.Context, userID string) ([]domain.RawFlight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE user_id=$1 ORDER BY departure_date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.RawFlight, 0)
	for rows.Next() {
		f, err := scanPGFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, userID, id string) (*domain.RawFlight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE user_id=$1 AND id=$2`, userID, id)
	f, err := scanPGFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

const insertFlightPG = `INSERT INTO flights (` + flightColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.RawFlight) error {
	_, err := r.db.Exec(ctx, insertFlightPG, pgArgs(flight)...)
	return err
}

// CreateBatch inserts all flights in one transaction; either all are stored or none.
func (r *PGFlightRepository) CreateBatch(ctx context.Context, flights []domain.RawFlight) (int, error) {
	if len(flights) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i := range flights {
		batch.Queue(insertFlightPG, pgArgs(&flights[i])...)
	}
	results := tx.SendBatch(ctx, batch)
	for i := range flights {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("insert flight %d: %w", i+1, err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(flights), nil
}

func pgArgs(f *domain.RawFlight) []any {
	return []any{
		f.ID, f.UserID, f.DepartureDate.Time, f.DepartureTime,
		f.DepartureAirportIATA, f.ArrivalAirportIATA, f.AirlineIATA, f.FlightNumber, f.CreatedAt,
	}
}

func scanPGFlight(row pgx.Row) (domain.RawFlight, error) {
	var f domain.RawFlight
	var departure time.Time
	if err := row.Scan(&f.ID, &f.UserID, &departure, &f.DepartureTime, &f.DepartureAirportIATA, &f.ArrivalAirportIATA, &f.AirlineIATA, &f.FlightNumber, &f.CreatedAt); err != nil {
		return f, err
	}
	f.DepartureDate = domain.DateOf(departure)
	return f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
