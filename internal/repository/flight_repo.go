package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightlog/internal/domain"
)

var ErrFlightNotFound = errors.New("flight not found")

// FlightRepository is the user's flight log. Lists are ordered by departure
// date, most recent first.
type FlightRepository interface {
	List(ctx context.Context, userID string) ([]domain.RawFlight, error)
	GetByID(ctx context.Context, userID, id string) (*domain.RawFlight, error)
	Create(ctx context.Context, flight *domain.RawFlight) error
	CreateBatch(ctx context.Context, flights []domain.RawFlight) (int, error)
}

// The schema is plain enough to run unchanged on PostgreSQL and SQLite.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS flights (
	id                     TEXT PRIMARY KEY,
	user_id                TEXT NOT NULL,
	departure_date         DATE NOT NULL,
	departure_time         TEXT NOT NULL DEFAULT '',
	departure_airport_iata TEXT NOT NULL,
	arrival_airport_iata   TEXT NOT NULL,
	airline_iata           TEXT NOT NULL,
	flight_number          TEXT NOT NULL DEFAULT '',
	created_at             TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_flights_user_date ON flights (user_id, departure_date DESC);
`

const flightColumns = `id, user_id, departure_date, departure_time, departure_airport_iata, arrival_airport_iata, airline_iata, flight_number, created_at`
