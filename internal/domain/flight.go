package domain

import (
	"time"

	"github.com/Domenick1991/flightlog/internal/geo"
)

// RawFlight is a flight exactly as the user recorded it.
type RawFlight struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	DepartureDate        Date      `json:"departure_date"`
	DepartureTime        string    `json:"departure_time,omitempty"`
	DepartureAirportIATA string    `json:"departure_airport_iata"`
	ArrivalAirportIATA   string    `json:"arrival_airport_iata"`
	AirlineIATA          string    `json:"airline_iata"`
	FlightNumber         string    `json:"flight_number,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// EnrichedFlight is a RawFlight with reference data and derived figures attached.
// Nil fields mean the lookup they depend on failed.
type EnrichedFlight struct {
	RawFlight

	DepartureCoordinates *geo.Coordinate `json:"departure_coordinates"`
	ArrivalCoordinates   *geo.Coordinate `json:"arrival_coordinates"`
	DistanceKm           *float64        `json:"distance_km"`
	FlightTime           *float64        `json:"flight_time"`
	DepartureCountry     *string         `json:"departure_country"`
	ArrivalCountry       *string         `json:"arrival_country"`
	International        bool            `json:"international"`
	AirlineName          *string         `json:"airline_name"`
	AirlinePrimaryColor  *string         `json:"airline_primary_color"`
	AirlineIconPath      *string         `json:"airline_icon_path"`
}

// Distance returns DistanceKm or 0 when unknown.
func (f EnrichedFlight) Distance() float64 {
	if f.DistanceKm == nil {
		return 0
	}
	return *f.DistanceKm
}

// Hours returns FlightTime or 0 when unknown.
func (f EnrichedFlight) Hours() float64 {
	if f.FlightTime == nil {
		return 0
	}
	return *f.FlightTime
}
