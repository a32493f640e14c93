// Package enrich attaches reference data and derived figures to raw flights.
// Enrichment never fails: every lookup that misses leaves its fields nil.
package enrich

import (
	"strings"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/geo"
)

// Reference is the read-only lookup the enricher needs.
type Reference interface {
	Airport(iata string) (domain.Airport, bool)
	Airline(iata string) (domain.Airline, bool)
}

type Enricher struct {
	ref         Reference
	avgSpeedKmh float64
}

type Option func(*Enricher)

// WithAvgSpeed overrides the cruise speed used for flight time estimates.
func WithAvgSpeed(kmh float64) Option {
	return func(e *Enricher) {
		if kmh > 0 {
			e.avgSpeedKmh = kmh
		}
	}
}

func New(ref Reference, opts ...Option) *Enricher {
	e := &Enricher{ref: ref, avgSpeedKmh: geo.DefaultAvgSpeedKmh}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich is Enricher.Enrich with the default cruise speed.
func Enrich(raw domain.RawFlight, ref Reference) domain.EnrichedFlight {
	return New(ref).Enrich(raw)
}

func (e *Enricher) Enrich(raw domain.RawFlight) domain.EnrichedFlight {
	out := domain.EnrichedFlight{RawFlight: raw}

	out.DepartureCoordinates, out.DepartureCountry = e.airport(raw.DepartureAirportIATA)
	out.ArrivalCoordinates, out.ArrivalCountry = e.airport(raw.ArrivalAirportIATA)

	out.DistanceKm = geo.HaversineDistanceKm(out.DepartureCoordinates, out.ArrivalCoordinates)
	out.FlightTime = geo.EstimateFlightTimeHours(out.DistanceKm, e.avgSpeedKmh)
	out.International = !sameCountry(out.DepartureCountry, out.ArrivalCountry)

	if airline, ok := e.ref.Airline(raw.AirlineIATA); ok {
		out.AirlineName = stringPtr(airline.Name)
		out.AirlinePrimaryColor = stringPtr(airline.Branding.PrimaryColor)
		out.AirlineIconPath = IconPath(airline)
	}
	return out
}

func (e *Enricher) EnrichAll(raws []domain.RawFlight) []domain.EnrichedFlight {
	out := make([]domain.EnrichedFlight, 0, len(raws))
	for _, raw := range raws {
		out = append(out, e.Enrich(raw))
	}
	return out
}

func (e *Enricher) airport(iata string) (*geo.Coordinate, *string) {
	a, ok := e.ref.Airport(iata)
	if !ok {
		return nil, nil
	}
	return &geo.Coordinate{Lat: a.Lat, Lon: a.Lon}, stringPtr(a.ISOCountry)
}

// IconPath derives the logo file name from the airline name, preferring the
// colored logo over the monochrome one.
func IconPath(airline domain.Airline) *string {
	if airline.Name == "" {
		return nil
	}
	slug := strings.ToLower(strings.ReplaceAll(airline.Name, " ", "-"))
	switch {
	case airline.Branding.HasVariation("logo"):
		return stringPtr(slug + ".svg")
	case airline.Branding.HasVariation("logo_mono"):
		return stringPtr(slug + "_mono.svg")
	default:
		return nil
	}
}

// sameCountry treats two unknown countries as equal and an unknown country as
// different from any known one.
func sameCountry(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
