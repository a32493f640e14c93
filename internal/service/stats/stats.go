// Package stats reduces enriched flights into summary figures and chart data.
package stats

import "github.com/Domenick1991/flightlog/internal/domain"

// LongHaulKm is the distance from which a flight counts as long-haul.
const LongHaulKm = 5000.0

// Compute aggregates flights in a single pass. Unknown distances and times
// count as zero in the totals and never win shortest/longest; when no flight
// has a distance both are nil. Ties keep the earliest flight in input order.
//
// West-bound is the plain "arrival longitude < departure longitude" check, so
// flights across the antimeridian are classified by sign, not by heading.
func Compute(flights []domain.EnrichedFlight) domain.FlightStats {
	var s domain.FlightStats

	airports := make(map[string]struct{})
	airlines := make(map[string]struct{})
	countries := make(map[string]struct{})

	for i := range flights {
		f := &flights[i]

		s.TotalFlights++
		s.TotalDistance += f.Distance()
		s.TotalFlightTime += f.Hours()

		if f.DepartureAirportIATA != "" {
			airports[f.DepartureAirportIATA] = struct{}{}
		}
		if f.ArrivalAirportIATA != "" {
			airports[f.ArrivalAirportIATA] = struct{}{}
		}
		if f.AirlineName != nil {
			airlines[*f.AirlineName] = struct{}{}
		}
		if f.DepartureCountry != nil {
			countries[*f.DepartureCountry] = struct{}{}
		}
		if f.ArrivalCountry != nil {
			countries[*f.ArrivalCountry] = struct{}{}
		}

		if f.International {
			s.InternationalFlights++
		} else {
			s.DomesticFlights++
		}

		if f.DepartureCoordinates != nil && f.ArrivalCoordinates != nil &&
			f.ArrivalCoordinates.Lon < f.DepartureCoordinates.Lon {
			s.WestBoundFlights++
		}

		if f.DistanceKm == nil {
			continue
		}
		if *f.DistanceKm >= LongHaulKm {
			s.LongHaulFlights++
		}
		if s.ShortestFlight == nil || *f.DistanceKm < *s.ShortestFlight.DistanceKm {
			s.ShortestFlight = f
		}
		if s.LongestFlight == nil || *f.DistanceKm > *s.LongestFlight.DistanceKm {
			s.LongestFlight = f
		}
	}

	s.Airports = len(airports)
	s.Airlines = len(airlines)
	s.Countries = len(countries)
	if s.TotalFlights > 0 {
		s.AverageDistance = s.TotalDistance / float64(s.TotalFlights)
	}
	s.ShortestFlight = clone(s.ShortestFlight)
	s.LongestFlight = clone(s.LongestFlight)
	return s
}

// clone detaches the result from the caller's slice.
func clone(f *domain.EnrichedFlight) *domain.EnrichedFlight {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
