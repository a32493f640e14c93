// Package reference holds the static airport and airline tables. A Store is
// built once at startup and only read afterwards, so it is safe for concurrent use.
package reference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Domenick1991/flightlog/internal/domain"
)

// Option is one entry of an airport or airline picker.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Store struct {
	airports       map[string]domain.Airport
	airlines       map[string]domain.Airline
	airlinesByICAO map[string]domain.Airline

	airportOptions []Option
	airlineOptions []Option
}

// NewStore indexes the given tables by code. The first entry wins on
// duplicate codes.
func NewStore(airports []domain.Airport, airlines []domain.Airline) *Store {
	s := &Store{
		airports:       make(map[string]domain.Airport, len(airports)),
		airlines:       make(map[string]domain.Airline, len(airlines)),
		airlinesByICAO: make(map[string]domain.Airline, len(airlines)),
	}
	for _, a := range airports {
		code := normalizeCode(a.IATA)
		if code == "" {
			continue
		}
		if _, dup := s.airports[code]; dup {
			continue
		}
		s.airports[code] = a
		s.airportOptions = append(s.airportOptions, Option{
			Value: a.IATA,
			Label: fmt.Sprintf("%s - %s, %s, %s", a.IATA, a.Name, a.City, a.Country),
		})
	}
	for _, a := range airlines {
		if code := normalizeCode(a.IATA); code != "" {
			if _, dup := s.airlines[code]; !dup {
				s.airlines[code] = a
				s.airlineOptions = append(s.airlineOptions, Option{
					Value: a.IATA,
					Label: fmt.Sprintf("%s - %s", a.IATA, a.Name),
				})
			}
		}
		if code := normalizeCode(a.ICAO); code != "" {
			if _, dup := s.airlinesByICAO[code]; !dup {
				s.airlinesByICAO[code] = a
			}
		}
	}
	sortOptions(s.airportOptions)
	sortOptions(s.airlineOptions)
	return s
}

func sortOptions(opts []Option) {
	sort.SliceStable(opts, func(i, j int) bool { return opts[i].Label < opts[j].Label })
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Store) Airport(iata string) (domain.Airport, bool) {
	a, ok := s.airports[normalizeCode(iata)]
	return a, ok
}

func (s *Store) Airline(iata string) (domain.Airline, bool) {
	a, ok := s.airlines[normalizeCode(iata)]
	return a, ok
}

// AirlineByICAO resolves the 3-letter ICAO code used by legacy exports.
func (s *Store) AirlineByICAO(icao string) (domain.Airline, bool) {
	a, ok := s.airlinesByICAO[normalizeCode(icao)]
	return a, ok
}

func (s *Store) Len() (airports, airlines int) {
	return len(s.airports), len(s.airlines)
}

// AirportOptions lists airports sorted by label, keeping those whose label
// contains query (case-insensitive). An empty query returns all of them.
func (s *Store) AirportOptions(query string) []Option {
	return filterOptions(s.airportOptions, query)
}

// AirlineOptions is AirportOptions for airlines with an IATA code.
func (s *Store) AirlineOptions(query string) []Option {
	return filterOptions(s.airlineOptions, query)
}

func filterOptions(opts []Option, query string) []Option {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		if query == "" || strings.Contains(strings.ToLower(o.Label), query) {
			out = append(out, o)
		}
	}
	return out
}
