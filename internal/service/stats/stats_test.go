package stats

import (
	"testing"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/geo"
	"github.com/Domenick1991/flightlog/internal/reference"
	"github.com/Domenick1991/flightlog/internal/service/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnricher() *enrich.Enricher {
	return enrich.New(reference.NewStore(
		[]domain.Airport{
			{IATA: "SIN", Lat: 1.35, Lon: 103.99, ISOCountry: "SG"},
			{IATA: "BLQ", Lat: 44.54, Lon: 11.29, ISOCountry: "IT"},
			{IATA: "FCO", Lat: 41.80, Lon: 12.25, ISOCountry: "IT"},
			{IATA: "SYD", Lat: -33.95, Lon: 151.18, ISOCountry: "AU"},
			{IATA: "LAX", Lat: 33.94, Lon: -118.41, ISOCountry: "US"},
		},
		[]domain.Airline{
			{IATA: "SQ", Name: "Singapore Airlines"},
			{IATA: "AZ", Name: "ITA Airways"},
			{IATA: "QF", Name: "Qantas"},
		},
	))
}

func enriched(id, date, dep, arr, airline string) domain.EnrichedFlight {
	return testEnricher().Enrich(domain.RawFlight{
		ID:                   id,
		DepartureDate:        domain.MustParseDate(date),
		DepartureAirportIATA: dep,
		ArrivalAirportIATA:   arr,
		AirlineIATA:          airline,
	})
}

func sampleFlights() []domain.EnrichedFlight {
	return []domain.EnrichedFlight{
		enriched("sin-blq", "2025-08-14", "SIN", "BLQ", "SQ"), // Thursday, west-bound, long-haul
		enriched("blq-fco", "2025-08-11", "BLQ", "FCO", "AZ"), // Monday, domestic, east-bound
		enriched("syd-lax", "2024-01-03", "SYD", "LAX", "QF"), // Wednesday, long-haul, crosses the antimeridian
		enriched("unknown", "2023-05-01", "XXX", "BLQ", "ZZ"), // Monday, no distance
	}
}

func TestCompute_Empty(t *testing.T) {
	assert.Equal(t, domain.FlightStats{}, Compute(nil))
	assert.Equal(t, domain.FlightStats{}, Compute([]domain.EnrichedFlight{}))

	s := Compute(nil)
	assert.Nil(t, s.ShortestFlight)
	assert.Nil(t, s.LongestFlight)
}

func TestCompute_Sample(t *testing.T) {
	flights := sampleFlights()
	s := Compute(flights)

	assert.Equal(t, 4, s.TotalFlights)
	assert.Equal(t, 6, s.Airports)  // unresolved codes still count as visited airports
	assert.Equal(t, 3, s.Airlines)  // ZZ is unresolved
	assert.Equal(t, 4, s.Countries) // SG IT AU US
	assert.Equal(t, 1, s.DomesticFlights)
	assert.Equal(t, 3, s.InternationalFlights)
	assert.Equal(t, 2, s.LongHaulFlights)
	// syd-lax flies east but its arrival longitude is numerically smaller
	assert.Equal(t, 2, s.WestBoundFlights)

	require.NotNil(t, s.ShortestFlight)
	assert.Equal(t, "blq-fco", s.ShortestFlight.ID)
	require.NotNil(t, s.LongestFlight)
	assert.Equal(t, "syd-lax", s.LongestFlight.ID)
}

func TestCompute_TotalsAreSumsTreatingNilAsZero(t *testing.T) {
	flights := sampleFlights()
	s := Compute(flights)

	var distance, hours float64
	for _, f := range flights {
		if f.DistanceKm != nil {
			distance += *f.DistanceKm
		}
		if f.FlightTime != nil {
			hours += *f.FlightTime
		}
	}
	assert.Equal(t, distance, s.TotalDistance)
	assert.Equal(t, hours, s.TotalFlightTime)
	assert.InDelta(t, distance/4, s.AverageDistance, 1e-9)
}

func TestCompute_AllDistancesUnknown(t *testing.T) {
	flights := []domain.EnrichedFlight{
		enriched("a", "2025-01-01", "XXX", "YYY", "SQ"),
		enriched("b", "2025-01-02", "BLQ", "ZZZ", "SQ"),
	}
	s := Compute(flights)

	assert.Nil(t, s.ShortestFlight)
	assert.Nil(t, s.LongestFlight)
	assert.Equal(t, 0.0, s.TotalDistance)
	assert.Equal(t, 0, s.LongHaulFlights)
	assert.Equal(t, 0, s.WestBoundFlights)
}

func TestCompute_TiesKeepFirst(t *testing.T) {
	flights := []domain.EnrichedFlight{
		enriched("first", "2025-01-01", "BLQ", "FCO", "AZ"),
		enriched("second", "2025-01-02", "BLQ", "FCO", "AZ"),
	}
	s := Compute(flights)

	assert.Equal(t, "first", s.ShortestFlight.ID)
	assert.Equal(t, "first", s.LongestFlight.ID)
}

func TestCompute_LongHaulThresholdInclusive(t *testing.T) {
	d := LongHaulKm
	below := LongHaulKm - 0.001
	flights := []domain.EnrichedFlight{
		{DistanceKm: &d},
		{DistanceKm: &below},
		{},
	}
	assert.Equal(t, 1, Compute(flights).LongHaulFlights)
}

func TestCompute_ResultIsDetached(t *testing.T) {
	flights := sampleFlights()
	s := Compute(flights)
	flights[1].ID = "changed"
	assert.Equal(t, "blq-fco", s.ShortestFlight.ID)
}

func TestDeparturesByCountry(t *testing.T) {
	flights := append(sampleFlights(), enriched("fco-sin", "2025-02-01", "FCO", "SIN", "SQ"))
	got := DeparturesByCountry(flights)

	assert.Equal(t, []domain.CountryDepartures{
		{Country: "IT", Departures: 2},
		{Country: "AU", Departures: 1},
		{Country: "SG", Departures: 1},
	}, got)
}

func TestDeparturesByCountry_Empty(t *testing.T) {
	got := DeparturesByCountry(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFlightsByTimeGrouping_DayOfWeek(t *testing.T) {
	got := FlightsByTimeGrouping(sampleFlights(), domain.GroupingDayOfWeek)
	assert.Equal(t, []domain.PeriodCount{
		{Period: "Monday", Flights: 2},
		{Period: "Wednesday", Flights: 1},
		{Period: "Thursday", Flights: 1},
	}, got)
}

func TestFlightsByTimeGrouping_DayOfWeekOrder(t *testing.T) {
	flights := []domain.EnrichedFlight{
		enriched("sun", "2025-08-17", "SIN", "BLQ", "SQ"),
		enriched("wed", "2025-08-13", "SIN", "BLQ", "SQ"),
		enriched("mon", "2025-08-11", "SIN", "BLQ", "SQ"),
	}
	got := FlightsByTimeGrouping(flights, domain.GroupingDayOfWeek)
	require.Len(t, got, 3)
	assert.Equal(t, "Monday", got[0].Period)
	assert.Equal(t, "Wednesday", got[1].Period)
	assert.Equal(t, "Sunday", got[2].Period)
}

func TestFlightsByTimeGrouping_Month(t *testing.T) {
	got := FlightsByTimeGrouping(sampleFlights(), domain.GroupingMonth)
	assert.Equal(t, []domain.PeriodCount{
		{Period: "January", Flights: 1},
		{Period: "May", Flights: 1},
		{Period: "August", Flights: 2},
	}, got)
}

func TestFlightsByTimeGrouping_Year(t *testing.T) {
	got := FlightsByTimeGrouping(sampleFlights(), domain.GroupingYear)
	assert.Equal(t, []domain.PeriodCount{
		{Period: "2023", Flights: 1},
		{Period: "2024", Flights: 1},
		{Period: "2025", Flights: 2},
	}, got)
}

func TestFlightsByTimeGrouping_UnknownGrouping(t *testing.T) {
	assert.Empty(t, FlightsByTimeGrouping(sampleFlights(), "week"))
}

func TestJourney(t *testing.T) {
	j := Journey(EarthCircumferenceKm * 2.5)
	assert.InDelta(t, 2.5, j.EarthLaps, 1e-9)
	assert.InDelta(t, EarthCircumferenceKm*2.5/DistanceToMoonKm, j.MoonProgress, 1e-12)
	assert.Equal(t, domain.JourneyProgress{}, Journey(0))
}

func TestFlightPaths(t *testing.T) {
	paths := FlightPaths(sampleFlights(), 20)

	// sin-blq and blq-fco are single segments, syd-lax is split in two, unknown is skipped
	require.Len(t, paths, 4)
	assert.Len(t, paths[0], 21)
	assert.Len(t, paths[1], 21)
	assert.Equal(t, 21, len(paths[2])+len(paths[3]))
	assert.Equal(t, geo.Coordinate{Lat: 1.35, Lon: 103.99}, paths[0][0])
}
