package enrich

import (
	"testing"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *reference.Store {
	return reference.NewStore(
		[]domain.Airport{
			{IATA: "SIN", Lat: 1.35, Lon: 103.99, ISOCountry: "SG"},
			{IATA: "BLQ", Lat: 44.54, Lon: 11.29, ISOCountry: "IT"},
			{IATA: "FCO", Lat: 41.80, Lon: 12.25, ISOCountry: "IT"},
			{IATA: "NCC", Lat: 10, Lon: 10},
		},
		[]domain.Airline{
			{IATA: "SQ", Name: "Singapore Airlines", Branding: domain.Branding{PrimaryColor: "#1D2F68", Variations: []string{"logo_mono", "logo"}}},
			{IATA: "AZ", Name: "ITA Airways", Branding: domain.Branding{PrimaryColor: "#0033A0", Variations: []string{"logo_mono"}}},
			{IATA: "JQ", Name: "Jetstar Airways"},
		},
	)
}

func raw(dep, arr, airline string) domain.RawFlight {
	return domain.RawFlight{
		ID:                   "f1",
		DepartureDate:        domain.MustParseDate("2025-08-14"),
		DepartureTime:        "23:55",
		DepartureAirportIATA: dep,
		ArrivalAirportIATA:   arr,
		AirlineIATA:          airline,
		FlightNumber:         "SQ32",
	}
}

func TestEnrich_SingaporeBologna(t *testing.T) {
	in := raw("SIN", "BLQ", "SQ")
	got := Enrich(in, testStore())

	assert.Equal(t, in, got.RawFlight)
	require.NotNil(t, got.DepartureCoordinates)
	assert.Equal(t, 1.35, got.DepartureCoordinates.Lat)
	require.NotNil(t, got.ArrivalCoordinates)
	assert.Equal(t, 11.29, got.ArrivalCoordinates.Lon)

	require.NotNil(t, got.DistanceKm)
	assert.InDelta(t, 10116.5, *got.DistanceKm, 1.0)
	require.NotNil(t, got.FlightTime)
	assert.InDelta(t, 11.24, *got.FlightTime, 0.01)

	assert.Equal(t, "SG", *got.DepartureCountry)
	assert.Equal(t, "IT", *got.ArrivalCountry)
	assert.True(t, got.International)

	assert.Equal(t, "Singapore Airlines", *got.AirlineName)
	assert.Equal(t, "#1D2F68", *got.AirlinePrimaryColor)
	assert.Equal(t, "singapore-airlines.svg", *got.AirlineIconPath)
}

func TestEnrich_UnknownDepartureAirport(t *testing.T) {
	got := Enrich(raw("XXX", "BLQ", "SQ"), testStore())

	assert.Nil(t, got.DepartureCoordinates)
	assert.Nil(t, got.DepartureCountry)
	assert.Nil(t, got.DistanceKm)
	assert.Nil(t, got.FlightTime)
	assert.NotNil(t, got.ArrivalCoordinates)
	assert.True(t, got.International)
	assert.NotNil(t, got.AirlineName)
}

func TestEnrich_BothAirportsUnknown(t *testing.T) {
	got := Enrich(raw("XXX", "YYY", "SQ"), testStore())

	assert.Nil(t, got.DistanceKm)
	assert.Nil(t, got.DepartureCountry)
	assert.Nil(t, got.ArrivalCountry)
	assert.False(t, got.International)
}

func TestEnrich_Domestic(t *testing.T) {
	got := Enrich(raw("BLQ", "FCO", "AZ"), testStore())

	assert.False(t, got.International)
	assert.Equal(t, "ita-airways_mono.svg", *got.AirlineIconPath)
}

func TestEnrich_AirportWithoutCountry(t *testing.T) {
	got := Enrich(raw("NCC", "BLQ", "AZ"), testStore())

	assert.NotNil(t, got.DepartureCoordinates)
	assert.Nil(t, got.DepartureCountry)
	assert.NotNil(t, got.DistanceKm)
}

func TestEnrich_UnknownAirline(t *testing.T) {
	got := Enrich(raw("SIN", "BLQ", "ZZ"), testStore())

	assert.Nil(t, got.AirlineName)
	assert.Nil(t, got.AirlinePrimaryColor)
	assert.Nil(t, got.AirlineIconPath)
	assert.NotNil(t, got.DistanceKm)
}

func TestEnrich_AirlineWithoutLogo(t *testing.T) {
	got := Enrich(raw("SIN", "BLQ", "JQ"), testStore())

	assert.Equal(t, "Jetstar Airways", *got.AirlineName)
	assert.Nil(t, got.AirlinePrimaryColor)
	assert.Nil(t, got.AirlineIconPath)
}

func TestEnrich_Deterministic(t *testing.T) {
	store := testStore()
	in := raw("SIN", "BLQ", "SQ")
	assert.Equal(t, Enrich(in, store), Enrich(in, store))
}

func TestEnricher_WithAvgSpeed(t *testing.T) {
	e := New(testStore(), WithAvgSpeed(800))
	got := e.Enrich(raw("SIN", "BLQ", "SQ"))

	require.NotNil(t, got.FlightTime)
	assert.InDelta(t, *got.DistanceKm/800, *got.FlightTime, 1e-9)

	e = New(testStore(), WithAvgSpeed(-1))
	got = e.Enrich(raw("SIN", "BLQ", "SQ"))
	assert.InDelta(t, 11.24, *got.FlightTime, 0.01)
}

func TestEnricher_EnrichAll(t *testing.T) {
	e := New(testStore())
	out := e.EnrichAll([]domain.RawFlight{raw("SIN", "BLQ", "SQ"), raw("XXX", "BLQ", "AZ")})

	require.Len(t, out, 2)
	assert.NotNil(t, out[0].DistanceKm)
	assert.Nil(t, out[1].DistanceKm)

	assert.NotNil(t, e.EnrichAll(nil))
}

func TestIconPath(t *testing.T) {
	cases := []struct {
		name       string
		airline    domain.Airline
		expectPath string
	}{
		{"both variations prefer color", domain.Airline{Name: "Air New Zealand", Branding: domain.Branding{Variations: []string{"logo_mono", "logo"}}}, "air-new-zealand.svg"},
		{"mono only", domain.Airline{Name: "ITA Airways", Branding: domain.Branding{Variations: []string{"logo_mono"}}}, "ita-airways_mono.svg"},
		{"neither", domain.Airline{Name: "Jetstar", Branding: domain.Branding{Variations: []string{"icon"}}}, ""},
		{"no name", domain.Airline{Branding: domain.Branding{Variations: []string{"logo"}}}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IconPath(tc.airline)
			if tc.expectPath == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.expectPath, *got)
		})
	}
}
