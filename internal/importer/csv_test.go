package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImporter() *Importer {
	return New(reference.NewStore(nil, []domain.Airline{
		{IATA: "SQ", ICAO: "SIA", Name: "Singapore Airlines"},
		{IATA: "JQ", ICAO: "JST", Name: "Jetstar Airways"},
	}))
}

func TestParse_Canonical(t *testing.T) {
	input := "departure_date,departure_time,departure_airport_iata,arrival_airport_iata,airline_iata,flight_number\n" +
		"2025-08-14,23:55,SIN,BLQ,SQ,SQ32\n" +
		"2025-08-20,,blq,fco,az,\n"

	flights, err := testImporter().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, flights, 2)

	assert.Equal(t, domain.MustParseDate("2025-08-14"), flights[0].DepartureDate)
	assert.Equal(t, "23:55", flights[0].DepartureTime)
	assert.Equal(t, "SIN", flights[0].DepartureAirportIATA)
	assert.Equal(t, "SQ32", flights[0].FlightNumber)

	assert.Equal(t, "BLQ", flights[1].DepartureAirportIATA)
	assert.Equal(t, "FCO", flights[1].ArrivalAirportIATA)
	assert.Equal(t, "AZ", flights[1].AirlineIATA)
	assert.Empty(t, flights[1].DepartureTime)
}

func TestParse_ColumnOrderAndBlankLines(t *testing.T) {
	input := "\ufeffairline_iata,arrival_airport_iata,departure_airport_iata,departure_date\n" +
		"\n" +
		"SQ,BLQ,SIN,2025-08-14\n" +
		",,,\n"

	flights, err := testImporter().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "SIN", flights[0].DepartureAirportIATA)
	assert.Equal(t, "SQ", flights[0].AirlineIATA)
}

func TestParse_Flighty(t *testing.T) {
	input := "Date,Airline,Flight,From,To,Dep Terminal,Seat\n" +
		"2024-12-01,JST,501,SYD,MEL,T2,12A\n" +
		"2024-12-05,SIA,32,SIN,BLQ,,\n"

	flights, err := testImporter().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, flights, 2)

	assert.Equal(t, "JQ", flights[0].AirlineIATA)
	assert.Equal(t, "501", flights[0].FlightNumber)
	assert.Equal(t, "SYD", flights[0].DepartureAirportIATA)
	assert.Equal(t, "MEL", flights[0].ArrivalAirportIATA)
	assert.Equal(t, "SQ", flights[1].AirlineIATA)
}

func TestParse_FlightyUnknownAirline(t *testing.T) {
	input := "Date,Airline,Flight,From,To\n" +
		"2024-12-01,XYZ,1,SYD,MEL\n"

	_, err := testImporter().Parse(strings.NewReader(input))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []RowError{{Row: 1, Message: "Invalid airline_iata (2-letter IATA code expected)"}}, verr.Rows)
}

func TestParse_CollectsEveryRowError(t *testing.T) {
	input := "departure_date,departure_time,departure_airport_iata,arrival_airport_iata,airline_iata,flight_number\n" +
		"2025-08-14,23:55,SIN,BLQ,SQ,SQ32\n" +
		"14/08/2025,9:30,SINX,BL,SQA,SQ-32\n" +
		",,,BLQ,SQ,\n"

	_, err := testImporter().Parse(strings.NewReader(input))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []RowError{
		{Row: 2, Message: "Invalid departure_date format (YYYY-MM-DD expected)"},
		{Row: 2, Message: "Invalid departure_time format (HH:mm expected)"},
		{Row: 2, Message: "Invalid departure_airport_iata (3-letter IATA code expected)"},
		{Row: 2, Message: "Invalid arrival_airport_iata (3-letter IATA code expected)"},
		{Row: 2, Message: "Invalid airline_iata (2-letter IATA code expected)"},
		{Row: 2, Message: "Invalid flight_number (alphanumeric expected)"},
		{Row: 3, Message: "Missing fields - departure_date, departure_airport_iata"},
	}, verr.Rows)
	assert.Contains(t, err.Error(), "Row 3: Missing fields - departure_date, departure_airport_iata")
}

func TestParse_ImpossibleDate(t *testing.T) {
	input := "departure_date,departure_airport_iata,arrival_airport_iata,airline_iata\n" +
		"2025-02-30,SIN,BLQ,SQ\n"

	_, err := testImporter().Parse(strings.NewReader(input))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Rows, 1)
	assert.Contains(t, verr.Rows[0].Message, "invalid date")
}

func TestParse_EmptyAndUnknown(t *testing.T) {
	_, err := testImporter().Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = testImporter().Parse(strings.NewReader("departure_date,departure_airport_iata\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = testImporter().Parse(strings.NewReader("when,where\n2025-01-01,SIN\n"))
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestParse_MalformedQuotes(t *testing.T) {
	_, err := testImporter().Parse(strings.NewReader("departure_date\n\"2025-01-01\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CSV")
}

func TestValidateFlight(t *testing.T) {
	ok := domain.RawFlight{
		DepartureDate:        domain.MustParseDate("2025-08-14"),
		DepartureAirportIATA: "SIN",
		ArrivalAirportIATA:   "BLQ",
		AirlineIATA:          "SQ",
	}
	assert.NoError(t, ValidateFlight(ok))

	bad := ok
	bad.DepartureDate = domain.Date{}
	bad.AirlineIATA = "SQA"
	err := ValidateFlight(bad)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Rows, 2)
}

func TestValidateFlight_SameAirport(t *testing.T) {
	f := domain.RawFlight{
		DepartureDate:        domain.MustParseDate("2025-08-14"),
		DepartureAirportIATA: "SIN",
		ArrivalAirportIATA:   "sin",
		AirlineIATA:          "SQ",
	}
	err := ValidateFlight(f)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Rows, 1)
	assert.Equal(t, "Arrival and departure airports must be different", verr.Rows[0].Message)
}
