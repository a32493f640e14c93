package selection

import (
	"testing"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flight(id, date string) domain.EnrichedFlight {
	return domain.EnrichedFlight{RawFlight: domain.RawFlight{
		ID:                   id,
		DepartureDate:        domain.MustParseDate(date),
		DepartureAirportIATA: "SIN",
		ArrivalAirportIATA:   "BLQ",
	}}
}

func ids(flights []domain.EnrichedFlight) []string {
	out := make([]string, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.ID)
	}
	return out
}

var today = domain.MustParseDate("2025-08-15")

var sample = []domain.EnrichedFlight{
	flight("future-next-year", "2026-01-02"),
	flight("tomorrow", "2025-08-16"),
	flight("today", "2025-08-15"),
	flight("yesterday", "2025-08-14"),
	flight("last-year", "2024-12-31"),
	flight("long-ago", "2019-03-01"),
}

func TestFilterFlights_All(t *testing.T) {
	got := FilterFlights(sample, domain.SelectorAll, today)
	assert.Equal(t, []string{"today", "yesterday", "last-year", "long-ago"}, ids(got))
}

func TestFilterFlights_Upcoming(t *testing.T) {
	got := FilterFlights(sample, domain.SelectorUpcoming, today)
	assert.Equal(t, []string{"future-next-year", "tomorrow"}, ids(got))
}

func TestFilterFlights_YearIncludesFutureFlights(t *testing.T) {
	got := FilterFlights(sample, domain.YearSelector(2025), today)
	assert.Equal(t, []string{"tomorrow", "today", "yesterday"}, ids(got))

	got = FilterFlights(sample, "2026", today)
	assert.Equal(t, []string{"future-next-year"}, ids(got))

	got = FilterFlights(sample, "2020", today)
	assert.Empty(t, got)
}

func TestFilterFlights_SingleFlightScenario(t *testing.T) {
	flights := []domain.EnrichedFlight{flight("sq32", "2025-08-14")}
	got := FilterFlights(flights, domain.SelectorAll, today)
	require.Len(t, got, 1)
	assert.Equal(t, "sq32", got[0].ID)
}

func TestFilterFlights_AllAndUpcomingPartition(t *testing.T) {
	for _, ref := range []string{"2019-03-01", "2024-12-31", "2025-08-15", "2030-01-01"} {
		day := domain.MustParseDate(ref)
		past := FilterFlights(sample, domain.SelectorAll, day)
		upcoming := FilterFlights(sample, domain.SelectorUpcoming, day)

		assert.Len(t, append(ids(past), ids(upcoming)...), len(sample))
		assert.ElementsMatch(t, ids(sample), append(ids(past), ids(upcoming)...))
	}
}

func TestFilterFlights_EmptyInput(t *testing.T) {
	got := FilterFlights(nil, domain.SelectorAll, today)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterFlights_UnknownSelector(t *testing.T) {
	assert.Empty(t, FilterFlights(sample, "past", today))
	assert.Empty(t, FilterFlights(sample, "25", today))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(today, domain.SelectorAll, today))
	assert.False(t, Matches(today, domain.SelectorUpcoming, today))
	assert.True(t, Matches(today, "2025", today))
}

func TestYears(t *testing.T) {
	assert.Equal(t, []int{2026, 2025, 2024, 2019}, Years(sample))
	assert.Empty(t, Years(nil))
}
