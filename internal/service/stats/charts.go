package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/Domenick1991/flightlog/internal/domain"
)

// DeparturesByCountry counts departures per ISO country, most frequent first.
// Equal counts are ordered by country code. Unknown countries are skipped.
func DeparturesByCountry(flights []domain.EnrichedFlight) []domain.CountryDepartures {
	counts := make(map[string]int)
	for _, f := range flights {
		if f.DepartureCountry == nil {
			continue
		}
		counts[*f.DepartureCountry]++
	}

	out := make([]domain.CountryDepartures, 0, len(counts))
	for country, n := range counts {
		out = append(out, domain.CountryDepartures{Country: country, Departures: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Departures != out[j].Departures {
			return out[i].Departures > out[j].Departures
		}
		return out[i].Country < out[j].Country
	})
	return out
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// FlightsByTimeGrouping buckets flights by weekday, month or year of departure.
// Weekdays run Monday to Sunday, months January to December, years ascending.
// Empty buckets are left out.
func FlightsByTimeGrouping(flights []domain.EnrichedFlight, grouping domain.Grouping) []domain.PeriodCount {
	switch grouping {
	case domain.GroupingDayOfWeek:
		var counts [7]int
		for _, f := range flights {
			counts[f.DepartureDate.Weekday()]++
		}
		out := make([]domain.PeriodCount, 0, 7)
		for _, wd := range weekdayOrder {
			if counts[wd] > 0 {
				out = append(out, domain.PeriodCount{Period: wd.String(), Flights: counts[wd]})
			}
		}
		return out

	case domain.GroupingMonth:
		var counts [13]int
		for _, f := range flights {
			counts[f.DepartureDate.Month()]++
		}
		out := make([]domain.PeriodCount, 0, 12)
		for m := time.January; m <= time.December; m++ {
			if counts[m] > 0 {
				out = append(out, domain.PeriodCount{Period: m.String(), Flights: counts[m]})
			}
		}
		return out

	case domain.GroupingYear:
		counts := make(map[int]int)
		for _, f := range flights {
			counts[f.DepartureDate.Year()]++
		}
		years := make([]int, 0, len(counts))
		for y := range counts {
			years = append(years, y)
		}
		sort.Ints(years)
		out := make([]domain.PeriodCount, 0, len(years))
		for _, y := range years {
			out = append(out, domain.PeriodCount{Period: strconv.Itoa(y), Flights: counts[y]})
		}
		return out
	}
	return []domain.PeriodCount{}
}
