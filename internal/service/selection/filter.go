// Package selection narrows a flight list to the time window a user picked.
package selection

import (
	"sort"

	"github.com/Domenick1991/flightlog/internal/domain"
)

// FilterFlights keeps the flights matching sel relative to today, preserving
// input order. "all" keeps flights on or before today, "upcoming" keeps the
// ones after it, and a year keeps every flight departing in that year.
// An unrecognised selector matches nothing.
func FilterFlights(flights []domain.EnrichedFlight, sel domain.Selector, today domain.Date) []domain.EnrichedFlight {
	match := matcher(sel, today)
	out := make([]domain.EnrichedFlight, 0, len(flights))
	for _, f := range flights {
		if match(f.DepartureDate) {
			out = append(out, f)
		}
	}
	return out
}

// Matches reports whether a single departure date falls inside sel.
func Matches(d domain.Date, sel domain.Selector, today domain.Date) bool {
	return matcher(sel, today)(d)
}

func matcher(sel domain.Selector, today domain.Date) func(domain.Date) bool {
	switch sel {
	case domain.SelectorAll:
		return func(d domain.Date) bool { return !d.After(today) }
	case domain.SelectorUpcoming:
		return func(d domain.Date) bool { return d.After(today) }
	}
	if year, ok := sel.Year(); ok {
		return func(d domain.Date) bool { return d.Year() == year }
	}
	return func(domain.Date) bool { return false }
}

// Years lists the distinct departure years present, most recent first, for
// populating a year picker.
func Years(flights []domain.EnrichedFlight) []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, f := range flights {
		y := f.DepartureDate.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
