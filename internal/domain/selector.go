package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidSelector = errors.New("invalid selector, expected all, upcoming or a four-digit year")
	ErrInvalidGrouping = errors.New("invalid grouping, expected dayOfWeek, month or year")
)

// Selector picks a time window of flights: "all" past flights, "upcoming"
// flights, or every flight of a given year.
type Selector string

const (
	SelectorAll      Selector = "all"
	SelectorUpcoming Selector = "upcoming"
)

func YearSelector(year int) Selector {
	return Selector(fmt.Sprintf("%04d", year))
}

// Year returns the calendar year of a year selector.
func (s Selector) Year() (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(string(s))
	if err != nil {
		return 0, false
	}
	return y, true
}

func (s Selector) Valid() bool {
	if s == SelectorAll || s == SelectorUpcoming {
		return true
	}
	_, ok := s.Year()
	return ok
}

func ParseSelector(s string) (Selector, error) {
	sel := Selector(s)
	if !sel.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}
	return sel, nil
}

type Grouping string

const (
	GroupingDayOfWeek Grouping = "dayOfWeek"
	GroupingMonth     Grouping = "month"
	GroupingYear      Grouping = "year"
)

func ParseGrouping(s string) (Grouping, error) {
	switch g := Grouping(s); g {
	case GroupingDayOfWeek, GroupingMonth, GroupingYear:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGrouping, s)
	}
}
