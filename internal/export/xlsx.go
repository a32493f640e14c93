package export

import (
	"fmt"
	"io"
	"math"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	FlightsSheet = "Flights"
	StatsSheet   = "Stats"
)

var flightHeader = []interface{}{
	"Date", "Time", "From", "To", "Airline", "Flight",
	"Departure Country", "Arrival Country", "International", "Distance (km)", "Flight Time (h)",
}

// WriteXLSX writes a workbook with one row per flight on the Flights sheet and
// the aggregate figures on the Stats sheet.
func WriteXLSX(w io.Writer, flights []domain.EnrichedFlight, stats domain.FlightStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", FlightsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeFlights(f, flights, bold); err != nil {
		return err
	}
	if err := writeStats(f, stats, bold); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeFlights(f *excelize.File, flights []domain.EnrichedFlight, bold int) error {
	header := flightHeader
	if err := f.SetSheetRow(FlightsSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(FlightsSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, fl := range flights {
		airline := fl.AirlineIATA
		if fl.AirlineName != nil {
			airline = *fl.AirlineName
		}
		row := []interface{}{
			fl.DepartureDate.String(),
			fl.DepartureTime,
			fl.DepartureAirportIATA,
			fl.ArrivalAirportIATA,
			airline,
			fl.FlightNumber,
			deref(fl.DepartureCountry),
			deref(fl.ArrivalCountry),
			fl.International,
			roundPtr(fl.DistanceKm, 1),
			roundPtr(fl.FlightTime, 2),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(FlightsSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(FlightsSheet, "A", "K", 16)
}

func writeStats(f *excelize.File, s domain.FlightStats, bold int) error {
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total flights", s.TotalFlights},
		{"Total distance (km)", round(s.TotalDistance, 1)},
		{"Total flight time (h)", round(s.TotalFlightTime, 2)},
		{"Average distance (km)", round(s.AverageDistance, 1)},
		{"Airports", s.Airports},
		{"Airlines", s.Airlines},
		{"Countries", s.Countries},
		{"Domestic flights", s.DomesticFlights},
		{"International flights", s.InternationalFlights},
		{"Long-haul flights", s.LongHaulFlights},
		{"West-bound flights", s.WestBoundFlights},
		{"Shortest flight", route(s.ShortestFlight)},
		{"Longest flight", route(s.LongestFlight)},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(StatsSheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(StatsSheet, 1, 1, bold); err != nil {
		return err
	}
	return f.SetColWidth(StatsSheet, "A", "B", 24)
}

func route(f *domain.EnrichedFlight) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s %s", f.DepartureAirportIATA, f.ArrivalAirportIATA, f.DepartureDate)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func roundPtr(v *float64, places int) interface{} {
	if v == nil {
		return ""
	}
	return round(*v, places)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
