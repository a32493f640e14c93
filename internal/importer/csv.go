// Package importer turns uploaded CSV files into raw flights.
//
// Two layouts are accepted: the canonical one, with the same column names as
// the flight record, and the Flighty app export (Date, Airline, Flight, From,
// To), whose airline column carries ICAO codes.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Domenick1991/flightlog/internal/domain"
)

var (
	ErrEmptyFile     = errors.New("csv file has no data rows")
	ErrUnknownLayout = errors.New("csv header matches neither the flight columns nor a Flighty export")
)

var (
	datePattern         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern         = regexp.MustCompile(`^\d{2}:\d{2}$`)
	flightNumberPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// AirlineResolver maps legacy ICAO airline codes to the canonical IATA code.
type AirlineResolver interface {
	AirlineByICAO(icao string) (domain.Airline, bool)
}

type RowError struct {
	Row     int // 1-based data row, header excluded
	Message string
}

func (e RowError) String() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// ValidationError collects every problem found in a file so the user can fix
// them in one go.
type ValidationError struct {
	Rows []RowError
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}

type layout int

const (
	layoutCanonical layout = iota
	layoutFlighty
)

var canonicalColumns = []string{
	"departure_date", "departure_time", "departure_airport_iata",
	"arrival_airport_iata", "airline_iata", "flight_number",
}

var requiredColumns = []string{
	"departure_date", "departure_airport_iata", "arrival_airport_iata", "airline_iata",
}

type Importer struct {
	airlines AirlineResolver
}

func New(airlines AirlineResolver) *Importer {
	return &Importer{airlines: airlines}
}

// Parse reads and validates a whole file. Nothing is returned unless every row
// is valid; a *ValidationError lists the rows that are not.
func (im *Importer) Parse(r io.Reader) ([]domain.RawFlight, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	records = dropBlank(records)
	if len(records) < 2 {
		return nil, ErrEmptyFile
	}

	header := indexHeader(records[0])
	lay, err := detectLayout(header)
	if err != nil {
		return nil, err
	}

	flights := make([]domain.RawFlight, 0, len(records)-1)
	verr := &ValidationError{}
	for i, rec := range records[1:] {
		row := im.toRow(lay, header, rec)
		problems := validate(row)
		if len(problems) > 0 {
			for _, p := range problems {
				verr.Rows = append(verr.Rows, RowError{Row: i + 1, Message: p})
			}
			continue
		}
		date, err := domain.ParseDate(row["departure_date"])
		if err != nil {
			verr.Rows = append(verr.Rows, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		flights = append(flights, domain.RawFlight{
			DepartureDate:        date,
			DepartureTime:        row["departure_time"],
			DepartureAirportIATA: strings.ToUpper(row["departure_airport_iata"]),
			ArrivalAirportIATA:   strings.ToUpper(row["arrival_airport_iata"]),
			AirlineIATA:          strings.ToUpper(row["airline_iata"]),
			FlightNumber:         row["flight_number"],
		})
	}
	if len(verr.Rows) > 0 {
		return nil, verr
	}
	return flights, nil
}

func dropBlank(records [][]string) [][]string {
	out := records[:0]
	for _, rec := range records {
		blank := true
		for _, field := range rec {
			if strings.TrimSpace(field) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	return idx
}

func detectLayout(header map[string]int) (layout, error) {
	if _, ok := header["departure_airport_iata"]; ok {
		return layoutCanonical, nil
	}
	_, from := header["From"]
	_, to := header["To"]
	_, date := header["Date"]
	if from && to && date {
		return layoutFlighty, nil
	}
	return 0, ErrUnknownLayout
}

func field(header map[string]int, rec []string, name string) string {
	i, ok := header[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// toRow maps either layout onto canonical column names.
func (im *Importer) toRow(lay layout, header map[string]int, rec []string) map[string]string {
	row := make(map[string]string, len(canonicalColumns))
	if lay == layoutCanonical {
		for _, col := range canonicalColumns {
			row[col] = field(header, rec, col)
		}
		return row
	}

	row["departure_date"] = field(header, rec, "Date")
	row["departure_airport_iata"] = field(header, rec, "From")
	row["arrival_airport_iata"] = field(header, rec, "To")
	row["flight_number"] = field(header, rec, "Flight")

	icao := field(header, rec, "Airline")
	if im.airlines != nil {
		if airline, ok := im.airlines.AirlineByICAO(icao); ok {
			row["airline_iata"] = airline.IATA
			return row
		}
	}
	row["airline_iata"] = icao
	return row
}

// validate applies the per-field rules shared by uploads and manual entry.
func validate(row map[string]string) []string {
	var problems []string

	var missing []string
	for _, col := range requiredColumns {
		if row[col] == "" {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		problems = append(problems, "Missing fields - "+strings.Join(missing, ", "))
	}

	if d := row["departure_date"]; d != "" && !datePattern.MatchString(d) {
		problems = append(problems, "Invalid departure_date format (YYYY-MM-DD expected)")
	}
	if t := row["departure_time"]; t != "" && !timePattern.MatchString(t) {
		problems = append(problems, "Invalid departure_time format (HH:mm expected)")
	}
	if c := row["departure_airport_iata"]; c != "" && len(c) != 3 {
		problems = append(problems, "Invalid departure_airport_iata (3-letter IATA code expected)")
	}
	if c := row["arrival_airport_iata"]; c != "" && len(c) != 3 {
		problems = append(problems, "Invalid arrival_airport_iata (3-letter IATA code expected)")
	}
	if c := row["airline_iata"]; c != "" && len(c) != 2 {
		problems = append(problems, "Invalid airline_iata (2-letter IATA code expected)")
	}
	if n := row["flight_number"]; n != "" && !flightNumberPattern.MatchString(n) {
		problems = append(problems, "Invalid flight_number (alphanumeric expected)")
	}
	return problems
}

// ValidateFlight checks a manually entered flight with the CSV rules, and
// also rejects a flight that lands where it departed.
func ValidateFlight(f domain.RawFlight) error {
	row := map[string]string{
		"departure_time":         f.DepartureTime,
		"departure_airport_iata": f.DepartureAirportIATA,
		"arrival_airport_iata":   f.ArrivalAirportIATA,
		"airline_iata":           f.AirlineIATA,
		"flight_number":          f.FlightNumber,
	}
	if !f.DepartureDate.IsZero() {
		row["departure_date"] = f.DepartureDate.String()
	}
	problems := validate(row)
	dep := strings.TrimSpace(f.DepartureAirportIATA)
	if dep != "" && strings.EqualFold(dep, strings.TrimSpace(f.ArrivalAirportIATA)) {
		problems = append(problems, "Arrival and departure airports must be different")
	}
	if len(problems) == 0 {
		return nil
	}
	verr := &ValidationError{}
	for _, p := range problems {
		verr.Rows = append(verr.Rows, RowError{Row: 1, Message: p})
	}
	return verr
}
