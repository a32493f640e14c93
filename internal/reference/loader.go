package reference

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Domenick1991/flightlog/internal/domain"
)

// The published datasets were exported with missing values written as the
// string "null", and numeric columns occasionally as strings.

type airportRecord struct {
	IATA       nullString  `json:"iata"`
	Name       nullString  `json:"airport_name"`
	City       nullString  `json:"city"`
	Country    nullString  `json:"country"`
	ISOCountry nullString  `json:"iso_country"`
	ISORegion  nullString  `json:"iso_region"`
	Lat        *looseFloat `json:"lat"`
	Lon        *looseFloat `json:"lon"`
	Elevation  *looseFloat `json:"elevation"`
}

type airlineRecord struct {
	IATA     nullString `json:"iata"`
	ICAO     nullString `json:"icao"`
	Name     nullString `json:"name"`
	Country  nullString `json:"country"`
	Alliance nullString `json:"alliance"`
	Branding *struct {
		PrimaryColor nullString `json:"primary_color"`
		Guidelines   nullString `json:"guidelines"`
		Variations   []string   `json:"variations"`
	} `json:"branding"`
}

type nullString string

func (n *nullString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch s := v.(type) {
	case string:
		if s == "null" {
			*n = ""
			return nil
		}
		*n = nullString(s)
	case nil:
		*n = ""
	default:
		*n = nullString(fmt.Sprint(s))
	}
	return nil
}

type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*f = looseFloat(x)
	case string:
		if x == "" || x == "null" {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return fmt.Errorf("parse number %q: %w", x, err)
		}
		*f = looseFloat(parsed)
	case nil:
		*f = 0
	default:
		return fmt.Errorf("unexpected number type %T", v)
	}
	return nil
}

// DecodeAirports reads an airports_info.json array. Records without an IATA
// code or without coordinates are skipped.
func DecodeAirports(r io.Reader) ([]domain.Airport, error) {
	var records []airportRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode airports: %w", err)
	}
	airports := make([]domain.Airport, 0, len(records))
	for _, rec := range records {
		if rec.IATA == "" || rec.Lat == nil || rec.Lon == nil {
			continue
		}
		a := domain.Airport{
			IATA:       string(rec.IATA),
			Name:       string(rec.Name),
			City:       string(rec.City),
			Country:    string(rec.Country),
			ISOCountry: string(rec.ISOCountry),
			ISORegion:  string(rec.ISORegion),
			Lat:        float64(*rec.Lat),
			Lon:        float64(*rec.Lon),
		}
		if rec.Elevation != nil {
			a.ElevationM = float64(*rec.Elevation)
		}
		airports = append(airports, a)
	}
	return airports, nil
}

// DecodeAirlines reads an airlines.json array.
func DecodeAirlines(r io.Reader) ([]domain.Airline, error) {
	var records []airlineRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode airlines: %w", err)
	}
	airlines := make([]domain.Airline, 0, len(records))
	for _, rec := range records {
		if rec.IATA == "" && rec.ICAO == "" {
			continue
		}
		a := domain.Airline{
			IATA:     string(rec.IATA),
			ICAO:     string(rec.ICAO),
			Name:     string(rec.Name),
			Country:  string(rec.Country),
			Alliance: string(rec.Alliance),
		}
		if rec.Branding != nil {
			a.Branding = domain.Branding{
				PrimaryColor: string(rec.Branding.PrimaryColor),
				Guidelines:   string(rec.Branding.Guidelines),
				Variations:   rec.Branding.Variations,
			}
		}
		airlines = append(airlines, a)
	}
	return airlines, nil
}

// Load builds a Store from the two dataset files.
func Load(airportsPath, airlinesPath string) (*Store, error) {
	airports, err := decodeFile(airportsPath, DecodeAirports)
	if err != nil {
		return nil, err
	}
	airlines, err := decodeFile(airlinesPath, DecodeAirlines)
	if err != nil {
		return nil, err
	}
	return NewStore(airports, airlines), nil
}

func decodeFile[T any](path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference data: %w", err)
	}
	defer f.Close()
	return decode(f)
}
