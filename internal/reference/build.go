package reference

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightlog/internal/domain"
)

const feetPerMetre = 3.28084

var ErrMissingColumn = errors.New("reference csv is missing a column")

// Tianfu opened after the public coordinate dumps the dataset is built from.
var customAirports = []domain.Airport{
	{IATA: "TFU", Lat: 30.31, Lon: 104.44, ISOCountry: "CN"},
}

// BuildAirports joins an IATA code list (IATA, ICAO, Airport name, Country,
// City) with the OurAirports coordinate dump on ICAO = ident. Closed airports
// and heliports are dropped, elevation is converted from feet to metres and
// the custom rows are appended. When iataList is nil the codes come from the
// dump's own iata_code column.
func BuildAirports(coordinates, iataList io.Reader) ([]domain.Airport, error) {
	sites, err := readCoordinates(coordinates)
	if err != nil {
		return nil, err
	}

	var airports []domain.Airport
	if iataList == nil {
		airports = fromDump(sites)
	} else {
		airports, err = joinIATAList(iataList, sites)
		if err != nil {
			return nil, err
		}
	}
	return append(airports, customAirports...), nil
}

type site struct {
	kind      string
	name      string
	city      string
	iata      string
	lat, lon  float64
	elevation float64
	country   string
	region    string
}

func (s site) usable() bool {
	return s.kind != "closed" && s.kind != "heliport"
}

// siteIndex keeps the dump order so fromDump is deterministic.
type siteIndex struct {
	byIdent map[string]site
	order   []string
}

func readCoordinates(r io.Reader) (*siteIndex, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read coordinates: %w", err)
	}
	col, err := columns(header, "ident", "type", "latitude_deg", "longitude_deg")
	if err != nil {
		return nil, err
	}

	out := &siteIndex{byIdent: make(map[string]site, len(rows))}
	for i, rec := range rows {
		lat, err := strconv.ParseFloat(cell(rec, col["latitude_deg"]), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinates row %d: latitude: %w", i+1, err)
		}
		lon, err := strconv.ParseFloat(cell(rec, col["longitude_deg"]), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinates row %d: longitude: %w", i+1, err)
		}
		s := site{
			kind:    cell(rec, col["type"]),
			name:    cell(rec, index(header, "name")),
			city:    cell(rec, index(header, "municipality")),
			iata:    cell(rec, index(header, "iata_code")),
			lat:     lat,
			lon:     lon,
			country: cell(rec, index(header, "iso_country")),
			region:  cell(rec, index(header, "iso_region")),
		}
		if ft := cell(rec, index(header, "elevation_ft")); ft != "" {
			feet, err := strconv.ParseFloat(ft, 64)
			if err != nil {
				return nil, fmt.Errorf("coordinates row %d: elevation: %w", i+1, err)
			}
			s.elevation = feet / feetPerMetre
		}

		ident := cell(rec, col["ident"])
		if _, dup := out.byIdent[ident]; dup {
			continue
		}
		out.byIdent[ident] = s
		out.order = append(out.order, ident)
	}
	return out, nil
}

func joinIATAList(r io.Reader, sites *siteIndex) ([]domain.Airport, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read iata list: %w", err)
	}
	col, err := columns(header, "IATA", "ICAO")
	if err != nil {
		return nil, err
	}

	airports := make([]domain.Airport, 0, len(rows))
	for _, rec := range rows {
		code := cell(rec, col["IATA"])
		s, ok := sites.byIdent[cell(rec, col["ICAO"])]
		if code == "" || !ok || !s.usable() {
			continue
		}
		airports = append(airports, domain.Airport{
			IATA:       code,
			Name:       cell(rec, index(header, "Airport name")),
			City:       cell(rec, index(header, "City")),
			Country:    cell(rec, index(header, "Country")),
			ISOCountry: s.country,
			ISORegion:  s.region,
			Lat:        s.lat,
			Lon:        s.lon,
			ElevationM: s.elevation,
		})
	}
	return airports, nil
}

func fromDump(sites *siteIndex) []domain.Airport {
	var airports []domain.Airport
	for _, ident := range sites.order {
		s := sites.byIdent[ident]
		if s.iata == "" || !s.usable() {
			continue
		}
		airports = append(airports, domain.Airport{
			IATA:       s.iata,
			Name:       s.name,
			City:       s.city,
			ISOCountry: s.country,
			ISORegion:  s.region,
			Lat:        s.lat,
			Lon:        s.lon,
			ElevationM: s.elevation,
		})
	}
	return airports
}

// EncodeAirports writes airports in the airports_info.json layout.
func EncodeAirports(w io.Writer, airports []domain.Airport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if airports == nil {
		airports = []domain.Airport{}
	}
	return enc.Encode(airports)
}

func readTable(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	return header, records[1:], nil
}

func columns(header []string, names ...string) (map[string]int, error) {
	col := make(map[string]int, len(names))
	for _, name := range names {
		i := index(header, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		col[name] = i
	}
	return col, nil
}

func index(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
