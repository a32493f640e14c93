package domain

type Airport struct {
	IATA       string  `json:"iata"`
	Name       string  `json:"airport_name"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	ISOCountry string  `json:"iso_country"`
	ISORegion  string  `json:"iso_region"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	ElevationM float64 `json:"elevation"`
}

type Branding struct {
	PrimaryColor string   `json:"primary_color"`
	Guidelines   string   `json:"guidelines,omitempty"`
	Variations   []string `json:"variations"`
}

// HasVariation reports whether the airline ships a logo in the given variation
// ("logo", "logo_mono", ...).
func (b Branding) HasVariation(name string) bool {
	for _, v := range b.Variations {
		if v == name {
			return true
		}
	}
	return false
}

type Airline struct {
	IATA     string   `json:"iata"`
	ICAO     string   `json:"icao"`
	Name     string   `json:"name"`
	Country  string   `json:"country"`
	Alliance string   `json:"alliance,omitempty"`
	Branding Branding `json:"branding"`
}
