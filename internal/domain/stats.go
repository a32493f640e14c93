package domain

type FlightStats struct {
	TotalFlights         int             `json:"totalFlights"`
	TotalDistance        float64         `json:"totalDistance"`
	TotalFlightTime      float64         `json:"totalFlightTime"`
	AverageDistance      float64         `json:"averageDistance"`
	Airports             int             `json:"airports"`
	Airlines             int             `json:"airlines"`
	Countries            int             `json:"countries"`
	DomesticFlights      int             `json:"domesticFlights"`
	InternationalFlights int             `json:"internationalFlights"`
	LongHaulFlights      int             `json:"longHaulFlights"`
	WestBoundFlights     int             `json:"westBoundFlights"`
	ShortestFlight       *EnrichedFlight `json:"shortestFlight"`
	LongestFlight        *EnrichedFlight `json:"longestFlight"`
}

type CountryDepartures struct {
	Country    string `json:"country"`
	Departures int    `json:"departures"`
}

type PeriodCount struct {
	Period  string `json:"period"`
	Flights int    `json:"flights"`
}

// JourneyProgress expresses a total distance against well known distances.
type JourneyProgress struct {
	TotalDistance float64 `json:"totalDistance"`
	EarthLaps     float64 `json:"earthLaps"`
	MoonProgress  float64 `json:"moonProgress"`
	MarsProgress  float64 `json:"marsProgress"`
}
