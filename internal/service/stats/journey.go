package stats

import (
	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/geo"
)

const (
	EarthCircumferenceKm = 40075.0
	DistanceToMoonKm     = 384400.0
	DistanceToMarsKm     = 227940000.0
)

// Journey puts a total distance in perspective: laps around the Earth and the
// fraction of the way to the Moon and to Mars.
func Journey(totalDistance float64) domain.JourneyProgress {
	return domain.JourneyProgress{
		TotalDistance: totalDistance,
		EarthLaps:     totalDistance / EarthCircumferenceKm,
		MoonProgress:  totalDistance / DistanceToMoonKm,
		MarsProgress:  totalDistance / DistanceToMarsKm,
	}
}

// FlightPaths draws the great-circle route of every flight with both airports
// known, already split at the antimeridian.
func FlightPaths(flights []domain.EnrichedFlight, numPoints int) [][]geo.Coordinate {
	paths := make([][]geo.Coordinate, 0, len(flights))
	for _, f := range flights {
		if f.DepartureCoordinates == nil || f.ArrivalCoordinates == nil {
			continue
		}
		path := geo.GreatCirclePath(*f.DepartureCoordinates, *f.ArrivalCoordinates, numPoints)
		paths = append(paths, geo.SplitAtAntimeridian(path)...)
	}
	return paths
}
