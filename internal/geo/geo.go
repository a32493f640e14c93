package geo

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	// EarthRadiusKm is the mean Earth radius used for every distance in the service.
	EarthRadiusKm = 6371.0

	DefaultAvgSpeedKmh = 900.0
	DefaultPathPoints  = 300
)

// Coordinate is a point in decimal degrees. It is encoded as a [lat, lon] pair.
type Coordinate struct {
	Lat float64
	Lon float64
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lon})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate: expected [lat, lon], got %d values", len(pair))
	}
	c.Lat, c.Lon = pair[0], pair[1]
	return nil
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// HaversineDistanceKm returns the great-circle distance between two points,
// or nil when either point is unknown.
func HaversineDistanceKm(from, to *Coordinate) *float64 {
	if from == nil || to == nil {
		return nil
	}
	d := EarthRadiusKm * centralAngle(*from, *to)
	return &d
}

// centralAngle is the haversine angular distance in radians.
func centralAngle(from, to Coordinate) float64 {
	phi1 := toRad(from.Lat)
	phi2 := toRad(to.Lat)
	dphi := toRad(to.Lat - from.Lat)
	dlambda := toRad(to.Lon - from.Lon)

	a := math.Sin(dphi/2)*math.Sin(dphi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(dlambda/2)*math.Sin(dlambda/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// EstimateFlightTimeHours converts a distance into block hours at avgSpeedKmh.
// A non-positive speed falls back to DefaultAvgSpeedKmh.
func EstimateFlightTimeHours(distanceKm *float64, avgSpeedKmh float64) *float64 {
	if distanceKm == nil {
		return nil
	}
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}
	h := *distanceKm / avgSpeedKmh
	return &h
}

// GreatCirclePath returns numPoints+1 points from `from` to `to`, both included,
// spaced evenly by the spherical interpolation fraction.
func GreatCirclePath(from, to Coordinate, numPoints int) []Coordinate {
	if numPoints <= 0 {
		numPoints = DefaultPathPoints
	}
	path := make([]Coordinate, 0, numPoints+1)
	for i := 0; i <= numPoints; i++ {
		path = append(path, IntermediatePoint(from, to, float64(i)/float64(numPoints)))
	}
	return path
}

// IntermediatePoint returns the point at the given fraction of the way along
// the great circle from `from` to `to`.
func IntermediatePoint(from, to Coordinate, fraction float64) Coordinate {
	delta := centralAngle(from, to)
	if delta == 0 {
		return from
	}
	if fraction == 0 {
		return from
	}
	if fraction == 1 {
		return to
	}

	phi1, lambda1 := toRad(from.Lat), toRad(from.Lon)
	phi2, lambda2 := toRad(to.Lat), toRad(to.Lon)

	sinDelta := math.Sin(delta)
	a := math.Sin((1-fraction)*delta) / sinDelta
	b := math.Sin(fraction*delta) / sinDelta

	x := a*math.Cos(phi1)*math.Cos(lambda1) + b*math.Cos(phi2)*math.Cos(lambda2)
	y := a*math.Cos(phi1)*math.Sin(lambda1) + b*math.Cos(phi2)*math.Sin(lambda2)
	z := a*math.Sin(phi1) + b*math.Sin(phi2)

	phi := math.Atan2(z, math.Sqrt(x*x+y*y))
	lambda := math.Atan2(y, x)
	return Coordinate{Lat: toDeg(phi), Lon: toDeg(lambda)}
}

// SplitAtAntimeridian cuts a path wherever two consecutive points are more than
// 180 degrees of longitude apart, so every segment can be drawn as one line.
func SplitAtAntimeridian(path []Coordinate) [][]Coordinate {
	if len(path) == 0 {
		return nil
	}
	var segments [][]Coordinate
	current := []Coordinate{path[0]}
	for i := 1; i < len(path); i++ {
		if math.Abs(path[i].Lon-path[i-1].Lon) > 180 {
			segments = append(segments, current)
			current = nil
		}
		current = append(current, path[i])
	}
	return append(segments, current)
}
