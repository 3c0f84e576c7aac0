package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean radius of Earth used for Haversine distance.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Haversine returns the great-circle distance in kilometers between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Distance returns the great-circle distance in kilometers between two points.
func Distance(a, b Point) float64 {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// BoundingBox is a rectangular latitude/longitude region with closed bounds.
type BoundingBox struct {
	minLat float64
	minLon float64
	maxLat float64
	maxLon float64
}

// NewBoundingBox validates the four corners and creates a BoundingBox.
// Boxes crossing the antimeridian (minLon > maxLon) are rejected.
func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) (BoundingBox, error) {
	if !ValidateCoordinates(minLat, minLon) || !ValidateCoordinates(maxLat, maxLon) {
		return BoundingBox{}, fmt.Errorf("corner coordinates out of range")
	}
	if minLat >= maxLat {
		return BoundingBox{}, fmt.Errorf("min latitude %v must be below max latitude %v", minLat, maxLat)
	}
	if minLon >= maxLon {
		return BoundingBox{}, fmt.Errorf("min longitude %v must be below max longitude %v", minLon, maxLon)
	}
	return BoundingBox{minLat: minLat, minLon: minLon, maxLat: maxLat, maxLon: maxLon}, nil
}

// Contains reports whether the point lies inside the box. Boundary points are included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.minLat && p.Lat <= b.maxLat &&
		p.Lon >= b.minLon && p.Lon <= b.maxLon
}

// MinLat returns the southern bound.
func (b BoundingBox) MinLat() float64 { return b.minLat }

// MinLon returns the western bound.
func (b BoundingBox) MinLon() float64 { return b.minLon }

// MaxLat returns the northern bound.
func (b BoundingBox) MaxLat() float64 { return b.maxLat }

// MaxLon returns the eastern bound.
func (b BoundingBox) MaxLon() float64 { return b.maxLon }
