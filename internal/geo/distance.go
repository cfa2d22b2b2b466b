package geo

import "math"

// EarthRadiusKm is the mean radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm returns the great-circle distance between two points in
// kilometers, using the spherical law of cosines:
//
//	d = R * acos(cos(lat1)*cos(lat2)*cos(lon2-lon1) + sin(lat1)*sin(lat2))
func DistanceKm(a, b Point) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	cosine := math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon) + math.Sin(lat1)*math.Sin(lat2)

	// Floating point can push the cosine a hair outside [-1, 1].
	if cosine > 1 {
		cosine = 1
	} else if cosine < -1 {
		cosine = -1
	}

	return EarthRadiusKm * math.Acos(cosine)
}

// WithinKm reports whether b lies within maxKm of a. The cutoff is hard:
// distance never contributes to ranking, only to inclusion.
func WithinKm(a, b Point, maxKm float64) bool {
	return DistanceKm(a, b) <= maxKm
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
