package route

import (
	"math"
	"math/rand"

	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// Loop generation knobs. A perturbed circle, nothing smarter: the
// waypoints are meant to be snapped to real roads by a directions
// provider downstream.
const (
	loopWaypoints    = 16
	radiusJitterFrac = 0.15
)

// GeneratedLoop is a candidate loop route starting and ending at the
// requested point.
type GeneratedLoop struct {
	Points     []Point
	DistanceKm float64
}

// GenerateLoop produces a closed loop of waypoints around a start
// point, sized so the loop circumference approximates the requested
// distance. The same seed always yields the same loop.
func GenerateLoop(startLat, startLng, distanceKm float64, seed int64) GeneratedLoop {
	if distanceKm <= 0 {
		return GeneratedLoop{Points: []Point{{Lat: startLat, Lng: startLng}}}
	}

	rng := rand.New(rand.NewSource(seed))
	radius := distanceKm * 1000 / (2 * math.Pi)

	// Center the circle so the start point sits on its rim; the loop
	// then naturally begins and ends at the start.
	centerBearing := rng.Float64() * 360
	centerLat, centerLng := destination(startLat, startLng, centerBearing, radius)
	startBearing := math.Mod(centerBearing+180, 360)

	points := make([]Point, 0, loopWaypoints+1)
	for i := 0; i < loopWaypoints; i++ {
		bearing := math.Mod(startBearing+float64(i)*360/loopWaypoints, 360)
		jitter := 1 + (rng.Float64()*2-1)*radiusJitterFrac
		lat, lng := destination(centerLat, centerLng, bearing, radius*jitter)
		points = append(points, Point{Lat: lat, Lng: lng})
	}
	// Close the loop exactly where it started.
	points[0] = Point{Lat: startLat, Lng: startLng}
	points = append(points, Point{Lat: startLat, Lng: startLng})

	return GeneratedLoop{
		Points:     points,
		DistanceKm: PathDistanceKm(points),
	}
}

// PathDistanceKm sums great-circle leg lengths along a path.
func PathDistanceKm(points []Point) float64 {
	var meters float64
	for i := 1; i < len(points); i++ {
		meters += haversineMeters(points[i-1], points[i])
	}
	return meters / 1000
}

func haversineMeters(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}

// destination solves the direct geodesic problem on a sphere: the point
// at the given bearing (degrees) and distance (meters) from a start.
func destination(lat, lng, bearingDeg, distanceM float64) (float64, float64) {
	start := s2.LatLngFromDegrees(lat, lng)
	bearing := bearingDeg * math.Pi / 180
	angular := distanceM / earthRadiusMeters

	lat1 := start.Lat.Radians()
	lng1 := start.Lng.Radians()

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) +
		math.Cos(lat1)*math.Sin(angular)*math.Cos(bearing))
	lng2 := lng1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2))

	return lat2 * 180 / math.Pi, lng2 * 180 / math.Pi
}
