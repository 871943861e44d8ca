package aircraft

import (
	"fmt"
	"math"
)

const earthRadiusKM = 6371

type Position struct {
	Lat float64 `mapstructure:"lat"`
	Lon float64 `mapstructure:"lon"`
}

var DefaultPosition = Position{Lat: 40.7908711, Lon: -73.3746079}

// DistanceKM is the great-circle distance between a and b.
func DistanceKM(a, b Position) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// RadarURL is the flight radar map centered on p.
func RadarURL(p Position) string {
	return fmt.Sprintf("https://www.flightradar24.com/%g,%g/10", p.Lat, p.Lon)
}
