package geo

import "math"

// haversine distance
const earthRadiusKM = 6371.0

type location struct {
	latitude  float64
	longitude float64
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func radiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func newLocation(c Coordinate) location {
	return location{
		latitude:  degreeToRadians(c.lat),
		longitude: degreeToRadians(c.lon),
	}
}

// sin^2(x/2), (1-cos x)/2 kehilangan presisi untuk sudut kecil
func havFunction(angleRad float64) float64 {
	return math.Pow(math.Sin(angleRad/2.0), 2)
}

func havFormula(locationOne location, locationTwo location) float64 {
	latitudeDiff := locationOne.latitude - locationTwo.latitude
	longitudeDiff := locationOne.longitude - locationTwo.longitude

	havLatitude := havFunction(latitudeDiff)
	havLongitude := havFunction(longitudeDiff)

	return havLatitude + math.Cos(locationOne.latitude)*math.Cos(locationTwo.latitude)*havLongitude
}

func archaversine(havAngle float64) float64 {
	sqrtHavAngle := math.Sqrt(math.Min(math.Max(havAngle, 0), 1))
	return 2.0 * math.Asin(sqrtHavAngle)
}

// HaversineDistance great-circle distance antara dua koordinat dalam km.
func HaversineDistance(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	havCentralAngle := havFormula(newLocation(a), newLocation(b))
	centralAngleRad := archaversine(havCentralAngle)
	return earthRadiusKM * centralAngleRad
}
