package geo

import "math"

// Bearing initial bearing (0..360) dari a ke b.
//
//	φ1,λ1 is the start point, φ2,λ2 the end point
//	 	φ is latitude, λ is longitude
//
// https://www.movable-type.co.uk/scripts/latlong.html
func Bearing(a, b Coordinate) float64 {
	p1LatRad := degreeToRadians(a.lat)
	p2LatRad := degreeToRadians(b.lat)

	diffLon := degreeToRadians(b.lon - a.lon)

	y := math.Sin(diffLon) * math.Cos(p2LatRad)
	x := math.Cos(p1LatRad)*math.Sin(p2LatRad) - math.Sin(p1LatRad)*math.Cos(p2LatRad)*math.Cos(diffLon)
	theta := math.Atan2(y, x)

	return math.Mod(radiansToDegree(theta)+360, 360)
}

//	φ is latitude, λ is longitude
//
// https://www.movable-type.co.uk/scripts/latlong.html
func MidPoint(a, b Coordinate) Coordinate {
	p1LatRad := degreeToRadians(a.lat)
	p2LatRad := degreeToRadians(b.lat)

	diffLon := degreeToRadians(b.lon - a.lon)

	bx := math.Cos(p2LatRad) * math.Cos(diffLon)
	by := math.Cos(p2LatRad) * math.Sin(diffLon)

	newLon := degreeToRadians(a.lon) + math.Atan2(by, math.Cos(p1LatRad)+bx)
	newLat := math.Atan2(math.Sin(p1LatRad)+math.Sin(p2LatRad), math.Sqrt((math.Cos(p1LatRad)+bx)*(math.Cos(p1LatRad)+bx)+by*by))

	return normalized(radiansToDegree(newLat), radiansToDegree(newLon))
}

// DestinationPoint titik tujuan dari origin setelah menempuh distanceKm dengan initial bearing bearingDeg.
//
//	φ2 = asin( sin φ1 ⋅ cos δ + cos φ1 ⋅ sin δ ⋅ cos θ )
//	λ2 = λ1 + atan2( sin θ ⋅ sin δ ⋅ cos φ1, cos δ − sin φ1 ⋅ sin φ2 )
//
// https://www.movable-type.co.uk/scripts/latlong.html
func DestinationPoint(origin Coordinate, bearingDeg, distanceKm float64) Coordinate {
	delta := distanceKm / earthRadiusKM
	theta := degreeToRadians(bearingDeg)

	lat1 := degreeToRadians(origin.lat)
	lon1 := degreeToRadians(origin.lon)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(lat1), math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	return normalized(radiansToDegree(lat2), radiansToDegree(lon2))
}

// normalized clamp lat ke [-90,90] dan wrap lon ke [-180,180).
func normalized(lat, lon float64) Coordinate {
	lat = math.Max(-90, math.Min(90, lat))
	lon = math.Mod(lon+540, 360) - 180
	return Coordinate{lat: lat, lon: lon}
}
