package geo

import "math"

// EarthRadius is the sphere radius in meters used by the Web Mercator
// projection (EPSG:3857).
const EarthRadius Float = 6378137

var inf = Float(math.Inf(1))

// LatToY converts a latitude in degrees to a planar Y in meters using the
// spherical Mercator formula. Latitudes of exactly +-90 produce +-Inf: the
// projection is undefined at the poles and no clamping is applied here.
func LatToY(lat Float) Float {
	return EarthRadius * math.Log(math.Tan(lat*(math.Pi/180)/2+math.Pi/4))
}

// LonToX converts a longitude in degrees to a planar X in meters.
func LonToX(lon Float) Float {
	return EarthRadius * lon * (math.Pi / 180)
}

// YToLat converts a planar Y in meters back to a latitude in degrees.
func YToLat(y Float) Float {
	return (2*math.Atan(math.Exp(y/EarthRadius)) - math.Pi/2) * (180 / math.Pi)
}

// XToLon converts a planar X in meters back to a longitude in degrees.
func XToLon(x Float) Float {
	return x / EarthRadius * (180 / math.Pi)
}
