// Package geo handles geographic data structures and coordinate conversions.
package geo

// Float is the scalar type used for every coordinate and distance in the
// module. Changing this alias switches the whole data model and projection
// math to another width in one place.
type Float = float64

// Coordinate is a geographic point in degrees (WGS84), or a planar point in
// meters after a projection has been applied to it.
type Coordinate struct {
	Lat Float `json:"lat" yaml:"lat"`
	Lon Float `json:"lon" yaml:"lon"`
}

// Coordinate constants. The infinity values are accumulator seeds for bounds
// computation and never represent valid geographic data.
var (
	CoordinateZero   = Coordinate{Lat: 0, Lon: 0}
	CoordinateMin    = Coordinate{Lat: -90, Lon: -180}
	CoordinateMax    = Coordinate{Lat: 90, Lon: 180}
	CoordinateInf    = Coordinate{Lat: inf, Lon: inf}
	CoordinateNegInf = Coordinate{Lat: -inf, Lon: -inf}
)

// Bounds is an axis-aligned geographic rectangle.
type Bounds struct {
	Min Coordinate `json:"min" yaml:"min"`
	Max Coordinate `json:"max" yaml:"max"`
}

// Bounds constants.
var (
	BoundsZero = Bounds{Min: CoordinateZero, Max: CoordinateZero}
	BoundsFull = Bounds{Min: CoordinateMin, Max: CoordinateMax}
)

// Center returns the per-axis midpoint of the bounds. Longitude is a plain
// average, a region crossing the antimeridian is not handled specially.
func (b Bounds) Center() Coordinate {
	return Coordinate{
		Lat: (b.Min.Lat + b.Max.Lat) / 2,
		Lon: (b.Min.Lon + b.Max.Lon) / 2,
	}
}
