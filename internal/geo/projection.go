package geo

// Projection converts a single Coordinate between geographic degrees and a
// planar space, in place. Implementations must be stateless: the per-node
// conversion loop over a dataset relies on node order being irrelevant.
type Projection interface {
	// Forward maps geographic degrees to planar units.
	Forward(c *Coordinate)
	// Inverse maps planar units back to geographic degrees.
	Inverse(c *Coordinate)
}

// WebMercator is the standard spherical web projection,
// https://wiki.openstreetmap.org/wiki/Web_Mercator
type WebMercator struct{}

// Forward projects degrees to meters.
func (WebMercator) Forward(c *Coordinate) {
	c.Lat = LatToY(c.Lat)
	c.Lon = LonToX(c.Lon)
}

// Inverse recovers degrees from meters.
func (WebMercator) Inverse(c *Coordinate) {
	c.Lat = YToLat(c.Lat)
	c.Lon = XToLon(c.Lon)
}

// ProjectionFunc adapts a custom in-place transform into a Projection.
// The same function runs for both directions, so it must be its own inverse
// if round-tripping is required.
type ProjectionFunc func(c *Coordinate)

// Forward applies the transform.
func (f ProjectionFunc) Forward(c *Coordinate) { f(c) }

// Inverse applies the same transform.
func (f ProjectionFunc) Inverse(c *Coordinate) { f(c) }
