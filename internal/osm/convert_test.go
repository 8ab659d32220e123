package osm

import (
	"math"
	"testing"

	"github.com/woozymasta/osmbox/internal/geo"
)

func TestNodeConvertRoundTrip(t *testing.T) {
	node := nodeAt(1, 50, 10)

	node.ConvertTo(geo.WebMercator{})
	if node.Pos.Lat == 50 && node.Pos.Lon == 10 {
		t.Fatal("position not projected")
	}

	node.RevertFrom(geo.WebMercator{})
	if math.Abs(node.Pos.Lat-50) > 1e-5 || math.Abs(node.Pos.Lon-10) > 1e-5 {
		t.Fatalf("round-trip position = %+v", node.Pos)
	}
}

func TestDataConvertTo(t *testing.T) {
	data := &Data{
		Nodes: Nodes{
			1: nodeAt(1, 0, 0),
			2: nodeAt(2, 50, 10),
			3: nodeAt(3, -33.86, 151.21),
		},
		Ways: Ways{
			10: {ID: 10, NodeIDs: []ID{1, 2, 3}, Tags: Tags{"name": "loop"}},
		},
	}

	data.ConvertTo(geo.WebMercator{})

	// Origin maps to the planar origin.
	if data.Nodes[1].Pos != geo.CoordinateZero {
		t.Errorf("origin node = %+v", data.Nodes[1].Pos)
	}
	// Every other node moved out of degree range.
	if math.Abs(data.Nodes[2].Pos.Lon) <= 180 {
		t.Errorf("node 2 does not look projected: %+v", data.Nodes[2].Pos)
	}

	// Ways and their references are untouched by conversion.
	way := data.Ways[10]
	if len(way.NodeIDs) != 3 || way.NodeIDs[1] != 2 || way.Tags["name"] != "loop" {
		t.Errorf("way mutated by conversion: %+v", way)
	}

	data.RevertFrom(geo.WebMercator{})
	if math.Abs(data.Nodes[3].Pos.Lat-(-33.86)) > 1e-5 {
		t.Errorf("node 3 after revert = %+v", data.Nodes[3].Pos)
	}
}

func TestDataConvertCustomProjection(t *testing.T) {
	data := &Data{Nodes: Nodes{1: nodeAt(1, 50, 10)}}

	flip := geo.ProjectionFunc(func(c *geo.Coordinate) {
		c.Lat, c.Lon = c.Lon, c.Lat
	})

	data.ConvertTo(flip)
	if data.Nodes[1].Pos.Lat != 10 || data.Nodes[1].Pos.Lon != 50 {
		t.Fatalf("custom projection not applied: %+v", data.Nodes[1].Pos)
	}

	data.RevertFrom(flip)
	if data.Nodes[1].Pos.Lat != 50 || data.Nodes[1].Pos.Lon != 10 {
		t.Fatalf("custom projection not applied on revert: %+v", data.Nodes[1].Pos)
	}
}
