// Package osm holds the typed model for OpenStreetMap bounding-box extracts
// and the parser that builds it from the API's JSON response.
package osm

import "github.com/woozymasta/osmbox/internal/geo"

// ID identifies a node or way within one dataset.
type ID = uint64

// Tags is free-form key/value metadata attached to a node or way.
type Tags map[string]string

// Nodes maps node ids to nodes. Insertion order is not significant.
type Nodes map[ID]*Node

// Ways maps way ids to ways.
type Ways map[ID]*Way

// Node is a single point with provenance metadata and tags.
type Node struct {
	Tags      Tags           `json:"tags"`
	Timestamp string         `json:"timestamp"`
	User      string         `json:"user"`
	ID        ID             `json:"id"`
	Changeset uint64         `json:"changeset"`
	Pos       geo.Coordinate `json:"pos"`
	Version   uint32         `json:"version"`
}

// Way is an ordered path or polygon referencing nodes by id. The references
// are weak: nothing checks that the ids resolve within the dataset.
type Way struct {
	Tags      Tags   `json:"tags"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	NodeIDs   []ID   `json:"nodes"`
	ID        ID     `json:"id"`
	Changeset uint64 `json:"changeset"`
	Version   uint32 `json:"version"`
}

// TagsString renders the way tags as "key: value" lines.
func (w *Way) TagsString() string {
	out := ""
	for k, v := range w.Tags {
		if out != "" {
			out += "\n"
		}
		out += k + ": " + v
	}
	return out
}

// Data is the aggregate root for one parsed extract. It exclusively owns all
// nodes and ways; Bounds holds whatever the source declared until
// CalculateBounds overwrites it with the exact rectangle.
type Data struct {
	Nodes       Nodes      `json:"nodes"`
	Ways        Ways       `json:"ways"`
	Version     string     `json:"version"`
	Generator   string     `json:"generator"`
	Copyright   string     `json:"copyright"`
	Attribution string     `json:"attribution"`
	License     string     `json:"license"`
	Bounds      geo.Bounds `json:"bounds"`
}

// IsEmpty reports whether the dataset holds no nodes and no ways.
func (d *Data) IsEmpty() bool {
	return len(d.Nodes) == 0 && len(d.Ways) == 0
}

// CalculateBounds replaces the declared bounds with the exact rectangle
// enclosing the current node set.
func (d *Data) CalculateBounds() {
	d.Bounds = CalculateBounds(d.Nodes)
}

// CalculateBounds computes the minimal rectangle enclosing every node.
// An empty node set yields geo.BoundsZero, never the infinity seeds.
func CalculateBounds(nodes Nodes) geo.Bounds {
	if len(nodes) == 0 {
		return geo.BoundsZero
	}

	min := geo.CoordinateInf
	max := geo.CoordinateNegInf

	for _, node := range nodes {
		if node.Pos.Lat < min.Lat {
			min.Lat = node.Pos.Lat
		}
		if node.Pos.Lat > max.Lat {
			max.Lat = node.Pos.Lat
		}
		if node.Pos.Lon < min.Lon {
			min.Lon = node.Pos.Lon
		}
		if node.Pos.Lon > max.Lon {
			max.Lon = node.Pos.Lon
		}
	}

	return geo.Bounds{Min: min, Max: max}
}

// MergeTags unions from into to in place. On key conflicts the incoming
// value wins. Merging an empty or nil map is a no-op.
func MergeTags(to, from Tags) {
	for k, v := range from {
		to[k] = v
	}
}
