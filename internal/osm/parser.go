package osm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/woozymasta/osmbox/internal/geo"

	"github.com/rs/zerolog/log"
)

// Parse failure kinds, wrapped into the returned errors so callers can
// distinguish them with errors.Is. Malformed JSON surfaces as the decoder's
// own error.
var (
	// ErrElementType marks an element whose "type" field is not one of
	// node, way or relation.
	ErrElementType = errors.New("invalid element type")
	// ErrMissingField marks a required schema field that is absent.
	ErrMissingField = errors.New("missing required field")
)

// rawBounds is the flat bounds object of the response envelope, reshaped
// into geo.Bounds after decoding.
type rawBounds struct {
	MinLat *geo.Float `json:"minlat"`
	MaxLat *geo.Float `json:"maxlat"`
	MinLon *geo.Float `json:"minlon"`
	MaxLon *geo.Float `json:"maxlon"`
}

type rawEnvelope struct {
	Version     *string           `json:"version"`
	Generator   *string           `json:"generator"`
	Copyright   *string           `json:"copyright"`
	Attribution *string           `json:"attribution"`
	License     *string           `json:"license"`
	Bounds      rawBounds         `json:"bounds"`
	Elements    []json.RawMessage `json:"elements"`
}

func (e *rawEnvelope) missing() string {
	switch {
	case e.Version == nil:
		return "version"
	case e.Generator == nil:
		return "generator"
	case e.Copyright == nil:
		return "copyright"
	case e.Attribution == nil:
		return "attribution"
	case e.License == nil:
		return "license"
	case e.Elements == nil:
		return "elements"
	}
	return ""
}

// Required fields decode through pointers so that an absent key is
// distinguishable from a zero value.
type rawNode struct {
	ID        *ID        `json:"id"`
	Lat       *geo.Float `json:"lat"`
	Lon       *geo.Float `json:"lon"`
	Timestamp *string    `json:"timestamp"`
	Version   *uint32    `json:"version"`
	Changeset *uint64    `json:"changeset"`
	User      *string    `json:"user"`
	Tags      Tags       `json:"tags"`
}

type rawWay struct {
	ID        *ID     `json:"id"`
	Timestamp *string `json:"timestamp"`
	Version   *uint32 `json:"version"`
	Changeset *uint64 `json:"changeset"`
	User      *string `json:"user"`
	NodeIDs   *[]ID   `json:"nodes"`
	Tags      Tags    `json:"tags"`
}

// missing returns the name of the first absent required field, or "".
func (n *rawNode) missing() string {
	switch {
	case n.ID == nil:
		return "id"
	case n.Lat == nil:
		return "lat"
	case n.Lon == nil:
		return "lon"
	case n.Timestamp == nil:
		return "timestamp"
	case n.Version == nil:
		return "version"
	case n.Changeset == nil:
		return "changeset"
	case n.User == nil:
		return "user"
	}
	return ""
}

func (w *rawWay) missing() string {
	switch {
	case w.ID == nil:
		return "id"
	case w.Timestamp == nil:
		return "timestamp"
	case w.Version == nil:
		return "version"
	case w.Changeset == nil:
		return "changeset"
	case w.User == nil:
		return "user"
	case w.NodeIDs == nil:
		return "nodes"
	}
	return ""
}

// typeProbe reads only the discriminator of an element.
type typeProbe struct {
	Type *string `json:"type"`
}

// Parse decodes a map-query response retrieved through
// https://wiki.openstreetmap.org/wiki/API_v0.6#Retrieving_map_data_by_bounding_box:_GET_/api/0.6/map
// and assembles the typed dataset. Relations are skipped, any other unknown
// element type aborts the parse. On any failure no partial Data is returned.
func Parse(data []byte) (*Data, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if field := raw.missing(); field != "" {
		return nil, fmt.Errorf("envelope: %w: %s", ErrMissingField, field)
	}

	bounds, err := raw.Bounds.reshape()
	if err != nil {
		return nil, err
	}

	out := &Data{
		Version:     *raw.Version,
		Generator:   *raw.Generator,
		Copyright:   *raw.Copyright,
		Attribution: *raw.Attribution,
		License:     *raw.License,
		Bounds:      bounds,
		Nodes:       make(Nodes),
		Ways:        make(Ways),
	}

	relations := 0

	for _, element := range raw.Elements {
		var probe typeProbe
		if err := json.Unmarshal(element, &probe); err != nil {
			return nil, fmt.Errorf("element %q field: %w", "type", err)
		}
		if probe.Type == nil {
			return nil, fmt.Errorf(`element: %w: "type"`, ErrMissingField)
		}

		switch *probe.Type {
		case "node":
			node, err := decodeNode(element)
			if err != nil {
				return nil, err
			}
			// last-write-wins on duplicate ids
			out.Nodes[node.ID] = node

		case "way":
			way, err := decodeWay(element)
			if err != nil {
				return nil, err
			}
			out.Ways[way.ID] = way

		case "relation":
			// relations are not supported
			relations++

		default:
			return nil, fmt.Errorf("%w: %q", ErrElementType, *probe.Type)
		}
	}

	if relations > 0 {
		log.Debug().Int("count", relations).Msg("Skipped unsupported relation elements")
	}

	return out, nil
}

func (b rawBounds) reshape() (geo.Bounds, error) {
	if b.MinLat == nil || b.MaxLat == nil || b.MinLon == nil || b.MaxLon == nil {
		return geo.Bounds{}, fmt.Errorf("bounds: %w", ErrMissingField)
	}

	return geo.Bounds{
		Min: geo.Coordinate{Lat: *b.MinLat, Lon: *b.MinLon},
		Max: geo.Coordinate{Lat: *b.MaxLat, Lon: *b.MaxLon},
	}, nil
}

func decodeNode(element json.RawMessage) (*Node, error) {
	var raw rawNode
	if err := json.Unmarshal(element, &raw); err != nil {
		return nil, fmt.Errorf("node element: %w", err)
	}

	if field := raw.missing(); field != "" {
		return nil, fmt.Errorf("node element: %w: %s", ErrMissingField, field)
	}

	tags := raw.Tags
	if tags == nil {
		tags = make(Tags)
	}

	return &Node{
		ID:        *raw.ID,
		Pos:       geo.Coordinate{Lat: *raw.Lat, Lon: *raw.Lon},
		Timestamp: *raw.Timestamp,
		Version:   *raw.Version,
		Changeset: *raw.Changeset,
		User:      *raw.User,
		Tags:      tags,
	}, nil
}

func decodeWay(element json.RawMessage) (*Way, error) {
	var raw rawWay
	if err := json.Unmarshal(element, &raw); err != nil {
		return nil, fmt.Errorf("way element: %w", err)
	}

	if field := raw.missing(); field != "" {
		return nil, fmt.Errorf("way element: %w: %s", ErrMissingField, field)
	}

	tags := raw.Tags
	if tags == nil {
		tags = make(Tags)
	}

	return &Way{
		ID:        *raw.ID,
		Timestamp: *raw.Timestamp,
		Version:   *raw.Version,
		Changeset: *raw.Changeset,
		User:      *raw.User,
		NodeIDs:   *raw.NodeIDs,
		Tags:      tags,
	}, nil
}
