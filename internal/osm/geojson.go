package osm

import (
	"github.com/woozymasta/osmbox/internal/geo"

	"github.com/rs/zerolog/log"
)

// FeatureCollection renders the dataset as GeoJSON: tagged nodes become
// Point features, ways become LineString features. Way node references that
// do not resolve within this dataset are skipped silently, the source never
// guarantees referential integrity.
func (d *Data) FeatureCollection() geo.GeoJSONFeatureCollection {
	fc := geo.GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geo.GeoJSONFeature, 0, len(d.Nodes)+len(d.Ways)),
	}

	for _, node := range d.Nodes {
		if len(node.Tags) == 0 {
			continue
		}

		fc.Features = append(fc.Features, geo.GeoJSONFeature{
			Type: "Feature",
			Geometry: geo.GeoJSONGeometry{
				Type:        "Point",
				Coordinates: []geo.Float{node.Pos.Lon, node.Pos.Lat},
			},
			Properties: tagProperties(node.ID, node.Tags),
		})
	}

	dangling := 0
	for _, way := range d.Ways {
		line := make([][]geo.Float, 0, len(way.NodeIDs))
		for _, id := range way.NodeIDs {
			node, ok := d.Nodes[id]
			if !ok {
				dangling++
				continue
			}
			line = append(line, []geo.Float{node.Pos.Lon, node.Pos.Lat})
		}
		if len(line) == 0 {
			continue
		}

		fc.Features = append(fc.Features, geo.GeoJSONFeature{
			Type: "Feature",
			Geometry: geo.GeoJSONGeometry{
				Type:        "LineString",
				Coordinates: line,
			},
			Properties: tagProperties(way.ID, way.Tags),
		})
	}

	if dangling > 0 {
		log.Debug().Int("count", dangling).Msg("Skipped unresolved way node references")
	}

	return fc
}

func tagProperties(id ID, tags Tags) map[string]interface{} {
	props := make(map[string]interface{}, len(tags)+1)
	props["id"] = id
	for k, v := range tags {
		props[k] = v
	}
	return props
}
