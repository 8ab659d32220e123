// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/woozymasta/osmbox/internal/geo"
	"github.com/woozymasta/osmbox/internal/osm"
)

// HandleDatasetsList serves the JSON configuration of available datasets.
func (s *ServerContext) HandleDatasetsList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Config.Datasets)
}

// HandleDataset serves per-dataset resources.
// Path: /datasets/{name}/{meta|bounds|locations.geojson}
func (s *ServerContext) HandleDataset(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		http.NotFound(w, r)
		return
	}

	realName, ok := s.NameResolver[parts[1]]
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, ok := s.Datasets[realName]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch parts[2] {
	case "meta":
		s.serveMeta(w, realName, data)
	case "bounds":
		serveBounds(w, data)
	case "locations.geojson":
		w.Header().Set("Content-Type", "application/geo+json")
		_ = json.NewEncoder(w).Encode(data.FeatureCollection())
	default:
		http.NotFound(w, r)
	}
}

type metaResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Generator   string `json:"generator"`
	Copyright   string `json:"copyright"`
	Attribution string `json:"attribution"`
	License     string `json:"license"`
	Nodes       int    `json:"nodes"`
	Ways        int    `json:"ways"`
}

func (s *ServerContext) serveMeta(w http.ResponseWriter, name string, data *osm.Data) {
	attribution := data.Attribution
	for _, ds := range s.Config.Datasets {
		if ds.Name == name && ds.Attribution != "" {
			attribution = ds.Attribution
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(metaResponse{
		Name:        name,
		Version:     data.Version,
		Generator:   data.Generator,
		Copyright:   data.Copyright,
		Attribution: attribution,
		License:     data.License,
		Nodes:       len(data.Nodes),
		Ways:        len(data.Ways),
	})
}

// serveBounds answers with the exact computed bounds of the node set, not
// the bounds the source declared, plus the center point.
func serveBounds(w http.ResponseWriter, data *osm.Data) {
	bounds := osm.CalculateBounds(data.Nodes)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Min    geo.Coordinate `json:"min"`
		Max    geo.Coordinate `json:"max"`
		Center geo.Coordinate `json:"center"`
	}{
		Min:    bounds.Min,
		Max:    bounds.Max,
		Center: bounds.Center(),
	})
}
