package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/osmbox/internal/config"
	"github.com/woozymasta/osmbox/internal/geo"
)

const sampleExtract = `{
	"version": "0.6", "generator": "CGImap", "copyright": "OSM",
	"attribution": "osm.org", "license": "ODbL",
	"bounds": {"minlat": 41.30365, "maxlat": 41.30453, "minlon": -81.90212, "maxlon": -81.90126},
	"elements": [
		{"type": "node", "id": 1, "lat": 41.30365, "lon": -81.90212,
		 "timestamp": "t", "version": 1, "changeset": 1, "user": "u",
		 "tags": {"highway": "stop"}},
		{"type": "node", "id": 2, "lat": 41.30453, "lon": -81.90126,
		 "timestamp": "t", "version": 1, "changeset": 1, "user": "u"},
		{"type": "way", "id": 10, "timestamp": "t", "version": 1,
		 "changeset": 1, "user": "u", "nodes": [1, 2]}
	]
}`

func testContext(t *testing.T) *ServerContext {
	t.Helper()

	dir := t.TempDir()
	source := filepath.Join(dir, "grant-court.json")
	if err := os.WriteFile(source, []byte(sampleExtract), 0644); err != nil {
		t.Fatal(err)
	}
	// Second dataset with an unreadable source gets dropped.
	cfg := &config.Config{
		Attribution: "fallback",
		Datasets: []config.Dataset{
			{Name: "grant-court", Source: source, Aliases: []string{"gc"}},
			{Name: "broken", Source: filepath.Join(dir, "missing.json")},
		},
	}

	return NewServerContext(cfg)
}

func TestNewServerContext(t *testing.T) {
	ctx := testContext(t)

	if len(ctx.Config.Datasets) != 1 {
		t.Fatalf("got %d datasets, want 1 (broken one dropped)", len(ctx.Config.Datasets))
	}
	if ctx.Config.Datasets[0].Attribution != "fallback" {
		t.Errorf("global attribution not applied: %q", ctx.Config.Datasets[0].Attribution)
	}
	if ctx.NameResolver["gc"] != "grant-court" {
		t.Errorf("alias not resolved: %v", ctx.NameResolver)
	}
	if data := ctx.Datasets["grant-court"]; data == nil || len(data.Nodes) != 2 {
		t.Fatalf("dataset not parsed: %+v", data)
	}
}

func TestHandleDatasetsList(t *testing.T) {
	ctx := testContext(t)

	rec := httptest.NewRecorder()
	ctx.HandleDatasetsList(rec, httptest.NewRequest(http.MethodGet, "/api/datasets", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var list []config.Dataset
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "grant-court" {
		t.Errorf("list = %+v", list)
	}
}

func TestHandleDatasetMeta(t *testing.T) {
	ctx := testContext(t)

	rec := httptest.NewRecorder()
	ctx.HandleDataset(rec, httptest.NewRequest(http.MethodGet, "/datasets/gc/meta", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var meta metaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatal(err)
	}
	if meta.Name != "grant-court" || meta.Nodes != 2 || meta.Ways != 1 {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Generator != "CGImap" || meta.License != "ODbL" {
		t.Errorf("envelope metadata not served: %+v", meta)
	}
}

func TestHandleDatasetBounds(t *testing.T) {
	ctx := testContext(t)

	rec := httptest.NewRecorder()
	ctx.HandleDataset(rec, httptest.NewRequest(http.MethodGet, "/datasets/grant-court/bounds", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Min    geo.Coordinate `json:"min"`
		Max    geo.Coordinate `json:"max"`
		Center geo.Coordinate `json:"center"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	// Bounds are computed from the two nodes, not echoed from the envelope.
	if body.Min.Lat != 41.30365 || body.Max.Lat != 41.30453 {
		t.Errorf("bounds = %+v", body)
	}
	want := (41.30365 + 41.30453) / 2
	if body.Center.Lat != want {
		t.Errorf("center lat = %v, want %v", body.Center.Lat, want)
	}
}

func TestHandleDatasetGeoJSON(t *testing.T) {
	ctx := testContext(t)

	rec := httptest.NewRecorder()
	ctx.HandleDataset(rec, httptest.NewRequest(http.MethodGet, "/datasets/grant-court/locations.geojson", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("content type = %q", ct)
	}

	var fc geo.GeoJSONFeatureCollection
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatal(err)
	}
	// One tagged node plus the way.
	if len(fc.Features) != 2 {
		t.Errorf("got %d features", len(fc.Features))
	}
}

func TestHandleDatasetNotFound(t *testing.T) {
	ctx := testContext(t)

	for _, path := range []string{
		"/datasets/unknown/meta",
		"/datasets/grant-court/raw",
		"/datasets/grant-court",
	} {
		rec := httptest.NewRecorder()
		ctx.HandleDataset(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
	}
}
