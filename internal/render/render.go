// Package render rasterizes a parsed OSM dataset into a map preview image.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/woozymasta/osmbox/internal/geo"
	"github.com/woozymasta/osmbox/internal/osm"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
)

// ErrNoNodes is returned when the dataset has nothing to draw.
var ErrNoNodes = errors.New("dataset contains no nodes")

// supersample factor: drawing happens on a larger canvas which is then
// downscaled with CatmullRom for cheap antialiasing.
const supersample = 2

var (
	background = color.RGBA{R: 0xf8, G: 0xf6, B: 0xef, A: 0xff}
	wayColor   = color.RGBA{R: 0x5a, G: 0x5a, B: 0x5a, A: 0xff}
	nodeColor  = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
)

// Dataset draws all ways and nodes of the dataset projected to Web Mercator
// onto a square canvas of the given size in pixels.
func Dataset(data *osm.Data, size int) (image.Image, error) {
	if len(data.Nodes) == 0 {
		return nil, ErrNoNodes
	}

	// Project a private copy so the caller's dataset stays geographic.
	points := make(map[osm.ID]geo.Coordinate, len(data.Nodes))
	mercator := geo.WebMercator{}
	for id, node := range data.Nodes {
		pos := node.Pos
		mercator.Forward(&pos)
		points[id] = pos
	}

	minX, minY := geo.Float(0), geo.Float(0)
	maxX, maxY := geo.Float(0), geo.Float(0)
	first := true
	for _, p := range points {
		if first {
			minX, maxX = p.Lon, p.Lon
			minY, maxY = p.Lat, p.Lat
			first = false
			continue
		}
		if p.Lon < minX {
			minX = p.Lon
		}
		if p.Lon > maxX {
			maxX = p.Lon
		}
		if p.Lat < minY {
			minY = p.Lat
		}
		if p.Lat > maxY {
			maxY = p.Lat
		}
	}

	canvasSize := size * supersample
	canvas := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	// Fit the projected extent into the canvas with a small margin,
	// preserving aspect ratio. Y grows downward in image space.
	margin := geo.Float(canvasSize) * 0.05
	spanX := maxX - minX
	spanY := maxY - minY
	span := spanX
	if spanY > span {
		span = spanY
	}
	if span == 0 {
		span = 1
	}
	scale := (geo.Float(canvasSize) - 2*margin) / span

	toPixel := func(p geo.Coordinate) (int, int) {
		x := margin + (p.Lon-minX)*scale
		y := margin + (maxY-p.Lat)*scale
		return int(x), int(y)
	}

	drawn := 0
	for _, way := range data.Ways {
		var prevX, prevY int
		havePrev := false
		for _, id := range way.NodeIDs {
			p, ok := points[id]
			if !ok {
				continue
			}
			x, y := toPixel(p)
			if havePrev {
				plotLine(canvas, prevX, prevY, x, y, wayColor)
			}
			prevX, prevY = x, y
			havePrev = true
		}
		drawn++
	}

	for _, p := range points {
		x, y := toPixel(p)
		plotDot(canvas, x, y, supersample, nodeColor)
	}

	log.Debug().
		Int("nodes", len(points)).
		Int("ways", drawn).
		Int("size", size).
		Msg("Dataset rasterized")

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Over, nil)

	return out, nil
}

// Save encodes the image as webp at the given path, creating directories as
// needed.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return webp.Encode(f, img, &webp.Options{Lossless: false, Quality: 90})
}

// plotLine draws a straight segment with the classic Bresenham walk.
func plotLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func plotDot(img *image.RGBA, x, y, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			setPixel(img, x+dx, y+dy, c)
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
