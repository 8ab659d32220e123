package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/osmbox/internal/geo"
	"github.com/woozymasta/osmbox/internal/logger"
	"github.com/woozymasta/osmbox/internal/osm"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input   string `short:"i" long:"in" description:"Input OSM JSON file path. Reads from stdin if empty"`
	Output  string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format  string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Bounds  bool   `short:"b" long:"bounds" description:"Recompute exact bounds from the node set"`
	Project bool   `short:"p" long:"project" description:"Project coordinates to Web Mercator meters"`
	Minify  bool   `short:"m" long:"minify" description:"Minify JSON output"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to read input file")
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read stdin")
		}
	}

	data, err := osm.Parse(inputData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse OSM data")
	}

	if data.IsEmpty() {
		log.Warn().Msg("Dataset contains no nodes or ways")
	}

	if opts.Bounds {
		data.CalculateBounds()
		center := data.Bounds.Center()
		log.Info().
			Float64("min_lat", data.Bounds.Min.Lat).
			Float64("min_lon", data.Bounds.Min.Lon).
			Float64("max_lat", data.Bounds.Max.Lat).
			Float64("max_lon", data.Bounds.Max.Lon).
			Float64("center_lat", center.Lat).
			Float64("center_lon", center.Lon).
			Msg("Exact bounds computed")
	}

	if opts.Project {
		data.ConvertTo(geo.WebMercator{})
	}

	fc := data.FeatureCollection()

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal output")
	}

	if opts.Minify && opts.Format == "json" {
		m := minify.New()
		m.AddFunc("application/json", mjson.Minify)
		outputData, err = m.Bytes("application/json", outputData)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to minify output")
		}
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output file")
		}
		log.Info().
			Int("features", len(fc.Features)).
			Str("path", opts.Output).
			Str("format", opts.Format).
			Msg("Conversion finished")
	} else {
		fmt.Println(string(outputData))
	}
}
