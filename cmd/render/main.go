package main

import (
	"os"

	"github.com/woozymasta/osmbox/internal/logger"
	"github.com/woozymasta/osmbox/internal/osm"
	"github.com/woozymasta/osmbox/internal/render"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input  string `short:"i" long:"in"   description:"Input OSM JSON file path" required:"true"`
	Output string `short:"o" long:"out"  description:"Output webp file path" default:"preview.webp"`
	Size   int    `short:"s" long:"size" description:"Output image size in pixels" default:"1024"`
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

	if opts.Size <= 0 {
		opts.Size = 1024
	}

	inputData, err := os.ReadFile(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to read input file")
	}

	data, err := osm.Parse(inputData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse OSM data")
	}

	log.Info().
		Int("nodes", len(data.Nodes)).
		Int("ways", len(data.Ways)).
		Msg("Dataset parsed, starting render")

	img, err := render.Dataset(data, opts.Size)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render dataset")
	}

	if err := render.Save(img, opts.Output); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to save image")
	}

	log.Info().Str("path", opts.Output).Msg("Render finished successfully")
}
