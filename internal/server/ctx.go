package server

import (
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/osmbox/internal/config"
	"github.com/woozymasta/osmbox/internal/osm"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config       *config.Config
	Datasets     map[string]*osm.Data
	NameResolver map[string]string
}

// NewServerContext parses every configured dataset up front and sets up the
// alias resolver. Datasets whose source cannot be read or parsed are dropped
// with a warning instead of failing the whole server.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_datasets_count", len(cfg.Datasets)).Msg("Initializing server context")

	resolver := make(map[string]string)
	datasets := make(map[string]*osm.Data, len(cfg.Datasets))
	validDatasets := make([]config.Dataset, 0, len(cfg.Datasets))

	for i := range cfg.Datasets {
		ds := &cfg.Datasets[i]

		if ds.Attribution == "" {
			ds.Attribution = cfg.Attribution
		}

		raw, err := os.ReadFile(ds.Source)
		if err != nil {
			log.Warn().
				Err(err).
				Str("dataset", ds.Name).
				Str("path", ds.Source).
				Msg("Skipping dataset: source not readable")
			continue
		}

		data, err := osm.Parse(raw)
		if err != nil {
			log.Warn().
				Err(err).
				Str("dataset", ds.Name).
				Msg("Skipping dataset: parse failed")
			continue
		}

		if ds.ExactBounds {
			data.CalculateBounds()
		}

		// Setup Resolver
		resolver[ds.Name] = ds.Name
		for _, alias := range ds.Aliases {
			resolver[alias] = ds.Name
		}

		log.Debug().
			Str("dataset", ds.Name).
			Int("nodes", len(data.Nodes)).
			Int("ways", len(data.Ways)).
			Msg("Dataset parsed and added to context")

		datasets[ds.Name] = data
		validDatasets = append(validDatasets, *ds)
	}

	cfg.Datasets = validDatasets

	sort.Slice(cfg.Datasets, func(i, j int) bool {
		return cfg.Datasets[i].Name < cfg.Datasets[j].Name
	})

	log.Info().
		Int("valid_datasets_count", len(cfg.Datasets)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:       cfg,
		Datasets:     datasets,
		NameResolver: resolver,
	}
}
