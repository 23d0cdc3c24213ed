// merge-sena scrapes the SENA public catalogue and folds it into the
// universities.json artifact as a single synthetic institution. Run after
// build-dataset; it fails if the artifact does not exist yet.
package main

import (
	"context"

	"github.com/imgoedu/imgo-backend/internal/config"
	"github.com/imgoedu/imgo-backend/internal/dataset"
	"github.com/imgoedu/imgo-backend/internal/logger"
	"github.com/imgoedu/imgo-backend/internal/sena"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	universities, err := dataset.Load(cfg.DatasetFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatasetFile).Msg("dataset missing; run build-dataset first")
	}

	scraper := sena.NewScraper(cfg.SenaBaseURL, cfg.FetchDelay, log)
	programs, err := scraper.FetchAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("catalogue scrape failed")
	}
	log.Info().Int("programs", len(programs)).Msg("catalogue scraped")

	if len(programs) == 0 {
		log.Warn().Msg("no programs scraped; SENA entry not appended")
	}

	merged := sena.Merge(universities, programs)
	if err := dataset.Save(cfg.DatasetFile, merged); err != nil {
		log.Fatal().Err(err).Msg("artifact write failed")
	}
	log.Info().Str("path", cfg.DatasetFile).Int("institutions", len(merged)).Msg("SENA merged")
}
