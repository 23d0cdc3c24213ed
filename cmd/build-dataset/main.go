// build-dataset runs one full linkage pass: fetch institutions and programs
// from Socrata, detect the join key, link, and write universities.json.
//
// There is no checkpointing; any failure aborts the run and it must be
// re-invoked from the beginning. When no join key can be detected, an empty
// artifact is deliberately written so the failure is visible downstream.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/imgoedu/imgo-backend/internal/config"
	"github.com/imgoedu/imgo-backend/internal/dataset"
	"github.com/imgoedu/imgo-backend/internal/linkage"
	"github.com/imgoedu/imgo-backend/internal/logger"
	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/socrata"
)

// fallbackProgramKey is used when the name heuristic finds nothing in the
// programs dataset; it has been the stable column name for years.
const fallbackProgramKey = "codigoinstitucion"

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	client := socrata.NewClient(cfg.SocrataBaseURL, cfg.FetchPageSize, cfg.FetchDelay, log)

	log.Info().Str("dataset", cfg.DatasetInstitutions).Msg("fetching institutions")
	iesRows, err := client.FetchAll(ctx, cfg.DatasetInstitutions, socrata.Query{})
	if err != nil {
		log.Fatal().Err(err).Msg("institutions fetch failed")
	}

	log.Info().Str("dataset", cfg.DatasetPrograms).Msg("fetching programs")
	programRows, err := client.FetchAll(ctx, cfg.DatasetPrograms, socrata.Query{})
	if err != nil {
		log.Fatal().Err(err).Msg("programs fetch failed")
	}

	log.Info().
		Int("institutions", len(iesRows)).
		Int("programs", len(programRows)).
		Msg("datasets fetched")

	if len(iesRows) == 0 || len(programRows) == 0 {
		log.Error().Msg("empty dataset; writing empty artifact")
		writeEmpty(cfg.DatasetFile, log)
		return
	}

	// 1) Find the institution-code column inside the programs dataset by
	// name heuristic (with the program-column penalty active).
	programKey, programRanking := linkage.DetectKeyByName(programRows, true)
	if programKey == "" {
		programKey = fallbackProgramKey
	}
	log.Info().
		Str("key", programKey).
		Interface("ranking", programRanking).
		Msg("program-side institution key")

	// 2) Collect the distinct institution codes present in programs.
	codeSet := linkage.BuildCodeSet(programRows, programKey)
	log.Info().Int("codes", len(codeSet)).Msg("distinct institution codes in programs")

	// 3) Detect the matching column in the institutions dataset by value
	// overlap, falling back to the name heuristic.
	iesKey, ranking := linkage.DetectKeyByMatches(iesRows, codeSet, linkage.DefaultSampleSize)
	if iesKey == "" {
		log.Warn().Msg("no column matched by value; falling back to name heuristic")
		iesKey, ranking = linkage.DetectKeyByName(iesRows, false)
	}
	if iesKey == "" {
		log.Error().
			Strs("columns", linkage.ColumnNames(iesRows)).
			Msg("could not detect institution code column; writing empty artifact")
		writeEmpty(cfg.DatasetFile, log)
		os.Exit(1)
	}
	log.Info().
		Str("key", iesKey).
		Interface("ranking", ranking).
		Msg("institution-side join key detected")

	// 4+5) Index institutions and attach programs.
	universities, _ := linkage.Link(iesRows, programRows, iesKey, programKey, log)

	if err := dataset.Save(cfg.DatasetFile, universities); err != nil {
		log.Fatal().Err(err).Msg("artifact write failed")
	}
	log.Info().Str("path", cfg.DatasetFile).Int("institutions", len(universities)).Msg("artifact written")
}

// writeEmpty persists an empty artifact so downstream consumers see the
// failure instead of a stale dataset.
func writeEmpty(path string, log zerolog.Logger) {
	if err := dataset.Save(path, []model.Institution{}); err != nil {
		log.Fatal().Err(err).Msg("empty artifact write failed")
	}
}
