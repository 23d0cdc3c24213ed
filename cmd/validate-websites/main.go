// validate-websites probes every institution website in universities.json and
// annotates the records with websiteNormalized, websiteStatus and
// websiteCheckedAt. Probes run sequentially with a polite delay; each request
// carries a bounded timeout, unlike the dataset fetchers.
package main

import (
	"context"
	"time"

	"github.com/imgoedu/imgo-backend/internal/config"
	"github.com/imgoedu/imgo-backend/internal/dataset"
	"github.com/imgoedu/imgo-backend/internal/logger"
	"github.com/imgoedu/imgo-backend/internal/webcheck"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	universities, err := dataset.Load(cfg.DatasetFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatasetFile).Msg("dataset missing; run build-dataset first")
	}

	checker := webcheck.NewChecker(webcheck.DefaultTimeout)
	counts := map[string]int{}

	for i := range universities {
		u := &universities[i]

		u.WebsiteNormalized = webcheck.NormalizeURL(u.Website)
		result := checker.Check(ctx, u.WebsiteNormalized)
		u.WebsiteStatus = result.Status
		u.WebsiteCheckedAt = time.Now().UTC().Format(time.RFC3339)
		counts[result.Status]++

		log.Debug().
			Str("institution", u.ID).
			Str("status", result.Status).
			Int("code", result.Code).
			Msg("website checked")

		if cfg.FetchDelay > 0 && i < len(universities)-1 {
			time.Sleep(cfg.FetchDelay)
		}
	}

	if err := dataset.Save(cfg.DatasetFile, universities); err != nil {
		log.Fatal().Err(err).Msg("artifact write failed")
	}

	log.Info().
		Int("valid", counts[webcheck.StatusValid]).
		Int("redirect", counts[webcheck.StatusRedirect]).
		Int("invalid", counts[webcheck.StatusInvalid]).
		Int("missing", counts[webcheck.StatusMissing]).
		Msg("website validation complete")
}
