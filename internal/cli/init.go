// Package cli shares the startup sequence of the cliplens commands: resolve
// and validate the API key, load the label catalog, build the media source
// chain, and wire the optional spreadsheet recorder into an analyzer.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/cliplens/cliplens/internal/analysis"
	"github.com/cliplens/cliplens/internal/auth"
	"github.com/cliplens/cliplens/internal/config"
	"github.com/cliplens/cliplens/internal/gemini"
	"github.com/cliplens/cliplens/internal/media"
	"github.com/cliplens/cliplens/internal/pipeline"
	"github.com/cliplens/cliplens/internal/prompt"
	"github.com/cliplens/cliplens/internal/sheets"
)

// Bootstrap builds a ready-to-run analyzer from loaded configuration.
// cfg.Gemini.Model must already be resolved to a model id; the API key is
// validated against it. Exits fatally on failure.
//
// withSheet gates recorder construction so a run that will never append
// skips the spreadsheet handshake entirely. A recorder that fails to
// construct downgrades to a warning; analysis still works without it.
func Bootstrap(ctx context.Context, cfg *config.Config, withSheet bool) *pipeline.Analyzer {
	apiKey := cfg.Gemini.APIKey
	if apiKey == "" {
		var err error
		apiKey, err = auth.GetAPIKey()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to retrieve API key")
		}
	}

	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Gemini client")
	}

	log.Info().Msg("connection successful - Gemini client initialized")

	if err := auth.ValidateAPIKey(ctx, client.Raw(), cfg.Gemini.Model); err != nil {
		HandleValidationError(err)
	}

	log.Info().Msg("API key validation complete - ready for operations")

	catalog, err := prompt.LoadCatalog(ctx, cfg.Prompt.LabelsFile, cfg.Prompt.LabelsURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load label catalog")
	}

	sources, err := media.BuildSources(ctx, cfg.Media)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build media sources")
	}

	var recorder pipeline.Recorder
	if withSheet && cfg.Sheets.Enabled() {
		appender, err := sheets.NewAppender(ctx, cfg.Sheets, analysis.DefaultCategories())
		if err != nil {
			log.Warn().Err(err).Msg("Spreadsheet unavailable, analyses will not be recorded")
			fmt.Println(color.YellowString("⚠ Spreadsheet unavailable - analyses will not be recorded"))
		} else {
			recorder = appender
		}
	}

	return &pipeline.Analyzer{
		Schema:     analysis.DefaultSchema(),
		Catalog:    catalog,
		Model:      client,
		Downloader: media.NewDownloader(sources...),
		Recorder:   recorder,
	}
}

// FormatDurationShort formats a duration in a short format (M:SS or H:MM:SS).
func FormatDurationShort(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
