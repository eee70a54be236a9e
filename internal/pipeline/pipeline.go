// Package pipeline runs one video analysis end to end: classify the URL,
// fetch the media through the source chain, send it to the model, parse the
// response into the category table, and optionally append a spreadsheet row.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cliplens/cliplens/internal/analysis"
	"github.com/cliplens/cliplens/internal/gemini"
	"github.com/cliplens/cliplens/internal/media"
	"github.com/cliplens/cliplens/internal/metrics"
	"github.com/cliplens/cliplens/internal/prompt"
	"github.com/cliplens/cliplens/internal/sheets"
)

// Stage descriptions reported while a request runs, with the progress value
// each one advances the display to.
const (
	StageProcessingURL     = "Processing URL..."
	StageDownloading       = "Downloading video..."
	StageProcessingContent = "Processing video content..."
	StageAnalyzing         = "Analyzing video content..."
	StageFinalizing        = "Finalizing analysis..."
	StageComplete          = "Analysis complete"
)

// Reporter receives stage milestones as a request runs. May be nil.
type Reporter func(percent int, stage string)

// ModelClient is the slice of the Gemini client the pipeline needs.
type ModelClient interface {
	AnalyzeVideo(ctx context.Context, videoPath, mimeType, prompt string, opts gemini.Options) (string, error)
}

// Recorder persists one finished analysis, normally to a spreadsheet.
type Recorder interface {
	Append(ctx context.Context, info sheets.RunInfo, record analysis.Record) error
}

// Request describes one analysis job. Either URL or LocalFile is set.
type Request struct {
	URL         string
	LocalFile   string
	Style       prompt.Style
	Model       string
	Temperature float32
	MaxTokens   int32
	// SkipSheet suppresses the spreadsheet append even when a recorder is
	// configured.
	SkipSheet bool
}

// Result is a completed analysis.
type Result struct {
	ID       string
	VideoURL string
	Platform media.Platform
	EmbedURL string
	Model    string
	Style    prompt.Style
	Record   analysis.Record
	RawText  string
	// Appended reports whether a spreadsheet row was written. AppendErr
	// carries the failure when the append was attempted and lost.
	Appended  bool
	AppendErr error
	Duration  time.Duration
}

// Analyzer wires the collaborators of an analysis run. Recorder may be nil
// when spreadsheet persistence is not configured.
type Analyzer struct {
	Schema     analysis.Schema
	Catalog    prompt.Catalog
	Model      ModelClient
	Downloader *media.Downloader
	Recorder   Recorder
	// HTTPClient serves direct-link fetches. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Run executes one analysis request. The returned error wraps one of the
// package's failure classes; the media temp file is always removed before
// returning.
func (a *Analyzer) Run(ctx context.Context, req Request, report Reporter) (*Result, error) {
	emit := func(percent int, stage string) {
		if report != nil {
			report(percent, stage)
		}
	}

	runID := uuid.NewString()
	logger := log.With().Str("runId", runID).Logger()
	start := time.Now()

	logger.Info().
		Str("url", req.URL).
		Str("file", req.LocalFile).
		Str("model", req.Model).
		Str("style", string(req.Style)).
		Msg("Starting video analysis")

	emit(10, StageProcessingURL)

	located, displayURL, err := a.locate(req)
	if err != nil {
		return nil, a.fail(logger, runID, start, err)
	}

	emit(30, StageDownloading)

	videoPath, cleanup, err := a.fetch(ctx, req, located)
	if err != nil {
		return nil, a.fail(logger, runID, start, err)
	}
	defer cleanup()

	emit(50, StageProcessingContent)

	video, err := media.LoadVideoFile(videoPath)
	if err != nil {
		return nil, a.fail(logger, runID, start, fmt.Errorf("%w: %v", ErrMediaUnavailable, err))
	}

	promptText := prompt.Build(req.Style, a.Catalog)

	emit(70, StageAnalyzing)

	opts := gemini.Options{
		Model:           req.Model,
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxTokens,
	}
	text, err := a.Model.AnalyzeVideo(ctx, video.Path, video.MIMEType, promptText, opts)
	if err != nil {
		if errors.Is(err, gemini.ErrEmptyResponse) {
			return nil, a.fail(logger, runID, start, fmt.Errorf("%w: %v", ErrEmptyResponse, err))
		}
		return nil, a.fail(logger, runID, start, fmt.Errorf("%w: %v", ErrModelInvocation, err))
	}

	emit(90, StageFinalizing)

	record := analysis.Parse(text, a.Schema)

	result := &Result{
		ID:       runID,
		VideoURL: displayURL,
		Platform: located.Platform,
		EmbedURL: located.EmbedURL,
		Model:    req.Model,
		Style:    req.Style,
		Record:   record,
		RawText:  text,
	}

	if a.Recorder != nil && !req.SkipSheet {
		info := sheets.RunInfo{
			Model:       req.Model,
			PromptStyle: req.Style.Display(),
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
			VideoURL:    displayURL,
		}
		if err := a.Recorder.Append(ctx, info, record); err != nil {
			// The analysis is still good; surface the append failure
			// without discarding the result.
			logger.Warn().Err(err).Msg("Spreadsheet append failed")
			result.AppendErr = err
		} else {
			result.Appended = true
		}
	}

	result.Duration = time.Since(start)
	emit(100, StageComplete)

	metrics.New("Cliplens").
		Dimension("Operation", "analyze").
		Metric("AnalysisLatencyMs", float64(result.Duration.Milliseconds()), metrics.UnitMilliseconds).
		Count("AnalysisCompleted").
		Property("runId", runID).
		Property("platform", string(located.Platform)).
		Flush()

	logger.Info().
		Str("platform", string(located.Platform)).
		Dur("duration", result.Duration).
		Bool("appended", result.Appended).
		Msg("Video analysis finished")

	return result, nil
}

// locate resolves the request input into a Located value and the URL (or
// path) recorded with the result.
func (a *Analyzer) locate(req Request) (media.Located, string, error) {
	if req.LocalFile != "" {
		return media.Located{Platform: media.PlatformLocal}, req.LocalFile, nil
	}

	located, err := media.Locate(req.URL)
	if err != nil {
		return media.Located{}, "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return located, req.URL, nil
}

// fetch produces a local file for the request's media along with a cleanup
// function. Local files are used in place with a no-op cleanup.
func (a *Analyzer) fetch(ctx context.Context, req Request, located media.Located) (string, func(), error) {
	if req.LocalFile != "" {
		return req.LocalFile, func() {}, nil
	}

	if located.MediaURL != "" {
		src := &media.DirectSource{URL: located.MediaURL, Client: a.HTTPClient}
		path, cleanup, err := src.Fetch(ctx, "")
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrMediaUnavailable, err)
		}
		return path, cleanup, nil
	}

	if a.Downloader == nil || len(a.Downloader.Sources()) == 0 {
		return "", nil, fmt.Errorf("%w: no media sources configured", ErrMediaUnavailable)
	}

	path, cleanup, err := a.Downloader.Download(ctx, located.MediaID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMediaUnavailable, err)
	}
	return path, cleanup, nil
}

func (a *Analyzer) fail(logger zerolog.Logger, runID string, start time.Time, err error) error {
	metrics.New("Cliplens").
		Dimension("Operation", "analyze").
		Metric("AnalysisLatencyMs", float64(time.Since(start).Milliseconds()), metrics.UnitMilliseconds).
		Count("AnalysisFailed").
		Property("runId", runID).
		Flush()

	logger.Error().Err(err).Msg("Video analysis failed")
	return err
}
