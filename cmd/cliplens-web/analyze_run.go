package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/cliplens/cliplens/internal/pipeline"
)

// runAnalyzeJob drives one pipeline run in the background, mirroring the
// flow of the CLI. Stage milestones land in the job so status polls can
// render a progress bar.
func runAnalyzeJob(job *analyzeJob, req pipeline.Request) {
	job.mu.Lock()
	job.status = "processing"
	job.mu.Unlock()

	ctx := context.Background()

	result, err := analyzer.Run(ctx, req, func(percent int, stage string) {
		job.mu.Lock()
		job.percent = percent
		job.stage = stage
		job.mu.Unlock()
	})
	if err != nil {
		setJobError(job, failureMessage(err))
		return
	}

	job.mu.Lock()
	job.status = "complete"
	job.result = result
	job.mu.Unlock()

	log.Info().
		Str("job", job.id).
		Str("runId", result.ID).
		Str("platform", string(result.Platform)).
		Msg("Web analysis complete")
}

func setJobError(job *analyzeJob, msg string) {
	job.mu.Lock()
	defer job.mu.Unlock()
	job.status = "error"
	job.errMsg = msg
	log.Error().Str("job", job.id).Str("error", msg).Msg("Analysis job failed")
}

// failureMessage maps a pipeline failure class to a one-line user message.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrInvalidURL):
		return "The URL is not a supported TikTok, Instagram, or direct video link."
	case errors.Is(err, pipeline.ErrMediaUnavailable):
		return "The video could not be retrieved from any configured source."
	case errors.Is(err, pipeline.ErrEmptyResponse):
		return "The model returned an empty analysis. Try again or switch models."
	case errors.Is(err, pipeline.ErrModelInvocation):
		return "The analysis request to Gemini failed."
	}
	return "Video analysis failed."
}
