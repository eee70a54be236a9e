// Package gemini wraps the Gemini API for video analysis: upload through the
// Files API, wait for processing, generate the analysis, delete the upload.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/cliplens/cliplens/internal/metrics"
)

const (
	uploadPollingInterval = 5 * time.Second
	uploadTimeout         = 10 * time.Minute
)

// ErrEmptyResponse marks a completed API call that produced no usable text.
// Callers distinguish it from transport or quota failures.
var ErrEmptyResponse = errors.New("received empty response from Gemini API")

// Options control a single analysis invocation.
type Options struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// Client invokes the Gemini API for video analysis.
type Client struct {
	genai *genai.Client
}

// NewClient creates a Gemini client authenticated with the given API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{genai: c}, nil
}

// Raw exposes the underlying SDK client for API key validation.
func (c *Client) Raw() *genai.Client {
	return c.genai
}

// AnalyzeVideo uploads the video at videoPath, waits for the Files API to
// finish processing it, and generates an analysis with the given prompt. The
// uploaded file is deleted before returning.
func (c *Client) AnalyzeVideo(ctx context.Context, videoPath, mimeType, prompt string, opts Options) (string, error) {
	uploaded, err := c.uploadVideo(ctx, videoPath, mimeType)
	if err != nil {
		return "", err
	}
	defer func() {
		if _, err := c.genai.Files.Delete(ctx, uploaded.Name, nil); err != nil {
			log.Warn().Err(err).Str("file", uploaded.Name).Msg("Failed to delete uploaded Gemini file")
		} else {
			log.Debug().Str("file", uploaded.Name).Msg("Uploaded Gemini file deleted")
		}
	}()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	parts := []*genai.Part{
		{FileData: &genai.FileData{MIMEType: uploaded.MIMEType, FileURI: uploaded.URI}},
		{Text: prompt},
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	start := time.Now()
	log.Debug().
		Str("model", opts.Model).
		Int("prompt_length", len(prompt)).
		Msg("Starting Gemini API call for video analysis")
	resp, err := c.genai.Models.GenerateContent(ctx, opts.Model, contents, config)
	elapsed := time.Since(start)

	m := metrics.New("Cliplens").
		Dimension("Operation", "videoAnalysis").
		Metric("GeminiApiLatencyMs", float64(elapsed.Milliseconds()), metrics.UnitMilliseconds).
		Count("GeminiApiCalls")
	if err != nil {
		m.Count("GeminiApiErrors")
	}
	if resp != nil && resp.UsageMetadata != nil {
		m.Metric("GeminiInputTokens", float64(resp.UsageMetadata.PromptTokenCount), metrics.UnitCount)
		m.Metric("GeminiOutputTokens", float64(resp.UsageMetadata.CandidatesTokenCount), metrics.UnitCount)
	}
	m.Flush()

	if err != nil {
		log.Error().Err(err).Dur("duration", elapsed).Msg("Failed to generate analysis from Gemini")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		log.Warn().Dur("duration", elapsed).Msg("Received empty response from Gemini")
		return "", ErrEmptyResponse
	}

	text := resp.Text()
	if text == "" {
		log.Warn().Dur("duration", elapsed).Msg("Gemini response contained no text")
		return "", ErrEmptyResponse
	}

	log.Info().
		Int("response_length", len(text)).
		Dur("duration", elapsed).
		Msg("Video analysis complete")

	return text, nil
}

// uploadVideo uploads a video file to the Gemini Files API and waits for processing.
func (c *Client) uploadVideo(ctx context.Context, videoPath, mimeType string) (*genai.File, error) {
	f, err := os.Open(videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	log.Debug().
		Str("path", videoPath).
		Int64("size_bytes", info.Size()).
		Str("mime_type", mimeType).
		Msg("Starting Gemini Files API upload for video")

	uploadStart := time.Now()
	file, err := c.genai.Files.Upload(ctx, f, &genai.UploadFileConfig{
		MIMEType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	log.Debug().
		Str("name", file.Name).
		Str("uri", file.URI).
		Dur("upload_duration", time.Since(uploadStart)).
		Msg("Video uploaded, waiting for processing...")

	deadline := time.Now().Add(uploadTimeout)
	pollIteration := 0

	for file.State == genai.FileStateProcessing {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timeout waiting for video processing after %v", uploadTimeout)
		}

		pollIteration++
		log.Debug().
			Str("state", string(file.State)).
			Int("poll_iteration", pollIteration).
			Msg("Video still processing, waiting...")

		time.Sleep(uploadPollingInterval)

		file, err = c.genai.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get file state: %w", err)
		}
	}

	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("video processing failed")
	}

	totalUploadTime := time.Since(uploadStart)
	log.Info().
		Str("name", file.Name).
		Str("state", string(file.State)).
		Dur("total_time", totalUploadTime).
		Int("poll_iterations", pollIteration).
		Msg("Video ready for inference")

	metrics.New("Cliplens").
		Dimension("Operation", "filesApiUpload").
		Metric("GeminiFilesApiUploadMs", float64(totalUploadTime.Milliseconds()), metrics.UnitMilliseconds).
		Metric("GeminiFilesApiUploadBytes", float64(info.Size()), metrics.UnitBytes).
		Count("GeminiApiCalls").
		Flush()

	return file, nil
}
