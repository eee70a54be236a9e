package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/cliplens/cliplens/internal/analysis"
	"github.com/cliplens/cliplens/internal/gemini"
	"github.com/cliplens/cliplens/internal/pipeline"
	"github.com/cliplens/cliplens/internal/prompt"
)

// --- Analysis Job Management ---

type analyzeJob struct {
	mu      sync.Mutex
	id      string
	status  string // "pending", "processing", "complete", "error"
	percent int
	stage   string
	result  *pipeline.Result
	errMsg  string
}

var (
	jobsMu sync.Mutex
	jobs   = make(map[string]*analyzeJob)
)

// newJobID generates a cryptographically random job ID to prevent
// sequential enumeration.
func newJobID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate random job ID")
	}
	return "analyze-" + hex.EncodeToString(b)
}

func newJob() *analyzeJob {
	jobsMu.Lock()
	defer jobsMu.Unlock()
	id := newJobID()
	j := &analyzeJob{
		id:     id,
		status: "pending",
	}
	jobs[id] = j
	return j
}

func getJob(id string) *analyzeJob {
	jobsMu.Lock()
	defer jobsMu.Unlock()
	return jobs[id]
}

// --- Analysis HTTP Handlers ---

// POST /api/analyze
func handleAnalyzeStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		URL         string   `json:"url,omitempty"`
		File        string   `json:"file,omitempty"`
		Model       string   `json:"model,omitempty"`
		Style       string   `json:"style,omitempty"`
		Temperature *float32 `json:"temperature,omitempty"`
		MaxTokens   int32    `json:"maxTokens,omitempty"`
		SkipSheet   bool     `json:"skipSheet,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" && req.File == "" {
		httpError(w, http.StatusBadRequest, "provide a video url or a local file path")
		return
	}
	if req.URL != "" && req.File != "" {
		httpError(w, http.StatusBadRequest, "url and file are mutually exclusive")
		return
	}
	if containsPathTraversal(req.File) {
		httpError(w, http.StatusBadRequest, "invalid file path")
		return
	}

	style := serverCfg.Prompt.Style
	if req.Style != "" {
		style = req.Style
	}
	parsedStyle, err := prompt.ParseStyle(style)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	temperature := serverCfg.Gemini.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	if temperature < 0 || temperature > 1 {
		httpError(w, http.StatusBadRequest, fmt.Sprintf("temperature must be between 0.0 and 1.0, got %.2f", temperature))
		return
	}

	maxTokens := serverCfg.Gemini.MaxOutputTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	model := serverCfg.Gemini.Model
	if req.Model != "" {
		model = gemini.ResolveModel(req.Model)
	}

	job := newJob()

	go runAnalyzeJob(job, pipeline.Request{
		URL:         req.URL,
		LocalFile:   req.File,
		Style:       parsedStyle,
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		SkipSheet:   req.SkipSheet,
	})

	respondJSON(w, http.StatusAccepted, map[string]string{
		"id": job.id,
	})
}

// GET /api/analyze/{id}
func handleAnalyzeStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jobID := strings.TrimPrefix(r.URL.Path, "/api/analyze/")
	if jobID == "" || strings.Contains(jobID, "/") {
		httpError(w, http.StatusNotFound, "not found")
		return
	}
	// Job IDs are stored as "analyze-N"; accept the bare hex too
	if !strings.HasPrefix(jobID, "analyze-") {
		jobID = "analyze-" + jobID
	}

	job := getJob(jobID)
	if job == nil {
		httpError(w, http.StatusNotFound, "job not found")
		return
	}

	job.mu.Lock()
	defer job.mu.Unlock()

	resp := map[string]interface{}{
		"id":      job.id,
		"status":  job.status,
		"percent": job.percent,
		"stage":   job.stage,
	}
	if job.errMsg != "" {
		resp["error"] = job.errMsg
	}
	if job.status == "complete" && job.result != nil {
		resp["result"] = resultPayload(job.result)
	}

	respondJSON(w, http.StatusOK, resp)
}

type categoryRow struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

// resultPayload shapes a finished analysis for the status response, with the
// category rows in schema order.
func resultPayload(result *pipeline.Result) map[string]interface{} {
	categories := analysis.DefaultCategories()
	rows := make([]categoryRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, categoryRow{
			Category: string(category),
			Value:    result.Record[category],
		})
	}

	payload := map[string]interface{}{
		"videoUrl":    result.VideoURL,
		"platform":    string(result.Platform),
		"embedUrl":    result.EmbedURL,
		"model":       result.Model,
		"promptStyle": result.Style.Display(),
		"durationMs":  result.Duration.Milliseconds(),
		"rows":        rows,
		"appended":    result.Appended,
	}
	if result.AppendErr != nil {
		payload["appendError"] = result.AppendErr.Error()
	}
	return payload
}
