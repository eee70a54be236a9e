package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cliplens/cliplens/internal/cli"
	"github.com/cliplens/cliplens/internal/config"
	"github.com/cliplens/cliplens/internal/gemini"
	"github.com/cliplens/cliplens/internal/logging"
	"github.com/cliplens/cliplens/internal/pipeline"
)

//go:embed all:static
var staticFS embed.FS

// CLI flags
var (
	portFlag   int
	modelFlag  string
	configFlag string
)

// Shared across handlers; set once in runMain before the server starts.
var (
	serverCfg *config.Config
	analyzer  *pipeline.Analyzer
)

var rootCmd = &cobra.Command{
	Use:   "cliplens-web",
	Short: "Web UI for AI video analysis",
	Long: `Cliplens Web starts a local web server with a browser interface for
analyzing social media videos. Paste a TikTok, Instagram, or direct video
URL (or pick a local file), watch the analysis progress, and read the
category table in the browser.

Examples:
  cliplens-web
  cliplens-web --port 9090
  cliplens-web --model gemini-2.5-pro`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Gemini model to use")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to config file (default cliplens.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	startupBegin := time.Now()

	cfg, err := config.Load(configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if modelFlag != "" {
		cfg.Gemini.Model = modelFlag
	}
	cfg.Gemini.Model = gemini.ResolveModel(cfg.Gemini.Model)
	if portFlag != 0 {
		cfg.Server.Port = portFlag
	}
	serverCfg = cfg

	ctx := context.Background()
	analyzer = cli.Bootstrap(ctx, cfg, true)

	startup := logging.NewStartupLogger("cliplens-web").
		Config("model", cfg.Gemini.Model).
		Config("promptStyle", cfg.Prompt.Style).
		Config("port", fmt.Sprintf("%d", cfg.Server.Port)).
		Feature("sheets", analyzer.Recorder != nil).
		Feature("labelCatalogOverride", cfg.Prompt.LabelsFile != "" || cfg.Prompt.LabelsURL != "").
		InitDuration(time.Since(startupBegin))
	for _, base := range cfg.Media.HTTPBases {
		startup.MediaSource("http", base)
	}
	for _, s3src := range cfg.Media.S3Sources {
		startup.MediaSource("s3", s3src.Bucket)
	}
	startup.Log()

	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/analyze", handleAnalyzeStart)
	mux.HandleFunc("/api/analyze/", handleAnalyzeStatus)
	mux.HandleFunc("/api/pick", handlePick)

	// Frontend static files (SPA fallback)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to access embedded frontend")
	}
	fileServer := http.FileServer(http.FS(staticSub))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Security headers
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' blob: data:; style-src 'self' 'unsafe-inline'; connect-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// SPA fallback: if the file doesn't exist, serve index.html
		path := r.URL.Path
		if path != "/" {
			f, err := staticSub.Open(strings.TrimPrefix(path, "/"))
			if err != nil {
				// File not found: serve index.html for client-side routing
				r.URL.Path = "/"
			} else {
				f.Close()
			}
		}
		fileServer.ServeHTTP(w, r)
	})

	// Wrap with logging and CORS for local dev
	handler := withLogging(withCORS(mux))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	log.Info().Int("port", cfg.Server.Port).Msg("Starting web server")
	fmt.Printf("\n  Cliplens Web UI: http://localhost:%d\n\n", cfg.Server.Port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// --- Middleware ---

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if strings.HasPrefix(r.URL.Path, "/api/") {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("API request")
		}
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only allow localhost origins; this server is not meant to be exposed
		origin := r.Header.Get("Origin")
		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
