package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cliplens/cliplens/internal/analysis"
	"github.com/cliplens/cliplens/internal/cli"
	"github.com/cliplens/cliplens/internal/config"
	"github.com/cliplens/cliplens/internal/gemini"
	"github.com/cliplens/cliplens/internal/logging"
	"github.com/cliplens/cliplens/internal/pipeline"
	"github.com/cliplens/cliplens/internal/progress"
	"github.com/cliplens/cliplens/internal/prompt"
)

// CLI flags
var (
	urlFlag         string
	fileFlag        string
	modelFlag       string
	styleFlag       string
	temperatureFlag float32
	maxTokensFlag   int32
	noSheetFlag     bool
	rawFlag         bool
	configFlag      string
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "cliplens [url]",
	Short: "AI video analysis for social media clips",
	Long: `Cliplens sends a TikTok, Instagram, or direct video URL to Gemini and
prints a fixed table of analysis categories: summary, themes, styles,
sentiment, brand safety, and more.

When a spreadsheet is configured, each analysis is appended as a row so
results accumulate across runs.

Examples:
  cliplens https://www.tiktok.com/@creator/video/7301234567890123456
  cliplens --url https://www.instagram.com/reel/Cxy123AbCdE/
  cliplens --file ./clip.mp4 --style without_options
  cliplens https://cdn.example.com/v/clip.mp4 --model gemini-2.5-pro --no-sheet`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&urlFlag, "url", "u", "", "Video URL to analyze (TikTok, Instagram, or direct link)")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Analyze a local video file instead of a URL")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Gemini model to use (e.g., gemini-2.5-flash, gemini-2.5-pro)")
	rootCmd.Flags().StringVarP(&styleFlag, "style", "s", "", "Prompt style: with_options or without_options")
	rootCmd.Flags().Float32VarP(&temperatureFlag, "temperature", "t", -1, "Sampling temperature between 0.0 and 1.0")
	rootCmd.Flags().Int32Var(&maxTokensFlag, "max-tokens", 0, "Maximum output tokens for the analysis")
	rootCmd.Flags().BoolVar(&noSheetFlag, "no-sheet", false, "Skip the spreadsheet append for this run")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw model response after the table")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to config file (default cliplens.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()

	cfg, err := config.Load(configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if modelFlag != "" {
		cfg.Gemini.Model = modelFlag
	}
	cfg.Gemini.Model = gemini.ResolveModel(cfg.Gemini.Model)

	videoURL := urlFlag
	if videoURL == "" && len(args) > 0 {
		videoURL = args[0]
	}
	if videoURL == "" && fileFlag == "" {
		log.Fatal().Msg("provide a video URL (argument or --url) or a local file via --file")
	}
	if videoURL != "" && fileFlag != "" {
		log.Fatal().Msg("--url and --file are mutually exclusive")
	}

	req, err := buildRequest(cfg, videoURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid analysis settings")
	}

	ctx := context.Background()
	analyzer := cli.Bootstrap(ctx, cfg, !noSheetFlag)

	printBanner(req, fileFlag != "")

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Starting..."),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	animator := progress.NewAnimator(50*time.Millisecond, func(u progress.Update) {
		bar.Describe(u.Stage)
		_ = bar.Set(u.Percent)
	})

	result, err := analyzer.Run(ctx, req, animator.SetTarget)
	animator.Stop()
	_ = bar.Finish()
	fmt.Println()

	if err != nil {
		fmt.Println(color.RedString("✗ %s", failureMessage(err)))
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(1)
	}

	printResult(result)
}

// buildRequest layers CLI flags over the loaded config.
func buildRequest(cfg *config.Config, videoURL string) (pipeline.Request, error) {
	styleToken := cfg.Prompt.Style
	if styleFlag != "" {
		styleToken = styleFlag
	}
	style, err := prompt.ParseStyle(styleToken)
	if err != nil {
		return pipeline.Request{}, err
	}

	temperature := cfg.Gemini.Temperature
	if temperatureFlag >= 0 {
		temperature = temperatureFlag
	}
	if temperature < 0 || temperature > 1 {
		return pipeline.Request{}, fmt.Errorf("temperature must be between 0.0 and 1.0, got %.2f", temperature)
	}

	maxTokens := cfg.Gemini.MaxOutputTokens
	if maxTokensFlag > 0 {
		maxTokens = maxTokensFlag
	}

	return pipeline.Request{
		URL:         videoURL,
		LocalFile:   fileFlag,
		Style:       style,
		Model:       cfg.Gemini.Model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		SkipSheet:   noSheetFlag,
	}, nil
}

func printBanner(req pipeline.Request, localFile bool) {
	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("🎬 Video Analysis")
	fmt.Println("============================================")
	if localFile {
		fmt.Printf("File: %s\n", req.LocalFile)
	} else {
		fmt.Printf("URL: %s\n", req.URL)
	}
	fmt.Printf("Model: %s\n", req.Model)
	fmt.Printf("Prompt style: %s\n", req.Style.Display())
	fmt.Printf("Temperature: %.1f\n", req.Temperature)
	fmt.Printf("Max tokens: %d\n", req.MaxTokens)
	fmt.Println("--------------------------------------------")
}

func printResult(result *pipeline.Result) {
	fmt.Println(color.GreenString("✅ Analysis Complete!"))
	fmt.Printf("Platform: %s    Took: %s\n", result.Platform, cli.FormatDurationShort(result.Duration))
	if result.EmbedURL != "" {
		fmt.Printf("Embed: %s\n", result.EmbedURL)
	}
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Category", "Analysis"})
	table.SetBorder(false)
	table.SetRowLine(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColWidth(80)

	for _, category := range analysis.DefaultCategories() {
		table.Append([]string{string(category), result.Record[category]})
	}
	table.Render()

	fmt.Println()
	switch {
	case result.Appended:
		fmt.Println(color.GreenString("✓ Appended to spreadsheet"))
	case result.AppendErr != nil:
		fmt.Println(color.YellowString("⚠ Spreadsheet append failed: %v", result.AppendErr))
	}

	if rawFlag {
		fmt.Println()
		fmt.Println("--------------------------------------------")
		fmt.Println("Raw model response:")
		fmt.Println(result.RawText)
	}
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
