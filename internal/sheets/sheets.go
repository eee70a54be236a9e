// Package sheets appends analysis rows to a Google spreadsheet using a
// service account. Each row records the run settings followed by one column
// per analysis category, matching the header written on first use.
package sheets

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/cliplens/cliplens/internal/analysis"
	"github.com/cliplens/cliplens/internal/config"
	"github.com/cliplens/cliplens/internal/metrics"
)

// Platform is recorded in the "AI Platform" column of every row.
const Platform = "Google Gemini"

const timestampLayout = "2006-01-02 15:04:05"

// settingsColumns lead every row before the per-category values.
var settingsColumns = []string{
	"Timestamp",
	"AI Platform",
	"Model",
	"Prompting Style",
	"Temperature",
	"Max Tokens",
	"Video URL",
}

// RunInfo holds the request settings recorded alongside each analysis row.
type RunInfo struct {
	Model       string
	PromptStyle string
	Temperature float32
	MaxTokens   int32
	VideoURL    string
}

// Header returns the full header row: run settings then one column per
// category, in category order.
func Header(categories []analysis.Category) []string {
	header := append([]string{}, settingsColumns...)
	for _, c := range categories {
		header = append(header, string(c))
	}
	return header
}

// BuildRow flattens one analysis into a spreadsheet row in header order.
// Categories the record has no value for become empty cells.
func BuildRow(now time.Time, info RunInfo, categories []analysis.Category, record analysis.Record) []interface{} {
	row := []interface{}{
		now.Format(timestampLayout),
		Platform,
		info.Model,
		info.PromptStyle,
		strconv.FormatFloat(float64(info.Temperature), 'g', -1, 32),
		int(info.MaxTokens),
		info.VideoURL,
	}
	for _, c := range categories {
		row = append(row, record[c])
	}
	return row
}

// Appender writes analysis rows to one spreadsheet tab.
type Appender struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	categories    []analysis.Category
}

// NewAppender builds a Sheets client from service account credentials and
// makes sure the header row exists before any rows are appended.
func NewAppender(ctx context.Context, cfg config.SheetsConfig, categories []analysis.Category) (*Appender, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account credentials: %w", err)
	}

	jwtConf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	a := &Appender{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		categories:    categories,
	}
	if err := a.ensureHeader(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// ensureHeader writes the header row when row 1 of the sheet is empty.
func (a *Appender) ensureHeader(ctx context.Context) error {
	readRange := fmt.Sprintf("%s!1:1", a.sheetName)
	resp, err := a.svc.Spreadsheets.Values.Get(a.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read sheet header: %w", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		log.Debug().Str("sheet", a.sheetName).Msg("Sheet header already present")
		return nil
	}

	header := Header(a.categories)
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err = a.svc.Spreadsheets.Values.Update(a.spreadsheetID, readRange, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet header: %w", err)
	}

	log.Info().
		Str("sheet", a.sheetName).
		Int("columns", len(header)).
		Msg("Sheet header written")
	return nil
}

// Append writes one analysis row to the spreadsheet.
func (a *Appender) Append(ctx context.Context, info RunInfo, record analysis.Record) error {
	row := BuildRow(time.Now(), info, a.categories, record)
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}

	start := time.Now()
	_, err := a.svc.Spreadsheets.Values.Append(a.spreadsheetID, a.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	elapsed := time.Since(start)

	m := metrics.New("Cliplens").
		Dimension("Operation", "sheetAppend").
		Metric("SheetAppendLatencyMs", float64(elapsed.Milliseconds()), metrics.UnitMilliseconds).
		Count("SheetAppendCalls")
	if err != nil {
		m.Count("SheetAppendErrors")
	}
	m.Flush()

	if err != nil {
		log.Error().Err(err).Str("spreadsheet", a.spreadsheetID).Msg("Failed to append analysis row")
		return fmt.Errorf("failed to append row to spreadsheet: %w", err)
	}

	log.Info().
		Str("spreadsheet", a.spreadsheetID).
		Str("sheet", a.sheetName).
		Msg("Analysis row appended")
	return nil
}
