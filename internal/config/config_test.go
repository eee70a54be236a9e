package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("CLIPLENS_MODEL", "")
	t.Setenv("CLIPLENS_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Gemini.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.Gemini.Temperature)
	}
	if cfg.Gemini.MaxOutputTokens != 2048 {
		t.Errorf("MaxOutputTokens = %d, want 2048", cfg.Gemini.MaxOutputTokens)
	}
	if cfg.Prompt.Style != StyleWithOptions {
		t.Errorf("Style = %q, want %q", cfg.Prompt.Style, StyleWithOptions)
	}
	if cfg.Sheets.Enabled() {
		t.Error("Sheets.Enabled() = true with no spreadsheet configured")
	}
}

func TestLoad_FileAndEnvLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cliplens.yaml")
	body := `
server:
  port: 9090
gemini:
  model: gemini-2.0-flash
  temperature: 0.3
media:
  http_bases:
    - https://videos.example.com/tiktok
  s3_sources:
    - bucket: clip-archive
      prefix: instagram
      region: us-east-1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("CLIPLENS_MODEL", "gemini-2.5-pro")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090 from file", cfg.Server.Port)
	}
	// Environment beats the file for the model.
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q, want env override gemini-2.5-pro", cfg.Gemini.Model)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3 from file", cfg.Gemini.Temperature)
	}
	if len(cfg.Media.HTTPBases) != 1 || cfg.Media.HTTPBases[0] != "https://videos.example.com/tiktok" {
		t.Errorf("HTTPBases = %v, want one archive base", cfg.Media.HTTPBases)
	}
	if len(cfg.Media.S3Sources) != 1 || cfg.Media.S3Sources[0].Bucket != "clip-archive" {
		t.Errorf("S3Sources = %v, want clip-archive", cfg.Media.S3Sources)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load() with an explicit missing file should fail")
	}
}

// A missing API key is not a config error; key resolution happens in the
// auth package, which has fallbacks beyond the environment.
func TestLoad_NoAPIKeyIsAllowed(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("CLIPLENS_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Gemini.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.Gemini.APIKey)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		apiKey  string
		wantErr string
	}{
		{
			name:    "temperature out of range",
			body:    "gemini:\n  temperature: 1.5\n",
			apiKey:  "k",
			wantErr: "temperature",
		},
		{
			name:    "token cap out of range",
			body:    "gemini:\n  max_output_tokens: 100\n",
			apiKey:  "k",
			wantErr: "max_output_tokens",
		},
		{
			name:    "unknown prompt style",
			body:    "prompt:\n  style: freeform\n",
			apiKey:  "k",
			wantErr: "prompt.style",
		},
		{
			name:    "s3 source without bucket",
			body:    "media:\n  s3_sources:\n    - prefix: videos\n",
			apiKey:  "k",
			wantErr: "bucket",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cliplens.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			t.Setenv("GEMINI_API_KEY", tt.apiKey)

			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
