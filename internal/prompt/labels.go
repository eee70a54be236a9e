package prompt

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// catalogYAML is the default label catalog shipped with the binary.
//
//go:embed catalog.yaml
var catalogYAML []byte

// Parsed once at package initialization so a malformed embedded catalog
// fails fast rather than on the first analysis.
var defaultCatalog = mustParseCatalog(catalogYAML)

// Bucket groups labels under a named heading. Bucketed dimensions keep their
// bucket name in the rendered option list so the model can cite it.
type Bucket struct {
	Name   string   `yaml:"name"`
	Labels []string `yaml:"labels"`
}

// Catalog holds the allowed labels substituted into the with-options prompt,
// one list per constrained analysis dimension.
type Catalog struct {
	ContentThemes     []string `yaml:"content_themes"`
	ContentStyles     []string `yaml:"content_styles"`
	CreatorPresence   []string `yaml:"creator_presence"`
	KeyVideoElements  []string `yaml:"key_video_elements"`
	TextGraphics      []string `yaml:"text_graphics"`
	SpokenWords       []string `yaml:"spoken_words"`
	TechnicalElements []string `yaml:"technical_elements"`
	AuditoryElements  []string `yaml:"auditory_elements"`
	Languages         []Bucket `yaml:"languages"`
	Sentiments        []Bucket `yaml:"sentiments"`
}

// languageOptions flattens every language bucket into one comma-separated list.
func (c Catalog) languageOptions() string {
	var labels []string
	for _, b := range c.Languages {
		labels = append(labels, b.Labels...)
	}
	return strings.Join(labels, ", ")
}

// sentimentOptions renders each sentiment bucket as "Name: label, label".
func (c Catalog) sentimentOptions() string {
	parts := make([]string, 0, len(c.Sentiments))
	for _, b := range c.Sentiments {
		parts = append(parts, fmt.Sprintf("%s: %s", b.Name, strings.Join(b.Labels, ", ")))
	}
	return strings.Join(parts, "; ")
}

func parseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse label catalog: %w", err)
	}
	return c, nil
}

func mustParseCatalog(data []byte) Catalog {
	c, err := parseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog returns the embedded label catalog.
func DefaultCatalog() Catalog {
	return defaultCatalog
}

// LoadCatalog resolves the label catalog for prompt rendering. A local YAML
// file takes priority, then an HTTP(S) URL, then the embedded default. An
// explicitly configured source that cannot be read or parsed is an error
// rather than a silent fallback.
func LoadCatalog(ctx context.Context, file, url string) (Catalog, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to read label catalog %s: %w", file, err)
		}
		c, err := parseCatalog(data)
		if err != nil {
			return Catalog{}, fmt.Errorf("label catalog %s: %w", file, err)
		}
		log.Debug().Str("file", file).Msg("Loaded label catalog from file")
		return c, nil
	}
	if url != "" {
		data, err := fetchCatalog(ctx, url)
		if err != nil {
			return Catalog{}, err
		}
		c, err := parseCatalog(data)
		if err != nil {
			return Catalog{}, fmt.Errorf("label catalog %s: %w", url, err)
		}
		log.Debug().Str("url", url).Msg("Loaded label catalog from URL")
		return c, nil
	}
	return defaultCatalog, nil
}

func fetchCatalog(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch label catalog %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("label catalog %s returned status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
