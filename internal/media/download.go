package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cliplens/cliplens/internal/metrics"
)

// Source fetches the media for a platform video id into a local temp file.
// Implementations return the file path and a cleanup function that removes it.
type Source interface {
	Name() string
	Fetch(ctx context.Context, mediaID string) (string, func(), error)
}

// HTTPSource looks a video id up under an HTTP archive base: it probes
// {base}/{id}.mp4 with HEAD and streams the GET into a temp file.
type HTTPSource struct {
	Base   string
	Client *http.Client
}

func (s *HTTPSource) Name() string { return s.Base }

func (s *HTTPSource) Fetch(ctx context.Context, mediaID string) (string, func(), error) {
	url := strings.TrimRight(s.Base, "/") + "/" + mediaID + ".mp4"
	if err := probe(ctx, s.client(), url); err != nil {
		return "", nil, err
	}
	return fetchToTemp(ctx, s.client(), url)
}

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

// DirectSource fetches one exact media URL; the video id is ignored.
type DirectSource struct {
	URL    string
	Client *http.Client
}

func (s *DirectSource) Name() string { return s.URL }

func (s *DirectSource) Fetch(ctx context.Context, _ string) (string, func(), error) {
	if err := probe(ctx, s.client(), s.URL); err != nil {
		return "", nil, err
	}
	return fetchToTemp(ctx, s.client(), s.URL)
}

func (s *DirectSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

// probe issues a HEAD request so a missing object is detected without
// streaming a body.
func probe(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe returned status %d", resp.StatusCode)
	}
	return nil
}

// fetchToTemp downloads a URL to a temporary file. Returns the temp file path
// and a cleanup function that removes the file.
func fetchToTemp(ctx context.Context, client *http.Client, url string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", "cliplens-*.mp4")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	tmpFile.Close()

	log.Debug().
		Str("path", tmpFile.Name()).
		Int64("bytes", n).
		Str("url", url).
		Msg("Downloaded media to temp file")

	cleanup := func() { os.Remove(tmpFile.Name()) }
	return tmpFile.Name(), cleanup, nil
}

// Downloader walks an ordered source chain until one produces the media.
type Downloader struct {
	sources []Source
}

func NewDownloader(sources ...Source) *Downloader {
	return &Downloader{sources: sources}
}

// Sources returns the configured chain, for startup logging.
func (d *Downloader) Sources() []Source {
	out := make([]Source, len(d.sources))
	copy(out, d.sources)
	return out
}

// Download tries each source once, in order, and returns the first success.
// Failures along the chain are logged and skipped; there is no backoff and no
// retry of an exhausted chain.
func (d *Downloader) Download(ctx context.Context, mediaID string) (string, func(), error) {
	start := time.Now()
	for i, src := range d.sources {
		path, cleanup, err := src.Fetch(ctx, mediaID)
		if err != nil {
			log.Warn().
				Str("source", src.Name()).
				Str("mediaId", mediaID).
				Err(err).
				Msg("Media source failed, trying next")
			continue
		}

		var size int64
		if info, statErr := os.Stat(path); statErr == nil {
			size = info.Size()
		}
		metrics.New("Cliplens").
			Dimension("Operation", "download").
			Metric("DownloadLatencyMs", float64(time.Since(start).Milliseconds()), metrics.UnitMilliseconds).
			Metric("DownloadBytes", float64(size), metrics.UnitBytes).
			Metric("SourceIndex", float64(i), metrics.UnitNone).
			Property("source", src.Name()).
			Property("mediaId", mediaID).
			Flush()

		return path, cleanup, nil
	}

	metrics.New("Cliplens").
		Dimension("Operation", "download").
		Count("DownloadErrors").
		Property("mediaId", mediaID).
		Flush()

	return "", nil, fmt.Errorf("no source produced media for id %q (%d tried)", mediaID, len(d.sources))
}
