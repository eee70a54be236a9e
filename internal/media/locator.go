// Package media classifies social-video URLs and retrieves the underlying
// media file through an ordered chain of fallback sources.
package media

import (
	"fmt"
	"regexp"
	"strings"
)

// Platform identifies where a video URL points.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformDirect    Platform = "direct"
	// PlatformLocal marks media read from the local filesystem, not a URL.
	PlatformLocal   Platform = "local"
	PlatformUnknown Platform = "unknown"
)

// Kind classifies the shape of the input URL.
type Kind string

const (
	KindEmbed   Kind = "embed"
	KindPost    Kind = "post"
	KindDirect  Kind = "direct"
	KindUnknown Kind = "unknown"
)

// Located describes a classified video URL: the owning platform, the media id
// the fallback sources are probed with, and the embeddable display form.
type Located struct {
	Platform Platform
	Kind     Kind
	// MediaID is the platform's video id. Empty for direct links.
	MediaID string
	// EmbedURL is a browser-embeddable form of the input, for display.
	EmbedURL string
	// MediaURL is the exact fetch target for direct links. Empty otherwise.
	MediaURL string
}

var (
	instagramPostPattern = regexp.MustCompile(`/p/([A-Za-z0-9_-]+)`)
	instagramReelPattern = regexp.MustCompile(`/reel/([A-Za-z0-9_-]+)`)
)

// DetectPlatform classifies a URL by substring. Direct links are anything on
// amazonaws.com or ending in .mp4.
func DetectPlatform(rawURL string) Platform {
	switch {
	case strings.Contains(rawURL, "tiktok.com"):
		return PlatformTikTok
	case strings.Contains(rawURL, "instagram.com"):
		return PlatformInstagram
	case strings.Contains(rawURL, "amazonaws.com") || strings.HasSuffix(rawURL, ".mp4"):
		return PlatformDirect
	}
	return PlatformUnknown
}

// ExtractTikTokID pulls the video id out of a TikTok post or embed URL.
// Returns "" when the URL carries no id.
func ExtractTikTokID(rawURL string) string {
	if strings.Contains(rawURL, "embed") {
		trimmed := strings.Trim(rawURL, "/")
		last := trimmed[strings.LastIndex(trimmed, "/")+1:]
		id, _, _ := strings.Cut(last, "?")
		return id
	}
	if _, after, ok := strings.Cut(rawURL, "/video/"); ok {
		id, _, _ := strings.Cut(after, "?")
		return strings.Trim(id, "/")
	}
	return ""
}

// ExtractInstagramID pulls the shortcode out of an Instagram post or reel URL.
// Returns "" when the URL carries no shortcode.
func ExtractInstagramID(rawURL string) string {
	for _, pattern := range []*regexp.Regexp{instagramPostPattern, instagramReelPattern} {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// Locate classifies a raw URL and derives its media id and embed form.
// Unrecognized shapes and platform URLs without an extractable id fail; the
// caller decides how to surface that.
func Locate(rawURL string) (Located, error) {
	rawURL = strings.TrimSpace(rawURL)

	switch DetectPlatform(rawURL) {
	case PlatformTikTok:
		id := ExtractTikTokID(rawURL)
		if strings.Contains(rawURL, "embed") {
			return Located{Platform: PlatformTikTok, Kind: KindEmbed, MediaID: id, EmbedURL: rawURL}, nil
		}
		if id == "" {
			return Located{}, fmt.Errorf("no video id in TikTok URL %q", rawURL)
		}
		return Located{
			Platform: PlatformTikTok,
			Kind:     KindPost,
			MediaID:  id,
			EmbedURL: "https://www.tiktok.com/embed/v2/" + id,
		}, nil

	case PlatformInstagram:
		id := ExtractInstagramID(rawURL)
		if strings.Contains(rawURL, "embed") {
			return Located{Platform: PlatformInstagram, Kind: KindEmbed, MediaID: id, EmbedURL: rawURL}, nil
		}
		if id == "" {
			return Located{}, fmt.Errorf("no shortcode in Instagram URL %q", rawURL)
		}
		return Located{
			Platform: PlatformInstagram,
			Kind:     KindPost,
			MediaID:  id,
			EmbedURL: "https://www.instagram.com/p/" + id + "/embed/",
		}, nil

	case PlatformDirect:
		u := rawURL
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			u = "https://" + u
		}
		return Located{Platform: PlatformDirect, Kind: KindDirect, EmbedURL: u, MediaURL: u}, nil
	}

	return Located{}, fmt.Errorf("unrecognized video URL %q", rawURL)
}
