package media

import "testing"

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://www.tiktok.com/@user/video/7234567890123456789", PlatformTikTok},
		{"https://www.tiktok.com/embed/v2/7234567890123456789", PlatformTikTok},
		{"https://www.instagram.com/p/Cxyz123_-/", PlatformInstagram},
		{"https://www.instagram.com/reel/Cxyz123/", PlatformInstagram},
		{"https://clips.s3.us-east-1.amazonaws.com/videos/abc", PlatformDirect},
		{"https://cdn.example.com/clip.mp4", PlatformDirect},
		{"https://example.com/watch?v=123", PlatformUnknown},
		{"", PlatformUnknown},
	}
	for _, tt := range tests {
		if got := DetectPlatform(tt.url); got != tt.want {
			t.Errorf("DetectPlatform(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestExtractTikTokID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.tiktok.com/@user/video/7234567890123456789", "7234567890123456789"},
		{"https://www.tiktok.com/@user/video/7234567890123456789?is_copy_url=1", "7234567890123456789"},
		{"https://www.tiktok.com/@user/video/7234567890123456789/", "7234567890123456789"},
		{"https://www.tiktok.com/embed/v2/7234567890123456789", "7234567890123456789"},
		{"https://www.tiktok.com/embed/v2/7234567890123456789?lang=en", "7234567890123456789"},
		{"https://www.tiktok.com/@user", ""},
	}
	for _, tt := range tests {
		if got := ExtractTikTokID(tt.url); got != tt.want {
			t.Errorf("ExtractTikTokID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestExtractInstagramID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.instagram.com/p/Cxyz123_-/", "Cxyz123_-"},
		{"https://www.instagram.com/reel/DAbc987/", "DAbc987"},
		{"https://www.instagram.com/p/Cxyz123/embed/", "Cxyz123"},
		{"https://www.instagram.com/someuser/", ""},
	}
	for _, tt := range tests {
		if got := ExtractInstagramID(tt.url); got != tt.want {
			t.Errorf("ExtractInstagramID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    Located
		wantErr bool
	}{
		{
			name: "tiktok post becomes embed",
			url:  "https://www.tiktok.com/@user/video/7234567890123456789",
			want: Located{
				Platform: PlatformTikTok,
				Kind:     KindPost,
				MediaID:  "7234567890123456789",
				EmbedURL: "https://www.tiktok.com/embed/v2/7234567890123456789",
			},
		},
		{
			name: "tiktok embed passes through",
			url:  "https://www.tiktok.com/embed/v2/7234567890123456789",
			want: Located{
				Platform: PlatformTikTok,
				Kind:     KindEmbed,
				MediaID:  "7234567890123456789",
				EmbedURL: "https://www.tiktok.com/embed/v2/7234567890123456789",
			},
		},
		{
			name: "instagram reel becomes post embed",
			url:  "https://www.instagram.com/reel/DAbc987/",
			want: Located{
				Platform: PlatformInstagram,
				Kind:     KindPost,
				MediaID:  "DAbc987",
				EmbedURL: "https://www.instagram.com/p/DAbc987/embed/",
			},
		},
		{
			name: "direct link gains scheme",
			url:  "cdn.example.com/clip.mp4",
			want: Located{
				Platform: PlatformDirect,
				Kind:     KindDirect,
				EmbedURL: "https://cdn.example.com/clip.mp4",
				MediaURL: "https://cdn.example.com/clip.mp4",
			},
		},
		{
			name:    "tiktok without video id",
			url:     "https://www.tiktok.com/@user",
			wantErr: true,
		},
		{
			name:    "unrecognized",
			url:     "https://example.com/watch?v=1",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Locate(%q) succeeded, want error", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("Locate(%q) error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("Locate(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}
