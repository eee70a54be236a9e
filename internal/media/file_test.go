package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideo(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".mp4", true},
		{".MP4", true},
		{".mov", true},
		{".webm", true},
		{".mkv", true},
		{".avi", true},
		{".m4v", true},
		{".jpg", false},
		{".txt", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := IsVideo(tt.ext); got != tt.expected {
				t.Errorf("IsVideo(%q) = %v, want %v", tt.ext, got, tt.expected)
			}
		})
	}
}

func TestGetMIMEType(t *testing.T) {
	got, err := GetMIMEType(".mp4")
	if err != nil {
		t.Fatalf("GetMIMEType(.mp4) error: %v", err)
	}
	if got != "video/mp4" {
		t.Errorf("GetMIMEType(.mp4) = %q, want video/mp4", got)
	}

	if _, err := GetMIMEType(".exe"); err == nil {
		t.Error("GetMIMEType(.exe) succeeded, want error")
	}
}

func TestLoadVideoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}

	vf, err := LoadVideoFile(path)
	if err != nil {
		t.Fatalf("LoadVideoFile() error: %v", err)
	}
	if vf.MIMEType != "video/mp4" {
		t.Errorf("MIMEType = %q, want video/mp4", vf.MIMEType)
	}
	if vf.Size != 10 {
		t.Errorf("Size = %d, want 10", vf.Size)
	}

	if _, err := LoadVideoFile(filepath.Join(dir, "absent.mp4")); err == nil {
		t.Error("LoadVideoFile() succeeded for a missing file, want error")
	}
	if _, err := LoadVideoFile(dir); err == nil {
		t.Error("LoadVideoFile() succeeded for a directory, want error")
	}
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadVideoFile(txt); err == nil {
		t.Error("LoadVideoFile() succeeded for an unsupported extension, want error")
	}
}
