package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatAperture(t *testing.T) {
	tests := []struct {
		num, den int64
		want     string
	}{
		{28, 10, "f/2.8"},
		{4, 1, "f/4.0"},
		{56, 10, "f/5.6"},
		{95, 100, "f/0.9"},
	}
	for _, tt := range tests {
		if got := FormatAperture(tt.num, tt.den); got != tt.want {
			t.Errorf("FormatAperture(%d, %d): got %q, want %q", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestFormatShutterSpeed(t *testing.T) {
	tests := []struct {
		num, den int64
		want     string
	}{
		{1, 250, "1/250"},
		{1, 8000, "1/8000"},
		{1, 3, "1/3"},
		{1, 1, "1s"},
		{2, 1, "2s"},
		{30, 1, "30s"},
		{3, 2, "1s"}, // truncates sub-second remainder
	}
	for _, tt := range tests {
		if got := FormatShutterSpeed(tt.num, tt.den); got != tt.want {
			t.Errorf("FormatShutterSpeed(%d, %d): got %q, want %q", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestFormatFocalLength(t *testing.T) {
	tests := []struct {
		num, den int64
		want     string
	}{
		{500, 10, "50mm"},
		{85, 1, "85mm"},
		{352, 10, "35mm"}, // rounds to whole millimeters
	}
	for _, tt := range tests {
		if got := FormatFocalLength(tt.num, tt.den); got != tt.want {
			t.Errorf("FormatFocalLength(%d, %d): got %q, want %q", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"scan.tiff", true},
		{"scan.tif", true},
		{"clip.gif", false},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateImageFile(tt.path); got != tt.want {
			t.Errorf("ValidateImageFile(%q): got %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.jpg"))
	if err == nil {
		t.Fatal("Extract should fail for a missing file")
	}
}

func TestExtract_NoExifData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.jpg")
	if err := os.WriteFile(path, []byte("definitely not a jpeg"), 0o644); err != nil {
		t.Fatalf("failed to write junk file: %v", err)
	}

	_, err := Extract(path)
	if err == nil {
		t.Fatal("Extract should fail when no EXIF data is present")
	}
}
