package metadata

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Extract reads EXIF metadata from an image file and returns it as a
// PhotoMetadata record with display-ready field values.
//
// Fields absent from the file are left at their zero value; only a
// missing/unreadable file or a container without EXIF data is an error.
// Extraction failure is terminal for that image and is never retried.
func Extract(path string) (PhotoMetadata, error) {
	var meta PhotoMetadata

	f, err := os.Open(path)
	if err != nil {
		return meta, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return meta, fmt.Errorf("failed to read EXIF data from %s: %w", path, err)
	}

	if tag, err := x.Get(exif.Make); err == nil {
		if s, err := tag.StringVal(); err == nil {
			meta.Camera.Make = strings.TrimSpace(s)
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil {
			meta.Camera.Model = strings.TrimSpace(s)
		}
	}

	if tag, err := x.Get(exif.FNumber); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			meta.Settings.Aperture = FormatAperture(num, den)
		}
	}
	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && num != 0 && den != 0 {
			meta.Settings.ShutterSpeed = FormatShutterSpeed(num, den)
		}
	}
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil {
			meta.Settings.ISO = iso
		}
	}
	if tag, err := x.Get(exif.FocalLength); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			meta.Settings.FocalLength = FormatFocalLength(num, den)
		}
	}

	if tag, err := x.Get(exif.DateTime); err == nil {
		if s, err := tag.StringVal(); err == nil {
			meta.Timestamp = strings.TrimSpace(s)
		}
	}

	if lat, long, err := x.LatLong(); err == nil {
		meta.Location = &LocationInfo{Latitude: lat, Longitude: long}
	}

	return meta, nil
}

// ValidateImageFile reports whether the path has a supported image
// extension. It does not open the file.
func ValidateImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".tiff", ".tif":
		return true
	}
	return false
}

// FormatAperture renders an FNumber rational as "f/2.8".
func FormatAperture(num, den int64) string {
	return fmt.Sprintf("f/%.1f", float64(num)/float64(den))
}

// FormatShutterSpeed renders an ExposureTime rational as "1/250" for
// fractional exposures and "2s" for exposures of a second or longer.
func FormatShutterSpeed(num, den int64) string {
	t := float64(num) / float64(den)
	if t >= 1.0 {
		return fmt.Sprintf("%ds", int64(t))
	}
	return fmt.Sprintf("1/%d", int64(math.Round(1.0/t)))
}

// FormatFocalLength renders a FocalLength rational as "50mm".
func FormatFocalLength(num, den int64) string {
	return fmt.Sprintf("%.0fmm", float64(num)/float64(den))
}
