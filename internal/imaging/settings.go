package imaging

import "fmt"

// Position is one of the four image-corner alignments for the overlay.
type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

// ParsePosition converts a user-supplied string to a Position.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight:
		return Position(s), nil
	}
	return "", fmt.Errorf("unknown overlay position: %q", s)
}

// Weight selects the font weight used for overlay text.
type Weight string

const (
	WeightNormal Weight = "normal"
	WeightBold   Weight = "bold"
)

// FontSettings describes the typeface used for overlay text.
//
// Family is carried for forward compatibility but does not influence
// face selection; only Weight picks between the regular and bold faces.
type FontSettings struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Color  string  `json:"color"` // hex, rgb() or rgba()
	Weight Weight  `json:"weight"`
}

// BackgroundSettings describes the translucent panel painted behind the
// overlay text. CornerRadius is carried in the settings (and in the
// cache fingerprint) but the base algorithm draws square corners.
type BackgroundSettings struct {
	Color        string  `json:"color"`
	Opacity      float64 `json:"opacity"` // 0..1; 0 disables the panel
	Padding      int     `json:"padding"` // pixels
	CornerRadius int     `json:"corner_radius"`
}

// DisplayItems is the set of toggles choosing which metadata fields are
// projected into the overlay text. Line ordering is fixed regardless of
// toggle evaluation order: brand, model, aperture, shutter speed, ISO,
// timestamp.
type DisplayItems struct {
	Brand        bool `json:"brand"`
	Model        bool `json:"model"`
	Aperture     bool `json:"aperture"`
	ShutterSpeed bool `json:"shutter_speed"`
	ISO          bool `json:"iso"`
	Timestamp    bool `json:"timestamp"`
	Location     bool `json:"location"`
	BrandLogo    bool `json:"brand_logo"`
}

// OverlaySettings bundles everything the overlay compositor needs
// beyond the metadata itself.
type OverlaySettings struct {
	Position   Position           `json:"position"`
	Font       FontSettings       `json:"font"`
	Background BackgroundSettings `json:"background"`
	Display    DisplayItems       `json:"display_items"`
}

// FrameStyle names one of the five decorative border treatments.
type FrameStyle string

const (
	StyleSimple   FrameStyle = "simple"
	StyleShadow   FrameStyle = "shadow"
	StyleFilm     FrameStyle = "film"
	StylePolaroid FrameStyle = "polaroid"
	StyleVintage  FrameStyle = "vintage"
)

// FrameStyles lists all built-in styles in a stable order.
var FrameStyles = []FrameStyle{StyleSimple, StyleShadow, StyleFilm, StylePolaroid, StyleVintage}

// ParseFrameStyle converts a user-supplied string to a FrameStyle.
func ParseFrameStyle(s string) (FrameStyle, error) {
	switch FrameStyle(s) {
	case StyleSimple, StyleShadow, StyleFilm, StylePolaroid, StyleVintage:
		return FrameStyle(s), nil
	}
	return "", fmt.Errorf("unknown frame style: %q", s)
}

// FrameSettings describes the decorative frame drawn around the photo.
//
// Custom is an open-ended extension map for style-specific parameters.
// Built-in styles ignore it, but it participates in the cache
// fingerprint so changing it invalidates cached renders.
type FrameSettings struct {
	Enabled bool                   `json:"enabled"`
	Style   FrameStyle             `json:"style"`
	Color   string                 `json:"color"`
	Width   int                    `json:"width"`   // pixels on each side
	Opacity float64                `json:"opacity"` // 0..1
	Custom  map[string]interface{} `json:"custom_properties,omitempty"`
}

// OutputFormat selects the encoding for batch outputs.
type OutputFormat string

const (
	FormatJPEG OutputFormat = "jpeg"
	FormatPNG  OutputFormat = "png"
)

// Ext returns the file extension for the format, without the dot.
func (f OutputFormat) Ext() string {
	if f == FormatPNG {
		return "png"
	}
	return "jpg"
}

// ProcessedInfo reports a completed single-image render.
type ProcessedInfo struct {
	InputPath        string `json:"input_path"`
	OutputPath       string `json:"output_path"`
	OriginalSize     int64  `json:"original_size"`
	ProcessedSize    int64  `json:"processed_size"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

// BatchError records a single failed item within a batch.
type BatchError struct {
	FilePath     string    `json:"file_path"`
	ErrorMessage string    `json:"error_message"`
	ErrorKind    ErrorKind `json:"error_type"`
}

// BatchResult reports a whole batch run. A failed item never aborts the
// batch; it is recorded here instead.
type BatchResult struct {
	TotalFiles  int             `json:"total_files"`
	Successful  []ProcessedInfo `json:"successful"`
	Failed      []BatchError    `json:"failed"`
	TotalTimeMs int64           `json:"total_time_ms"`
}

// BatchSettings bundles the per-batch rendering parameters.
type BatchSettings struct {
	Overlay OverlaySettings `json:"overlay_settings"`
	Frame   FrameSettings   `json:"frame_settings"`
	Format  OutputFormat    `json:"output_format"`
	Quality int             `json:"quality"` // 1-100, JPEG only
}
