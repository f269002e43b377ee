// Package cli wires the rendering engine to a cobra command boundary.
//
// It exposes the logical operations: render (single file), batch,
// preview (unified engine bytes), stats (engine counters), and inspect
// (metadata extraction).
package cli

import (
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snapmark/photo-overlay/internal/engine"
	"github.com/snapmark/photo-overlay/internal/imaging"
)

var logger *zap.Logger

var (
	engineOnce sync.Once
	sharedEng  *engine.Engine
)

// sharedEngine lazily builds the process-wide engine. Every
// engine-backed command goes through the same instance, so its counters
// describe the whole run. Options only apply to the first caller.
func sharedEngine(opts engine.Options) *engine.Engine {
	engineOnce.Do(func() {
		sharedEng = engine.New(imaging.NewProcessor(logger), opts, logger)
	})
	return sharedEng
}

var (
	positionFlag string
	fontFamily   string
	fontSize     float64
	fontColor    string
	fontWeight   string
	bgColor      string
	bgOpacity    float64
	bgPadding    int

	showBrand     bool
	showModel     bool
	showAperture  bool
	showShutter   bool
	showISO       bool
	showTimestamp bool

	frameEnabled bool
	frameStyle   string
	frameColor   string
	frameWidth   int
	frameOpacity float64

	quality int
)

var rootCmd = &cobra.Command{
	Use:   "photo-overlay",
	Short: "Overlay camera metadata and decorative frames onto photographs",
	Long: `photo-overlay stamps camera metadata (make, model, exposure settings,
timestamp) and decorative frames onto photographs.

Metadata is read from the image's EXIF data. Overlay content, anchoring
and frame style are controlled by flags shared across commands.

Example usage:
  photo-overlay render photo.jpg out.jpg --frame --frame-style polaroid
  photo-overlay batch *.jpg --output-dir ./processed
  photo-overlay preview photo.jpg --output preview.png
  photo-overlay inspect photo.jpg`,
	SilenceUsage: true,
}

// Execute runs the CLI with an injected logger.
func Execute(log *zap.Logger, version string) error {
	logger = log
	rootCmd.Version = version
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&positionFlag, "position", string(imaging.PositionBottomLeft), "Overlay anchor: top-left, top-right, bottom-left, bottom-right")
	pf.StringVar(&fontFamily, "font-family", "sans-serif", "Font family hint (carried in settings)")
	pf.Float64Var(&fontSize, "font-size", 24, "Overlay text size in points")
	pf.StringVar(&fontColor, "font-color", "#FFFFFF", "Overlay text color (#RRGGBB, rgb() or rgba())")
	pf.StringVar(&fontWeight, "font-weight", string(imaging.WeightNormal), "Font weight: normal or bold")
	pf.StringVar(&bgColor, "bg-color", "#000000", "Overlay panel color")
	pf.Float64Var(&bgOpacity, "bg-opacity", 0.6, "Overlay panel opacity (0-1, 0 disables the panel)")
	pf.IntVar(&bgPadding, "padding", 10, "Overlay panel padding in pixels")

	pf.BoolVar(&showBrand, "show-brand", true, "Include camera make in the overlay")
	pf.BoolVar(&showModel, "show-model", true, "Include camera model in the overlay")
	pf.BoolVar(&showAperture, "show-aperture", true, "Include aperture in the overlay")
	pf.BoolVar(&showShutter, "show-shutter", true, "Include shutter speed in the overlay")
	pf.BoolVar(&showISO, "show-iso", true, "Include ISO in the overlay")
	pf.BoolVar(&showTimestamp, "show-timestamp", false, "Include timestamp in the overlay")

	pf.BoolVar(&frameEnabled, "frame", false, "Draw a decorative frame")
	pf.StringVar(&frameStyle, "frame-style", string(imaging.StyleSimple), "Frame style: simple, shadow, film, polaroid, vintage")
	pf.StringVar(&frameColor, "frame-color", "#FFFFFF", "Frame color")
	pf.IntVar(&frameWidth, "frame-width", 40, "Frame width in pixels")
	pf.Float64Var(&frameOpacity, "frame-opacity", 1.0, "Frame opacity (0-1)")

	pf.IntVar(&quality, "quality", 90, "JPEG quality (1-100, ignored for PNG)")
}

// overlaySettings builds overlay settings from the shared flags.
func overlaySettings() (imaging.OverlaySettings, error) {
	pos, err := imaging.ParsePosition(positionFlag)
	if err != nil {
		return imaging.OverlaySettings{}, err
	}
	weight := imaging.Weight(fontWeight)
	if weight != imaging.WeightNormal && weight != imaging.WeightBold {
		weight = imaging.WeightNormal
	}
	return imaging.OverlaySettings{
		Position: pos,
		Font: imaging.FontSettings{
			Family: fontFamily,
			Size:   fontSize,
			Color:  fontColor,
			Weight: weight,
		},
		Background: imaging.BackgroundSettings{
			Color:   bgColor,
			Opacity: bgOpacity,
			Padding: bgPadding,
		},
		Display: imaging.DisplayItems{
			Brand:        showBrand,
			Model:        showModel,
			Aperture:     showAperture,
			ShutterSpeed: showShutter,
			ISO:          showISO,
			Timestamp:    showTimestamp,
		},
	}, nil
}

// frameSettings builds frame settings from the shared flags.
func frameSettings() (imaging.FrameSettings, error) {
	style, err := imaging.ParseFrameStyle(frameStyle)
	if err != nil {
		return imaging.FrameSettings{}, err
	}
	return imaging.FrameSettings{
		Enabled: frameEnabled,
		Style:   style,
		Color:   frameColor,
		Width:   frameWidth,
		Opacity: frameOpacity,
	}, nil
}
