package imaging

import (
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/snapmark/photo-overlay/internal/metadata"
)

// createTestImage builds an in-memory image filled with a single color.
func createTestImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage builds an image with distinct quadrant colors so
// tests can verify placement: red, green, blue, white clockwise.
func createPatternImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x < w/2 && y < h/2:
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			case x >= w/2 && y < h/2:
				img.Set(x, y, color.RGBA{0, 255, 0, 255})
			case x < w/2:
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			default:
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

func newTestProcessor() *Processor {
	return NewProcessor(zap.NewNop())
}

func testMetadata() metadata.PhotoMetadata {
	return metadata.PhotoMetadata{
		Camera: metadata.CameraInfo{Make: "Canon", Model: "EOS R5"},
		Settings: metadata.CameraSettings{
			Aperture:     "f/2.8",
			ShutterSpeed: "1/250",
			ISO:          400,
			FocalLength:  "50mm",
		},
		Timestamp: "2023:06:15 10:30:00",
	}
}

func allDisplayItems() DisplayItems {
	return DisplayItems{
		Brand:        true,
		Model:        true,
		Aperture:     true,
		ShutterSpeed: true,
		ISO:          true,
		Timestamp:    true,
	}
}

func testOverlaySettings() OverlaySettings {
	return OverlaySettings{
		Position: PositionBottomLeft,
		Font: FontSettings{
			Family: "sans-serif",
			Size:   16,
			Color:  "#FFFFFF",
			Weight: WeightNormal,
		},
		Background: BackgroundSettings{
			Color:   "#000000",
			Opacity: 0.6,
			Padding: 10,
		},
		Display: allDisplayItems(),
	}
}
