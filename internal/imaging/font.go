package imaging

import (
	"image"
	"image/draw"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// systemFontPaths is the ordered list of well-known font files probed
// when the embedded default fonts cannot be parsed.
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Arial.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// FontSet holds the resolved regular and bold typefaces used for
// overlay text. A nil *FontSet means no usable font was found; the
// overlay compositor then skips text drawing entirely.
type FontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
}

// LoadFonts resolves fonts through a capability-probe chain: the
// embedded Go fonts first, then the system font paths in order. Absence
// of a font is a valid, non-fatal outcome reported as nil with a log
// entry; it is the only silent degradation in the pipeline.
func LoadFonts(log *zap.Logger) *FontSet {
	regular, err := opentype.Parse(goregular.TTF)
	if err == nil {
		fs := &FontSet{regular: regular, bold: regular}
		if bold, err := opentype.Parse(gobold.TTF); err == nil {
			fs.bold = bold
		}
		return fs
	}
	log.Warn("embedded font unusable, probing system fonts", zap.Error(err))

	for _, path := range systemFontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			log.Debug("system font unusable", zap.String("path", path), zap.Error(err))
			continue
		}
		log.Info("loaded system font", zap.String("path", path))
		return &FontSet{regular: f, bold: f}
	}

	log.Warn("no usable font found, overlay text will be skipped")
	return nil
}

// Face builds a rendering face at the given point size and weight.
func (fs *FontSet) Face(size float64, weight Weight) (font.Face, error) {
	f := fs.regular
	if weight == WeightBold {
		f = fs.bold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// MeasureText computes the bounding box of a possibly multi-line string.
//
// Width is the advance width of the widest line; height is
// lineCount*fontSize with a fixed line pitch and no inter-line spacing.
// An empty string yields (0, 0).
func MeasureText(face font.Face, fontSize float64, text string) (int, int) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	height := len(lines) * int(math.Ceil(fontSize))
	return width, height
}

// drawTextLines paints each line left-to-right starting at (x, y) with
// a fixed pitch of fontSize pixels per line.
func drawTextLines(dst draw.Image, face font.Face, x, y int, fontSize float64, text string, col image.Image) {
	pitch := int(math.Ceil(fontSize))
	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range strings.Split(text, "\n") {
		d := font.Drawer{
			Dst:  dst,
			Src:  col,
			Face: face,
			Dot:  fixed.P(x, y+i*pitch+ascent),
		}
		d.DrawString(line)
	}
}
