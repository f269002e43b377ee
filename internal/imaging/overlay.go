package imaging

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/snapmark/photo-overlay/internal/metadata"
)

// OverlayText projects metadata fields through the display toggles in
// the fixed field order: brand, model, aperture, shutter speed, ISO,
// timestamp. Fields whose toggle is off or whose source value is absent
// are omitted. Lines are newline-joined; the result may be empty.
func OverlayText(meta metadata.PhotoMetadata, items DisplayItems) string {
	var lines []string

	if items.Brand && meta.Camera.Make != "" {
		lines = append(lines, meta.Camera.Make)
	}
	if items.Model && meta.Camera.Model != "" {
		lines = append(lines, meta.Camera.Model)
	}
	if items.Aperture && meta.Settings.Aperture != "" {
		lines = append(lines, meta.Settings.Aperture)
	}
	if items.ShutterSpeed && meta.Settings.ShutterSpeed != "" {
		lines = append(lines, meta.Settings.ShutterSpeed)
	}
	if items.ISO && meta.Settings.ISO != 0 {
		lines = append(lines, fmt.Sprintf("ISO %d", meta.Settings.ISO))
	}
	if items.Timestamp && meta.Timestamp != "" {
		lines = append(lines, meta.Timestamp)
	}

	return strings.Join(lines, "\n")
}

// overlayOrigin computes the anchor-adjusted top-left corner of the
// overlay panel, offset inward by padding on the image-edge sides.
// Origins are clamped to zero when the text box exceeds the image.
func overlayOrigin(pos Position, imgW, imgH, textW, textH, padding int) (int, int) {
	var x, y int
	switch pos {
	case PositionTopLeft:
		x, y = padding, padding
	case PositionTopRight:
		x, y = imgW-textW-padding, padding
	case PositionBottomLeft:
		x, y = padding, imgH-textH-padding
	case PositionBottomRight:
		x, y = imgW-textW-padding, imgH-textH-padding
	default:
		x, y = padding, padding
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// ApplyOverlay draws the metadata text panel onto a copy of img.
//
// If no metadata line survives the display toggles the input image is
// returned unchanged. If no font is available the overlay is skipped
// with a log entry and the copy is returned without text. A malformed
// font or background color fails with KindInvalidColor.
func (p *Processor) ApplyOverlay(img image.Image, meta metadata.PhotoMetadata, s OverlaySettings) (image.Image, error) {
	text := OverlayText(meta, s.Display)
	if text == "" {
		return img, nil
	}

	canvas := imaging.Clone(img)

	if p.Fonts == nil {
		p.Log.Warn("no font available, rendering without overlay text",
			zap.String("text", text))
		return canvas, nil
	}
	face, err := p.Fonts.Face(s.Font.Size, s.Font.Weight)
	if err != nil {
		p.Log.Warn("font face creation failed, rendering without overlay text",
			zap.Error(err))
		return canvas, nil
	}
	defer face.Close()

	fontColor, err := ParseColor(s.Font.Color, 1.0)
	if err != nil {
		return nil, err
	}

	textW, textH := MeasureText(face, s.Font.Size, text)
	pad := s.Background.Padding
	bounds := canvas.Bounds()
	x, y := overlayOrigin(s.Position, bounds.Dx(), bounds.Dy(), textW, textH, pad)

	if s.Background.Opacity > 0 {
		bgColor, err := ParseColor(s.Background.Color, s.Background.Opacity)
		if err != nil {
			return nil, err
		}
		rect := image.Rect(x, y, x+textW+2*pad, y+textH+2*pad)
		draw.Draw(canvas, rect, image.NewUniform(bgColor), image.Point{}, draw.Over)
	}

	drawTextLines(canvas, face, x+pad, y+pad, s.Font.Size, text, image.NewUniform(fontColor))

	return canvas, nil
}
