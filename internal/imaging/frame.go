package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ApplyFrame expands the canvas by the frame width on all sides,
// decorates it according to the selected style, and pastes the photo
// centered. Disabled frames return the input unchanged.
//
// Each style produces a genuinely distinct border treatment: flat fill,
// blurred drop shadow, sprocket-hole film strip, polaroid caption band,
// and an aged grain tint.
func (p *Processor) ApplyFrame(img image.Image, s FrameSettings) (image.Image, error) {
	if !s.Enabled {
		return img, nil
	}
	if s.Width < 0 {
		return nil, NewError(KindProcessing, "", "frame width must not be negative: %d", s.Width)
	}

	col, err := ParseColor(s.Color, s.Opacity)
	if err != nil {
		return nil, err
	}

	fw := s.Width
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, w+2*fw, h+2*fw))
	photoRect := image.Rect(fw, fw, fw+w, fw+h)

	switch s.Style {
	case StyleSimple:
		fillRect(canvas, canvas.Bounds(), col)
	case StyleShadow:
		drawShadowFrame(canvas, photoRect, col)
	case StyleFilm:
		drawFilmFrame(canvas, fw, col)
	case StylePolaroid:
		drawPolaroidFrame(canvas, fw, col)
	case StyleVintage:
		drawVintageFrame(canvas, fw, col)
	default:
		return nil, NewError(KindProcessing, "", "unknown frame style: %q", s.Style)
	}

	return imaging.Paste(canvas, img, image.Pt(fw, fw)), nil
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawShadowFrame paints a gaussian-blurred dark rectangle offset
// down-right from the photo opening, so the shadow peeks out along the
// right and bottom edges once the photo is pasted.
func drawShadowFrame(canvas *image.NRGBA, photoRect image.Rectangle, col color.NRGBA) {
	fillRect(canvas, canvas.Bounds(), col)

	off := photoRect.Min.X / 3
	if off < 2 {
		off = 2
	}
	layer := image.NewNRGBA(canvas.Bounds())
	fillRect(layer, photoRect.Add(image.Pt(off, off)), color.NRGBA{A: 160})
	blurred := blur.Gaussian(layer, float64(off))
	draw.Draw(canvas, canvas.Bounds(), blurred, image.Point{}, draw.Over)
}

// drawFilmFrame punches evenly spaced sprocket holes along the top and
// bottom margins. Margins narrower than 4px have no room for holes.
func drawFilmFrame(canvas *image.NRGBA, fw int, col color.NRGBA) {
	fillRect(canvas, canvas.Bounds(), col)
	if fw < 4 {
		return
	}

	hole := fw / 2
	spacing := hole * 2
	top := (fw - hole) / 2
	bottom := canvas.Bounds().Dy() - fw + top
	holeCol := color.NRGBA{R: 235, G: 235, B: 235, A: col.A}

	for x := spacing / 2; x+hole <= canvas.Bounds().Dx(); x += spacing {
		fillRect(canvas, image.Rect(x, top, x+hole, top+hole), holeCol)
		fillRect(canvas, image.Rect(x, bottom, x+hole, bottom+hole), holeCol)
	}
}

// drawPolaroidFrame lightens the fill toward white, brightens the
// bottom caption band further, and draws a one-pixel keyline around the
// photo opening.
func drawPolaroidFrame(canvas *image.NRGBA, fw int, col color.NRGBA) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: col.A}
	base := blendLab(col, white, 0.65)
	fillRect(canvas, canvas.Bounds(), base)

	b := canvas.Bounds()
	band := blendLab(col, white, 0.85)
	fillRect(canvas, image.Rect(0, b.Dy()-fw, b.Dx(), b.Dy()), band)

	if fw < 1 {
		return
	}
	line := blendLab(col, color.NRGBA{A: col.A}, 0.35)
	inner := image.Rect(fw-1, fw-1, b.Dx()-fw+1, b.Dy()-fw+1)
	fillRect(canvas, image.Rect(inner.Min.X, inner.Min.Y, inner.Max.X, inner.Min.Y+1), line)
	fillRect(canvas, image.Rect(inner.Min.X, inner.Max.Y-1, inner.Max.X, inner.Max.Y), line)
	fillRect(canvas, image.Rect(inner.Min.X, inner.Min.Y, inner.Min.X+1, inner.Max.Y), line)
	fillRect(canvas, image.Rect(inner.Max.X-1, inner.Min.Y, inner.Max.X, inner.Max.Y), line)
}

// drawVintageFrame blends the fill toward sepia, scatters deterministic
// grain, and darkens the outer edge. The fixed seed keeps renders
// byte-reproducible, which the cache contract requires.
func drawVintageFrame(canvas *image.NRGBA, fw int, col color.NRGBA) {
	sepia := color.NRGBA{R: 112, G: 66, B: 20, A: col.A}
	base := blendLab(col, sepia, 0.5)
	fillRect(canvas, canvas.Bounds(), base)

	b := canvas.Bounds()
	grainDark := blendLab(base, color.NRGBA{A: col.A}, 0.3)
	grainLight := blendLab(base, color.NRGBA{R: 255, G: 255, B: 255, A: col.A}, 0.3)
	rng := rand.New(rand.NewSource(1869))
	n := b.Dx() * b.Dy() / 40
	for i := 0; i < n; i++ {
		x := rng.Intn(b.Dx())
		y := rng.Intn(b.Dy())
		if i%2 == 0 {
			canvas.SetNRGBA(x, y, grainDark)
		} else {
			canvas.SetNRGBA(x, y, grainLight)
		}
	}

	edge := blendLab(base, color.NRGBA{A: col.A}, 0.45)
	t := fw / 4
	if t < 1 {
		t = 1
	}
	fillRect(canvas, image.Rect(0, 0, b.Dx(), t), edge)
	fillRect(canvas, image.Rect(0, b.Dy()-t, b.Dx(), b.Dy()), edge)
	fillRect(canvas, image.Rect(0, 0, t, b.Dy()), edge)
	fillRect(canvas, image.Rect(b.Dx()-t, 0, b.Dx(), b.Dy()), edge)
}

// blendLab mixes two colors in Lab space, which tracks perceived
// lightness better than channel-wise RGB mixing. Alpha comes from a.
func blendLab(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	m := ca.BlendLab(cb, t).Clamped()
	return color.NRGBA{
		R: uint8(m.R*255 + 0.5),
		G: uint8(m.G*255 + 0.5),
		B: uint8(m.B*255 + 0.5),
		A: a.A,
	}
}
