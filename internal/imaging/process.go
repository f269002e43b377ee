package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/snapmark/photo-overlay/internal/metadata"
)

// FullQualityJPEG is the quality used when rendering full-quality bytes
// for the unified engine.
const FullQualityJPEG = 95

// ExtractFunc produces a metadata record for a path, or a typed failure.
// The batch pipeline calls it once per item.
type ExtractFunc func(path string) (metadata.PhotoMetadata, error)

// Processor runs the render pipeline: decode, overlay, frame, encode.
type Processor struct {
	Fonts *FontSet
	Log   *zap.Logger
}

// NewProcessor builds a Processor, resolving fonts through the probe
// chain once up front.
func NewProcessor(log *zap.Logger) *Processor {
	return &Processor{
		Fonts: LoadFonts(log),
		Log:   log,
	}
}

// decodeImage opens and decodes an input image. Open failures map to
// KindFileNotFound, decode failures to KindInvalidFormat.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapError(KindFileNotFound, path, "failed to open image", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, WrapError(KindInvalidFormat, path, "failed to decode image", err)
	}
	return img, nil
}

// encodeByExt encodes img for the output path's implied format:
// .jpg/.jpeg lossy at the given quality, .png lossless, anything else
// defaults to lossy.
func encodeByExt(img image.Image, outputPath string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, WrapError(KindOutput, outputPath, "failed to encode PNG", err)
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, WrapError(KindOutput, outputPath, "failed to encode JPEG", err)
		}
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temp file in the target directory
// and renames it into place, so a failure never leaves a truncated
// output file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".overlay-*")
	if err != nil {
		return WrapError(KindOutput, path, "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return WrapError(KindOutput, path, "failed to write output", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return WrapError(KindOutput, path, "failed to close output", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return WrapError(KindOutput, path, "failed to move output into place", err)
	}
	return nil
}

// composite applies the overlay and, when enabled, the frame.
func (p *Processor) composite(img image.Image, meta metadata.PhotoMetadata, overlay OverlaySettings, frame FrameSettings) (image.Image, error) {
	// Overlay first so the frame never obscures it.
	out, err := p.ApplyOverlay(img, meta, overlay)
	if err != nil {
		return nil, err
	}
	return p.ApplyFrame(out, frame)
}

// ProcessImage renders a single photograph to a file and reports sizes
// and wall-clock timing.
func (p *Processor) ProcessImage(inputPath string, meta metadata.PhotoMetadata, overlay OverlaySettings, frame FrameSettings, outputPath string, quality int) (*ProcessedInfo, error) {
	start := time.Now()

	stat, err := os.Stat(inputPath)
	if err != nil {
		return nil, WrapError(KindFileNotFound, inputPath, "failed to stat input", err)
	}
	originalSize := stat.Size()

	img, err := decodeImage(inputPath)
	if err != nil {
		return nil, err
	}

	out, err := p.composite(img, meta, overlay, frame)
	if err != nil {
		return nil, err
	}

	data, err := encodeByExt(out, outputPath, quality)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(outputPath, data); err != nil {
		return nil, err
	}

	info := &ProcessedInfo{
		InputPath:        inputPath,
		OutputPath:       outputPath,
		OriginalSize:     originalSize,
		ProcessedSize:    int64(len(data)),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
	p.Log.Debug("processed image",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int64("bytes", info.ProcessedSize),
		zap.Int64("elapsed_ms", info.ProcessingTimeMs))
	return info, nil
}

// GeneratePreview renders a downsampled preview and returns it as PNG
// bytes. The image is fitted within maxW x maxH with Lanczos
// resampling, preserving aspect ratio, before compositing.
func (p *Processor) GeneratePreview(inputPath string, meta metadata.PhotoMetadata, overlay OverlaySettings, frame FrameSettings, maxW, maxH int) ([]byte, error) {
	img, err := decodeImage(inputPath)
	if err != nil {
		return nil, err
	}

	preview := imaging.Fit(img, maxW, maxH, imaging.Lanczos)

	out, err := p.composite(preview, meta, overlay, frame)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, WrapError(KindOutput, inputPath, "failed to encode preview", err)
	}
	return buf.Bytes(), nil
}

// RenderFull renders the full-quality variant to in-memory JPEG bytes.
func (p *Processor) RenderFull(inputPath string, meta metadata.PhotoMetadata, overlay OverlaySettings, frame FrameSettings) ([]byte, error) {
	img, err := decodeImage(inputPath)
	if err != nil {
		return nil, err
	}

	out, err := p.composite(img, meta, overlay, frame)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: FullQualityJPEG}); err != nil {
		return nil, WrapError(KindOutput, inputPath, "failed to encode full-quality image", err)
	}
	return buf.Bytes(), nil
}

// BatchProcess renders every input independently: metadata extraction
// and rendering failures are recorded per file and never abort the
// batch. Outputs are written to outputDir as <stem>_processed.<ext>.
func (p *Processor) BatchProcess(paths []string, s BatchSettings, outputDir string, extract ExtractFunc) (*BatchResult, error) {
	start := time.Now()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, WrapError(KindOutput, outputDir, "failed to create output directory", err)
	}

	result := &BatchResult{
		TotalFiles: len(paths),
		Successful: []ProcessedInfo{},
		Failed:     []BatchError{},
	}

	for _, inputPath := range paths {
		stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		if stem == "" {
			stem = "processed"
		}
		outputPath := filepath.Join(outputDir, fmt.Sprintf("%s_processed.%s", stem, s.Format.Ext()))

		meta, err := extract(inputPath)
		if err != nil {
			p.Log.Warn("metadata extraction failed",
				zap.String("path", inputPath), zap.Error(err))
			result.Failed = append(result.Failed, BatchError{
				FilePath:     inputPath,
				ErrorMessage: err.Error(),
				ErrorKind:    KindOf(err, KindExifRead),
			})
			continue
		}

		info, err := p.ProcessImage(inputPath, meta, s.Overlay, s.Frame, outputPath, s.Quality)
		if err != nil {
			p.Log.Warn("render failed",
				zap.String("path", inputPath), zap.Error(err))
			result.Failed = append(result.Failed, BatchError{
				FilePath:     inputPath,
				ErrorMessage: err.Error(),
				ErrorKind:    KindOf(err, KindProcessing),
			})
			continue
		}
		result.Successful = append(result.Successful, *info)
	}

	result.TotalTimeMs = time.Since(start).Milliseconds()
	p.Log.Info("batch complete",
		zap.Int("total", result.TotalFiles),
		zap.Int("successful", len(result.Successful)),
		zap.Int("failed", len(result.Failed)),
		zap.Int64("elapsed_ms", result.TotalTimeMs))
	return result, nil
}
