package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/snapmark/photo-overlay/internal/metadata"
)

// writeTestPNG encodes a pattern image to a PNG file under dir.
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, createPatternImage(w, h)); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestProcessImage_JPEGOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, "photo.png", 320, 240)
	output := filepath.Join(dir, "out.jpg")

	proc := newTestProcessor()
	settings := testOverlaySettings()
	frame := frameSettings(StyleSimple, 20)

	info, err := proc.ProcessImage(input, testMetadata(), settings, frame, output, 90)
	if err != nil {
		t.Fatalf("ProcessImage failed: %v", err)
	}

	if info.InputPath != input || info.OutputPath != output {
		t.Errorf("paths: got %q -> %q", info.InputPath, info.OutputPath)
	}
	if info.OriginalSize <= 0 || info.ProcessedSize <= 0 {
		t.Errorf("sizes not reported: original=%d processed=%d", info.OriginalSize, info.ProcessedSize)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("output format: got %s, want jpeg", format)
	}
	// Photo plus 20px frame on each side.
	if img.Bounds().Dx() != 360 || img.Bounds().Dy() != 280 {
		t.Errorf("output size: got %dx%d, want 360x280", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestProcessImage_PNGOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, "photo.png", 200, 150)
	output := filepath.Join(dir, "out.png")

	proc := newTestProcessor()

	_, err := proc.ProcessImage(input, testMetadata(), testOverlaySettings(), FrameSettings{}, output, 90)
	if err != nil {
		t.Fatalf("ProcessImage failed: %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	_, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
	if format != "png" {
		t.Errorf("output format: got %s, want png", format)
	}
}

func TestProcessImage_MissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.jpg")
	proc := newTestProcessor()

	_, err := proc.ProcessImage(filepath.Join(dir, "nope.jpg"), testMetadata(), testOverlaySettings(), FrameSettings{}, output, 90)
	var pe *Error
	if err == nil || !errors.As(err, &pe) || pe.Kind != KindFileNotFound {
		t.Fatalf("want KindFileNotFound error, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("failed render left an output file behind")
	}
}

func TestProcessImage_CorruptInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "junk.jpg")
	if err := os.WriteFile(input, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write junk file: %v", err)
	}
	output := filepath.Join(dir, "out.jpg")
	proc := newTestProcessor()

	_, err := proc.ProcessImage(input, testMetadata(), testOverlaySettings(), FrameSettings{}, output, 90)
	var pe *Error
	if err == nil || !errors.As(err, &pe) || pe.Kind != KindInvalidFormat {
		t.Fatalf("want KindInvalidFormat error, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("failed render left an output file behind")
	}
}

func TestGeneratePreview_FitsWithinBounds(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, "photo.png", 1000, 700)
	proc := newTestProcessor()

	data, err := proc.GeneratePreview(input, testMetadata(), testOverlaySettings(), FrameSettings{}, 400, 300)
	if err != nil {
		t.Fatalf("GeneratePreview failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("preview not valid PNG: %v", err)
	}
	// 1000x700 fitted into 400x300 keeps aspect ratio: 400x280.
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 280 {
		t.Errorf("preview size: got %dx%d, want 400x280", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderFull_ReturnsJPEGBytes(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, "photo.png", 300, 200)
	proc := newTestProcessor()

	data, err := proc.RenderFull(input, testMetadata(), testOverlaySettings(), frameSettings(StyleShadow, 16))
	if err != nil {
		t.Fatalf("RenderFull failed: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("full render not decodable: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("full render format: got %s, want jpeg", format)
	}
	if img.Bounds().Dx() != 332 || img.Bounds().Dy() != 232 {
		t.Errorf("full render size: got %dx%d, want 332x232", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestBatchProcess_MixedResults(t *testing.T) {
	dir := t.TempDir()
	good1 := writeTestPNG(t, dir, "a.png", 120, 90)
	good2 := writeTestPNG(t, dir, "b.png", 100, 100)
	bad := filepath.Join(dir, "missing.png")
	outDir := filepath.Join(dir, "processed")

	proc := newTestProcessor()
	settings := BatchSettings{
		Overlay: testOverlaySettings(),
		Frame:   FrameSettings{},
		Format:  FormatJPEG,
		Quality: 85,
	}
	extract := func(path string) (metadata.PhotoMetadata, error) { return testMetadata(), nil }

	result, err := proc.BatchProcess([]string{good1, bad, good2}, settings, outDir, extract)
	if err != nil {
		t.Fatalf("BatchProcess failed: %v", err)
	}

	if result.TotalFiles != 3 {
		t.Errorf("total: got %d, want 3", result.TotalFiles)
	}
	if len(result.Successful) != 2 {
		t.Errorf("successful: got %d, want 2", len(result.Successful))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed: got %d, want 1", len(result.Failed))
	}
	if result.Failed[0].FilePath != bad {
		t.Errorf("failed path: got %q, want %q", result.Failed[0].FilePath, bad)
	}
	if result.Failed[0].ErrorKind != KindFileNotFound {
		t.Errorf("failed kind: got %s, want %s", result.Failed[0].ErrorKind, KindFileNotFound)
	}

	for _, name := range []string{"a_processed.jpg", "b_processed.jpg"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
}

func TestBatchProcess_ExtractFailure(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, "a.png", 80, 60)
	outDir := filepath.Join(dir, "processed")

	proc := newTestProcessor()
	settings := BatchSettings{Overlay: testOverlaySettings(), Format: FormatJPEG, Quality: 85}
	extract := func(path string) (metadata.PhotoMetadata, error) {
		return metadata.PhotoMetadata{}, errors.New("no exif data")
	}

	result, err := proc.BatchProcess([]string{input}, settings, outDir, extract)
	if err != nil {
		t.Fatalf("BatchProcess failed: %v", err)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed: got %d, want 1", len(result.Failed))
	}
	if result.Failed[0].ErrorKind != KindExifRead {
		t.Errorf("failed kind: got %s, want %s", result.Failed[0].ErrorKind, KindExifRead)
	}
}

func TestWriteFileAtomic_NoTempResidue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	if err := writeFileAtomic(path, []byte("payload")); err != nil {
		t.Fatalf("writeFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content: got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %d entries", len(entries))
	}
}

func TestEncodeByExt_QualityAffectsSize(t *testing.T) {
	img := createPatternImage(200, 200)

	high, err := encodeByExt(img, "out.jpg", 95)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	low, err := encodeByExt(img, "out.jpg", 10)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(low) >= len(high) {
		t.Errorf("low quality not smaller: %d >= %d", len(low), len(high))
	}
}
