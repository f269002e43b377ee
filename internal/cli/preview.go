package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snapmark/photo-overlay/internal/engine"
	"github.com/snapmark/photo-overlay/internal/metadata"
)

var (
	previewOutput  string
	previewFullOut string
	previewVariant string
	previewMaxW    int
	previewMaxH    int
)

var previewCmd = &cobra.Command{
	Use:   "preview <input>",
	Short: "Generate preview and/or full-quality bytes through the unified engine",
	Long: `Render through the memoizing engine. The preview variant downsamples
to fit --max-width x --max-height and always encodes PNG; the
full-quality variant encodes JPEG at quality 95. The both variant
renders the two concurrently.

Engine cache statistics are logged after the run.

Example:
  photo-overlay preview photo.jpg --output preview.png
  photo-overlay preview photo.jpg --variant both --output p.png --full-output f.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewOutput, "output", "preview.png", "Path for the preview PNG")
	previewCmd.Flags().StringVar(&previewFullOut, "full-output", "", "Path for full-quality JPEG (both/full_quality variants)")
	previewCmd.Flags().StringVar(&previewVariant, "variant", string(engine.VariantPreview), "Request variant: preview, full_quality or both")
	previewCmd.Flags().IntVar(&previewMaxW, "max-width", 800, "Maximum preview width")
	previewCmd.Flags().IntVar(&previewMaxH, "max-height", 600, "Maximum preview height")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	overlay, err := overlaySettings()
	if err != nil {
		return err
	}
	frame, err := frameSettings()
	if err != nil {
		return err
	}
	variant, err := engine.ParseVariant(previewVariant)
	if err != nil {
		return err
	}

	meta, err := metadata.Extract(inputPath)
	if err != nil {
		return fmt.Errorf("metadata extraction failed: %w", err)
	}

	opts := engine.DefaultOptions()
	opts.PreviewMaxWidth = previewMaxW
	opts.PreviewMaxHeight = previewMaxH
	eng := sharedEngine(opts)

	result, err := eng.ProcessUnified(inputPath, meta, overlay, frame, variant)
	if err != nil {
		return err
	}

	if len(result.Preview) > 0 {
		if err := os.WriteFile(previewOutput, result.Preview, 0o644); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		fmt.Printf("Preview: %s (%d bytes)\n", previewOutput, len(result.Preview))
	}
	if len(result.Full) > 0 {
		fullOut := previewFullOut
		if fullOut == "" {
			fullOut = strings.TrimSuffix(previewOutput, ".png") + "_full.jpg"
		}
		if err := os.WriteFile(fullOut, result.Full, 0o644); err != nil {
			return fmt.Errorf("failed to write full-quality output: %w", err)
		}
		fmt.Printf("Full quality: %s (%d bytes)\n", fullOut, len(result.Full))
	}

	stats := eng.Stats()
	logger.Info("engine stats",
		zap.Uint64("cache_hits", stats.CacheHits),
		zap.Uint64("cache_misses", stats.CacheMisses),
		zap.Int64("total_processing_time_ms", stats.TotalProcessingTimeMs))
	return nil
}
