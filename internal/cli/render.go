package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapmark/photo-overlay/internal/imaging"
	"github.com/snapmark/photo-overlay/internal/metadata"
)

var renderCmd = &cobra.Command{
	Use:   "render <input> <output>",
	Short: "Render a single photograph with overlay and frame to a file",
	Long: `Render one photograph: extract its EXIF metadata, draw the overlay
and optional frame, and write the result.

The output format follows the output path's extension: .jpg/.jpeg is
lossy at --quality, .png is lossless.

Example:
  photo-overlay render photo.jpg out.jpg --frame --frame-style vintage`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	overlay, err := overlaySettings()
	if err != nil {
		return err
	}
	frame, err := frameSettings()
	if err != nil {
		return err
	}

	meta, err := metadata.Extract(inputPath)
	if err != nil {
		return fmt.Errorf("metadata extraction failed: %w", err)
	}

	proc := imaging.NewProcessor(logger)
	info, err := proc.ProcessImage(inputPath, meta, overlay, frame, outputPath, quality)
	if err != nil {
		return err
	}

	fmt.Printf("Rendered %s -> %s\n", info.InputPath, info.OutputPath)
	fmt.Printf("  %d bytes in, %d bytes out, %d ms\n",
		info.OriginalSize, info.ProcessedSize, info.ProcessingTimeMs)
	return nil
}
