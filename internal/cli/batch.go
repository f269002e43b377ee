package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapmark/photo-overlay/internal/imaging"
	"github.com/snapmark/photo-overlay/internal/metadata"
)

var (
	batchOutputDir string
	batchFormat    string
)

var batchCmd = &cobra.Command{
	Use:   "batch <input>...",
	Short: "Render many photographs into an output directory",
	Long: `Render every input independently into --output-dir as
<name>_processed.<ext>. A file whose metadata cannot be read or whose
render fails is reported and skipped; the batch always completes.

Example:
  photo-overlay batch shots/*.jpg --output-dir ./processed --format jpeg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./processed", "Directory for rendered outputs")
	batchCmd.Flags().StringVar(&batchFormat, "format", string(imaging.FormatJPEG), "Output format: jpeg or png")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	overlay, err := overlaySettings()
	if err != nil {
		return err
	}
	frame, err := frameSettings()
	if err != nil {
		return err
	}

	format := imaging.OutputFormat(batchFormat)
	if format != imaging.FormatJPEG && format != imaging.FormatPNG {
		return fmt.Errorf("unknown output format: %q", batchFormat)
	}

	settings := imaging.BatchSettings{
		Overlay: overlay,
		Frame:   frame,
		Format:  format,
		Quality: quality,
	}

	proc := imaging.NewProcessor(logger)
	result, err := proc.BatchProcess(args, settings, batchOutputDir, metadata.Extract)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d files in %d ms: %d succeeded, %d failed\n",
		result.TotalFiles, result.TotalTimeMs, len(result.Successful), len(result.Failed))
	for _, f := range result.Failed {
		fmt.Printf("  FAILED %s (%s): %s\n", f.FilePath, f.ErrorKind, f.ErrorMessage)
	}
	return nil
}
