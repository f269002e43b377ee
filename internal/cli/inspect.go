package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapmark/photo-overlay/internal/metadata"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Print the metadata that would be overlaid on a photograph",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !metadata.ValidateImageFile(path) {
		return fmt.Errorf("unsupported image file: %s", path)
	}

	meta, err := metadata.Extract(path)
	if err != nil {
		return fmt.Errorf("metadata extraction failed: %w", err)
	}

	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
