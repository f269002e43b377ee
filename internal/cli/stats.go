package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapmark/photo-overlay/internal/engine"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print rendering engine statistics as JSON",
	Long: `Print the memoizing engine's counters: cache hits, cache misses,
cumulative processing time for misses, and the number of cached
entries.

Counters cover engine renders performed by this process; a fresh
invocation starts from zero.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	eng := sharedEngine(engine.DefaultOptions())

	snapshot := struct {
		engine.Stats
		CacheEntries int `json:"cache_entries"`
	}{
		Stats:        eng.Stats(),
		CacheEntries: eng.CacheLen(),
	}

	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
