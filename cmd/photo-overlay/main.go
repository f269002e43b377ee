package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/snapmark/photo-overlay/internal/cli"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cli.Execute(logger, Version); err != nil {
		os.Exit(1)
	}
}
