package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dyelens/internal/bootstrap"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	if err := bootstrap.Run(context.Background(), bootstrap.Options{ConfigPath: *configPath}); err != nil {
		fmt.Fprintf(os.Stderr, "dyelens-server failed: %v\n", err)
		os.Exit(1)
	}
}
