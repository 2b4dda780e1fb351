package main

import (
	"fmt"
	"os"

	"github.com/denchenko/dash/internal/adapters"
	"github.com/denchenko/dash/internal/config"
	"github.com/denchenko/dash/internal/core"
	"github.com/denchenko/dash/internal/log"
	"github.com/joho/godotenv"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	injector := do.New(
		config.Package,
		log.Package,
		core.Package,
		adapters.SecondaryPackage,
		adapters.PrimaryPackage,
	)

	cmd, err := do.Invoke[*cobra.Command](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create CLI command: %v\n", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
