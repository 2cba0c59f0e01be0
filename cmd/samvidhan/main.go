// Command samvidhan answers questions about the Constitution of India.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/vectorindex/flat"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/services"
	"github.com/custodia-labs/samvidhan-cli/internal/normalisers"
	"github.com/custodia-labs/samvidhan-cli/internal/normalisers/pdf"
)

var version = ""

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; keys may come from the real environment.
	_ = godotenv.Load()

	home, err := file.HomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	store, err := file.NewConfigStore(home)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	prompts, err := file.NewPromptStore(filepath.Join(home, "prompts"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	validator := ai.NewConfigValidator()
	settings := services.NewSettingsService(store, validator,
		services.WithDefaultIndexPath(filepath.Join(home, "index", domain.DefaultIndexName)))

	cli.SetVersion(version)
	cli.Configure(cli.Dependencies{
		Settings:   settings,
		Validator:  validator,
		Indexes:    flat.NewFactory(),
		Prompts:    prompts,
		Extractors: normalisers.DefaultRegistry(),
		Bulk:       pdf.NewBulkLoader(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}
