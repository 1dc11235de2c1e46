package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"viagens/internal/backend"
	"viagens/internal/cli"
	"viagens/internal/config"
	"viagens/internal/log"
)

// annotationLogStdout marks long-running commands whose logs go to stdout.
const annotationLogStdout = "log-stdout"

var (
	flagLogLevel string
	flagBackend  string
	flagCatalog  string
)

var (
	appCfg *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:               "viagens",
	Short:             "South Africa trip planner",
	Long:              "Itinerary, shared budget ledger, ranked lodging and a trip assistant for the Rio-Johannesburg-Cape Town trip.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Ledger storage backend, one of "+strings.Join(backend.Types(), ", ")+" (overrides STORAGE_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "TOML trip catalog (overrides CATALOG_FILE)")
}

// setup loads .env and the environment, applies flag overrides and
// installs the default logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.LoadConfig(func(c *config.Config) {
		if flagLogLevel != "" {
			c.LogLevel = flagLogLevel
		}
		if flagBackend != "" {
			c.StorageBackend = flagBackend
		}
		if flagCatalog != "" {
			c.CatalogFile = flagCatalog
		}
	})
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if _, ok := cmd.Annotations[annotationLogStdout]; ok {
		out = os.Stdout
	}
	appCfg = cfg
	logger = cli.SetupLogger(cfg.LogLevel, out)
	return nil
}
