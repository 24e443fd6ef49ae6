package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logJSON  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "smartcatalog",
	Short: "Extract structured product records from PDF furniture catalogs",
	Long: `SmartCatalog turns PDF furniture catalogs into structured product records.

The pipeline extracts the text layer of every page, batches consecutive pages,
and asks a generative model to parse each batch into JSON product records
(name, brand, designer, year, type, colors) tied back to their source pages.

Records can be printed, stored in Postgres or SQLite, served over an HTTP API,
exported to XLSX/JSON, or ingested continuously from a watched directory.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.smartcatalog/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&logJSON, "log-json", false, "emit JSON logs instead of text",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, error",
	)

	rootCmd.AddCommand(versionCmd)
}

func newLogger() *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if logJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
