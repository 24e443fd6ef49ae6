package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/smartcatalog/catalog-extractor/internal/extractor"
	"github.com/smartcatalog/catalog-extractor/internal/ingest"
	"github.com/smartcatalog/catalog-extractor/internal/llm/gemini"
	"github.com/smartcatalog/catalog-extractor/internal/pdftext"
	"github.com/smartcatalog/catalog-extractor/internal/repository"
)

var (
	watchInitialScan bool
	watchDebounce    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and extract every PDF that appears",
	Long: `Watch a directory tree for catalog PDFs. Each new or updated PDF is run
through the extraction pipeline and the resulting products are stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		db, err := repository.Open(ctx, repository.Config{
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			return err
		}
		defer repository.Close(db, logger)

		repo := repository.NewProductRepository(db, logger)
		if err := repo.Init(ctx); err != nil {
			return err
		}

		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		if err != nil {
			return err
		}
		defer client.Close()

		pages := pdftext.NewExtractor(pdftext.Config{MaxPages: cfg.Extractor.MaxPages}, logger)
		proc := extractor.NewProcessor(extractor.Config{
			BatchSize: cfg.Extractor.BatchSize,
			Language:  cfg.Extractor.Language,
		}, pages, client, logger)

		evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Root:        args[0],
			InitialScan: watchInitialScan,
			Debounce:    watchDebounce,
		}, logger)
		if err != nil {
			return err
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case err, ok := <-errCh:
				if !ok {
					return nil
				}
				logger.Error("watcher error", "error", err)
			case path, ok := <-evCh:
				if !ok {
					return nil
				}
				products, stats, err := proc.ExtractProducts(ctx, path)
				if err != nil {
					// A broken PDF should not stop the watch loop.
					logger.Error("extraction failed", "pdf", path, "error", err)
					continue
				}
				stored, err := repo.AddProducts(ctx, products)
				if err != nil {
					logger.Error("store failed", "pdf", path, "error", err)
					continue
				}
				logger.Info("catalog processed",
					"pdf", path,
					"pages", stats.Pages,
					"failed_batches", stats.FailedBatches,
					"products", stored,
				)
			}
		}
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", false, "process PDFs already present when the watch starts")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "settle time before a changed file is processed")

	rootCmd.AddCommand(watchCmd)
}
