package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcatalog/catalog-extractor/internal/extractor"
	"github.com/smartcatalog/catalog-extractor/internal/llm/gemini"
	"github.com/smartcatalog/catalog-extractor/internal/pdftext"
	"github.com/smartcatalog/catalog-extractor/internal/repository"
)

var (
	extractOut       string
	extractBatchSize int
	extractLanguage  string
	extractStore     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <catalog.pdf>",
	Short: "Extract product records from a single PDF catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if extractBatchSize > 0 {
			cfg.Extractor.BatchSize = extractBatchSize
		}
		if extractLanguage != "" {
			cfg.Extractor.Language = extractLanguage
		}
		if err := cfg.Validate(); err != nil {
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

		products, stats, err := proc.ExtractProducts(ctx, args[0])
		if err != nil {
			return err
		}
		logger.Info("extraction finished",
			"pages", stats.Pages,
			"batches", stats.Batches,
			"failed_batches", stats.FailedBatches,
			"products", stats.Products,
		)

		if extractStore {
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
			stored, err := repo.AddProducts(ctx, products)
			if err != nil {
				return err
			}
			logger.Info("products stored", "count", stored)
		}

		out, err := json.MarshalIndent(products, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal products: %w", err)
		}
		if extractOut == "" || extractOut == "-" {
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		}
		if err := os.WriteFile(extractOut, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", extractOut, err)
		}
		logger.Info("products written", "path", extractOut, "count", len(products))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "write the product JSON to this file instead of stdout")
	extractCmd.Flags().IntVar(&extractBatchSize, "batch-size", 0, "pages per model call (overrides config)")
	extractCmd.Flags().StringVar(&extractLanguage, "language", "", "catalog language (overrides config)")
	extractCmd.Flags().BoolVar(&extractStore, "store", false, "also store the extracted products in the database")

	rootCmd.AddCommand(extractCmd)
}
