package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcatalog/catalog-extractor/internal/entity"
	"github.com/smartcatalog/catalog-extractor/internal/repository"
)

var importCmd = &cobra.Command{
	Use:   "import <products.json>",
	Short: "Validate a product JSON file and store its records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		products, err := entity.ValidateImportJSON(data)
		if err != nil {
			return fmt.Errorf("invalid product file: %w", err)
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

		stored, err := repo.AddProducts(ctx, products)
		if err != nil {
			return err
		}
		logger.Info("import finished", "file", args[0], "products", stored)
		fmt.Printf("Imported %d products from %s\n", stored, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
