package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcatalog/catalog-extractor/internal/export"
	"github.com/smartcatalog/catalog-extractor/internal/repository"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all stored products to XLSX or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
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
		svc := export.NewService(repo, logger)

		var payload []byte
		switch exportFormat {
		case "xlsx":
			payload, err = svc.ExportProductsXLSX(ctx)
		case "json":
			payload, err = svc.ExportProductsJSON(ctx)
		default:
			return fmt.Errorf("unknown format %q (want xlsx or json)", exportFormat)
		}
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = "products." + exportFormat
		}
		if err := os.WriteFile(out, payload, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Exported products to %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "export format: xlsx or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default products.<format>)")

	rootCmd.AddCommand(exportCmd)
}
