package main

import (
	"github.com/spf13/cobra"

	"github.com/smartcatalog/catalog-extractor/internal/extractor"
	"github.com/smartcatalog/catalog-extractor/internal/llm/gemini"
	"github.com/smartcatalog/catalog-extractor/internal/pdftext"
	"github.com/smartcatalog/catalog-extractor/internal/repository"
	"github.com/smartcatalog/catalog-extractor/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP API",
	Long: `Serve the catalog API: upload PDFs for extraction, import product JSON,
search and list stored products.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
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

		srv := server.New(server.Config{
			Addr:          cfg.Server.Addr,
			AllowedOrigin: cfg.Server.AllowedOrigin,
			UploadDir:     cfg.Server.UploadDir,
			Logger:        logger,
		}, db, repo, proc)

		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
