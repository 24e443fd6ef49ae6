package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/smartcatalog/catalog-extractor/internal/common"
)

// loadConfig merges, in increasing precedence: built-in defaults, environment
// variables (via common.LoadConfig), and an optional YAML config file.
func loadConfig() (*common.Config, error) {
	cfg := common.LoadConfig()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.smartcatalog")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine; env + defaults apply.
		return cfg, nil
	}

	if v.IsSet("database.dsn") {
		cfg.Database.DSN = v.GetString("database.dsn")
	}
	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.cors_origin") {
		cfg.Server.AllowedOrigin = v.GetString("server.cors_origin")
	}
	if v.IsSet("server.upload_dir") {
		cfg.Server.UploadDir = v.GetString("server.upload_dir")
	}
	if v.IsSet("extractor.batch_size") {
		cfg.Extractor.BatchSize = v.GetInt("extractor.batch_size")
	}
	if v.IsSet("extractor.language") {
		cfg.Extractor.Language = v.GetString("extractor.language")
	}
	if v.IsSet("extractor.max_pages") {
		cfg.Extractor.MaxPages = v.GetInt("extractor.max_pages")
	}
	if v.IsSet("gemini.api_key") {
		cfg.LLM.APIKey = v.GetString("gemini.api_key")
	}
	if v.IsSet("gemini.model") {
		cfg.LLM.Model = v.GetString("gemini.model")
	}
	if v.IsSet("gemini.temperature") {
		cfg.LLM.Temperature = float32(v.GetFloat64("gemini.temperature"))
	}
	if v.IsSet("gemini.timeout") {
		cfg.LLM.Timeout = v.GetDuration("gemini.timeout")
	}

	return cfg, nil
}
