// Package config holds the process-wide run configuration: source URLs,
// output directories, and file budgets. One Config value is built at the
// start of a run and passed into every component that needs it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface for a build run.
//
// Resolution order: built-in defaults, then an optional YAML config file,
// then .env / environment variables. Environment always wins so CI can
// override a checked-in config file.
type Config struct {
	// Scryfall bulk data.
	ScryfallBulkDataURL string `yaml:"scryfall_bulk_data_url"`
	OracleCardsType     string `yaml:"oracle_cards_type"`
	DefaultCardsType    string `yaml:"default_cards_type"`

	// Commander Spellbook.
	SpellbookURL string `yaml:"spellbook_url"`

	// Output directory roots per dataset family.
	DataDir          string `yaml:"data_dir"`
	SpellbookDataDir string `yaml:"spellbook_data_dir"`

	// Download cache for large source documents.
	CacheDir string `yaml:"cache_dir"`

	// Budgets. MaxCSVFileSizeMB gates the alphabetical CSV split; the other
	// two bound each greedy-split output file.
	MaxCSVFileSizeMB int `yaml:"max_csv_file_size_mb"`
	MaxFileSizeBytes int `yaml:"max_file_size_bytes"`
	MaxTokensPerFile int `yaml:"max_tokens_per_file"`

	// Compress selects gzip output encoding.
	Compress bool `yaml:"compress"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ScryfallBulkDataURL: "https://api.scryfall.com/bulk-data",
		OracleCardsType:     "oracle_cards",
		DefaultCardsType:    "default_cards",
		SpellbookURL:        "https://json.commanderspellbook.com/variants.json",
		DataDir:             "data",
		SpellbookDataDir:    filepath.Join("data", "spellbook"),
		CacheDir:            filepath.Join(os.TempDir(), "ccx-cache"),
		MaxCSVFileSizeMB:    50,
		MaxFileSizeBytes:    512 * 1024 * 1024,
		MaxTokensPerFile:    2_000_000,
		Compress:            true,
	}
}

// Load builds the effective configuration. path names an optional YAML
// config file; an empty path skips that layer. A .env file in the working
// directory is loaded without overriding variables already set.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(c *Config) {
	c.ScryfallBulkDataURL = envStr("SCRYFALL_BULK_DATA_URL", c.ScryfallBulkDataURL)
	c.OracleCardsType = envStr("ORACLE_CARDS_TYPE", c.OracleCardsType)
	c.DefaultCardsType = envStr("DEFAULT_CARDS_TYPE", c.DefaultCardsType)
	c.SpellbookURL = envStr("SPELLBOOK_URL", c.SpellbookURL)
	c.DataDir = envStr("DATA_DIR", c.DataDir)
	c.SpellbookDataDir = envStr("SPELLBOOK_DATA_DIR", c.SpellbookDataDir)
	c.CacheDir = envStr("CACHE_DIR", c.CacheDir)
	c.MaxCSVFileSizeMB = envInt("MAX_FILE_SIZE_MB", c.MaxCSVFileSizeMB)
	c.MaxFileSizeBytes = envInt("MAX_FILE_SIZE_BYTES", c.MaxFileSizeBytes)
	c.MaxTokensPerFile = envInt("MAX_TOKENS_PER_FILE", c.MaxTokensPerFile)
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt falls back to the default on unparseable values rather than
// aborting the run.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
