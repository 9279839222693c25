package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ccx/internal/config"
	"ccx/internal/fetch"
	"ccx/internal/output"
	"ccx/internal/pipeline"
	"ccx/internal/scryfall"
	"ccx/internal/split"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	NoCompress    bool
	Output        string
	OracleSource  string
	DefaultSource string

	// Now and NewBuildID allow pinning the manifest timestamp and build id
	// in tests. Nil means wall clock / random UUID.
	Now        func() time.Time
	NewBuildID func() string
}

// NewBuildCommand creates the build command for the Scryfall card exports.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the trimmed Scryfall card exports",
		Long: `Download the Scryfall oracle and printing bulk datasets, filter to
playable cards, merge faces and printings into one record per oracle id,
aggregate USD prices across printings, and write the flattened records as
CSV (alphabetically banded when oversized), JSONL and Markdown, plus a
manifest of everything written.

Example:
  ccx build
  ccx build --no-compress --output ./data
  ccx build --oracle-source ./oracle.json --default-source ./default.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoCompress, "no-compress", false, "write uncompressed output files")
	cmd.Flags().StringVar(&opts.Output, "output", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.OracleSource, "oracle-source", "", "local file overriding the oracle cards download")
	cmd.Flags().StringVar(&opts.DefaultSource, "default-source", "", "local file overriding the printing cards download")

	return cmd
}

func runBuild(ctx context.Context, opts *BuildOptions) error {
	setupLogging(opts.Verbose)
	log := slog.Default()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "load configuration", err)
	}
	if opts.NoCompress {
		cfg.Compress = false
	}
	if opts.Output != "" {
		cfg.DataDir = opts.Output
	}

	client := fetch.New(log)

	// Oracle pass: filter + merge.
	oraclePath, err := resolveBulkSource(ctx, client, cfg, opts.OracleSource, cfg.OracleCardsType)
	if err != nil {
		return WrapExitError(ExitFailure, "fetch oracle cards", err)
	}
	oracleSum := &pipeline.Summary{Dataset: "oracle_cards"}
	merger, err := readOracle(oraclePath, oracleSum)
	if err != nil {
		return WrapExitError(ExitFailure, "parse oracle cards", err)
	}
	log.Info("cards merged", "unique_oracle_ids", merger.Len())

	// Printing pass: price observations for surviving oracle ids only.
	defaultPath, err := resolveBulkSource(ctx, client, cfg, opts.DefaultSource, cfg.DefaultCardsType)
	if err != nil {
		return WrapExitError(ExitFailure, "fetch printing cards", err)
	}
	priceSum := &pipeline.Summary{Dataset: "default_cards"}
	prices, err := readPrices(defaultPath, merger.Has, priceSum)
	if err != nil {
		return WrapExitError(ExitFailure, "parse printing cards", err)
	}
	log.Info("price index built", "priced_oracle_ids", prices.Len())

	rows := scryfall.BuildRows(merger, prices, oracleSum)

	files, err := writeCardOutputs(rows, cfg, oracleSum)
	if err != nil {
		return WrapExitError(ExitFailure, "write output files", err)
	}

	if _, err := output.WriteManifest(cfg.DataDir, files, buildID(opts.NewBuildID), buildTime(opts.Now)); err != nil {
		return WrapExitError(ExitFailure, "write manifest", err)
	}

	oracleSum.Log(log)
	priceSum.Log(log)
	log.Info("build complete", "files", len(files), "dir", cfg.DataDir)
	return nil
}

// resolveBulkSource returns a local path to the named bulk dataset: the
// override file when given, otherwise the dataset is resolved through the
// Scryfall bulk index and downloaded into the cache.
func resolveBulkSource(ctx context.Context, client *fetch.Client, cfg config.Config, override, bulkType string) (string, error) {
	if override != "" {
		return override, nil
	}
	url, err := client.BulkDownloadURL(ctx, cfg.ScryfallBulkDataURL, bulkType)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(cfg.CacheDir, bulkType+".json")
	if err := client.Download(ctx, url, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func readOracle(path string, sum *pipeline.Summary) (*scryfall.Merger, error) {
	f, err := fetch.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scryfall.ReadOracle(f, sum)
}

func readPrices(path string, keep func(string) bool, sum *pipeline.Summary) (*scryfall.PriceIndex, error) {
	f, err := fetch.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scryfall.ReadPrices(f, keep, sum)
}

// writeCardOutputs writes the three card formats in canonical name order:
// banded CSV, greedy-split JSONL, greedy-split Markdown.
func writeCardOutputs(rows []scryfall.FlatRow, cfg config.Config, sum *pipeline.Summary) ([]output.WrittenFile, error) {
	const base = "scryfall_oracle_trimmed"

	records := make([][]string, len(rows))
	names := make([]string, len(rows))
	jsonlUnits := make([]output.Unit, len(rows))
	mdUnits := make([]output.Unit, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
		names[i] = row.Name
		line, err := output.JSONLine(row)
		if err != nil {
			return nil, fmt.Errorf("serialize %s: %w", row.Name, err)
		}
		jsonlUnits[i] = output.Unit{Name: row.Name, Text: line}
		mdUnits[i] = output.Unit{Name: row.Name, Text: scryfall.RenderMarkdown(row)}
	}

	files, err := output.WriteBandedCSV(cfg.DataDir, base, cfg.Compress, "cards_csv",
		scryfall.FlatHeader, records, names, cfg.MaxCSVFileSizeMB*1024*1024)
	if err != nil {
		return nil, err
	}

	budget := split.Budget{MaxBytes: cfg.MaxFileSizeBytes, MaxTokens: cfg.MaxTokensPerFile}

	jsonlFiles, over, err := output.WriteGreedy(cfg.DataDir, base, ".jsonl", cfg.Compress, "cards_jsonl", jsonlUnits, budget)
	if err != nil {
		return nil, err
	}
	files = append(files, jsonlFiles...)
	sum.BudgetOverruns = append(sum.BudgetOverruns, over...)

	mdFiles, over, err := output.WriteGreedy(cfg.DataDir, base, ".md", cfg.Compress, "cards_markdown", mdUnits, budget)
	if err != nil {
		return nil, err
	}
	files = append(files, mdFiles...)
	sum.BudgetOverruns = append(sum.BudgetOverruns, over...)

	return files, nil
}

func buildID(gen func() string) string {
	if gen != nil {
		return gen()
	}
	return uuid.NewString()
}

func buildTime(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now().UTC()
}
