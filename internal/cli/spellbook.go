package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"ccx/internal/config"
	"ccx/internal/fetch"
	"ccx/internal/output"
	"ccx/internal/pipeline"
	"ccx/internal/spellbook"
	"ccx/internal/split"
)

// SpellbookOptions holds flags for the build-spellbook command.
type SpellbookOptions struct {
	*RootOptions
	NoCompress bool
	Output     string
	Source     string
	Force      bool

	Now        func() time.Time
	NewBuildID func() string
}

// NewSpellbookCommand creates the build-spellbook command.
func NewSpellbookCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SpellbookOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build-spellbook",
		Short: "Build the Commander Spellbook combo exports",
		Long: `Download the Commander Spellbook variants document (cached, with
conditional revalidation), trim each combo variant to the retained shape,
and write JSONL, a CSV summary, Markdown and the card-to-combo reverse
index, plus a manifest of everything written.

Example:
  ccx build-spellbook
  ccx build-spellbook --source ./variants.json --no-compress`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpellbook(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoCompress, "no-compress", false, "write uncompressed output files")
	cmd.Flags().StringVar(&opts.Output, "output", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.Source, "source", "", "URL or local file overriding the variants download")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "re-download even when a cached copy exists")

	return cmd
}

func runSpellbook(ctx context.Context, opts *SpellbookOptions) error {
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
		cfg.SpellbookDataDir = opts.Output
	}
	src := cfg.SpellbookURL
	if opts.Source != "" {
		src = opts.Source
	}

	client := fetch.New(log)
	cachePath := filepath.Join(cfg.CacheDir, "variants.json")
	path, err := client.Cached(ctx, src, cachePath, opts.Force)
	if err != nil {
		return WrapExitError(ExitFailure, "fetch spellbook data", err)
	}

	sum := &pipeline.Summary{Dataset: "spellbook"}
	f, err := fetch.Open(path)
	if err != nil {
		return WrapExitError(ExitFailure, "open spellbook data", err)
	}
	combos, err := spellbook.Read(f, sum)
	f.Close()
	if err != nil {
		return WrapExitError(ExitFailure, "parse spellbook data", err)
	}
	if len(combos) == 0 {
		return WrapExitError(ExitFailure, "no combos found in source file", nil)
	}
	log.Info("combos normalized", "count", len(combos))

	files, err := writeSpellbookOutputs(combos, cfg, sum)
	if err != nil {
		return WrapExitError(ExitFailure, "write output files", err)
	}

	if _, err := output.WriteManifest(cfg.SpellbookDataDir, files, buildID(opts.NewBuildID), buildTime(opts.Now)); err != nil {
		return WrapExitError(ExitFailure, "write manifest", err)
	}

	sum.Log(log)
	log.Info("spellbook build complete", "files", len(files), "dir", cfg.SpellbookDataDir)
	return nil
}

// writeSpellbookOutputs writes the four spellbook outputs in first-seen
// combo order: greedy-split JSONL and Markdown under their subdirectories,
// the single CSV summary, and the reverse card index at the root.
func writeSpellbookOutputs(combos []*spellbook.Combo, cfg config.Config, sum *pipeline.Summary) ([]output.WrittenFile, error) {
	dir := cfg.SpellbookDataDir
	budget := split.Budget{MaxBytes: cfg.MaxFileSizeBytes, MaxTokens: cfg.MaxTokensPerFile}

	jsonlUnits := make([]output.Unit, len(combos))
	mdUnits := make([]output.Unit, len(combos))
	records := make([][]string, len(combos))
	for i, combo := range combos {
		line, err := output.JSONLine(combo)
		if err != nil {
			return nil, fmt.Errorf("serialize combo %s: %w", combo.ID, err)
		}
		jsonlUnits[i] = output.Unit{Name: combo.ID, Text: line}
		mdUnits[i] = output.Unit{Name: combo.ID, Text: spellbook.RenderMarkdown(combo)}
		records[i] = combo.SummaryRecord()
	}

	var files []output.WrittenFile

	jsonlFiles, over, err := output.WriteGreedy(filepath.Join(dir, "jsonl"), "combos", ".jsonl", cfg.Compress, "combos_jsonl", jsonlUnits, budget)
	if err != nil {
		return nil, err
	}
	files = append(files, prefixFiles("jsonl", jsonlFiles)...)
	sum.BudgetOverruns = append(sum.BudgetOverruns, over...)

	csvFile, err := output.WriteCSV(filepath.Join(dir, "csv"), "combos", cfg.Compress, "combos_csv", spellbook.SummaryHeader, records)
	if err != nil {
		return nil, err
	}
	files = append(files, prefixFiles("csv", []output.WrittenFile{csvFile})...)

	index := spellbook.BuildCardIndex(combos)
	indexFile, err := output.WriteJSONL(dir, "combo_card_index", cfg.Compress, "combo_card_index", index)
	if err != nil {
		return nil, err
	}
	files = append(files, indexFile)

	mdFiles, over, err := output.WriteGreedy(filepath.Join(dir, "markdown"), "combos", ".md", cfg.Compress, "combos_markdown", mdUnits, budget)
	if err != nil {
		return nil, err
	}
	files = append(files, prefixFiles("markdown", mdFiles)...)
	sum.BudgetOverruns = append(sum.BudgetOverruns, over...)

	return files, nil
}

// prefixFiles rewrites manifest paths to include the subdirectory they were
// written under.
func prefixFiles(sub string, files []output.WrittenFile) []output.WrittenFile {
	out := make([]output.WrittenFile, len(files))
	for i, f := range files {
		f.Path = sub + "/" + f.Path
		out[i] = f
	}
	return out
}
