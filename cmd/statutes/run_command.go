package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"statutes/internal/committees"
	"statutes/internal/config"
	"statutes/internal/extract"
	"statutes/internal/logging"
	"statutes/internal/output"
	"statutes/internal/pdftext"
	"statutes/internal/run"
)

type runOptions struct {
	volume    int
	volumes   string
	year      int
	years     string
	plaintext bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Convert downloaded STATUTE volumes into bill records",
		Long: `Convert downloaded STATUTE volume metadata into per-bill JSON records.

Volumes are read from <data_dir>/fdsys/STATUTE/<year>/STATUTE-<volume>/mods.xml.
Without a selection flag every downloaded volume is converted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversion(cmd, ctx, opts)
		},
	}

	cmd.Flags().IntVar(&opts.volume, "volume", 0, "Convert a single statute volume")
	cmd.Flags().StringVar(&opts.volumes, "volumes", "", "Convert an inclusive volume range (e.g. 65-70)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "Convert every volume published in a year")
	cmd.Flags().StringVar(&opts.years, "years", "", "Convert an inclusive year range (e.g. 1951-1960)")
	cmd.Flags().BoolVar(&opts.plaintext, "plaintext", false, "Also extract plaintext from PDF renditions (requires pdftotext)")
	return cmd
}

func buildSelection(opts runOptions) (run.Selection, error) {
	set := 0
	if opts.volume > 0 {
		set++
	}
	if opts.volumes != "" {
		set++
	}
	if opts.year > 0 {
		set++
	}
	if opts.years != "" {
		set++
	}
	if set > 1 {
		return run.Selection{}, fmt.Errorf("--volume, --volumes, --year, and --years are mutually exclusive")
	}

	switch {
	case opts.volume > 0:
		return run.Volume(opts.volume)
	case opts.volumes != "":
		lo, hi, err := parseRange(opts.volumes)
		if err != nil {
			return run.Selection{}, fmt.Errorf("--volumes: %w", err)
		}
		return run.Volumes(lo, hi)
	case opts.year > 0:
		return run.Year(opts.year)
	case opts.years != "":
		lo, hi, err := parseRange(opts.years)
		if err != nil {
			return run.Selection{}, fmt.Errorf("--years: %w", err)
		}
		return run.Years(lo, hi)
	default:
		return run.All(), nil
	}
}

func parseRange(value string) (int, int, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(value), "-")
	if !ok {
		return 0, 0, fmt.Errorf("expected lo-hi, got %q", value)
	}
	low, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lower bound %q", lo)
	}
	high, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid upper bound %q", hi)
	}
	return low, high, nil
}

func runConversion(cmd *cobra.Command, cmdCtx *commandContext, opts runOptions) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	selection, err := buildSelection(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock, err := run.AcquireLock(cfg.Paths.LogDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	committeeCache, closeCache, err := buildCommitteeCache(cfg, logger)
	if err != nil {
		return err
	}
	if closeCache != nil {
		defer closeCache()
	}

	var plaintext *pdftext.Service
	if opts.plaintext {
		plaintext = pdftext.NewService(cfg.PdftotextBinary())
	}

	extractor := extract.New(committeeCache, logger)
	store := output.NewStore(cfg.Paths.DataDir, logger)
	processor := run.NewProcessor(extractor, store, plaintext, logger)

	batches, err := selection.Resolve(cfg.StatuteRoot())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(batches) == 0 {
		fmt.Fprintf(out, "No downloaded volumes match the selection under %s\n", cfg.StatuteRoot())
		return nil
	}

	summary := processor.Process(signalCtx, batches)

	fmt.Fprintln(out, renderSummary(summary, shouldColorize(out)))
	fmt.Fprintf(out, "Bills written: %d  Items skipped: %d  Items failed: %d\n",
		summary.Bills(), summary.Skipped(), summary.Failed())
	if failed := summary.FailedBatches(); failed > 0 {
		return fmt.Errorf("%d volume(s) could not be processed", failed)
	}
	return signalCtx.Err()
}

// buildCommitteeCache wires the committee-name lookup when a source URL is
// configured. Lookups stay disabled otherwise and committee IDs are null.
func buildCommitteeCache(cfg *config.Config, logger *slog.Logger) (*committees.Cache, func(), error) {
	if strings.TrimSpace(cfg.Committees.SourceURL) == "" {
		return nil, nil, nil
	}

	store, err := committees.OpenStore(cfg.Committees.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open committee cache: %w", err)
	}
	source := committees.NewHTTPSource(cfg.Committees.SourceURL,
		time.Duration(cfg.Committees.RequestTimeout)*time.Second)
	cache := committees.NewCache(source, store, logger)
	return cache, func() { _ = store.Close() }, nil
}
