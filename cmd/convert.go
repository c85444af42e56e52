package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/meteorite-cli/internal/config"
	"github.com/sells-group/meteorite-cli/internal/convert"
	"github.com/sells-group/meteorite-cli/internal/model"
	"github.com/sells-group/meteorite-cli/internal/store"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a meteorites CSV file to JSON",
	Long: `Reads the meteorite landings CSV, filters it and writes a shuffled JSON document
keyed meteorite_1..N.

Examples:
  # Plain conversion
  meteorite-cli convert --input Meteorite_Landings.csv --output out/meteorites.json

  # One meteorite per 0.5 degree cell, invalid locations removed, at most 500 records
  meteorite-cli convert --input Meteorite_Landings.csv --output out/meteorites.json \
    --grid 0.5 --clean-up --limit 500 --debug 1`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		req, debug, err := resolveConvertRequest(cmd, cfg.Convert)
		if err != nil {
			return err
		}

		if err := config.InitLogger(config.LogConfig{Level: config.DebugLogLevel(debug), Format: cfg.Log.Format}); err != nil {
			return eris.Wrap(err, "convert: init logger")
		}

		_, err = runConvert(ctx, cmd.OutOrStdout(), openHistory, req)
		return err
	},
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "input CSV file path (required)")
	cmd.Flags().String("output", "", "output JSON file path (required)")
	cmd.Flags().Float64("grid", 0, "grid cell size in degrees (disabled if <= 0)")
	cmd.Flags().Int("limit", 0, "maximum number of records (0 = unlimited)")
	cmd.Flags().Bool("clean-up", false, "remove meteorites with missing or placeholder (0.0, 0.0) coordinates")
	cmd.Flags().Int("debug", 0, "debug level: 0 = silent, 1 = info, 2 = verbose")
	cmd.Flags().Uint64("seed", 0, "shuffle seed for reproducible output (0 = random)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
}

// convertRequest is everything runConvert needs for one export.
type convertRequest struct {
	Input   string
	Output  string
	Options model.ConvertOptions
	Seed    uint64
}

// resolveConvertRequest merges flags over config defaults. Only flags the
// user actually set override the config file and environment.
func resolveConvertRequest(cmd *cobra.Command, defaults config.ConvertConfig) (convertRequest, int, error) {
	flags := cmd.Flags()

	req := convertRequest{
		Options: model.ConvertOptions{
			GridSize: defaults.GridSize,
			Limit:    defaults.Limit,
			Cleanup:  defaults.Cleanup,
		},
	}
	debug := defaults.Debug

	var err error
	if req.Input, err = flags.GetString("input"); err != nil {
		return req, 0, eris.Wrap(err, "convert: read --input")
	}
	if req.Output, err = flags.GetString("output"); err != nil {
		return req, 0, eris.Wrap(err, "convert: read --output")
	}
	if req.Seed, err = flags.GetUint64("seed"); err != nil {
		return req, 0, eris.Wrap(err, "convert: read --seed")
	}
	if flags.Changed("grid") {
		if req.Options.GridSize, err = flags.GetFloat64("grid"); err != nil {
			return req, 0, eris.Wrap(err, "convert: read --grid")
		}
	}
	if flags.Changed("limit") {
		if req.Options.Limit, err = flags.GetInt("limit"); err != nil {
			return req, 0, eris.Wrap(err, "convert: read --limit")
		}
	}
	if flags.Changed("clean-up") {
		if req.Options.Cleanup, err = flags.GetBool("clean-up"); err != nil {
			return req, 0, eris.Wrap(err, "convert: read --clean-up")
		}
	}
	if flags.Changed("debug") {
		if debug, err = flags.GetInt("debug"); err != nil {
			return req, 0, eris.Wrap(err, "convert: read --debug")
		}
	}

	if err := config.ValidateDebug(debug); err != nil {
		return req, 0, err
	}
	return req, debug, nil
}

// historyOpener opens the run history store. A nil store means history is
// disabled.
type historyOpener func(ctx context.Context) (store.Store, error)

// runConvert performs the export, records it through openStore when history
// is enabled, and prints the summary banner to out. The store is only opened
// once the export has succeeded.
func runConvert(ctx context.Context, out io.Writer, openStore historyOpener, req convertRequest) (*model.Run, error) {
	started := time.Now().UTC()

	res, err := convert.File(ctx, req.Input, req.Output, req.Options, convert.NewRand(req.Seed), zap.L())
	if err != nil {
		return nil, err
	}

	run := &model.Run{
		InputPath:  req.Input,
		OutputPath: req.Output,
		Options:    req.Options,
		Stats:      res.Stats,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}

	recordRun(ctx, openStore, run)
	printSummary(out, run)
	return run, nil
}

// recordRun saves run to the history store. Failures only warn: the export
// itself already succeeded.
func recordRun(ctx context.Context, openStore historyOpener, run *model.Run) {
	if openStore == nil {
		return
	}
	st, err := openStore(ctx)
	if err != nil {
		zap.L().Warn("convert: open run history", zap.Error(err))
		return
	}
	if st == nil {
		return
	}
	defer st.Close() //nolint:errcheck

	if err := st.CreateRun(ctx, run); err != nil {
		zap.L().Warn("convert: record run history", zap.Error(err))
		return
	}
	zap.L().Info("run recorded", zap.String("run_id", run.ID))
}

const bannerRule = "========================================"

// printSummary writes the end-of-export banner.
func printSummary(out io.Writer, run *model.Run) {
	opts := run.Options

	grid := "Disabled"
	if opts.GridEnabled() {
		grid = fmt.Sprintf("Enabled (%g°, %d removed)", opts.GridSize, run.Stats.RemovedGrid)
	}
	limit := "Unlimited"
	if opts.LimitEnabled() {
		limit = fmt.Sprintf("%d", opts.Limit)
	}
	cleanup := "Disabled"
	if opts.Cleanup {
		cleanup = fmt.Sprintf("Enabled (%d removed)", run.Stats.RemovedCleanup)
	}

	_, _ = fmt.Fprintln(out, bannerRule)
	_, _ = fmt.Fprintln(out, "    Export completed successfully")
	_, _ = fmt.Fprintln(out, "----------------------------------------")
	_, _ = fmt.Fprintf(out, "- Output file path  : %s\n", run.OutputPath)
	_, _ = fmt.Fprintf(out, "- Records exported  : %d meteorites\n", run.Stats.Accepted)
	_, _ = fmt.Fprintf(out, "- Grid filtering    : %s\n", grid)
	_, _ = fmt.Fprintf(out, "- Record limit      : %s\n", limit)
	_, _ = fmt.Fprintf(out, "- Clean-up          : %s\n", cleanup)
	_, _ = fmt.Fprintln(out, bannerRule)
}
