package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/meteorite-cli/internal/model"
	"github.com/sells-group/meteorite-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect conversion run history",
	Long:  "Commands for listing and viewing recorded convert runs. Requires store.database_url.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversion runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		input, _ := cmd.Flags().GetString("input")
		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")

		runs, err := st.ListRuns(ctx, store.RunFilter{InputPath: input, Limit: limit})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		switch format {
		case "table":
			formatRunsList(cmd.OutOrStdout(), runs)
			return nil
		default:
			return writeStructured(cmd.OutOrStdout(), format, runs)
		}
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		format, _ := cmd.Flags().GetString("format")
		return writeStructured(cmd.OutOrStdout(), format, run)
	},
}

func init() {
	runsListCmd.Flags().String("input", "", "only runs of this input path")
	runsListCmd.Flags().Int("limit", 20, "maximum runs to list")
	runsListCmd.Flags().String("format", "table", "output format: table, json or yaml")
	runsShowCmd.Flags().String("format", "yaml", "output format: json or yaml")

	runsCmd.AddCommand(runsListCmd, runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(out io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "encode json")
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return eris.Wrap(enc.Close(), "close yaml encoder")
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

// formatRunsList writes runs as an aligned table.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tINPUT\tRECORDS\tGRID\tLIMIT\tCLEANUP\tSTARTED\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t-----\t-------\t----\t-----\t-------\t-------\t--------")

	for _, r := range runs {
		input := r.InputPath
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}

		grid := "-"
		if r.Options.GridEnabled() {
			grid = fmt.Sprintf("%g", r.Options.GridSize)
		}
		limit := "-"
		if r.Options.LimitEnabled() {
			limit = fmt.Sprintf("%d", r.Options.Limit)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%t\t%s\t%s\n",
			truncateID(r.ID),
			input,
			r.Stats.Accepted,
			grid,
			limit,
			r.Options.Cleanup,
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Duration().Round(time.Millisecond),
		)
	}
	_ = w.Flush()
}

// truncateID shortens a UUID for table display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
