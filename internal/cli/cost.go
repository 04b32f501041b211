package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/config"
	"github.com/droverhq/drover/internal/stats"
	"github.com/droverhq/drover/internal/tui"
)

// AddCostCommand adds the cost command to the root command.
func AddCostCommand(root *cobra.Command, flags *GlobalFlags) {
	var inputFile string
	var noSave bool

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Track agent token usage and spend over time",
		Long: `Parses a usage report (from a file or stdin), records a snapshot in the
history file, and reports per-entry deltas since the previous snapshot.
An unchanged report leaves the history file untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// No git repository needed here; load config and output directly.
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out := tui.NewOutput(cmd.OutOrStdout(), flags.Output)

			var reader io.Reader = cmd.InOrStdin()
			if inputFile != "" {
				f, err := os.Open(inputFile) //nolint:gosec // user-supplied report path
				if err != nil {
					return fmt.Errorf("failed to open report: %w", err)
				}
				defer func() { _ = f.Close() }()
				reader = f
			}

			raw, err := io.ReadAll(reader)
			if err != nil {
				return fmt.Errorf("failed to read report: %w", err)
			}

			entries, err := stats.ParseReport(string(raw))
			if err != nil {
				out.Error(err)
				return err
			}

			var deltas []stats.Delta
			saved := false
			if noSave {
				deltas = stats.Diff(nil, entries)
			} else {
				history := stats.NewHistory(cfg.Stats.HistoryFile)
				deltas, saved, err = history.Record(entries, time.Now())
				if err != nil {
					return err
				}
			}

			if flags.Output == OutputJSON {
				return out.JSON(map[string]any{
					"deltas": deltas,
					"saved":  saved,
				})
			}

			for _, d := range deltas {
				line := fmt.Sprintf("%-30s %8s  %8s",
					d.Name, stats.FormatTokens(d.Tokens), stats.FormatCents(d.CostCents))
				switch {
				case d.New:
					line += "  (new)"
				case d.TokensDelta != 0 || d.CostCentsDelta != 0:
					line += fmt.Sprintf("  (+%s, %s)",
						stats.FormatTokens(d.TokensDelta), stats.FormatCents(d.CostCentsDelta))
				}
				out.Info(line)
			}
			if !noSave && !saved {
				out.Info("usage unchanged, history not updated")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "usage report file (defaults to stdin)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "report without updating the history file")

	root.AddCommand(cmd)
}
