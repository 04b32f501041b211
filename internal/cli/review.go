package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/logging"
	"github.com/droverhq/drover/internal/scan"
)

// AddReviewCommand adds the review command to the root command.
func AddReviewCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Scan the outgoing diff for secrets and injection attempts",
		Long: `Scans every added line of the outgoing diff (commits ahead of the base
branch plus uncommitted changes) against the secret, prompt-injection, and
external-URL rule sets. Blocking findings fail the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			env, err := newCmdEnv(ctx, cmd, flags)
			if err != nil {
				return err
			}

			diff, err := outgoingDiff(env.cfg)(ctx)
			if err != nil {
				return err
			}
			if diff == "" {
				env.out.Success("no outgoing diff to review")
				return nil
			}

			findings, err := newScanner(env.cfg).Scan(ctx, diff)
			if err != nil {
				return err
			}

			if flags.Output == OutputJSON {
				// Matched lines may contain the very secrets being flagged.
				redacted := make([]scan.Finding, len(findings))
				for i, f := range findings {
					f.Line = logging.FilterSensitiveValue(f.Line)
					redacted[i] = f
				}
				if err := env.out.JSON(redacted); err != nil {
					return err
				}
			} else {
				for _, f := range findings {
					line := fmt.Sprintf("[%s] %s in %s: %s",
						f.Severity, f.Rule, f.File, logging.FilterSensitiveValue(f.Line))
					if f.Severity == scan.SeverityBlock {
						env.out.Warning(line)
					} else {
						env.out.Info(line)
					}
				}
			}

			if scan.HasBlocking(findings) {
				err := errors.Wrapf(errors.ErrScanFindings, "%d finding(s)", len(findings))
				env.out.Error(err)
				return err
			}
			if len(findings) == 0 {
				env.out.Success("no findings")
			} else {
				env.out.Success(fmt.Sprintf("%d warning(s), none blocking", len(findings)))
			}
			return nil
		},
	}

	root.AddCommand(cmd)
}
