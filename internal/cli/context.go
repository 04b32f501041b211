package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/config"
	"github.com/droverhq/drover/internal/git"
	"github.com/droverhq/drover/internal/scan"
	"github.com/droverhq/drover/internal/tui"
)

// cmdEnv bundles the pieces every command needs: configuration, the git
// runner for the current repository, and the output sink.
type cmdEnv struct {
	cfg    *config.Config
	runner *git.CLIRunner
	out    tui.Output
}

// newCmdEnv loads config and creates the git runner for the current
// directory. Commands that must run inside a repository use this.
func newCmdEnv(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags) (*cmdEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	runner, err := git.NewRunner(ctx, ".")
	if err != nil {
		return nil, err
	}

	return &cmdEnv{
		cfg:    cfg,
		runner: runner,
		out:    tui.NewOutput(cmd.OutOrStdout(), flags.Output),
	}, nil
}

// newScanner builds the diff scanner from config toggles.
func newScanner(cfg *config.Config) scan.DiffScanner {
	var scanners []scan.DiffScanner
	if cfg.Scan.Secrets {
		scanners = append(scanners, scan.NewSecretScanner())
	}
	if cfg.Scan.Injection {
		scanners = append(scanners, scan.NewInjectionScanner())
	}
	if cfg.Scan.URLs {
		scanners = append(scanners, scan.NewURLScanner())
	}
	return scan.NewMultiScanner(scanners...)
}

// outgoingDiff returns the full diff about to ship: commits ahead of the
// base branch plus anything still uncommitted in the tree.
func outgoingDiff(cfg *config.Config) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		committed, err := git.RunCommand(ctx, "", "diff", cfg.Git.BaseBranch+"...HEAD")
		if err != nil {
			// No base branch locally (fresh clone of a single branch);
			// fall back to the working tree diff alone.
			committed = ""
		}

		uncommitted, err := git.RunCommand(ctx, "", "diff", "HEAD")
		if err != nil {
			uncommitted = ""
		}

		if committed == "" {
			return uncommitted, nil
		}
		if uncommitted == "" {
			return committed, nil
		}
		return committed + "\n" + uncommitted, nil
	}
}
