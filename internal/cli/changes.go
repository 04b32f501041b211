package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/git"
)

// AddChangesCommand adds the changes command to the root command.
func AddChangesCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "changes",
		Short: "Report uncommitted changes in the working tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			env, err := newCmdEnv(ctx, cmd, flags)
			if err != nil {
				return err
			}

			status, err := env.runner.Status(ctx)
			if err != nil {
				return err
			}

			stats := git.CollectStats(ctx, ".")

			if flags.Output == OutputJSON {
				return env.out.JSON(map[string]any{
					"branch":    status.Branch,
					"detached":  status.Detached,
					"clean":     status.IsClean(),
					"staged":    status.Staged,
					"unstaged":  status.Unstaged,
					"untracked": status.Untracked,
					"stats":     stats,
				})
			}

			if status.Detached {
				env.out.Warning("HEAD is detached")
			} else {
				env.out.Info("on branch " + status.Branch)
			}

			if status.IsClean() {
				env.out.Success("working tree clean")
				return nil
			}

			for _, fc := range status.Staged {
				env.out.Info(fmt.Sprintf("  staged    %s %s", fc.Status, fc.Path))
			}
			for _, fc := range status.Unstaged {
				env.out.Info(fmt.Sprintf("  modified  %s %s", fc.Status, fc.Path))
			}
			for _, path := range status.Untracked {
				env.out.Info("  untracked   " + path)
			}
			env.out.Info(stats.FormatCompact())
			return nil
		},
	}

	root.AddCommand(cmd)
}
