package cli

import (
	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/precommit"
)

// AddPrecommitCommand adds the precommit command to the root command.
func AddPrecommitCommand(root *cobra.Command, flags *GlobalFlags) {
	var branchOverride string

	cmd := &cobra.Command{
		Use:   "precommit [branch-name]",
		Short: "Ensure commits land on a semantic feature branch",
		Long: `Checks GPG signing configuration, inspects the changed files, and when
the current branch is protected (or HEAD is detached) creates a feature
branch named <type>/<YYYYMMDD>-<slug>.

The change type is classified from the changed paths: skill changes beat
test changes beat documentation changes beat everything else.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env, err := newCmdEnv(ctx, cmd, flags)
			if err != nil {
				return err
			}

			classifier := precommit.NewClassifier(env.cfg.Skills.Root)
			decider := precommit.NewDecider(classifier,
				precommit.WithProtectedBranches(env.cfg.Git.ProtectedBranches))
			preparer := precommit.NewPreparer(env.runner, decider, GetLogger())

			override := branchOverride
			if len(args) > 0 {
				override = args[0]
			}

			plan, err := preparer.Run(ctx, override)
			if err != nil {
				env.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return env.out.JSON(map[string]any{
					"action":      plan.Action.String(),
					"branch":      plan.BranchName,
					"change_type": string(plan.ChangeType),
					"from_branch": plan.CurrentBranch,
				})
			}

			switch plan.Action {
			case precommit.ActionNothingToCommit:
				env.out.Info("nothing to commit, branch unchanged")
			case precommit.ActionNone:
				env.out.Success("already on feature branch " + plan.CurrentBranch)
			case precommit.ActionCreateBranch:
				env.out.Success("created branch " + plan.BranchName)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&branchOverride, "branch", "b", "", "use this branch name instead of classifying")

	root.AddCommand(cmd)
}
