package cli

import (
	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/precommit"
	"github.com/droverhq/drover/internal/workflow"
)

// AddCommitCommand adds the commit command to the root command.
func AddCommitCommand(root *cobra.Command, flags *GlobalFlags) {
	var message string
	var branchOverride string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit all changes on a feature branch",
		Long: `Runs the pre-commit branch check, stages everything, and creates a
signed commit. On a protected branch a feature branch is created first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if message == "" {
				return errors.NewExitCode2Error(
					errors.Wrap(errors.ErrEmptyValue, "commit message is required (-m)"))
			}

			env, err := newCmdEnv(ctx, cmd, flags)
			if err != nil {
				return err
			}

			classifier := precommit.NewClassifier(env.cfg.Skills.Root)
			decider := precommit.NewDecider(classifier,
				precommit.WithProtectedBranches(env.cfg.Git.ProtectedBranches))
			preparer := precommit.NewPreparer(env.runner, decider, GetLogger())

			plan, err := preparer.Run(ctx, branchOverride)
			if err != nil {
				env.out.Error(err)
				return err
			}
			if plan.Action == precommit.ActionNothingToCommit {
				env.out.Info("nothing to commit")
				return nil
			}

			state := &workflow.State{CommitMessage: message}
			step := workflow.NewCommitStep(env.runner, env.cfg.Git.SignCommits)
			result, err := step.Run(ctx, state)
			if err != nil {
				env.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return env.out.JSON(result)
			}
			env.out.Step(string(result.Status), step.Name(), result.Detail)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message (required)")
	cmd.Flags().StringVarP(&branchOverride, "branch", "b", "", "use this branch name instead of classifying")

	root.AddCommand(cmd)
}
