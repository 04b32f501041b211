package cli

import (
	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/git"
	"github.com/droverhq/drover/internal/precommit"
	"github.com/droverhq/drover/internal/tui"
	"github.com/droverhq/drover/internal/workflow"
)

// AddShipCommand adds the ship command to the root command.
func AddShipCommand(root *cobra.Command, flags *GlobalFlags) {
	var message, title, body, branchOverride string
	var draft, yes, noMerge bool

	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Run the full workflow: commit, review, push, PR, merge",
		Long: `Runs the entire shipping sequence in order: branch check, commit,
diff review, push, PR creation, and merge. The run halts at the first
failed or blocked step; re-running resumes where it stopped since every
step skips work that is already done.`,
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
			logger := GetLogger()

			classifier := precommit.NewClassifier(env.cfg.Skills.Root)
			decider := precommit.NewDecider(classifier,
				precommit.WithProtectedBranches(env.cfg.Git.ProtectedBranches))
			preparer := precommit.NewPreparer(env.runner, decider, logger)

			plan, err := preparer.Run(ctx, branchOverride)
			if err != nil {
				env.out.Error(err)
				return err
			}

			branch, _, err := env.runner.CurrentBranch(ctx)
			if err != nil {
				return err
			}

			confirm := workflow.ConfirmFunc(tui.Confirm)
			if yes || flags.Output == OutputJSON {
				confirm = workflow.AlwaysConfirm
			}

			github := git.NewGitHubRunner("", logger)
			steps := []workflow.Step{
				workflow.NewCommitStep(env.runner, env.cfg.Git.SignCommits),
				workflow.NewReviewStep(newScanner(env.cfg), outgoingDiff(env.cfg)),
				workflow.NewPushStep(env.runner),
				workflow.NewCreatePRStep(github, title, body, draft),
			}
			if !noMerge {
				steps = append(steps, workflow.NewMergeStep(github,
					env.cfg.Git.MergeMethod, env.cfg.Git.DeleteBranchOnMerge, confirm))
			}

			state := &workflow.State{
				Branch:        branch,
				CommitMessage: message,
				Remote:        env.cfg.Git.Remote,
				BaseBranch:    env.cfg.Git.BaseBranch,
			}

			sequencer := workflow.NewSequencer(logger, steps)
			report, runErr := sequencer.Run(ctx, state)

			if flags.Output == OutputJSON {
				if err := env.out.JSON(report); err != nil {
					return err
				}
			} else {
				if plan.Action == precommit.ActionCreateBranch {
					env.out.Success("created branch " + plan.BranchName)
				}
				for _, step := range report.Steps {
					env.out.Step(string(step.Status), step.Name, step.Detail)
				}
				if report.PRURL != "" {
					env.out.Info("PR: " + report.PRURL)
				}
			}

			if runErr != nil {
				env.out.Error(runErr)
				return runErr
			}
			env.out.Success("workflow complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message (required)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "pull request title (defaults to the commit message)")
	cmd.Flags().StringVar(&body, "body", "", "pull request body")
	cmd.Flags().StringVarP(&branchOverride, "branch", "b", "", "use this branch name instead of classifying")
	cmd.Flags().BoolVar(&draft, "draft", false, "open the PR as a draft")
	cmd.Flags().BoolVar(&yes, "yes", false, "merge without asking for confirmation")
	cmd.Flags().BoolVar(&noMerge, "no-merge", false, "stop after opening the PR")

	root.AddCommand(cmd)
}
