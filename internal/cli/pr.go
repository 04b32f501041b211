package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/git"
	"github.com/droverhq/drover/internal/tui"
	"github.com/droverhq/drover/internal/workflow"
)

// AddPRCommand adds the pr command group to the root command.
func AddPRCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Manage pull requests for the current branch",
	}

	cmd.AddCommand(newPRCreateCmd(flags))
	cmd.AddCommand(newPRViewCmd(flags))
	cmd.AddCommand(newPRMergeCmd(flags))

	root.AddCommand(cmd)
}

// newPRCreateCmd creates the pr create subcommand.
func newPRCreateCmd(flags *GlobalFlags) *cobra.Command {
	var title, body string
	var draft bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a pull request for the current branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			env, err := newCmdEnv(ctx, cmd, flags)
			if err != nil {
				return err
			}

			branch, detached, err := env.runner.CurrentBranch(ctx)
			if err != nil {
				return err
			}
			if detached {
				return errors.Wrap(errors.ErrGitOperation, "cannot open a PR from a detached HEAD")
			}

			if body == "" {
				body = title
			}

			github := git.NewGitHubRunner("", GetLogger())
			result, err := github.CreatePR(ctx, git.PRCreateOptions{
				Title:      title,
				Body:       body,
				BaseBranch: env.cfg.Git.BaseBranch,
				HeadBranch: branch,
				Draft:      draft,
			})
			if err != nil {
				env.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return env.out.JSON(result)
			}
			env.out.Success(fmt.Sprintf("opened PR #%d: %s", result.Number, result.URL))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "pull request title")
	cmd.Flags().StringVar(&body, "body", "", "pull request body")
	cmd.Flags().BoolVar(&draft, "draft", false, "open as a draft")

	return cmd
}

// newPRViewCmd creates the pr view subcommand.
func newPRViewCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <number>",
		Short: "Show a pull request's merge readiness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env, err := newCmdEnv(ctx, cmd, flags)
			if err != nil {
				return err
			}

			number, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.NewExitCode2Error(
					errors.Wrapf(errors.ErrEmptyValue, "invalid PR number %q", args[0]))
			}

			github := git.NewGitHubRunner("", GetLogger())
			status, err := github.ViewPR(ctx, number)
			if err != nil {
				env.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return env.out.JSON(status)
			}

			env.out.Info(fmt.Sprintf("PR #%d  %s  %s", status.Number, status.State, status.URL))
			if status.Mergeable {
				env.out.Success("no conflicts")
			} else {
				env.out.Warning("has conflicts")
			}
			if status.ChecksPass {
				env.out.Success("checks " + status.CIStatus)
			} else {
				env.out.Warning("checks " + status.CIStatus)
			}
			return nil
		},
	}

	return cmd
}

// newPRMergeCmd creates the pr merge subcommand.
func newPRMergeCmd(flags *GlobalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "merge <number>",
		Short: "Merge a pull request once it is ready",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env, err := newCmdEnv(ctx, cmd, flags)
			if err != nil {
				return err
			}

			number, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.NewExitCode2Error(
					errors.Wrapf(errors.ErrEmptyValue, "invalid PR number %q", args[0]))
			}

			confirm := workflow.ConfirmFunc(tui.Confirm)
			if yes || flags.Output == OutputJSON {
				confirm = workflow.AlwaysConfirm
			}

			github := git.NewGitHubRunner("", GetLogger())
			step := workflow.NewMergeStep(github,
				env.cfg.Git.MergeMethod, env.cfg.Git.DeleteBranchOnMerge, confirm)

			state := &workflow.State{PRNumber: number, BaseBranch: env.cfg.Git.BaseBranch}
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

	cmd.Flags().BoolVar(&yes, "yes", false, "merge without asking for confirmation")

	return cmd
}
