package cli

import (
	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/workflow"
)

// AddPushCommand adds the push command to the root command.
func AddPushCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push the current branch with an upstream",
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
				env.out.Warning("HEAD is detached, nothing to push")
				return nil
			}

			state := &workflow.State{Branch: branch, Remote: env.cfg.Git.Remote}
			step := workflow.NewPushStep(env.runner)
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

	root.AddCommand(cmd)
}
