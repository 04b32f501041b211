package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/droverhq/drover/internal/skill"
)

// AddSkillCommand adds the skill command group to the root command.
func AddSkillCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Browse skill documents in this repository",
	}

	cmd.AddCommand(newSkillListCmd(flags))
	cmd.AddCommand(newSkillShowCmd(flags))

	root.AddCommand(cmd)
}

// newSkillListCmd creates the skill list subcommand.
func newSkillListCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List skills under the skills root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newCmdEnv(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}

			store := skill.NewStore(env.cfg.Skills.Root)
			skills, err := store.List()
			if err != nil {
				return err
			}

			if flags.Output == OutputJSON {
				type row struct {
					Name        string `json:"name"`
					Description string `json:"description"`
					Path        string `json:"path"`
				}
				rows := make([]row, 0, len(skills))
				for _, sk := range skills {
					rows = append(rows, row{sk.DisplayName(), sk.Metadata.Description, sk.Path})
				}
				return env.out.JSON(rows)
			}

			if len(skills) == 0 {
				env.out.Info("no skills found under " + env.cfg.Skills.Root)
				return nil
			}
			for _, sk := range skills {
				env.out.Info(fmt.Sprintf("%-30s %s", sk.DisplayName(), sk.Metadata.Description))
			}
			return nil
		},
	}
}

// newSkillShowCmd creates the skill show subcommand.
func newSkillShowCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Render a skill document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newCmdEnv(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}

			store := skill.NewStore(env.cfg.Skills.Root)
			sk, err := store.Get(args[0])
			if err != nil {
				env.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return env.out.JSON(map[string]any{
					"name":        sk.DisplayName(),
					"description": sk.Metadata.Description,
					"path":        sk.Path,
					"body":        sk.Body,
				})
			}

			pretty := term.IsTerminal(int(os.Stdout.Fd()))
			width := 100
			if pretty {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
					width = w
				}
			}

			rendered, err := skill.Render(sk, width, pretty)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}
