package cli

import (
	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/project"
	"github.com/pion/scaffold/internal/scaffold"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newCreateProjectCmd(g *globals) *cobra.Command {
	opts := project.DefaultOptions()
	var deps []string
	cmd := &cobra.Command{
		Use:   "create-project NAME [VERSION]",
		Short: "Create a new Elements project",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run("create-project", func(log logging.LeveledLogger) error {
				opts.Name = args[0]
				if len(args) > 1 {
					opts.Version = args[1]
				}

				parsed, err := scaffold.ParseDependencies(deps)
				if err != nil {
					return err
				}
				opts.Dependencies = parsed
				opts.ToolkitVersion = g.cfg.ToolkitVersion
				opts.Aux = g.aux()
				opts.Registry = g.registry()
				opts.Confirm = g.confirmer(log)
				opts.Logger = log

				return project.Run(cmd.Context(), opts)
			})
		},
	}

	cmd.Flags().StringArrayVarP(
		&deps,
		"dependency",
		"d",
		nil,
		"dependency as NAME:VERSION (may repeat)",
	)
	cmd.Flags().BoolVar(
		&opts.NoVersionDirectory,
		"no-version-directory",
		false,
		"create the project without the version directory level",
	)
	cmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "novd" {
			name = "no-version-directory"
		}

		return pflag.NormalizedName(name)
	})

	return cmd
}
