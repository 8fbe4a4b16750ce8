package cli

import (
	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/scaffold"
	"github.com/pion/scaffold/internal/script"
	"github.com/spf13/cobra"
)

func newAddScriptCmd(g *globals) *cobra.Command {
	opts := script.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "add-script NAME",
		Short: "Add a script to the current Elements module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run("add-script", func(log logging.LeveledLogger) error {
				opts.Name = args[0]
				opts.Author = scaffold.ResolveAuthor(g.cfg.Author)
				opts.Aux = g.aux()
				opts.Registry = g.registry()
				opts.Logger = log

				return script.Run(cmd.Context(), opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.ModuleDir, "module-dir", opts.ModuleDir, "module directory holding CMakeLists.txt")

	return cmd
}
