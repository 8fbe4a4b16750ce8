package cli

import (
	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/removeclass"
	"github.com/spf13/cobra"
)

func newRemoveClassCmd(g *globals) *cobra.Command {
	opts := removeclass.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "remove-cpp-class CLASS",
		Short: "Remove the files of a C++ class from the current Elements module",
		Long: `remove-cpp-class deletes the header, source and unit test of a class and
drops them from CMakeLists.txt. Other dependencies of the class (libraries,
find_package, elements_depends_on_subdirs) must be checked by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run("remove-cpp-class", func(log logging.LeveledLogger) error {
				opts.ClassName = args[0]
				opts.Confirm = g.confirmer(log)
				opts.Logger = log

				return removeclass.Run(cmd.Context(), opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.ModuleDir, "module-dir", opts.ModuleDir, "module directory holding CMakeLists.txt")

	return cmd
}
