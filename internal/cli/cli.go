// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/cmakelists"
	"github.com/pion/scaffold/internal/scaffold"
	"github.com/spf13/cobra"
)

// Exit codes reported by the scaffold binary.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitCollision  = 4
	ExitParse      = 5
	ExitCancelled  = 6
)

func Execute(args []string) error {
	return execute(context.Background(), args, os.Stderr)
}

func execute(ctx context.Context, args []string, stderr io.Writer) error {
	root := newRootCmd(stderr)
	root.SetArgs(args)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

// ExitCode maps an error returned by Execute to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, scaffold.ErrValidation):
		return ExitValidation
	case errors.Is(err, scaffold.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, scaffold.ErrCollision):
		return ExitCollision
	case errors.Is(err, cmakelists.ErrParse), errors.Is(err, scaffold.ErrMissingBinding):
		return ExitParse
	case errors.Is(err, scaffold.ErrCancelled):
		return ExitCancelled
	default:
		return ExitFailure
	}
}

// globals carries the persistent flags and what is derived from them.
type globals struct {
	verbose    bool
	configPath string
	assumeYes  bool
	stderr     io.Writer

	cfg     scaffold.Config
	factory logging.LoggerFactory
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	g := &globals{stderr: stderr}
	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "scaffold creates and edits Elements projects and modules",
		Long: `scaffold lays out new Elements projects from auxiliary templates and keeps
module CMakeLists.txt files in step when scripts and classes are added or
removed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
	}

	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", scaffold.DefaultConfigPath(), "path to scaffold.yaml")
	cmd.PersistentFlags().BoolVarP(&g.assumeYes, "yes", "y", false, "answer yes to every confirmation")

	cmd.AddCommand(newCreateProjectCmd(g))
	cmd.AddCommand(newAddScriptCmd(g))
	cmd.AddCommand(newRemoveClassCmd(g))

	return cmd
}

func (g *globals) setup() error {
	g.factory = scaffold.NewLoggerFactory(g.stderr, g.verbose)

	cfg, err := scaffold.LoadConfig(g.configPath)
	if err != nil {
		return err
	}
	g.cfg = cfg

	return nil
}

func (g *globals) confirmer(log logging.LeveledLogger) scaffold.Confirmer {
	if g.assumeYes || g.cfg.AssumeYes {
		return scaffold.Always(true)
	}

	return scaffold.NewPromptConfirmer(log)
}

func (g *globals) registry() scaffold.Registry {
	return scaffold.OpenRegistry(g.cfg.NamingRegistry)
}

func (g *globals) aux() *scaffold.AuxLocator {
	return scaffold.DefaultAuxLocator(g.cfg.AuxPath)
}

// run executes one command under its own logger scope and closes the log
// the way every Elements tool does.
func (g *globals) run(scope string, fn func(log logging.LeveledLogger) error) error {
	log := g.factory.NewLogger(scope)
	log.Info("#")
	log.Infof("#  Logging from the %s command", scope)
	log.Info("#")

	if err := fn(log); err != nil {
		log.Errorf("# %v", err)
		log.Error("# Script aborted!")

		return err
	}
	log.Info("# Script over.")

	return nil
}
