// Package cli is the collaborator shell around the carbon core: thin
// cobra commands that load activity and factor fixtures, invoke the
// report pipeline and write artifacts. No computation lives here.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/config"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// rootOptions carries flags and loaded config shared by subcommands.
type rootOptions struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

// NewRootCmd creates the root command for the carbonnet CLI. It wires
// config loading and logging, then registers the report and factors
// command groups.
func NewRootCmd(ver string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "carbonnet",
		Short:   "Carbon activity reporting engine",
		Long:    "carbonnet: compute, aggregate and export carbon emission reports from activity records",
		Version: ver,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Logging.Level = opts.logLevel
			}
			opts.cfg = cfg

			logger := logging.NewStderr(cfg.Logging.Level, isTerminal(os.Stderr))
			cmd.SetContext(logging.WithContext(cmd.Context(), logger))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	cmd.AddCommand(newReportCmd(opts))
	cmd.AddCommand(newFactorsCmd(opts))

	return cmd
}
