// =============================================================================
// FASTA to Vienna Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with file
// operands (or none, to read standard input) it reformats FASTA to Vienna
// style on standard output. Subcommands cover batch conversion and tooling.
//
// COBRA CLI STRUCTURE:
//   rootCmd (fasta2vienna [file ...])
//   ├── batchCmd    (fasta2vienna batch)
//   ├── wrapCmd     (fasta2vienna wrap)
//   ├── configCmd   (fasta2vienna config generate|validate)
//   └── versionCmd  (fasta2vienna version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading configuration with Viper before any command runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/fasta2vienna/internal/config"
	"github.com/ginjaninja78/fasta2vienna/internal/logging"
	"github.com/ginjaninja78/fasta2vienna/internal/reformat"
	"github.com/ginjaninja78/fasta2vienna/pkg/utils"
)

// =============================================================================
// SHARED STATE
// =============================================================================

// app carries what PersistentPreRunE resolved to the running command.
type app struct {
	// cfgFile is the path given with --config. Empty means search paths.
	cfgFile string

	// verbose forces debug logging.
	verbose bool

	v      *viper.Viper
	cfg    *config.Config
	logger *logrus.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:   "fasta2vienna [file ...]",
		Short: "Collapse FASTA records onto single lines (Vienna style)",
		Long: `fasta2vienna reformats FASTA so that each record's sequence, however it
was wrapped, sits on a single line after its header. Output goes to standard
output; input comes from the named files in order, or standard input when no
file is given ("-" also names standard input).

Sequence lines are copied verbatim: no validation, no case changes.

Example Usage:
  fasta2vienna genome.fa > genome.vienna.fa
  zcat reads.fa.gz | fasta2vienna | grep -A1 '^>chr7'
  fasta2vienna batch --input-dir ./incoming --output-dir ./converted`,

		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := a.init(cmd)
			if err != nil && cmd == cmd.Root() && a.cfgFile == "" {
				// The filter takes no settings; ambient config only warns.
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; ignoring configuration\n", err)
				a.logger = a.fallbackLogger(cmd)
				return nil
			}
			return err
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReformat(cmd, args)
		},
	}

	// --config flag: explicit configuration file. A missing explicit file is
	// an error; without the flag the standard locations are searched.
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "path to config file (yaml)")

	// --verbose flag: debug logging on stderr.
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output on stderr")

	cmd.AddCommand(newBatchCmd(a))
	cmd.AddCommand(newWrapCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init loads configuration (defaults < file < env < changed flags) and
// builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	v := viper.New()
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	}
	if err := config.Load(v); err != nil {
		return err
	}
	applyConfigFlagOverrides(cmd, v)

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.v, a.cfg, a.logger = v, cfg, logger
	if used := v.ConfigFileUsed(); used != "" && utils.FileExists(used) {
		logger.WithField("path", used).Debug("loaded config file")
	}
	return nil
}

// fallbackLogger is used when configuration could not be loaded. Only
// --verbose is honoured.
func (a *app) fallbackLogger(cmd *cobra.Command) *logrus.Logger {
	if !a.verbose {
		return logging.Discard()
	}
	logger, err := logging.New(logrus.DebugLevel.String(), cmd.ErrOrStderr())
	if err != nil {
		return logging.Discard()
	}
	return logger
}

// =============================================================================
// REFORMAT
// =============================================================================

// runReformat streams every operand through one Reformatter to stdout.
func (a *app) runReformat(cmd *cobra.Command, args []string) error {
	r := reformat.New(cmd.OutOrStdout())

	err := r.ConsumeFiles(args, cmd.InOrStdin())
	if err == nil {
		err = r.Finish()
	}
	if utils.IsBrokenPipe(err) {
		a.logger.Debug("output closed early")
		return nil
	}
	if err != nil {
		return err
	}

	stats := r.Stats()
	a.logger.WithFields(logrus.Fields{
		"inputs":  max(len(args), 1),
		"lines":   stats.Lines,
		"records": stats.Headers,
		"bytes":   stats.SequenceBytes,
	}).Debug("reformatted")
	return nil
}
