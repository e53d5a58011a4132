package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/minijavac/config"
	"github.com/dhamidi/minijavac/java/parser"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "minijavac",
		Short:             "A front end for a small Java-like language",
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.configPath, "config", config.Path(), "configuration file")
	flags.IntVar(&a.maxDepth, "max-depth", parser.DefaultMaxDepth, "nesting limit for statements and expressions (0 disables)")
	flags.BoolVar(&a.warnings, "warnings", true, "print warnings to stderr")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newReplCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newGrammarCmd())

	return rootCmd
}

// app holds the settings shared by all subcommands: the config file merged
// with the flags the user set explicitly.
type app struct {
	configPath string
	verbose    int
	maxDepth   int
	warnings   bool

	cfg config.Config
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbosity = a.verbose
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("warnings") {
		cfg.ShowWarnings = a.warnings
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	commonlog.Configure(cfg.Verbosity, nil)
	return nil
}

// parserOptions applies the nesting limit and, unless disabled, prints
// warnings to w as they are found.
func (a *app) parserOptions(w io.Writer) []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(a.cfg.MaxDepth)}
	if a.cfg.ShowWarnings {
		opts = append(opts, parser.WithWarningHandler(func(d *parser.Diagnostic) {
			fmt.Fprintln(w, d.Error())
		}))
	}
	return opts
}

// printError writes err as one line. Diagnostics already carry their
// severity prefix.
func printError(w io.Writer, err error) {
	var d *parser.Diagnostic
	if errors.As(err, &d) {
		fmt.Fprintln(w, d.Error())
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
