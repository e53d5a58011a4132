package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/minijavac/format"
	"github.com/dhamidi/minijavac/java/parser"
)

func newTokensCmd(a *app) *cobra.Command {
	var outputFormat string
	var stats bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dumper format.TokenWriter
			switch outputFormat {
			case "text":
				dumper = format.NewTokenDumper(cmd.OutOrStdout())
			case "json":
				dumper = format.NewTokenJSONEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return &parser.Diagnostic{
					Severity: parser.SeverityFatal,
					File:     filename,
					Message:  fmt.Sprintf("cannot open file %s", filename),
				}
			}

			l := parser.NewLexer(data, filename)
			defer l.Close()
			if a.cfg.ShowWarnings {
				l.SetWarningHandler(func(d *parser.Diagnostic) {
					fmt.Fprintln(cmd.ErrOrStderr(), d.Error())
				})
			}

			if stats {
				fmt.Fprintf(cmd.ErrOrStderr(), "keyword table: %s\n", l.KeywordStats())
			}
			return dumper.Dump(l)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print keyword table statistics to stderr")

	return cmd
}
