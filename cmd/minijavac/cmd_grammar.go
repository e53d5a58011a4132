package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/minijavac/java/grammar"
)

func newGrammarCmd() *cobra.Command {
	var terminals bool
	var production string

	cmd := &cobra.Command{
		Use:   "grammar [text]",
		Short: "Print the language grammar in EBNF",
		Long: "Without flags the grammar is printed. --terminals lists the keywords and\n" +
			"punctuators. --match checks how much of text a lexical production accepts.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case production != "":
				if len(args) != 1 {
					return fmt.Errorf("--match needs the text to match")
				}
				if !grammar.IsLexical(production) || g[production] == nil {
					return fmt.Errorf("no lexical production %q", production)
				}
				n := grammar.NewMatcher(g).Match(production, []byte(args[0]))
				if n < 0 {
					fmt.Fprintf(out, "%s: no match\n", production)
					return nil
				}
				fmt.Fprintf(out, "%s: matches %d of %d bytes\n", production, n, len(args[0]))
			case terminals:
				fmt.Fprintln(out, strings.Join(grammar.Terminals(g), " "))
			default:
				_, err := out.Write(grammar.Source())
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&terminals, "terminals", false, "list keywords and punctuators")
	cmd.Flags().StringVar(&production, "match", "", "lexical production to match the text against")

	return cmd
}
