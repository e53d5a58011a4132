package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/minijavac/format"
	"github.com/dhamidi/minijavac/java/parser"
)

var replLog = commonlog.GetLogger("minijavac.repl")

func newReplCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse declarations line by line",
		Long: "Each line is parsed as a translation unit and its tree is printed.\n" +
			"Records declared on earlier lines stay known as type names.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			types := parser.NewTypeNames()
			defer types.Destroy()

			r := &repl{
				types:  types,
				enc:    enc,
				opts:   a.parserOptions(cmd.ErrOrStderr()),
				errOut: cmd.ErrOrStderr(),
			}

			line := liner.NewLiner()
			history := a.cfg.HistoryFile
			defer func() {
				if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
					replLog.Warningf("history: %v", err)
				}
				if f, err := os.Create(history); err == nil {
					defer f.Close()
					if _, err := line.WriteHistory(f); err != nil {
						replLog.Warningf("history: %v", err)
					}
				}
				line.Close()
			}()

			if f, err := os.Open(history); err == nil {
				defer f.Close()
				if _, err := line.ReadHistory(f); err != nil {
					replLog.Warningf("history: %v", err)
				}
			}

			line.SetCtrlCAborts(true)
			line.SetCompleter(func(input string) []string {
				return complete(types, input)
			})

			return r.run(line)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexpr", "output format ("+strings.Join(format.Names, ", ")+")")

	return cmd
}

type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type repl struct {
	types  *parser.TypeNames
	enc    format.Encoder
	opts   []parser.Option
	errOut io.Writer
}

// run reads lines until end of input or Ctrl-C.
func (r *repl) run(p prompter) error {
	for {
		input, err := p.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		p.AppendHistory(input)
		r.eval(input)
	}
}

func (r *repl) eval(input string) {
	opts := append(slices.Clone(r.opts), parser.WithTypeNames(r.types))
	unit, err := parser.Parse(strings.NewReader(input), opts...)
	if err != nil {
		printError(r.errOut, err)
		return
	}
	replLog.Debugf("parsed %d declarations, %d record names known", unit.Len(), r.types.Len())
	if err := r.enc.Encode(unit); err != nil {
		printError(r.errOut, err)
	}
}

// complete offers keywords and known record names for the word at the end
// of input.
func complete(types *parser.TypeNames, input string) []string {
	start := len(input)
	for start > 0 && isWordByte(input[start-1]) {
		start--
	}
	word := input[start:]
	if word == "" {
		return nil
	}

	var out []string
	candidates := append(slices.Clone(parser.Keywords), types.Keys()...)
	for _, c := range candidates {
		if isWordByte(c[0]) && strings.HasPrefix(c, word) {
			out = append(out, input[:start]+c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
