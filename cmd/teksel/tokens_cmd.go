package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/teksel-io/teksel"
)

type tokenJSON struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (a *app) tokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tokens [file]",
		Aliases: []string{"lex"},
		Short:   "Print the tokens of a program",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := getCode(cmd, args)
			if err != nil {
				return err
			}
			asJSON, err := a.jsonOutput()
			if err != nil {
				return err
			}
			tokens, lexErr := teksel.Tokenize(code)
			w := cmd.OutOrStdout()
			if asJSON {
				out := make([]tokenJSON, len(tokens))
				for i, tok := range tokens {
					out[i] = tokenJSON{string(tok.Type), tok.Literal, tok.Position.Line, tok.Position.Column}
				}
				if err := a.printJSON(w, out); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, tok := range tokens {
					fmt.Fprintf(tw, "%s\t%s\t%q\n", tok.Position, tok.Type, tok.Literal)
				}
				_ = tw.Flush()
			}
			if lexErr != nil {
				return a.formatError(lexErr, code)
			}
			return nil
		},
	}
	addCodeFlags(cmd)
	return cmd
}
