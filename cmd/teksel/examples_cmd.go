package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/teksel-io/teksel/examples"
)

func (a *app) examplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "examples [name]",
		Aliases: []string{"ex"},
		Short:   "List the canned examples or show one",
		Long: `List the canned examples, or show the code and grid of one.

Run an example with "teksel run --example NAME".`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return examples.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := a.jsonOutput()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				list, err := examples.List()
				if err != nil {
					return err
				}
				if asJSON {
					return a.printJSON(w, list)
				}
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, e := range list {
					fmt.Fprintf(tw, "%s\t%s\n", color.CyanString(e.Name), e.Description)
				}
				return tw.Flush()
			}
			e, err := examples.Get(args[0])
			if err != nil {
				return a.formatError(err, "")
			}
			if asJSON {
				return a.printJSON(w, e)
			}
			fmt.Fprintf(w, "%s: %s\n\n", color.New(color.Bold).Sprint(e.Name), e.Description)
			fmt.Fprintln(w, e.Code)
			if len(e.Cells) > 0 {
				grid, err := e.Grid(a.v.GetInt("rows"))
				if err != nil {
					return err
				}
				printCells(w, grid)
			}
			return nil
		},
	}
}
