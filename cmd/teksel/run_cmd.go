package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/teksel-io/teksel"
	"github.com/teksel-io/teksel/examples"
	"github.com/teksel-io/teksel/interpreter"
	"github.com/teksel-io/teksel/sheet"
)

func (a *app) runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a program",
		Long: `Run a program against a grid.

The grid starts empty unless --cells names a JSON or YAML file, or --example
names a canned program, which brings its own grid. Cells holding text that
starts with "=" are evaluated as formulas before main is called.`,
		Example: `  teksel run sum.tks --cells sheet.yaml
  teksel run --code 'def main() { A1 = 2; return A1 * 21 }'
  teksel run --example sum --output json --query 'cells[11][1].value'`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runHandler,
	}
	addCodeFlags(cmd)
	cmd.Flags().String("cells", "", "JSON or YAML file holding the initial grid")
	cmd.Flags().StringP("example", "e", "", "run a canned example")
	cmd.Flags().Bool("show-cells", false, "print the non-empty cells after the run")
	cmd.Flags().Bool("trace", false, "print function calls and returns")
	cmd.Flags().Bool("timing", false, "print the execution time")
	_ = cmd.RegisterFlagCompletionFunc("example", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return examples.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (a *app) runHandler(cmd *cobra.Command, args []string) error {
	code, grid, err := a.runInput(cmd, args)
	if err != nil {
		return err
	}
	opts := a.evalOptions(cmd)
	if grid != nil {
		opts = append(opts, teksel.WithGrid(grid))
	}
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		opts = append(opts, teksel.WithObserver(&tracer{w: cmd.ErrOrStderr()}))
	}

	start := time.Now()
	result, err := teksel.Eval(cmd.Context(), code, opts...)
	if err != nil {
		return a.formatError(err, code)
	}
	dt := time.Since(start)

	showCells, _ := cmd.Flags().GetBool("show-cells")
	if err := a.printResult(cmd.OutOrStdout(), result, showCells); err != nil {
		return err
	}
	if timing, _ := cmd.Flags().GetBool("timing"); timing {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", dt)
	}
	return nil
}

// runInput returns the program to run and the grid to run it on. A nil
// grid means an empty one.
func (a *app) runInput(cmd *cobra.Command, args []string) (string, *sheet.Grid, error) {
	rows := a.v.GetInt("rows")
	name, _ := cmd.Flags().GetString("example")
	cells, _ := cmd.Flags().GetString("cells")
	if name != "" {
		if len(args) > 0 || cmd.Flags().Changed("code") {
			return "", nil, fmt.Errorf("--example cannot be combined with other code")
		}
		e, err := examples.Get(name)
		if err != nil {
			return "", nil, a.formatError(err, "")
		}
		grid, err := e.Grid(rows)
		if err != nil {
			return "", nil, err
		}
		if cells != "" {
			if grid, err = sheet.LoadFile(cells, rows); err != nil {
				return "", nil, err
			}
		}
		return e.Code, grid, nil
	}
	code, err := getCode(cmd, args)
	if err != nil {
		return "", nil, err
	}
	if cells == "" {
		return code, nil, nil
	}
	grid, err := sheet.LoadFile(cells, rows)
	if err != nil {
		return "", nil, err
	}
	return code, grid, nil
}

// tracer prints one line per function call and return, indented by depth.
type tracer struct {
	w io.Writer
}

func (t *tracer) OnCall(e interpreter.CallEvent) bool {
	at := ""
	if e.Position.IsValid() {
		at = " at " + e.Position.String()
	}
	fmt.Fprintf(t.w, "%s%s %s(%d args)%s\n", strings.Repeat("  ", e.Depth-1),
		color.CyanString("call"), e.FunctionName, e.ArgCount, at)
	return true
}

func (t *tracer) OnReturn(e interpreter.ReturnEvent) bool {
	status := color.GreenString("return")
	if e.Err != nil {
		status = color.RedString("fail")
	}
	fmt.Fprintf(t.w, "%s%s %s\n", strings.Repeat("  ", e.Depth-1), status, e.FunctionName)
	return true
}
