package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/teksel-io/teksel"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/sheet"
)

var outputFormats = []string{"json", "text"}

// jsonOutput reports whether results are printed as JSON. A query implies
// JSON output.
func (a *app) jsonOutput() (bool, error) {
	switch format := strings.ToLower(a.v.GetString("output")); format {
	case "", "text":
		return a.v.GetString("query") != "", nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("unknown output format: %s", format)
	}
}

// printJSON writes v as JSON, filtered by the configured query. Output to a
// terminal is indented and colored.
func (a *app) printJSON(w io.Writer, v any) error {
	doc, err := teksel.Query(v, a.v.GetString("query"))
	if err != nil {
		return err
	}
	var data []byte
	if f, ok := w.(*os.File); ok && isTerminal(f) && a.useColor() {
		data, err = prettyjson.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printValue writes the value returned by main. Nothing is printed when main
// returns nothing.
func printValue(w io.Writer, value object.Value) {
	if value == nil {
		return
	}
	fmt.Fprintln(w, color.New(color.FgHiWhite).Sprint(value.Inspect()))
}

// printCells writes the non-empty cells of grid as a table of address,
// value and formula.
func printCells(w io.Writer, grid *sheet.Grid) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", header("CELL"), header("TYPE"), header("VALUE"), header("FORMULA"))
	for _, cell := range grid.NonEmpty() {
		value := cell.Value()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cell.Address(), value.Type(), object.Describe(value), cell.Formula())
	}
	_ = tw.Flush()
}

func (a *app) printResult(w io.Writer, result *teksel.Result, showCells bool) error {
	asJSON, err := a.jsonOutput()
	if err != nil {
		return err
	}
	if asJSON {
		return a.printJSON(w, result)
	}
	printValue(w, result.Value)
	if showCells && result.Grid != nil {
		printCells(w, result.Grid)
	}
	return nil
}
