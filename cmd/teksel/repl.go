package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/teksel-io/teksel"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/sheet"
	"github.com/teksel-io/teksel/token"
)

const (
	historyFile = ".teksel_history"
	promptMain  = "teksel> "
	promptCont  = "......> "
)

const replHelp = `Enter an expression to evaluate it, or statements to run them.
Lines starting with "def" define functions for later lines. Cells keep
their values between lines; variables do not.

  :cells   print the non-empty cells
  :funcs   list the defined functions
  :reset   clear the grid and the functions
  :quit    exit`

func (a *app) replCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(a.v.GetInt("rows"), a.evalOptions(cmd)...)
			if cells, _ := cmd.Flags().GetString("cells"); cells != "" {
				grid, err := sheet.LoadFile(cells, a.v.GetInt("rows"))
				if err != nil {
					return err
				}
				s.grid = grid
			}
			return a.runRepl(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().String("cells", "", "JSON or YAML file holding the initial grid")
	return cmd
}

// session is the state kept between REPL lines: one grid and the functions
// defined so far.
type session struct {
	rows  int
	grid  *sheet.Grid
	funcs map[string]string
	opts  []teksel.Option
}

func newSession(rows int, opts ...teksel.Option) *session {
	return &session{rows: rows, grid: sheet.New(rows), funcs: map[string]string{}, opts: opts}
}

func (s *session) reset() {
	s.grid = sheet.New(s.rows)
	s.funcs = map[string]string{}
}

func (s *session) names() []string {
	names := make([]string, 0, len(s.funcs))
	for name := range s.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *session) prelude() string {
	var b strings.Builder
	for _, name := range s.names() {
		b.WriteString(s.funcs[name])
		b.WriteString("\n")
	}
	return b.String()
}

// define records the functions declared in src, replacing earlier
// definitions with the same names.
func (s *session) define(ctx context.Context, src string) ([]string, error) {
	program, err := teksel.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	for _, fn := range program.Funcs {
		if fn.Name.Name == "main" {
			return nil, errors.NewNameError(fn.Name.Pos(), "main cannot be defined in the repl")
		}
	}
	for _, fn := range program.Funcs {
		s.funcs[fn.Name.Name] = src[fn.Pos().Offset:fn.End().Offset]
	}
	return program.Names(), nil
}

// eval runs one input. It is tried first as an expression whose value is
// returned, then as a list of statements. The program actually run is
// returned so that error positions can be shown against it.
func (s *session) eval(ctx context.Context, input string) (object.Value, string, error) {
	if strings.HasPrefix(strings.TrimSpace(input), "def ") {
		_, err := s.define(ctx, input)
		return nil, input, err
	}
	prelude := s.prelude()
	src := prelude + "def main() { return " + input + "\n}"
	program, err := teksel.Parse(ctx, src)
	if err != nil {
		src = prelude + "def main() {\n" + input + "\n}"
		if program, err = teksel.Parse(ctx, src); err != nil {
			return nil, src, err
		}
	}
	opts := append([]teksel.Option{teksel.WithGrid(s.grid)}, s.opts...)
	result, err := teksel.Run(ctx, program, opts...)
	if err != nil {
		return nil, src, err
	}
	return result.Value, src, nil
}

// command runs a ":" command. It reports whether the session should end.
func (s *session) command(w io.Writer, line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case ":quit", ":q", ":exit":
		return true
	case ":cells":
		printCells(w, s.grid)
	case ":funcs":
		for _, name := range s.names() {
			fmt.Fprintln(w, s.funcs[name])
		}
	case ":reset":
		s.reset()
	case ":help":
		fmt.Fprintln(w, replHelp)
	default:
		fmt.Fprintln(w, "unknown command. Type :help for help.")
	}
	return false
}

func (a *app) runRepl(ctx context.Context, w io.Writer, s *session) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := homedir.Dir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(w, "teksel %s. Type :help for help.\n", version)
	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(w)
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if strings.HasPrefix(strings.TrimSpace(input), ":") {
			if s.command(w, input) {
				return nil
			}
			continue
		}
		value, src, err := s.eval(ctx, input)
		if err != nil {
			fmt.Fprint(os.Stderr, errors.NewFormatter(a.useColor()).Format(err, src))
			continue
		}
		if value != nil {
			fmt.Fprintln(w, color.New(color.FgHiWhite).Sprint(value.Inspect()))
		}
	}
}

// readInput reads lines until every opened brace is closed.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if goerrors.Is(err, io.EOF) || goerrors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src has more opening than closing braces.
func incomplete(src string) bool {
	tokens, _ := teksel.Tokenize(src)
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
	}
	return depth > 0
}
