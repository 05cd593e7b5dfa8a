package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/teksel-io/teksel"
	"github.com/teksel-io/teksel/errors"
)

var red = color.New(color.FgRed).SprintFunc()

// displayError is an error whose message is already formatted for the
// terminal.
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.err }

func fatal(err error) {
	var display *displayError
	if goerrors.As(err, &display) {
		fmt.Fprint(os.Stderr, display.msg)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", red(err.Error()))
	}
	os.Exit(1)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func isTerminalIO() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// Reads global flags and adjusts the environment accordingly.
func (a *app) processGlobalFlags() {
	if a.v.GetBool("no-color") {
		color.NoColor = true
	}
}

func (a *app) useColor() bool {
	return !a.v.GetBool("no-color") && !color.NoColor
}

// logger writes human readable logs to w at the configured level.
func (a *app) logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(a.v.GetString("log-level")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: !a.useColor(), TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func (a *app) evalOptions(cmd *cobra.Command) []teksel.Option {
	return []teksel.Option{
		teksel.WithRows(a.v.GetInt("rows")),
		teksel.WithRecursionLimit(a.v.GetInt("recursion-limit")),
		teksel.WithLogger(a.logger(cmd.ErrOrStderr())),
	}
}

// formatError renders a teksel error with the offending source line.
func (a *app) formatError(err error, source string) error {
	var e *errors.Error
	if !goerrors.As(err, &e) {
		return err
	}
	return &displayError{msg: errors.NewFormatter(a.useColor()).Format(err, source), err: err}
}

// getCode determines what code is to be processed. There are three
// possibilities:
//  1. --code <code>
//  2. --stdin (read code from stdin)
//  3. path as args[0]
func getCode(cmd *cobra.Command, args []string) (string, error) {
	codeSet := cmd.Flags().Changed("code")
	stdinSet, _ := cmd.Flags().GetBool("stdin")
	pathSupplied := len(args) > 0

	count := 0
	for _, set := range []bool{codeSet, stdinSet, pathSupplied} {
		if set {
			count++
		}
	}
	switch {
	case count > 1:
		return "", goerrors.New("multiple input sources specified")
	case count == 0:
		return "", goerrors.New("no input: pass a file, --code or --stdin")
	}
	if stdinSet {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if pathSupplied {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return cmd.Flags().GetString("code")
}

func addCodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "code to process")
	cmd.Flags().Bool("stdin", false, "read code from stdin")
}
