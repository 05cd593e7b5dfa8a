package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teksel-io/teksel"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/interpreter"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/token"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"code", []string{"run", "-c", "def main() { A1 = 2; return A1 * 21 }"}, "42\n"},
		{"text value", []string{"run", "-c", `def main() { return "a" * 3 }`}, "aaa\n"},
		{"no value", []string{"run", "-c", "def main() { A1 = 1 }"}, ""},
		{"example", []string{"run", "--example", "sum"}, "50\n"},
		{"query", []string{"run", "--example", "mid", "-q", "cells[2][0].value.value"}, "\"you\"\n"},
		{"json value", []string{"run", "-c", "def main() { return 1.5 }", "-o", "json", "-q", "value"}, "1.5\n"},
		{"rows", []string{"run", "--rows", "3", "-c", "def main() { A1 = 1 }", "-q", "length(cells)"}, "4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, stdout)
		})
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "double.tks")
	require.NoError(t, os.WriteFile(program, []byte("def main() {\n\tB1 = A1 * 2\n\treturn B1\n}\n"), 0o644))
	cells := filepath.Join(dir, "sheet.yaml")
	require.NoError(t, os.WriteFile(cells, []byte("A1: 21\nA2: \"=A1 + 1\"\n"), 0o644))

	stdout, _, err := execute(t, "run", program, "--cells", cells, "--show-cells")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Equal(t, "42", lines[0])
	require.Len(t, lines, 5)
	require.Regexp(t, `^CELL\s+TYPE\s+VALUE\s+FORMULA$`, lines[1])
	require.Regexp(t, `^A1\s+integer\s+21\s*$`, lines[2])
	require.Regexp(t, `^B1\s+integer\s+42\s+42$`, lines[3])
	require.Regexp(t, `^A2\s+integer\s+22\s+=A1 \+ 1$`, lines[4])
}

func TestRunErrors(t *testing.T) {
	_, _, err := execute(t, "run", "-c", "def main() {\n\treturn 1 / 0\n}")
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.ValueError))
	require.Equal(t, "ValueError: division by zero\n"+
		"  --> 2:11\n"+
		"   |\n"+
		" 2 |  return 1 / 0\n"+
		"   |           ^\n", err.Error())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"run"}, "no input: pass a file, --code or --stdin"},
		{"two inputs", []string{"run", "file.tks", "-c", "x"}, "multiple input sources specified"},
		{"example and code", []string{"run", "--example", "sum", "-c", "x"}, "--example cannot be combined with other code"},
		{"unknown example", []string{"run", "--example", "summ"}, "Did you mean 'sum'?"},
		{"output", []string{"run", "-c", "def main() {}", "-o", "xml"}, "unknown output format: xml"},
		{"missing file", []string{"run", "nope.tks"}, "no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRunTrace(t *testing.T) {
	_, stderr, err := execute(t, "run", "--trace", "-c", "def f(x) { return x } def main() { return f(1) }")
	require.NoError(t, err)
	require.Equal(t, "call main(0 args)\n"+
		"  call f(1 args) at 1:43\n"+
		"  return f\n"+
		"return main\n", stderr)
}

func TestTokens(t *testing.T) {
	stdout, _, err := execute(t, "tokens", "-c", "A1 = 5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	require.Regexp(t, `^1:1\s+CELL\s+"A1"$`, lines[0])
	require.Regexp(t, `^1:7\s+EOF\s+""$`, lines[3])

	stdout, _, err = execute(t, "tokens", "-c", "A1 = 5", "-o", "json")
	require.NoError(t, err)
	var tokens []tokenJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &tokens))
	require.Equal(t, tokenJSON{Type: "INT", Value: "5", Line: 1, Column: 6}, tokens[2])

	_, _, err = execute(t, "tokens", "-c", `x = "open`)
	require.True(t, errors.IsKind(err, errors.SyntaxError))
}

func TestAST(t *testing.T) {
	stdout, _, err := execute(t, "ast", "-c", "def main() { A1 = 1 + 2 }")
	require.NoError(t, err)
	require.Equal(t, "Program  1:1\n"+
		"  FuncDef main  1:1\n"+
		"    Ident main  1:5\n"+
		"    Block  1:12\n"+
		"      Assign  1:14\n"+
		"        Cell A1  1:14\n"+
		"        Infix +  1:19\n"+
		"          Int 1  1:19\n"+
		"          Int 2  1:23\n", stdout)

	stdout, _, err = execute(t, "ast", "-c", "def main() { return A1.value }", "-o", "json")
	require.NoError(t, err)
	var root ASTNode
	require.NoError(t, json.Unmarshal([]byte(stdout), &root))
	require.Equal(t, "Program", root.Type)
	fn := root.Children[0]
	require.Equal(t, "FuncDef", fn.Type)
	require.Equal(t, "main", fn.Value)
	ret := fn.Children[1].Children[0]
	require.Equal(t, "Return", ret.Type)
	require.Equal(t, "Attr", ret.Children[0].Type)
	require.Equal(t, "value", ret.Children[0].Value)
}

func TestExamplesCommand(t *testing.T) {
	stdout, _, err := execute(t, "examples")
	require.NoError(t, err)
	require.Regexp(t, `(?m)^sum\s+Adds up the values of a range of cells$`, stdout)
	require.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 6)

	stdout, _, err = execute(t, "examples", "sum")
	require.NoError(t, err)
	require.Contains(t, stdout, "sum: Adds up the values of a range of cells")
	require.Contains(t, stdout, "def sum(range)")
	require.Regexp(t, `(?m)^B10\s+integer\s+43`, stdout)

	stdout, _, err = execute(t, "examples", "trim", "-o", "json", "-q", "result.value")
	require.NoError(t, err)
	require.Equal(t, "\"Hello World\"\n", stdout)
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	s := newSession(10)

	value, _, err := s.eval(ctx, "1 + 2")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(3), value)

	value, _, err = s.eval(ctx, "A1 = 20; A2 = 22")
	require.NoError(t, err)
	require.Nil(t, value)

	value, _, err = s.eval(ctx, "A1 + A2")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(42), value)

	_, _, err = s.eval(ctx, "def double(x) {\n\treturn x * 2\n}")
	require.NoError(t, err)
	value, _, err = s.eval(ctx, "double(A1)")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(40), value)

	_, _, err = s.eval(ctx, "def double(x) { return x * 3 }")
	require.NoError(t, err)
	value, _, err = s.eval(ctx, "double(2)")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(6), value)
	require.Equal(t, []string{"double"}, s.names())

	_, _, err = s.eval(ctx, "def main() { return 1 }")
	require.EqualError(t, err, "NameError at line 1, column 5: main cannot be defined in the repl")

	_, src, err := s.eval(ctx, "1 / 0")
	require.True(t, errors.IsKind(err, errors.ValueError))
	require.Contains(t, src, "return 1 / 0")

	_, _, err = s.eval(ctx, "if {")
	require.True(t, errors.IsKind(err, errors.SyntaxError))

	var out bytes.Buffer
	require.False(t, s.command(&out, ":cells"))
	require.Regexp(t, `(?m)^A1\s+integer\s+20\s+20$`, out.String())

	out.Reset()
	require.False(t, s.command(&out, ":funcs"))
	require.Equal(t, "def double(x) { return x * 3 }\n", out.String())

	require.False(t, s.command(&out, ":reset"))
	require.Empty(t, s.grid.NonEmpty())
	require.Empty(t, s.names())

	out.Reset()
	require.False(t, s.command(&out, ":bogus"))
	require.Equal(t, "unknown command. Type :help for help.\n", out.String())
	require.True(t, s.command(&out, ":quit"))
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"def main() {", true},
		{"def main() {\n\tif A1 > 1 {", true},
		{"def main() { }", false},
		{"A1 + 1", false},
		{`x = "{"`, false},
		{"}", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, incomplete(tt.src), tt.src)
	}
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := &tracer{w: &buf}
	require.True(t, tr.OnCall(interpreter.CallEvent{FunctionName: "main", Depth: 1}))
	require.True(t, tr.OnReturn(interpreter.ReturnEvent{FunctionName: "main", Depth: 1, Err: errors.NewValueError(token.Position{}, "boom")}))
	require.Equal(t, "call main(0 args)\nfail main\n", buf.String())

	result, err := teksel.Eval(context.Background(), "def main() { return 1 }", teksel.WithObserver(tr))
	require.NoError(t, err)
	require.Equal(t, object.NewInt(1), result.Value)
}
