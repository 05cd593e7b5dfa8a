package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teksel-io/teksel/token"
)

func TestErrorMessage(t *testing.T) {
	err := NewTypeError(token.Position{Line: 3, Column: 7}, "cannot add %s and %s", "integer", "boolean")
	require.Equal(t, "TypeError at line 3, column 7: cannot add integer and boolean", err.Error())

	err = NewNameError(token.Position{}, "no main function defined")
	require.Equal(t, "NameError: no main function defined", err.Error())
}

func TestKinds(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewValueError(token.Position{}, "boom"))
	require.True(t, IsKind(err, ValueError))
	require.False(t, IsKind(err, TypeError))
	require.Equal(t, ValueError, KindOf(err))
	require.Equal(t, Kind(""), KindOf(fmt.Errorf("plain")))
	require.False(t, IsKind(nil, ValueError))
}

func TestWithPos(t *testing.T) {
	pos := token.Position{Line: 2, Column: 4}
	err := WithPos(NewTypeError(token.Position{}, "bad"), pos)
	require.Equal(t, "TypeError at line 2, column 4: bad", err.Error())

	// An existing position is kept.
	orig := NewTypeError(token.Position{Line: 9, Column: 1}, "bad")
	require.Same(t, orig, WithPos(orig, pos))

	plain := fmt.Errorf("plain")
	require.Equal(t, plain, WithPos(plain, pos))
}

func TestFormat(t *testing.T) {
	src := "def main() {\n  return x + 1\n}"
	err := NewNameError(token.Position{Line: 2, Column: 10}, "undefined variable 'x'").WithHint("Did you mean 'y'?")
	out := NewFormatter(false).Format(err, src)
	expected := "NameError: undefined variable 'x'\n" +
		"  --> 2:10\n" +
		"   |\n" +
		" 2 |   return x + 1\n" +
		"   |          ^\n" +
		"   = hint: Did you mean 'y'?\n"
	require.Equal(t, expected, out)
}

func TestFormatWithoutPosition(t *testing.T) {
	out := NewFormatter(false).Format(NewNameError(token.Position{}, "no main function defined"), "")
	require.Equal(t, "NameError: no main function defined\n", out)

	out = NewFormatter(false).Format(fmt.Errorf("disk full"), "")
	require.Equal(t, "error: disk full\n", out)
}

func TestSuggestSimilar(t *testing.T) {
	tests := []struct {
		target     string
		candidates []string
		expected   string
	}{
		{"coutn", []string{"count", "sum", "main"}, "Did you mean 'count'?"},
		{"sm", []string{"sum", "main"}, "Did you mean 'sum'?"},
		{"total", []string{"main"}, ""},
		{"cel", []string{"cell", "col", "cell"}, "Did you mean one of: 'cell', 'col'?"},
		{"", []string{"a"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatSuggestions(SuggestSimilar(tt.target, tt.candidates)))
		})
	}
}
