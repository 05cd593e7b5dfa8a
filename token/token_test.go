package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {
		require.Equal(t, val, LookupIdentifier(key), "lookup of %s", key)

		// Once the keywords are uppercase they'll no longer
		// match - so we find them as identifiers.
		require.Equal(t, Type(IDENT), LookupIdentifier(strings.ToUpper(key)), "lookup of %s", key)
	}
}

func TestOperatorTables(t *testing.T) {
	tok, ok := LookupOperator("+=")
	require.True(t, ok)
	require.Equal(t, Type(PLUS_EQUALS), tok)

	_, ok = LookupOperator("=<")
	require.False(t, ok)

	tok, ok = LookupPunctuation(':')
	require.True(t, ok)
	require.Equal(t, Type(COLON), tok)

	_, ok = LookupPunctuation('%')
	require.False(t, ok)

	require.Len(t, Operators(), 22)
}

func TestPosition(t *testing.T) {
	tok := Token{
		Type:     IDENT,
		Literal:  "foo",
		Position: Position{Offset: 4, Line: 2, Column: 1},
	}
	require.True(t, tok.Position.IsValid())
	require.Equal(t, "2:1", tok.Position.String())
	require.Equal(t, "-", Position{}.String())
	require.Equal(t, `IDENT "foo"`, tok.String())
}

func TestAdvance(t *testing.T) {
	pos := Position{Offset: 10, Line: 3, Column: 5}
	require.Equal(t, Position{Offset: 13, Line: 3, Column: 8}, pos.Advance(3))
}
