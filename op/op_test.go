package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryLookup(t *testing.T) {
	for _, symbol := range []string{"+", "-", "*", "/"} {
		bop, ok := LookupBinary(symbol)
		require.True(t, ok)
		require.Equal(t, symbol, bop.String())
		require.NotEmpty(t, bop.Verb())
	}
	_, ok := LookupBinary("%")
	require.False(t, ok)
	require.Equal(t, "divide", Divide.Verb())
}

func TestCompareLookup(t *testing.T) {
	for _, symbol := range []string{"<", "<=", "==", "!=", ">", ">="} {
		cop, ok := LookupCompare(symbol)
		require.True(t, ok)
		require.Equal(t, symbol, cop.String())
	}
	_, ok := LookupCompare("=<")
	require.False(t, ok)
	require.Equal(t, "", CompareOpType(99).String())
}
