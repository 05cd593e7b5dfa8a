package teksel

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/sheet"
	"github.com/teksel-io/teksel/token"
)

func TestEval(t *testing.T) {
	result, err := Eval(context.Background(), `def main() { A1 = 2; return A1 * 21 }`)
	require.NoError(t, err)
	require.Equal(t, object.NewInt(42), result.Value)
	require.NoError(t, result.Err)
	cell, err := result.Grid.Get(1, "A")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(2), cell.Value())
}

func TestEvalWithGrid(t *testing.T) {
	grid, err := sheet.FromMap(map[string]any{"B2": 7, "B10": 43, "C1": "=B2+1"}, 10)
	require.NoError(t, err)
	src := `
def sum(range) {
	total = 0
	foreach cell in range {
		total += cell
	}
	return total
}
def main() { return sum(B1:B10) + C1 }`
	result, err := Eval(context.Background(), src, WithGrid(grid))
	require.NoError(t, err)
	require.Equal(t, object.NewInt(58), result.Value)
	require.Same(t, grid, result.Grid)
}

func TestEvalErrorsKeepGrid(t *testing.T) {
	result, err := Eval(context.Background(), `def main() { A1 = 1; A2 = 1 / 0; A3 = 1 }`, WithRows(5))
	require.True(t, errors.IsKind(err, errors.ValueError))
	require.Equal(t, err, result.Err)
	require.Equal(t, 5, result.Grid.Rows())
	cell, _ := result.Grid.Get(1, "A")
	require.Equal(t, object.NewInt(1), cell.Value())
	cell, _ = result.Grid.Get(3, "A")
	require.True(t, cell.IsEmpty())

	result, err = Eval(context.Background(), `def main( {`)
	require.True(t, errors.IsKind(err, errors.SyntaxError))
	require.NotNil(t, result.Grid)
	require.Nil(t, result.Value)
}

func TestEvalOptions(t *testing.T) {
	_, err := Eval(context.Background(), `def f(n) { return f(n) } def main() { return f(1) }`, WithRecursionLimit(3))
	require.EqualError(t, err, "RecursionError at line 1, column 18: maximum recursion depth of 3 has been reached")

	logger := zerolog.Nop()
	result, err := Eval(context.Background(), `def main() { return "ok" }`, WithLogger(logger), nil)
	require.NoError(t, err)
	require.Equal(t, object.NewText("ok"), result.Value)
}

func TestResultJSON(t *testing.T) {
	result, _ := Eval(context.Background(), `def main() { B1 = 3; return B1 + 0.5 }`, WithRows(1))
	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded struct {
		Value any                `json:"value"`
		Cells [][]sheet.CellJSON `json:"cells"`
		Error *string            `json:"error"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, 3.5, decoded.Value)
	require.Nil(t, decoded.Error)
	require.Len(t, decoded.Cells, 2)
	require.Equal(t, "B", decoded.Cells[1][1].Column)
	require.Equal(t, float64(3), decoded.Cells[1][1].Value.Value)

	result, _ = Eval(context.Background(), `def main() { return x }`)
	data, err = json.Marshal(result)
	require.NoError(t, err)
	require.Contains(t, string(data), `"error":"NameError at line 1, column 21: name 'x' is not defined"`)
	require.Contains(t, string(data), `"value":null`)
}

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize(`A1 = 5`)
	require.NoError(t, err)
	var types []token.Type
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	require.Equal(t, []token.Type{token.CELL, token.ASSIGN, token.INT, token.EOF}, types)

	tokens, err = Tokenize(`x = "open`)
	require.Error(t, err)
	require.Len(t, tokens, 2)
}

func TestParse(t *testing.T) {
	program, err := Parse(context.Background(), `def main() { return 1 }`)
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, program.Names())
}

func TestQuery(t *testing.T) {
	result, err := Eval(context.Background(), `def main() { B1 = 3; return B1 * 2 }`, WithRows(1))
	require.NoError(t, err)

	tests := []struct {
		query string
		want  any
	}{
		{"value", float64(6)},
		{"error", nil},
		{"cells[1][1].value.value", float64(3)},
		{"cells[1][1].value.type", "integer"},
		{"length(cells)", float64(2)},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Query(result, tt.query)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	doc, err := Query(result, "")
	require.NoError(t, err)
	require.IsType(t, map[string]any{}, doc)

	_, err = Query(result, "cells[")
	require.ErrorContains(t, err, `invalid query "cells["`)
}
