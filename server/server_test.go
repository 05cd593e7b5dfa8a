package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/teksel-io/teksel/store"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { _ = st.Close() })
	return New(st, append([]Option{WithRows(10)}, opts...)...)
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestLexer(t *testing.T) {
	s := newTestServer(t)
	rec, resp := do(t, s, http.MethodPost, "/lexer", `{"code": "A1 = 5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp["error"])
	tokens := resp["tokens"].([]any)
	require.Len(t, tokens, 4)
	require.Equal(t, map[string]any{"type": "CELL", "value": "A1", "line": float64(1), "column": float64(1)}, tokens[0])
	require.Equal(t, "EOF", tokens[3].(map[string]any)["type"])

	rec, resp = do(t, s, http.MethodPost, "/lexer", `{"code": "x = \"open"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, resp["error"], "SyntaxError")
	require.Len(t, resp["tokens"], 2)
}

func TestParser(t *testing.T) {
	s := newTestServer(t)
	rec, resp := do(t, s, http.MethodPost, "/parser", `{"code": "def f() { return 1 } def main() { return f() }"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp["error"])
	require.Equal(t, []any{"f", "main"}, resp["functions"])
	require.Contains(t, resp["ast"], "def main()")

	_, resp = do(t, s, http.MethodPost, "/parser", `{"code": "def main( {"}`)
	require.Contains(t, resp["error"], "SyntaxError")
	require.Equal(t, []any{}, resp["functions"])
}

func TestInterpret(t *testing.T) {
	s := newTestServer(t)
	body := `{"code": "def main() { A2 = A1 * 2; return A2 }", "cells": {"A1": 21}}`
	rec, resp := do(t, s, http.MethodPost, "/interpret", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp["error"])
	require.Equal(t, float64(42), resp["value"])
	require.Len(t, resp["cells"], 11)

	// Runtime errors are reported in the body along with the grid.
	rec, resp = do(t, s, http.MethodPost, "/interpret", `{"code": "def main() { A1 = 1; A2 = A1 / 0 }"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ValueError at line 1, column 30: division by zero", resp["error"])
	cells := resp["cells"].([]any)
	require.Len(t, cells, 11)
	a1 := cells[1].([]any)[0].(map[string]any)
	require.Equal(t, float64(1), a1["value"].(map[string]any)["value"])
}

func TestInterpretQuery(t *testing.T) {
	s := newTestServer(t)
	body := `{"code": "def main() { B1 = 3; return B1 * 2 }"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/interpret?query=cells%5B1%5D%5B1%5D.value.value", strings.NewReader(body))
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "3\n", rec.Body.String())

	rec, resp := do(t, s, http.MethodPost, "/interpret?query=cells%5B", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, resp["error"], "invalid query")
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/interpret", `{"code": `},
		{"bad address", "/interpret", `{"code": "def main() {}", "cells": {"A0x": 1}}`},
		{"bad cells", "/sheets", `{"cells": 5}`},
		{"row out of reach", "/interpret", `{"code": "def main() {}", "cells": [[{"value": {"value": 1}, "row": 1000000, "column": "A"}]]}`},
		{"stored row out of reach", "/sheets", `{"cells": [[{"value": {"value": 1}, "row": 5000, "column": "A"}]]}`},
		{"wrong field type", "/lexer", `{"code": 5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, s, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotEmpty(t, resp["error"])
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t, WithMaxBodySize(16))
	rec, _ := do(t, s, http.MethodPost, "/lexer", `{"code": "def main() { return 1 }"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExamples(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/examples", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 6)
	require.Equal(t, "count", list[0]["name"])
	require.NotEmpty(t, list[0]["code"])
}

func TestSheets(t *testing.T) {
	s := newTestServer(t)
	rec, resp := do(t, s, http.MethodPost, "/sheets", `{"cells": {"A1": 1, "A2": "=A1 + 1"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp["id"].(string)
	require.NotEmpty(t, id)

	rec, resp = do(t, s, http.MethodGet, "/sheets/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, resp["id"])
	require.NotEmpty(t, resp["updated_at"])

	// Each successful run is saved.
	for _, want := range []float64{2, 3} {
		rec, resp = do(t, s, http.MethodPost, "/sheets/"+id+"/run", `{"code": "def main() { A1 += 1; return A1 }"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, resp["error"])
		require.Equal(t, want, resp["value"])
	}

	// A failed run is not.
	rec, resp = do(t, s, http.MethodPost, "/sheets/"+id+"/run", `{"code": "def main() { A1 = 100; A1 = x }"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, resp["error"], "NameError")

	_, resp = do(t, s, http.MethodPost, "/sheets/"+id+"/run", `{"code": "def main() { return A1 }"}`)
	require.Equal(t, float64(3), resp["value"])

	rec, resp = do(t, s, http.MethodGet, "/sheets/does-not-exist", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "sheet not found", resp["error"])

	rec, _ = do(t, s, http.MethodPost, "/sheets/does-not-exist/run", `{"code": ""}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestID(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(t, WithLogger(zerolog.New(&buf)))

	rec, _ := do(t, s, http.MethodPost, "/lexer", `{"code": "1"}`)
	id := rec.Header().Get(RequestIDHeader)
	require.Len(t, id, 36)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, id, line["request_id"])
	require.Equal(t, "POST", line["method"])
	require.Equal(t, "/lexer", line["path"])
	require.Equal(t, float64(200), line["status"])
	require.Equal(t, "request", line["message"])

	const given = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	req := httptest.NewRequest(http.MethodGet, "/examples", nil)
	req.Header.Set(RequestIDHeader, given)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, given, rec.Header().Get(RequestIDHeader))
}

func TestTimeout(t *testing.T) {
	s := newTestServer(t, WithTimeout(50*time.Millisecond))
	src := `def main() {
		n = 0
		foreach a in A1:Z10 { foreach b in A1:Z10 { foreach c in A1:Z10 { n += 1 } } }
		return n
	}`
	body, err := json.Marshal(map[string]string{"code": src})
	require.NoError(t, err)
	rec, resp := do(t, s, http.MethodPost, "/interpret", string(body))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, resp["error"], "context deadline exceeded")
}
