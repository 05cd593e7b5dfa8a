package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/teksel-io/teksel"
	"github.com/teksel-io/teksel/examples"
	"github.com/teksel-io/teksel/sheet"
	"github.com/teksel-io/teksel/store"
)

type codeRequest struct {
	Code  string          `json:"code"`
	Cells json.RawMessage `json:"cells,omitempty"`
}

type tokenJSON struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type lexerResponse struct {
	Tokens []tokenJSON `json:"tokens"`
	Error  *string     `json:"error"`
}

type parserResponse struct {
	AST       string   `json:"ast"`
	Functions []string `json:"functions"`
	Error     *string  `json:"error"`
}

type sheetResponse struct {
	ID        string      `json:"id"`
	Cells     *sheet.Grid `json:"cells,omitempty"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleLexer(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	tokens, err := teksel.Tokenize(req.Code)
	resp := lexerResponse{Tokens: make([]tokenJSON, 0, len(tokens)), Error: message(err)}
	for _, tok := range tokens {
		resp.Tokens = append(resp.Tokens, tokenJSON{
			Type:   string(tok.Type),
			Value:  tok.Literal,
			Line:   tok.Position.Line,
			Column: tok.Position.Column,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleParser(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp := parserResponse{Functions: []string{}}
	program, err := teksel.Parse(r.Context(), req.Code)
	if err != nil {
		resp.Error = message(err)
	} else {
		resp.AST = program.String()
		resp.Functions = program.Names()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInterpret(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	grid, err := s.grid(req.Cells)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result := s.eval(r, req.Code, grid)
	s.writeResult(w, r, result)
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	list, err := examples.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateSheet(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	grid, err := s.grid(req.Cells)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sh, err := s.store.Create(r.Context(), grid)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sheetResponse{ID: sh.ID})
}

func (s *Server) handleGetSheet(w http.ResponseWriter, r *http.Request) {
	sh, ok := s.loadSheet(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sheetResponse{ID: sh.ID, Cells: sh.Grid, UpdatedAt: &sh.UpdatedAt})
}

// handleRunSheet runs a program against a stored sheet. The sheet is saved
// only when the program succeeds.
func (s *Server) handleRunSheet(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	sh, ok := s.loadSheet(w, r)
	if !ok {
		return
	}
	result := s.eval(r, req.Code, sh.Grid)
	if result.Err == nil {
		sh.Grid = result.Grid
		if err := s.store.Save(r.Context(), sh); err != nil {
			s.internalError(w, r, err)
			return
		}
	}
	s.writeResult(w, r, result)
}

func (s *Server) loadSheet(w http.ResponseWriter, r *http.Request) (*store.Sheet, bool) {
	sh, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		s.internalError(w, r, err)
		return nil, false
	}
	return sh, true
}

func (s *Server) eval(r *http.Request, code string, grid *sheet.Grid) *teksel.Result {
	result, err := teksel.Eval(r.Context(), code,
		teksel.WithGrid(grid),
		teksel.WithLogger(loggerFrom(r)),
		teksel.WithRecursionLimit(s.recursionLimit))
	if err != nil {
		logger := loggerFrom(r)
		logger.Debug().Err(err).Msg("program failed")
	}
	return result
}

// writeResult writes an evaluation result, filtered by the JMESPath
// expression in the "query" parameter when one is given. A program error is
// part of the result, not an HTTP error.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, result *teksel.Result) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusOK, result)
		return
	}
	out, err := teksel.Query(result, query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// grid decodes the cells of a request, or returns an empty grid if there
// are none.
func (s *Server) grid(cells json.RawMessage) (*sheet.Grid, error) {
	if len(cells) == 0 || string(cells) == "null" {
		return sheet.New(s.rows), nil
	}
	return sheet.Decode(cells, s.rows)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFrom(r)
	logger.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, errors.New(http.StatusText(http.StatusInternalServerError)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func message(err error) *string {
	if err == nil {
		return nil
	}
	msg := err.Error()
	return &msg
}
