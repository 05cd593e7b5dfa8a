package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/teksel-io/teksel/sheet"
	"github.com/xo/dburl"
)

// SQL is a Store backed by a database/sql database with one table:
//
//	sheets(id, cells, updated_at)
//
// where cells holds the grid as JSON.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

type dialect struct {
	driver string
	// numbered placeholders ($1, $2) rather than "?"
	numbered bool
}

var dialects = map[string]dialect{
	"sqlite3":  {driver: "sqlite3"},
	"postgres": {driver: "pgx", numbered: true},
	"pgx":      {driver: "pgx", numbered: true},
}

const schema = `CREATE TABLE IF NOT EXISTS sheets (
	id TEXT PRIMARY KEY,
	cells TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// OpenSQL connects to the database a URL names and creates the sheets table
// if needed. SQLite and PostgreSQL URLs are supported.
func OpenSQL(ctx context.Context, url string) (*SQL, error) {
	u, err := dburl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	d, ok := dialects[u.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
	}
	db, err := sql.Open(d.driver, u.DSN)
	if err != nil {
		return nil, err
	}
	if d.driver == "sqlite3" {
		// A single connection serializes writers, which SQLite requires.
		db.SetMaxOpenConns(1)
	}
	s := &SQL{db: db, dialect: d}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sheets table: %w", err)
	}
	return s, nil
}

// rebind rewrites "?" placeholders for the dialect.
func (s *SQL) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (s *SQL) Create(ctx context.Context, grid *sheet.Grid) (*Sheet, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	sh := &Sheet{ID: id, Grid: grid}
	if err := s.upsert(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *SQL) Get(ctx context.Context, id string) (*Sheet, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var cells string
	var updatedAt time.Time
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT cells, updated_at FROM sheets WHERE id = ?`), id)
	if err := row.Scan(&cells, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	grid, err := sheet.Decode([]byte(cells), 0)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", id, err)
	}
	return &Sheet{ID: id, Grid: grid, UpdatedAt: updatedAt}, nil
}

func (s *SQL) Save(ctx context.Context, sh *Sheet) error {
	if !validID(sh.ID) {
		return ErrNotFound
	}
	var exists int
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM sheets WHERE id = ?`), sh.ID)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.upsert(ctx, sh)
}

func (s *SQL) upsert(ctx context.Context, sh *Sheet) error {
	cells, err := json.Marshal(sh.Grid)
	if err != nil {
		return err
	}
	sh.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	_, err = s.db.ExecContext(ctx, s.rebind(`INSERT INTO sheets (id, cells, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET cells = excluded.cells, updated_at = excluded.updated_at`),
		sh.ID, string(cells), sh.UpdatedAt)
	return err
}

func (s *SQL) Close() error {
	return s.db.Close()
}
