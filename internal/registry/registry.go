// Package registry persists compiled type libraries in a local SQLite
// database so that libraries produced by independent runs or authors
// can be shipped, looked up by id and merged into type systems later.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"stt/internal/ident"
	"stt/internal/typelib"
)

// Registry is a store of compiled libraries keyed by library id.
type Registry struct {
	conn    *sql.DB
	logger  *slog.Logger
	dbPath  string
	session string // id shared by every record of this process run
}

// Record describes one stored library.
type Record struct {
	Id        typelib.LibId
	Name      ident.LibName
	Session   string
	CreatedAt time.Time
}

// Open opens or creates the registry database at dir/registry.db.
func Open(dir string, logger *slog.Logger) (*Registry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}
	dbPath := filepath.Join(dir, "registry.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	schema := `
		CREATE TABLE IF NOT EXISTS libs (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			session    TEXT NOT NULL,
			created_at TEXT NOT NULL,
			blob       BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_libs_name ON libs(name);`
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize registry schema: %w", err)
	}
	r := &Registry{
		conn:    conn,
		logger:  logger,
		dbPath:  dbPath,
		session: uuid.NewString(),
	}
	logger.Debug("registry opened", "path", dbPath, "session", r.session)
	return r, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error { return r.conn.Close() }

// Put stores a compiled library under its id. Storing the same id
// again is a no-op: the canonical blob of a given id never changes.
func (r *Registry) Put(ctx context.Context, lib *typelib.TypeLib) error {
	id := lib.Id()
	_, err := r.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO libs (id, name, session, created_at, blob) VALUES (?, ?, ?, ?, ?)`,
		id.String(), lib.Name().String(), r.session,
		time.Now().UTC().Format(time.RFC3339), lib.Serialize())
	if err != nil {
		return fmt.Errorf("failed to store library %s: %w", lib.Name(), err)
	}
	r.logger.Info("library stored", "name", lib.Name().String(), "id", id.String())
	return nil
}

// Get loads the library with the given id.
func (r *Registry) Get(ctx context.Context, id typelib.LibId) (*typelib.TypeLib, error) {
	var blob []byte
	err := r.conn.QueryRowContext(ctx, `SELECT blob FROM libs WHERE id = ?`, id.String()).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("library %s is not in the registry", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load library %s: %w", id, err)
	}
	lib, err := typelib.Deserialize(blob)
	if err != nil {
		return nil, fmt.Errorf("registry blob for %s is corrupted: %w", id, err)
	}
	return lib, nil
}

// GetByName loads the most recently stored library with the given
// name.
func (r *Registry) GetByName(ctx context.Context, name ident.LibName) (*typelib.TypeLib, error) {
	var blob []byte
	err := r.conn.QueryRowContext(ctx,
		`SELECT blob FROM libs WHERE name = ? ORDER BY created_at DESC LIMIT 1`,
		name.String()).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("library %s is not in the registry", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load library %s: %w", name, err)
	}
	lib, err := typelib.Deserialize(blob)
	if err != nil {
		return nil, fmt.Errorf("registry blob for %s is corrupted: %w", name, err)
	}
	return lib, nil
}

// List returns a record for every stored library, newest first.
func (r *Registry) List(ctx context.Context) ([]Record, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, name, session, created_at FROM libs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var idStr, name, session, createdAt string
		if err := rows.Scan(&idStr, &name, &session, &createdAt); err != nil {
			return nil, err
		}
		id, err := typelib.ParseLibId(idStr)
		if err != nil {
			return nil, fmt.Errorf("registry contains malformed id %q: %w", idStr, err)
		}
		libName, err := ident.NewIdent(name)
		if err != nil {
			return nil, fmt.Errorf("registry contains malformed name %q: %w", name, err)
		}
		ts, _ := time.Parse(time.RFC3339, createdAt)
		records = append(records, Record{Id: id, Name: libName, Session: session, CreatedAt: ts})
	}
	return records, rows.Err()
}
