package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// FileName is the database file name inside an index artifact.
const FileName = "chunks.db"

// Store holds the entries of one index artifact.
type Store struct {
	db *sql.DB
}

// ErrSchemaMismatch is returned by OpenReadOnly when the database was
// written by a different schema version.
var ErrSchemaMismatch = errors.New("chunk database schema mismatch")

// Open opens or creates the chunk database in dir for writing and applies
// pending migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dir, FileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenReadOnly opens the existing chunk database in dir without writing to
// it. No migrations run; a schema other than the current one fails with
// ErrSchemaMismatch.
func OpenReadOnly(ctx context.Context, dir string) (*Store, error) {
	dbPath, err := filepath.Abs(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, err
	}

	dsn := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(dbPath),
		RawQuery: "mode=ro&_pragma=query_only(1)&_pragma=busy_timeout(5000)",
	}
	db, err := sql.Open("sqlite", dsn.String())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}

	want, err := latestVersion(migrations.FS)
	if err != nil {
		db.Close()
		return nil, err
	}
	got, err := s.SchemaVersion(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	if got != want {
		db.Close()
		return nil, fmt.Errorf("%w: database has version %d, expected %d", ErrSchemaMismatch, got, want)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	upFiles, err := upMigrations(fsys)
	if err != nil {
		return err
	}

	for _, name := range upFiles {
		version, ok := migrationVersion(name)
		if !ok || version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

func upMigrations(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, nil
}

// migrationVersion parses "001_chunks.up.sql" as 1.
func migrationVersion(name string) (int, bool) {
	var version int
	if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
		return 0, false
	}
	return version, true
}

// latestVersion returns the highest migration version in fsys.
func latestVersion(fsys fs.FS) (int, error) {
	upFiles, err := upMigrations(fsys)
	if err != nil {
		return 0, err
	}
	latest := 0
	for _, name := range upFiles {
		if v, ok := migrationVersion(name); ok && v > latest {
			latest = v
		}
	}
	return latest, nil
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

// SaveEntries replaces all stored entries with entries.
func (s *Store) SaveEntries(ctx context.Context, entries []domain.IndexEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, text, source, page_number, position, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Chunk.ID, e.Chunk.Text, e.Chunk.Source,
			e.Chunk.PageNumber, e.Chunk.Position, float32SliceToBytes(e.Vector)); err != nil {
			return fmt.Errorf("saving chunk %d: %w", e.Chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LoadEntries returns every stored entry in id order.
func (s *Store) LoadEntries(ctx context.Context) ([]domain.IndexEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, source, page_number, position, embedding
		FROM chunks ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var entries []domain.IndexEntry
	for rows.Next() {
		var e domain.IndexEntry
		var blob []byte
		if err := rows.Scan(&e.Chunk.ID, &e.Chunk.Text, &e.Chunk.Source,
			&e.Chunk.PageNumber, &e.Chunk.Position, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		e.Vector = bytesToFloat32Slice(blob)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetChunk returns a single chunk by id.
func (s *Store) GetChunk(ctx context.Context, id int) (*domain.Chunk, error) {
	var c domain.Chunk
	err := s.db.QueryRowContext(ctx, `
		SELECT id, text, source, page_number, position FROM chunks WHERE id = ?
	`, id).Scan(&c.ID, &c.Text, &c.Source, &c.PageNumber, &c.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("chunk %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying chunk: %w", err)
	}
	return &c, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// SourceStats returns the number of chunks per source document.
func (s *Store) SourceStats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT source, COUNT(*) FROM chunks GROUP BY source")
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		stats[source] = n
	}
	return stats, rows.Err()
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
