package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"lightbox/internal/config"
	"lightbox/internal/validate"
)

// Store manages binary object persistence backed by SQLite. It is opened once
// per process and shared.
type Store struct {
	db       *sql.DB
	path     string
	cacheDir string
}

// Object is one stored binary record.
type Object struct {
	ID        string
	Data      []byte
	MIMEType  string
	CreatedAt time.Time
}

// Ref is a display-usable reference to a stored object, materialized on disk.
type Ref struct {
	URL      string
	MIMEType string
}

// Open initializes or connects to the object database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "objects.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cacheDir := filepath.Join(cfg.Paths.DataDir, "objects")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create object cache dir: %w", err)
	}

	store := &Store{db: db, path: dbPath, cacheDir: cacheDir}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores a binary object and returns its generated identifier. The insert
// is a single statement, so an object is either fully stored or not stored at
// all.
func (s *Store) Put(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("put object: empty data")
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO blob_objects (id, data, mime_type, created_at) VALUES (?, ?, ?, ?)`,
		id,
		data,
		nullableString(mimeType),
		createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert object: %w", err)
	}
	return id, nil
}

// Get materializes a display-usable reference for the object, or nil when the
// id is unknown. Records stored without a MIME type fall back to content
// sniffing.
func (s *Store) Get(ctx context.Context, id string) (*Ref, error) {
	obj, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}

	mimeType := obj.MIMEType
	if mimeType == "" {
		mimeType = validate.SniffMIME(obj.Data)
	}

	cachePath := filepath.Join(s.cacheDir, id+extensionFor(mimeType))
	if err := os.WriteFile(cachePath, obj.Data, 0o644); err != nil {
		return nil, fmt.Errorf("materialize object %s: %w", id, err)
	}

	return &Ref{URL: "file://" + cachePath, MIMEType: mimeType}, nil
}

// Read fetches the raw stored record, or nil when the id is unknown.
func (s *Store) Read(ctx context.Context, id string) (*Object, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, data, mime_type, created_at FROM blob_objects WHERE id = ?`,
		id,
	)

	var (
		obj        Object
		mimeType   sql.NullString
		createdRaw string
	)
	if err := row.Scan(&obj.ID, &obj.Data, &mimeType, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	obj.MIMEType = mimeType.String
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		obj.CreatedAt = created
	}
	return &obj, nil
}

// Delete removes an object by identifier and reports whether it existed. Any
// materialized cache file is removed alongside it.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blob_objects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete object: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	s.dropCached(id)
	return affected > 0, nil
}

// List returns every stored object identifier ordered by creation time.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM blob_objects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Clear removes all objects and returns the number deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM blob_objects`)
	if err != nil {
		return 0, fmt.Errorf("clear objects: %w", err)
	}
	for _, id := range ids {
		s.dropCached(id)
	}
	return res.RowsAffected()
}

// Stats returns the object count and total stored bytes.
func (s *Store) Stats(ctx context.Context) (int, int64, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1), COALESCE(SUM(LENGTH(data)), 0) FROM blob_objects`)
	var (
		count int
		bytes int64
	)
	if err := row.Scan(&count, &bytes); err != nil {
		return 0, 0, fmt.Errorf("object stats: %w", err)
	}
	return count, bytes, nil
}

func (s *Store) dropCached(id string) {
	matches, err := filepath.Glob(filepath.Join(s.cacheDir, id+".*"))
	if err != nil {
		return
	}
	for _, match := range matches {
		_ = os.Remove(match)
	}
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	default:
		return ".bin"
	}
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
