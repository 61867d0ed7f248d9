package blob

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/pkg/errors"
)

type SQLiteStore struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// NewSQLiteStore opens (and creates if needed) a blob store with the given filename as the db.
// If file name is empty, a new in-memory db is opened.
func NewSQLiteStore(filename string) (*SQLiteStore, error) {
	if filename == "" {
		filename = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob database")
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		content_type TEXT,
		size INTEGER,
		etag TEXT,
		modified_at INTEGER,
		bytes BLOB
	)`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create blobs table")
	}
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}
	return &SQLiteStore{
		db:         db,
		writeMutex: &sync.Mutex{},
	}, nil
}

// Close closes the underlying db.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Put(key, contentType string, data []byte) (Info, error) {
	info := newInfo(key, contentType, data)
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO blobs
		(key, content_type, size, etag, modified_at, bytes) VALUES (?, ?, ?, ?, ?, ?)`,
		info.Key, info.ContentType, info.Size, info.ETag, info.ModifiedAt.Unix(), data)
	if err != nil {
		return Info{}, errors.Wrapf(err, "failed to store blob %s", key)
	}
	return info, nil
}

func (s *SQLiteStore) Stat(key string) (Info, error) {
	info := Info{Key: key}
	var modifiedAt int64
	err := s.db.QueryRow("SELECT content_type, size, etag, modified_at FROM blobs WHERE key = ?", key).
		Scan(&info.ContentType, &info.Size, &info.ETag, &modifiedAt)
	if err != nil {
		return Info{}, notFound(err, key)
	}
	info.ModifiedAt = time.Unix(modifiedAt, 0).UTC()
	return info, nil
}

func (s *SQLiteStore) Open(key string) (Blob, error) {
	info := Info{Key: key}
	var modifiedAt int64
	var data []byte
	err := s.db.QueryRow("SELECT content_type, size, etag, modified_at, bytes FROM blobs WHERE key = ?", key).
		Scan(&info.ContentType, &info.Size, &info.ETag, &modifiedAt, &data)
	if err != nil {
		return Blob{}, notFound(err, key)
	}
	info.ModifiedAt = time.Unix(modifiedAt, 0).UTC()
	return newBlob(info, data), nil
}

func (s *SQLiteStore) Delete(key string) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	result, err := s.db.Exec("DELETE FROM blobs WHERE key = ?", key)
	if err != nil {
		return errors.Wrapf(err, "failed to delete blob %s", key)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "failed to delete blob %s", key)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Keys(prefix string, cb func(string)) error {
	rows, err := s.db.Query(
		"SELECT key FROM blobs WHERE substr(key, 1, length(?)) = ? ORDER BY key",
		prefix, prefix,
	)
	if err != nil {
		return errors.Wrap(err, "failed to list blobs")
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return errors.Wrap(err, "failed to read blob key")
		}
		cb(key)
	}
	return rows.Err()
}

func notFound(err error, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "failed to read blob %s", key)
}
