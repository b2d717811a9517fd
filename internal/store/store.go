package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and hands out the typed repositories.
type Store struct {
	db  *sql.DB
	kv  *KV
	seq *sequenceCounter

	// rmw serializes read-modify-write updates of list and map values.
	rmw sync.Mutex
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the key-value table.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	kv, err := newKV(context.Background(), db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, kv: kv, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// KV returns the raw key-value table.
func (s *Store) KV() *KV {
	return s.kv
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// FocusRepo returns the focus tracker repository.
func (s *Store) FocusRepo() FocusRepo {
	return &repo{s: s}
}

// UserRepo returns the user data repository.
func (s *Store) UserRepo() UserRepo {
	return &repo{s: s}
}

// TimerRepo returns the countdown settings repository.
func (s *Store) TimerRepo() TimerRepo {
	return &repo{s: s}
}

// AnalyticsRepo returns the analytics repository.
func (s *Store) AnalyticsRepo() AnalyticsRepo {
	return &repo{s: s}
}

// QuizRepo returns the quiz results repository.
func (s *Store) QuizRepo() QuizRepo {
	return &repo{s: s}
}

// Reset deletes every persisted key. The sequence counter is left alone so
// event ordering stays monotonic across resets.
func (s *Store) Reset(ctx context.Context) (int, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return 0, err
	}
	for _, k := range keys {
		if err := s.kv.Delete(ctx, k); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MINDMORPH_DB environment variable
// 2. $XDG_DATA_HOME/mindmorph/mindmorph.db
// 3. ~/.local/share/mindmorph/mindmorph.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MINDMORPH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mindmorph", "mindmorph.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
