package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite implementation; registers driver name "sqlite".
	_ "github.com/glebarez/go-sqlite"
)

// DBClient defines the interface for our database operations. This allows
// the store layer to be tested against any *sql.DB provider.
type DBClient interface {
	// GetDB returns the raw *sql.DB instance.
	GetDB() *sql.DB
	// Close closes the database connection.
	Close() error
	// Ping checks the database connection.
	Ping(ctx context.Context) error
}

// SQLiteClient implements DBClient for SQLite databases.
type SQLiteClient struct {
	db       *sql.DB
	filePath string
}

// NewSQLiteClient creates and returns a new SQLite database client.
// dbName is the file name inside dataDir (e.g. "dxentity.db").
func NewSQLiteClient(dataDir, dbName string) (*SQLiteClient, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory must be specified for SQLite database")
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	dbPath := filepath.Join(dataDir, dbName)

	// WAL journal for concurrent readers during maintenance imports,
	// busy timeout to ride out short lock contention.
	connStr := fmt.Sprintf("file:%s?_journal=WAL&_timeout=5000&_synchronous=NORMAL&cache=shared&mode=rwc", dbPath)
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL on %s: %w", dbPath, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &SQLiteClient{db: db, filePath: dbPath}, nil
}

// GetDB returns the raw *sql.DB instance.
func (s *SQLiteClient) GetDB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteClient) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteClient) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FilePath returns the path of the backing database file.
func (s *SQLiteClient) FilePath() string {
	return s.filePath
}
