package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ratemysite/sitereport/model"
)

// appDirName is the subdirectory under the XDG data home that holds
// the default database file.
const appDirName = "sitereport"

// dbFileName is the SQLite database file name.
const dbFileName = "sitereport.db"

// ResultDB provides SQLite-based storage for analysis result records.
//
// Design decision: Records are stored as their JSON serialization rather
// than one column per field. The field set varies per analysis run, and
// model.Result's JSON form preserves field order, so a stored record
// round-trips into exactly the spreadsheet it would have produced when
// fresh.
type ResultDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ResultDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// DefaultDataDir returns the default database directory under the
// user's XDG data home.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, appDirName)
}

// Open opens or creates a ResultDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ResultDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &ResultDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *ResultDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *ResultDB) createTables() error {
	schema := `
	-- Result records store one analyzed site per row, the full record
	-- as order-preserving JSON
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		record TEXT NOT NULL,
		saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_results_url ON results(url);
	CREATE INDEX IF NOT EXISTS idx_results_saved_at ON results(saved_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveResults appends a batch of records in a single transaction.
// Either every record lands or none does.
func (rdb *ResultDB) SaveResults(ctx context.Context, results []*model.Result) error {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, r := range results {
		data, err := json.Marshal(r)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to serialize record: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO results (url, record) VALUES (?, ?)",
			r.Get(model.URLField), string(data),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// LoadResults returns every stored record in insertion order, so a
// re-rendered report lists sites in the order they were analyzed.
func (rdb *ResultDB) LoadResults(ctx context.Context) ([]*model.Result, error) {
	rows, err := rdb.db.QueryContext(ctx, "SELECT record FROM results ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var results []*model.Result
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		r := model.NewResult()
		if err := json.Unmarshal([]byte(data), r); err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// ListURLs returns the distinct stored site URLs in sorted order.
func (rdb *ResultDB) ListURLs(ctx context.Context) ([]string, error) {
	rows, err := rdb.db.QueryContext(ctx, "SELECT DISTINCT url FROM results ORDER BY url")
	if err != nil {
		return nil, fmt.Errorf("failed to list urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// DeleteResults removes every stored record for the given URL.
// It returns the number of deleted rows.
func (rdb *ResultDB) DeleteResults(ctx context.Context, url string) (int64, error) {
	res, err := rdb.db.ExecContext(ctx, "DELETE FROM results WHERE url = ?", url)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	return res.RowsAffected()
}
