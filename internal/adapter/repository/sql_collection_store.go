package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required

	"recyclemart/internal/domain/repository"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
)

// sqlDialect holds the statements that differ between drivers. Every
// collection is one row whose records column holds the JSON array verbatim.
type sqlDialect struct {
	name        string
	driver      string
	createTable string
	load        string
	upsert      string
}

var (
	sqliteDialect = sqlDialect{
		name:   "SQLite",
		driver: "sqlite",
		createTable: `
		CREATE TABLE IF NOT EXISTS recycle_collections (
			name TEXT PRIMARY KEY,
			records TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		load: `SELECT records FROM recycle_collections WHERE name = ?`,
		upsert: `
		INSERT INTO recycle_collections (name, records, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			records = excluded.records,
			updated_at = excluded.updated_at`,
	}

	mysqlDialect = sqlDialect{
		name:   "MySQL",
		driver: "mysql",
		createTable: `
		CREATE TABLE IF NOT EXISTS recycle_collections (
			name VARCHAR(255) NOT NULL PRIMARY KEY,
			records LONGTEXT NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)`,
		load: `SELECT records FROM recycle_collections WHERE name = ?`,
		upsert: `
		INSERT INTO recycle_collections (name, records, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			records = VALUES(records),
			updated_at = VALUES(updated_at)`,
	}

	postgresDialect = sqlDialect{
		name:   "PostgreSQL",
		driver: "postgres",
		createTable: `
		CREATE TABLE IF NOT EXISTS recycle_collections (
			name TEXT PRIMARY KEY,
			records TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		load: `SELECT records FROM recycle_collections WHERE name = $1`,
		upsert: `
		INSERT INTO recycle_collections (name, records, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			records = EXCLUDED.records,
			updated_at = EXCLUDED.updated_at`,
	}
)

type sqlCollectionStore struct {
	db      *sql.DB
	dialect sqlDialect
}

// NewSQLiteCollectionStore opens (or creates) a SQLite database file.
// SQLite allows a single writer, so the pool is pinned to one connection.
func NewSQLiteCollectionStore(dbPath string) (repository.CollectionStore, error) {
	db, err := sql.Open(sqliteDialect.driver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{`PRAGMA journal_mode=WAL`, `PRAGMA busy_timeout=5000`} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure SQLite: %w", err)
		}
	}

	return newSQLCollectionStore(db, sqliteDialect, dbPath)
}

func NewMySQLCollectionStore(dsn string) (repository.CollectionStore, error) {
	db, err := sql.Open(mysqlDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return newSQLCollectionStore(db, mysqlDialect, "mysql")
}

func NewPostgresCollectionStore(dsn string) (repository.CollectionStore, error) {
	db, err := sql.Open(postgresDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	return newSQLCollectionStore(db, postgresDialect, "postgres")
}

func newSQLCollectionStore(db *sql.DB, dialect sqlDialect, target string) (repository.CollectionStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect.name, err)
	}

	if _, err := db.ExecContext(ctx, dialect.createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info("[%sCollectionStore] Initialized with database: %s", dialect.name, target)
	return &sqlCollectionStore{db: db, dialect: dialect}, nil
}

func (s *sqlCollectionStore) Load(ctx context.Context, name string) ([]json.RawMessage, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.dialect.load, name).Scan(&payload)
	if err == sql.ErrNoRows {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to load collection "+name, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, errors.Internal("Failed to parse collection "+name, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

func (s *sqlCollectionStore) Save(ctx context.Context, name string, records []json.RawMessage) error {
	return s.SaveBatch(ctx, []repository.CollectionWrite{{Name: name, Records: records}})
}

func (s *sqlCollectionStore) SaveBatch(ctx context.Context, writes []repository.CollectionWrite) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Internal("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, w := range writes {
		payload, err := encodeRecords(w.Records)
		if err != nil {
			return errors.Internal("Failed to encode collection "+w.Name, err)
		}
		if _, err := tx.ExecContext(ctx, s.dialect.upsert, w.Name, payload, now); err != nil {
			return errors.Internal("Failed to save collection "+w.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Internal("Failed to commit collections", err)
	}
	return nil
}

func (s *sqlCollectionStore) Close() error {
	return s.db.Close()
}

func encodeRecords(records []json.RawMessage) (string, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
