// Package kv provides the named-blob key-value store backing the planner
// state. Each blob holds one serialized collection ("tasks", "meetings",
// "clients") as a JSON document.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store is the storage collaborator: Get returns nil for a missing blob.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Set(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
}

type blob struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (blob) TableName() string { return "blobs" }

// DB is a Store backed by a SQLite database.
type DB struct {
	db *gorm.DB
}

// Open opens (creating if necessary) a SQLite database at dsn and runs
// migrations.
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = "tally.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&blob{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return &DB{db: db}, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Get(ctx context.Context, name string) ([]byte, error) {
	var b blob
	err := d.db.WithContext(ctx).First(&b, "name = ?", name).Error
	switch {
	case err == nil:
		return b.Data, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("get blob %q: %w", name, err)
	}
}

func (d *DB) Set(ctx context.Context, name string, data []byte) error {
	b := blob{Name: name, Data: data, UpdatedAt: time.Now()}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&b).Error
	if err != nil {
		return fmt.Errorf("set blob %q: %w", name, err)
	}
	return nil
}

func (d *DB) Remove(ctx context.Context, name string) error {
	if err := d.db.WithContext(ctx).Delete(&blob{}, "name = ?", name).Error; err != nil {
		return fmt.Errorf("remove blob %q: %w", name, err)
	}
	return nil
}

// ensureDirForSQLite creates the parent dir for the SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

// Memory is an in-process Store for tests and throwaway sessions.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[name]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Set(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[name] = stored
	return nil
}

func (m *Memory) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, name)
	return nil
}
