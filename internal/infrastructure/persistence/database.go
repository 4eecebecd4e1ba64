package persistence

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/infrastructure/logger"
	"github.com/bizbooks/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqliteMagic is the 16-byte header every SQLite database file starts with.
var sqliteMagic = []byte("SQLite format 3\x00")

// Database holds the SQLite connection backing one document store.
type Database struct {
	DB   *gorm.DB
	path string
}

// Open opens (or creates) the working database at path. SQLite allows a
// single writer, so the connection pool is capped at one connection.
func Open(path string, zlog *zap.Logger) (*Database, error) {
	gormLogger := logger.NewGormLogger(zlog, gormlogger.Warn)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_ = db.Exec("PRAGMA busy_timeout = 5000").Error

	return &Database{DB: db, path: path}, nil
}

// Migrate creates or updates the schema for every persistence model.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Path returns the location of the working database file.
func (d *Database) Path() string {
	return d.path
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

// Serialize writes a self-contained image of the current database into a
// scratch file via VACUUM INTO and returns its bytes. The scratch file is
// always removed.
func (d *Database) Serialize(ctx context.Context) ([]byte, error) {
	scratch := filepath.Join(os.TempDir(), fmt.Sprintf("books-snapshot-%s.db", uuid.NewString()))
	defer os.Remove(scratch)

	if err := d.DB.WithContext(ctx).Exec("VACUUM INTO ?", scratch).Error; err != nil {
		return nil, fmt.Errorf("failed to serialize database: %w", err)
	}

	data, err := os.ReadFile(scratch)
	if err != nil {
		return nil, fmt.Errorf("failed to read serialized database: %w", err)
	}
	return data, nil
}

// ValidateSnapshot checks that data is plausibly a SQLite database image
// before it is allowed to replace the working database.
func ValidateSnapshot(data []byte) error {
	if len(data) < len(sqliteMagic) || !bytes.Equal(data[:len(sqliteMagic)], sqliteMagic) {
		return shared.NewValidationError("Invalid backup file")
	}
	return nil
}

// ReplaceDatabaseFile swaps the working database file for data. The bytes
// are staged next to the target and renamed into place, so the old file
// survives any failure before the rename. Callers must have closed every
// connection to the old file first.
func ReplaceDatabaseFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	tmp := filepath.Join(dir, "."+uuid.NewString()+".db.tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to stage database file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace database file: %w", err)
	}
	return nil
}
