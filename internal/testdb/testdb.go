// Package testdb opens throwaway in-memory SQLite databases with the
// production schema for tests.
package testdb

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"unicode"

	"github.com/yeremiapane/resteasy/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns a migrated database private to t. It lives as long as its
// single connection, which is closed when t finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, seq.Add(1))
	return open(t, dsn, 1)
}

// OpenFile returns a migrated database in a file under t's temp dir, served
// by up to conns connections. Transactions take the write lock when they
// begin and writers queue on the busy timeout, so concurrent writes contend
// on the schema's constraints rather than on SQLITE_BUSY.
func OpenFile(t testing.TB, conns int) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "resteasy.db") +
		"?_foreign_keys=1&_busy_timeout=10000&_txlock=immediate&_journal_mode=WAL"
	return open(t, dsn, conns)
}

func open(t testing.TB, dsn string, conns int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// Store wraps Open in a Store that hashes with the cheapest bcrypt cost.
func Store(t testing.TB) *database.Store {
	t.Helper()
	return newStore(Open(t))
}

// FileStore wraps OpenFile the way Store wraps Open.
func FileStore(t testing.TB, conns int) *database.Store {
	t.Helper()
	return newStore(OpenFile(t, conns))
}

func newStore(db *gorm.DB) *database.Store {
	s := database.NewStore(db)
	s.HashCost = bcrypt.MinCost
	return s
}
