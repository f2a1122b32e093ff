package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dhrions/ha-public-transports/wizard"
)

// ErrNotFound is returned when no entry has the requested id
var ErrNotFound = errors.New("entry not found")

// Entry is one persisted configuration entry
type Entry struct {
	ID             string    `json:"entry_id" yaml:"entry_id" gorm:"primaryKey;size:36"`
	Title          string    `json:"title" yaml:"title" gorm:"size:255;not null"`
	City           string    `json:"city" yaml:"city" gorm:"size:100;not null;index"`
	TransitCompany string    `json:"transit_company" yaml:"transit_company" gorm:"size:100;not null"`
	APIToken       *string   `json:"api_token" yaml:"api_token"`
	StopName       string    `json:"stop_name" yaml:"stop_name" gorm:"size:255;not null"`
	StopCode       *string   `json:"stop_code" yaml:"stop_code" gorm:"size:100"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// Selection returns the persisted tuple
func (e Entry) Selection() wizard.SelectionResult {
	return wizard.SelectionResult{
		City:           e.City,
		TransitCompany: e.TransitCompany,
		APIToken:       e.APIToken,
		StopName:       e.StopName,
		StopCode:       e.StopCode,
	}
}

const redactedToken = "**********"

// Redacted returns a copy safe for display, with the API token masked
func (e Entry) Redacted() Entry {
	if e.APIToken != nil {
		masked := redactedToken
		e.APIToken = &masked
	}
	return e
}

// Store is a SQLite-backed entry store
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at dsn
func Open(dsn string) (*Store, error) {
	if err := ensureSQLiteDir(dsn); err != nil {
		return nil, fmt.Errorf("prepare sqlite dsn=%q: %w", dsn, err)
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(log.Default(), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite dsn=%q: %w", dsn, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite dsn=%q: %w", dsn, err)
	}
	// a single connection keeps :memory: databases shared
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save persists a committed selection under a new entry id
func (s *Store) Save(ctx context.Context, r wizard.SelectionResult) (Entry, error) {
	e := Entry{
		ID:             uuid.NewString(),
		Title:          r.Title(),
		City:           r.City,
		TransitCompany: r.TransitCompany,
		APIToken:       r.APIToken,
		StopName:       r.StopName,
		StopCode:       r.StopCode,
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return Entry{}, fmt.Errorf("save entry: %w", err)
	}
	return e, nil
}

// Get returns the entry with the given id
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}
	var e Entry
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// List returns all entries, oldest first
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	var es []Entry
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&es).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return es, nil
}

func ensureSQLiteDir(dsn string) error {
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexAny(path, "?;"); i >= 0 {
		path = path[:i]
	}
	dir := filepath.Dir(strings.TrimSpace(path))
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
