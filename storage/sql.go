package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the key/value table backing SQLState.
type Entry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "recipebox_state"
}

// SQLState stores the blob as one row of a gorm-managed table.
type SQLState struct {
	key string
	db  *gorm.DB
}

// NewSQLState migrates the state table and returns a State for key.
func NewSQLState(db *gorm.DB, key string) (*SQLState, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state table: %w", err)
	}
	return &SQLState{key: key, db: db}, nil
}

// OpenSQLite opens (creating if needed) a sqlite database at path.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// OpenPostgres connects to the database described by dsn.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func (s *SQLState) Load(ctx context.Context) ([]byte, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where(&Entry{Key: s.key}).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", s.key, err)
	}
	return e.Value, nil
}

func (s *SQLState) Save(ctx context.Context, data []byte) error {
	e := Entry{Key: s.key, Value: data}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", s.key, err)
	}
	return nil
}
