package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is one persisted session field.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (Entry) TableName() string { return "session_entries" }

// SQLiteVault persists session fields in a local SQLite file, the terminal's
// stand-in for browser local storage.
type SQLiteVault struct {
	conn *gorm.DB
}

// OpenSQLiteVault opens (creating if needed) the session database at path.
func OpenSQLiteVault(path string) (*SQLiteVault, error) {
	if path == "" {
		return nil, fmt.Errorf("session db path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	if err := conn.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrating session db: %w", err)
	}

	return &SQLiteVault{conn: conn}, nil
}

func (v *SQLiteVault) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := v.conn.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading session key %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (v *SQLiteVault) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(values))
	for k, val := range values {
		entries = append(entries, Entry{Key: k, Value: val})
	}
	return v.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entries).Error
	})
}

func (v *SQLiteVault) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return v.conn.WithContext(ctx).Delete(&Entry{}, "key IN ?", keys).Error
}

func (v *SQLiteVault) Close() error {
	sqlDB, err := v.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
