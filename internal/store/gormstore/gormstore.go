// Package gormstore backs the record store with a single key/value
// table in PostgreSQL through gorm.
package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/niranjan1960/banos-dessert/internal/store"
)

type kvRecord struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time
}

func (kvRecord) TableName() string { return "kv_store" }

type Store struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the kv_store table.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return New(db)
}

func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var rec kvRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	rec := kvRecord{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([]store.Record, error) {
	var recs []kvRecord
	err := s.db.WithContext(ctx).
		Where("key LIKE ?", escapeLike(prefix)+"%").
		Order("key asc").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]store.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, store.Record{Key: r.Key, Value: []byte(r.Value)})
	}
	return out, nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&kvRecord{}).Error
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// escapeLike quotes LIKE metacharacters; prefixes such as
// "serving_idea:" contain an underscore.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
