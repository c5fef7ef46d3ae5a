package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"content-forge/core/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VersionStore reads and writes named version hashes.
type VersionStore interface {
	// GetVersion returns the stored hash and whether one exists.
	GetVersion(ctx context.Context, name string) (string, bool, error)
	// SetVersion overwrites the stored hash.
	SetVersion(ctx context.Context, name, hash string) error
}

// CacheVersionStore keeps versions as plain strings at "<name>:version".
type CacheVersionStore struct {
	cache cache.Cache
}

// NewCacheVersionStore creates a version store on c.
func NewCacheVersionStore(c cache.Cache) *CacheVersionStore {
	return &CacheVersionStore{cache: c}
}

// VersionKey returns the cache key holding the version of name.
func VersionKey(name string) string {
	return name + ":version"
}

func (s *CacheVersionStore) GetVersion(ctx context.Context, name string) (string, bool, error) {
	b, ok, err := s.cache.Get(ctx, VersionKey(name))
	if err != nil || !ok {
		return "", false, err
	}
	return string(b), true, nil
}

func (s *CacheVersionStore) SetVersion(ctx context.Context, name, hash string) error {
	return s.cache.Set(ctx, VersionKey(name), []byte(hash), 0)
}

// DataVersion is a row of the data_versions table.
type DataVersion struct {
	Name      string    `gorm:"column:table_name;primaryKey;size:128"`
	DataHash  string    `gorm:"column:data_hash;size:64;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (DataVersion) TableName() string {
	return "data_versions"
}

// DBVersionStore keeps versions in the relational store.
type DBVersionStore struct {
	db *gorm.DB
}

// NewDBVersionStore creates a version store on db.
func NewDBVersionStore(db *gorm.DB) *DBVersionStore {
	return &DBVersionStore{db: db}
}

// Migrate creates the data_versions table if needed.
func (s *DBVersionStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&DataVersion{})
}

func (s *DBVersionStore) GetVersion(ctx context.Context, name string) (string, bool, error) {
	var v DataVersion
	err := s.db.WithContext(ctx).Where("table_name = ?", name).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read version %s: %w", name, err)
	}
	return v.DataHash, true, nil
}

func (s *DBVersionStore) SetVersion(ctx context.Context, name, hash string) error {
	v := DataVersion{Name: name, DataHash: hash, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "table_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data_hash", "updated_at"}),
	}).Create(&v).Error
	if err != nil {
		return fmt.Errorf("failed to write version %s: %w", name, err)
	}
	return nil
}

// Chain reads from the first store and writes to all of them. Writes run back to front
// so the first store only moves once every other store holds the new version.
type Chain []VersionStore

func (c Chain) GetVersion(ctx context.Context, name string) (string, bool, error) {
	if len(c) == 0 {
		return "", false, nil
	}
	return c[0].GetVersion(ctx, name)
}

func (c Chain) SetVersion(ctx context.Context, name, hash string) error {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i].SetVersion(ctx, name, hash); err != nil {
			return err
		}
	}
	return nil
}

// Refresh compares fresh against the stored version of name. When they differ it runs
// write and then records fresh. It reports whether anything was written.
func Refresh(ctx context.Context, store VersionStore, name, fresh string, write func(ctx context.Context) error) (bool, error) {
	current, ok, err := store.GetVersion(ctx, name)
	if err != nil {
		return false, err
	}
	if ok && current == fresh {
		return false, nil
	}
	if err := Rewrite(ctx, store, name, fresh, write); err != nil {
		return false, err
	}
	return true, nil
}

// Rewrite runs write and records fresh regardless of the stored version.
func Rewrite(ctx context.Context, store VersionStore, name, fresh string, write func(ctx context.Context) error) error {
	if err := write(ctx); err != nil {
		return err
	}
	return store.SetVersion(ctx, name, fresh)
}
