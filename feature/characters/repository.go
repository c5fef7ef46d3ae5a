package characters

import (
	"context"

	"content-forge/core/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 200

// Repository is the relational store of the character pool.
type Repository interface {
	// GetAll returns every pool entry.
	GetAll(ctx context.Context) ([]PoolEntry, error)
	// UpsertMany inserts or updates entries by id and returns the affected count.
	UpsertMany(ctx context.Context, entries []PoolEntry) (int, error)
}

// GormRepository implements Repository over gorm.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm repository.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates or updates the character_pool table.
func (r *GormRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&PoolEntry{})
}

func (r *GormRepository) GetAll(ctx context.Context) ([]PoolEntry, error) {
	var entries []PoolEntry
	if err := r.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, errs.Persistence("get character pool", err)
	}
	return entries, nil
}

func (r *GormRepository) UpsertMany(ctx context.Context, entries []PoolEntry) (int, error) {
	return r.Persist(ctx, r.db, entries)
}

// Persist upserts entries on tx. It satisfies batch.Persister.
func (r *GormRepository) Persist(ctx context.Context, tx *gorm.DB, entries []PoolEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(&entries, upsertBatchSize)
	if res.Error != nil {
		return 0, errs.Persistence("upsert character pool", res.Error)
	}
	return int(res.RowsAffected), nil
}
