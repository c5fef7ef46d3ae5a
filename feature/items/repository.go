package items

import (
	"context"

	"content-forge/core/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 200

// Repository is the relational store of item templates.
type Repository interface {
	// GetAllItemCodes returns every persisted item code.
	GetAllItemCodes(ctx context.Context) ([]string, error)
	// UpsertMany inserts or updates rows by item code and returns the affected count.
	UpsertMany(ctx context.Context, rows []Template) (int, error)
	// DeleteByCodes removes rows by item code and returns the deleted count.
	DeleteByCodes(ctx context.Context, codes []string) (int, error)
}

// GormRepository implements Repository over gorm.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm repository.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates or updates the item_templates table.
func (r *GormRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Template{})
}

func (r *GormRepository) GetAllItemCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).Model(&Template{}).Pluck("item_code", &codes).Error; err != nil {
		return nil, errs.Persistence("get item codes", err)
	}
	return codes, nil
}

func (r *GormRepository) UpsertMany(ctx context.Context, rows []Template) (int, error) {
	return r.Persist(ctx, r.db, rows)
}

// Persist upserts rows on tx. It satisfies batch.Persister.
func (r *GormRepository) Persist(ctx context.Context, tx *gorm.DB, rows []Template) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "category", "sub_category", "equip_slot", "inventory_size",
			"material_code", "suffix_code", "rarity_level", "base_modifiers_json", "updated_at",
		}),
	}).CreateInBatches(&rows, upsertBatchSize)
	if res.Error != nil {
		return 0, errs.Persistence("upsert item templates", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (r *GormRepository) DeleteByCodes(ctx context.Context, codes []string) (int, error) {
	if len(codes) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("item_code IN ?", codes).Delete(&Template{})
	if res.Error != nil {
		return 0, errs.Persistence("delete item templates", res.Error)
	}
	return int(res.RowsAffected), nil
}
