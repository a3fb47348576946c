package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OptionRepository defines operations on the key/value configuration store.
type OptionRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, keys ...string) (map[string]string, error)
	Apply(ctx context.Context, sets map[string]string, deletes []string) error
}

type optionRepository struct {
	db *gorm.DB
}

// NewOptionRepository creates a new option repository.
func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) All(ctx context.Context) (map[string]string, error) {
	var rows []models.Option
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

func (r *optionRepository) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	var rows []models.Option
	if err := r.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

// Apply upserts the set keys (insert-or-update keyed by key) and removes the
// delete keys, all in one transaction.
func (r *optionRepository) Apply(ctx context.Context, sets map[string]string, deletes []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(deletes) > 0 {
			if err := tx.Where("key IN ?", deletes).Delete(&models.Option{}).Error; err != nil {
				return err
			}
		}
		if len(sets) > 0 {
			rows := make([]models.Option, 0, len(sets))
			for key, value := range sets {
				rows = append(rows, models.Option{Key: key, Value: value})
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func toMap(rows []models.Option) map[string]string {
	result := make(map[string]string, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Value
	}
	return result
}
