package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// LabelCount is a label name with its usage count across posts.
type LabelCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// LabelRepository defines label attachment operations.
type LabelRepository interface {
	ListByPost(ctx context.Context, postID uint) ([]string, error)
	MapByPosts(ctx context.Context, postIDs []uint) (map[uint][]string, error)
	Attach(ctx context.Context, postID uint, names []string) error
	Reconcile(ctx context.Context, postID uint, target []string) error
	Counts(ctx context.Context) ([]LabelCount, error)
}

type labelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new label repository.
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) ListByPost(ctx context.Context, postID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Label{}).
		Where("post_id = ?", postID).
		Pluck("name", &names).Error
	return names, err
}

func (r *labelRepository) MapByPosts(ctx context.Context, postIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var rows []models.Label
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = append(result[row.PostID], row.Name)
	}
	return result, nil
}

func (r *labelRepository) Attach(ctx context.Context, postID uint, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.Label, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Label{PostID: postID, Name: name})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// Reconcile moves the post's label set to target: one batched insert for the
// names missing from the store and one batched delete for the names no longer
// wanted. The read-compute-write sequence runs in a single transaction.
func (r *labelRepository) Reconcile(ctx context.Context, postID uint, target []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []string
		if err := tx.Model(&models.Label{}).
			Where("post_id = ?", postID).
			Pluck("name", &current).Error; err != nil {
			return err
		}

		toAdd, toRemove := diffLabels(current, target)

		if len(toAdd) > 0 {
			rows := make([]models.Label, 0, len(toAdd))
			for _, name := range toAdd {
				rows = append(rows, models.Label{PostID: postID, Name: name})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(toRemove) > 0 {
			if err := tx.Where("post_id = ? AND name IN ?", postID, toRemove).
				Delete(&models.Label{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *labelRepository) Counts(ctx context.Context) ([]LabelCount, error) {
	var items []LabelCount
	err := r.db.WithContext(ctx).Model(&models.Label{}).
		Select("name, COUNT(*) AS count").
		Group("name").
		Order("count DESC").
		Find(&items).Error
	return items, err
}

// diffLabels computes toAdd = target - current and toRemove = current - target.
// The two sets are disjoint by construction.
func diffLabels(current, target []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, name := range current {
		currentSet[name] = struct{}{}
	}
	targetSet := make(map[string]struct{}, len(target))
	for _, name := range target {
		targetSet[name] = struct{}{}
	}

	for _, name := range target {
		if _, ok := currentSet[name]; !ok {
			toAdd = append(toAdd, name)
		}
	}
	for _, name := range current {
		if _, ok := targetSet[name]; !ok {
			toRemove = append(toRemove, name)
		}
	}
	return toAdd, toRemove
}
