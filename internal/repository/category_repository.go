package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aniketsrinivasan/voice-todo/internal/model"
)

// CategoryRepository owns the per-user category name registry.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// EnsureMany registers every name that is not yet known for the user and
// returns the categories in input order. Registering an existing name returns
// the already-assigned category, so the call is idempotent.
func (r *CategoryRepository) EnsureMany(ctx context.Context, userID uuid.UUID, names []string) ([]model.Category, error) {
	out := make([]model.Category, 0, len(names))
	db := r.db.WithContext(ctx)

	for _, name := range names {
		var category model.Category
		err := db.Where("user_id = ? AND name = ?", userID, name).First(&category).Error
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			category = model.Category{
				ID:        uuid.New(),
				UserID:    userID,
				Name:      name,
				CreatedAt: time.Now().UTC(),
			}
			if err := db.Create(&category).Error; err != nil {
				return nil, fmt.Errorf("create category %q: %w", name, err)
			}
		default:
			return nil, fmt.Errorf("find category %q: %w", name, err)
		}
		out = append(out, category)
	}
	return out, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
