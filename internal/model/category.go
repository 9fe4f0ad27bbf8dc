package model

import (
	"time"

	"github.com/google/uuid"
)

// Category labels to-do items. Names are unique within a single user's
// namespace; the same name under two users yields two distinct categories.
type Category struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:text;index:idx_user_category_name,unique" json:"-"`
	Name      string    `gorm:"index:idx_user_category_name,unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
