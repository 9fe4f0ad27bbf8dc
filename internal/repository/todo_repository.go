package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aniketsrinivasan/voice-todo/internal/model"
)

// TodoInput holds the fields needed to create a to-do item. Validation
// (non-empty description, priority membership) happens at the API boundary
// before the repository is reached.
type TodoInput struct {
	Description string
	Priority    string
	DueAt       *time.Time
	Metadata    map[string]any
}

// TodoChanges describes a partial update. Nil pointer fields are left
// untouched. DueAtSet distinguishes "clear the due date" (DueAtSet with nil
// DueAt) from "leave it alone" (DueAtSet false). Categories replace the whole
// association set when ReplaceCategories is true.
type TodoChanges struct {
	Description       *string
	Priority          *string
	DueAt             *time.Time
	DueAtSet          bool
	Metadata          map[string]any
	Categories        []model.Category
	ReplaceCategories bool
}

// TodoFilter is a conjunction of list predicates; zero values mean "no
// constraint". Items without a due date never satisfy a due bound.
type TodoFilter struct {
	Query     string
	Priority  string
	Category  string
	DueBefore *time.Time
	DueAfter  *time.Time
}

// TodoRepository handles CRUD for to-do items and their category associations.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, userID uuid.UUID, input TodoInput, categories []model.Category) (*model.Todo, error) {
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMed
	}

	now := time.Now().UTC()
	todo := model.Todo{
		ID:          uuid.New(),
		UserID:      userID,
		Description: input.Description,
		Priority:    priority,
		DueAt:       input.DueAt,
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
		Categories:  categories,
	}
	if err := r.db.WithContext(ctx).Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).Preload("Categories").
		Where("user_id = ? AND id = ?", userID, todoID).
		First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}

// List returns the user's items matching every supplied predicate, newest
// first. Ties on created_at are broken by id to keep the order stable.
func (r *TodoRepository) List(ctx context.Context, userID uuid.UUID, filter TodoFilter) ([]model.Todo, error) {
	q := r.db.WithContext(ctx).Model(&model.Todo{}).Where("todos.user_id = ?", userID)

	if filter.Query != "" {
		q = q.Where("LOWER(todos.description) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}
	if filter.Priority != "" {
		q = q.Where("todos.priority = ?", filter.Priority)
	}
	if filter.Category != "" {
		q = q.Joins("JOIN todo_categories ON todo_categories.todo_id = todos.id").
			Joins("JOIN categories ON categories.id = todo_categories.category_id AND categories.name = ?", filter.Category)
	}
	if filter.DueBefore != nil {
		q = q.Where("todos.due_at IS NOT NULL AND todos.due_at < ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		q = q.Where("todos.due_at IS NOT NULL AND todos.due_at > ?", *filter.DueAfter)
	}

	var todos []model.Todo
	if err := q.Preload("Categories").
		Order("todos.created_at DESC, todos.id ASC").
		Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Update applies the supplied changes and refreshes updated_at. Omitted fields
// keep their current values.
func (r *TodoRepository) Update(ctx context.Context, userID, todoID uuid.UUID, changes TodoChanges) (*model.Todo, error) {
	todo, err := r.findOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if changes.Description != nil {
		todo.Description = *changes.Description
	}
	if changes.Priority != nil {
		todo.Priority = *changes.Priority
	}
	if changes.DueAtSet {
		todo.DueAt = changes.DueAt
	}
	if changes.Metadata != nil {
		todo.Metadata = changes.Metadata
	}
	todo.UpdatedAt = time.Now().UTC()

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(todo).Error; err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	if changes.ReplaceCategories {
		categories := changes.Categories
		if categories == nil {
			categories = []model.Category{}
		}
		if err := db.Model(todo).Association("Categories").Replace(categories); err != nil {
			return nil, fmt.Errorf("replace categories: %w", err)
		}
	}

	return r.FindByID(ctx, userID, todoID)
}

// Delete removes the item and its category associations permanently.
func (r *TodoRepository) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	todo, err := r.findOwned(ctx, userID, todoID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(todo).Error; err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// AttachCategories unions the given categories into the item's set. Attaching
// an already-present category is a no-op.
func (r *TodoRepository) AttachCategories(ctx context.Context, userID, todoID uuid.UUID, categories []model.Category) (*model.Todo, error) {
	todo, err := r.findOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if len(categories) > 0 {
		if err := db.Model(todo).Association("Categories").Append(categories); err != nil {
			return nil, fmt.Errorf("attach categories: %w", err)
		}
	}
	if err := db.Model(todo).Update("updated_at", time.Now().UTC()).Error; err != nil {
		return nil, fmt.Errorf("touch todo: %w", err)
	}

	return r.FindByID(ctx, userID, todoID)
}

// LinkTranscription stores an externally-produced transcript id on the item.
func (r *TodoRepository) LinkTranscription(ctx context.Context, userID, todoID, transcriptID uuid.UUID) (*model.Todo, error) {
	todo, err := r.findOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.TranscriptionID = &transcriptID
	todo.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(todo).Error; err != nil {
		return nil, fmt.Errorf("link transcription: %w", err)
	}
	return r.FindByID(ctx, userID, todoID)
}

// findOwned loads the bare record (no associations), applying the uniform
// ownership rule: a foreign owner's item looks exactly like a missing one.
func (r *TodoRepository) findOwned(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, todoID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}
