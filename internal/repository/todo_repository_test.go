package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketsrinivasan/voice-todo/internal/model"
)

func TestCreateSetsDefaults(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	userID := uuid.New()

	todo, err := repo.Create(ctx, userID, TodoInput{Description: "Buy milk"}, nil)
	require.NoError(t, err)

	assert.Equal(t, userID, todo.UserID)
	assert.Equal(t, model.PriorityMed, todo.Priority, "priority should default to med")
	assert.Nil(t, todo.DueAt)
	assert.Empty(t, todo.Categories)
	assert.Equal(t, todo.CreatedAt, todo.UpdatedAt, "created_at and updated_at should match right after creation")

	fetched, err := repo.FindByID(ctx, userID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", fetched.Description)
}

func TestFindByIDOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	owner := uuid.New()
	stranger := uuid.New()

	todo, err := repo.Create(ctx, owner, TodoInput{Description: "secret"}, nil)
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, stranger, todo.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound, "foreign owner must see not-found")

	_, err = repo.FindByID(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrTodoNotFound, "missing id must see the same not-found")
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	catRepo := NewCategoryRepository(db)
	userID := uuid.New()
	other := uuid.New()

	groceries, err := catRepo.EnsureMany(ctx, userID, []string{"groceries"})
	require.NoError(t, err)

	due := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	milk, err := repo.Create(ctx, userID, TodoInput{Description: "Buy MILK", Priority: model.PriorityHigh, DueAt: &due}, groceries)
	require.NoError(t, err)
	bread, err := repo.Create(ctx, userID, TodoInput{Description: "buy bread"}, nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, userID, TodoInput{Description: "walk the dog"}, nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, other, TodoInput{Description: "buy cheese"}, nil)
	require.NoError(t, err)

	t.Run("substring is case-insensitive and owner-scoped", func(t *testing.T) {
		todos, err := repo.List(ctx, userID, TodoFilter{Query: "buy"})
		require.NoError(t, err)
		require.Len(t, todos, 2)
		// Newest first.
		assert.Equal(t, bread.ID, todos[0].ID)
		assert.Equal(t, milk.ID, todos[1].ID)
	})

	t.Run("priority exact match", func(t *testing.T) {
		todos, err := repo.List(ctx, userID, TodoFilter{Priority: model.PriorityHigh})
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, milk.ID, todos[0].ID)
	})

	t.Run("category membership", func(t *testing.T) {
		todos, err := repo.List(ctx, userID, TodoFilter{Category: "groceries"})
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, milk.ID, todos[0].ID)
		assert.Equal(t, []string{"groceries"}, todos[0].CategoryNames())
	})

	t.Run("due bounds are strict and skip undated items", func(t *testing.T) {
		before := due.Add(time.Hour)
		after := due.Add(-time.Hour)
		todos, err := repo.List(ctx, userID, TodoFilter{DueBefore: &before, DueAfter: &after})
		require.NoError(t, err)
		require.Len(t, todos, 1, "undated items must not satisfy bounds")
		assert.Equal(t, milk.ID, todos[0].ID)

		// Exactly on the bound is excluded.
		todos, err = repo.List(ctx, userID, TodoFilter{DueBefore: &due})
		require.NoError(t, err)
		assert.Empty(t, todos)
		todos, err = repo.List(ctx, userID, TodoFilter{DueAfter: &due})
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("conjunction of predicates", func(t *testing.T) {
		todos, err := repo.List(ctx, userID, TodoFilter{Query: "buy", Priority: model.PriorityMed})
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, bread.ID, todos[0].ID)
	})
}

func TestListOrderIsStable(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, userID, TodoInput{Description: "task"}, nil)
		require.NoError(t, err)
	}

	first, err := repo.List(ctx, userID, TodoFilter{})
	require.NoError(t, err)
	second, err := repo.List(ctx, userID, TodoFilter{})
	require.NoError(t, err)

	require.Len(t, first, 5)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "repeated listings must agree on order")
	}
	for i := 1; i < len(first); i++ {
		assert.False(t, first[i-1].CreatedAt.Before(first[i].CreatedAt), "created_at must not increase down the list")
	}
}

func TestUpdatePartialFields(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	userID := uuid.New()

	due := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	todo, err := repo.Create(ctx, userID, TodoInput{
		Description: "original",
		Priority:    model.PriorityHigh,
		DueAt:       &due,
		Metadata:    map[string]any{"source": "test"},
	}, nil)
	require.NoError(t, err)

	desc := "rewritten"
	updated, err := repo.Update(ctx, userID, todo.ID, TodoChanges{Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "rewritten", updated.Description)
	assert.Equal(t, model.PriorityHigh, updated.Priority, "omitted fields stay put")
	require.NotNil(t, updated.DueAt)
	assert.True(t, due.Equal(*updated.DueAt))
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	// Explicitly clearing the due date.
	cleared, err := repo.Update(ctx, userID, todo.ID, TodoChanges{DueAtSet: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueAt)

	_, err = repo.Update(ctx, uuid.New(), todo.ID, TodoChanges{Description: &desc})
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestUpdateReplacesCategorySet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	catRepo := NewCategoryRepository(db)
	userID := uuid.New()

	groceries, err := catRepo.EnsureMany(ctx, userID, []string{"groceries"})
	require.NoError(t, err)
	todo, err := repo.Create(ctx, userID, TodoInput{Description: "Buy milk"}, groceries)
	require.NoError(t, err)

	errands, err := catRepo.EnsureMany(ctx, userID, []string{"errands"})
	require.NoError(t, err)
	updated, err := repo.Update(ctx, userID, todo.ID, TodoChanges{
		Categories:        errands,
		ReplaceCategories: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"errands"}, updated.CategoryNames(), "update replaces, never unions")

	// Replacing with an empty set clears every association.
	emptied, err := repo.Update(ctx, userID, todo.ID, TodoChanges{ReplaceCategories: true})
	require.NoError(t, err)
	assert.Empty(t, emptied.CategoryNames())
}

func TestAttachCategoriesUnions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	catRepo := NewCategoryRepository(db)
	userID := uuid.New()

	groceries, err := catRepo.EnsureMany(ctx, userID, []string{"groceries"})
	require.NoError(t, err)
	todo, err := repo.Create(ctx, userID, TodoInput{Description: "Buy milk"}, groceries)
	require.NoError(t, err)

	errands, err := catRepo.EnsureMany(ctx, userID, []string{"errands"})
	require.NoError(t, err)
	attached, err := repo.AttachCategories(ctx, userID, todo.ID, errands)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"groceries", "errands"}, attached.CategoryNames())
	assert.False(t, attached.UpdatedAt.Before(attached.CreatedAt))

	// Re-attaching the same category is a no-op.
	again, err := repo.AttachCategories(ctx, userID, todo.ID, errands)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"groceries", "errands"}, again.CategoryNames())

	_, err = repo.AttachCategories(ctx, uuid.New(), todo.ID, errands)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestDeleteIsPermanent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	catRepo := NewCategoryRepository(db)
	userID := uuid.New()

	groceries, err := catRepo.EnsureMany(ctx, userID, []string{"groceries"})
	require.NoError(t, err)
	todo, err := repo.Create(ctx, userID, TodoInput{Description: "Buy milk"}, groceries)
	require.NoError(t, err)

	err = repo.Delete(ctx, uuid.New(), todo.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound, "foreign owner cannot delete")

	require.NoError(t, repo.Delete(ctx, userID, todo.ID))

	_, err = repo.FindByID(ctx, userID, todo.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
	err = repo.Delete(ctx, userID, todo.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound, "second delete reports not-found")

	// The category registry is untouched by item deletion.
	categories, err := catRepo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "groceries", categories[0].Name)
}

func TestLinkTranscription(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	userID := uuid.New()

	todo, err := repo.Create(ctx, userID, TodoInput{Description: "from voice"}, nil)
	require.NoError(t, err)
	require.Nil(t, todo.TranscriptionID)

	transcriptID := uuid.New()
	linked, err := repo.LinkTranscription(ctx, userID, todo.ID, transcriptID)
	require.NoError(t, err)
	require.NotNil(t, linked.TranscriptionID)
	assert.Equal(t, transcriptID, *linked.TranscriptionID)

	_, err = repo.LinkTranscription(ctx, uuid.New(), todo.ID, transcriptID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}
