package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aniketsrinivasan/voice-todo/internal/model"
	"github.com/aniketsrinivasan/voice-todo/internal/repository"
)

// WindowThisWeek is the only symbolic list window currently recognized.
const WindowThisWeek = "this_week"

// CreateTodoInput represents data required to create a to-do item.
type CreateTodoInput struct {
	Description string
	Priority    string
	DueAt       *time.Time
	Categories  []string
	Metadata    map[string]any
}

// UpdateTodoInput is a partial update. Nil pointers leave the field untouched;
// DueAtSet with a nil DueAt clears the due date. A non-nil Categories slice
// replaces the whole category set (use AttachCategories to union instead).
type UpdateTodoInput struct {
	Description *string
	Priority    *string
	DueAt       *time.Time
	DueAtSet    bool
	Categories  []string
	Metadata    map[string]any
}

// ListOptions collects list filters, including the symbolic window shorthand
// expanded by the service before the repository sees it.
type ListOptions struct {
	Query     string
	Priority  string
	Category  string
	Window    string
	DueBefore *time.Time
	DueAfter  *time.Time
}

// TodoService wraps to-do business logic: it guarantees that every category
// name referenced by an item is registered, and expands symbolic date windows
// into concrete bounds.
type TodoService struct {
	todoRepo       *repository.TodoRepository
	categoryRepo   *repository.CategoryRepository
	transcriptRepo *repository.TranscriptRepository
	now            func() time.Time
}

func NewTodoService(todoRepo *repository.TodoRepository, categoryRepo *repository.CategoryRepository, transcriptRepo *repository.TranscriptRepository) *TodoService {
	return &TodoService{
		todoRepo:       todoRepo,
		categoryRepo:   categoryRepo,
		transcriptRepo: transcriptRepo,
		now:            time.Now,
	}
}

func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, input CreateTodoInput) (*model.Todo, error) {
	var categories []model.Category
	if len(input.Categories) > 0 {
		var err error
		categories, err = s.categoryRepo.EnsureMany(ctx, userID, input.Categories)
		if err != nil {
			return nil, err
		}
	}

	return s.todoRepo.Create(ctx, userID, repository.TodoInput{
		Description: input.Description,
		Priority:    input.Priority,
		DueAt:       input.DueAt,
		Metadata:    input.Metadata,
	}, categories)
}

func (s *TodoService) Get(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error) {
	return s.todoRepo.FindByID(ctx, userID, todoID)
}

// List expands the "this_week" window into due-after/due-before bounds and
// delegates. Unrecognized window values add no bounds; this leniency is
// intentional.
func (s *TodoService) List(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]model.Todo, error) {
	filter := repository.TodoFilter{
		Query:     opts.Query,
		Priority:  opts.Priority,
		Category:  opts.Category,
		DueBefore: opts.DueBefore,
		DueAfter:  opts.DueAfter,
	}
	if opts.Window == WindowThisWeek {
		start, end := weekBounds(s.now())
		filter.DueAfter = &start
		filter.DueBefore = &end
	}
	return s.todoRepo.List(ctx, userID, filter)
}

func (s *TodoService) Update(ctx context.Context, userID, todoID uuid.UUID, input UpdateTodoInput) (*model.Todo, error) {
	changes := repository.TodoChanges{
		Description: input.Description,
		Priority:    input.Priority,
		DueAt:       input.DueAt,
		DueAtSet:    input.DueAtSet,
		Metadata:    input.Metadata,
	}
	if input.Categories != nil {
		categories, err := s.categoryRepo.EnsureMany(ctx, userID, input.Categories)
		if err != nil {
			return nil, err
		}
		changes.Categories = categories
		changes.ReplaceCategories = true
	}
	return s.todoRepo.Update(ctx, userID, todoID, changes)
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	return s.todoRepo.Delete(ctx, userID, todoID)
}

// AttachCategories registers the given names and unions them into the item's
// category set. An empty name list only refreshes updated_at.
func (s *TodoService) AttachCategories(ctx context.Context, userID, todoID uuid.UUID, names []string) (*model.Todo, error) {
	var categories []model.Category
	if len(names) > 0 {
		var err error
		categories, err = s.categoryRepo.EnsureMany(ctx, userID, names)
		if err != nil {
			return nil, err
		}
	}
	return s.todoRepo.AttachCategories(ctx, userID, todoID, categories)
}

// ListCategories returns every category ever referenced by the user.
func (s *TodoService) ListCategories(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

// LinkTranscription stores a transcript reference on an item after checking
// the transcript exists for the same user.
func (s *TodoService) LinkTranscription(ctx context.Context, userID, todoID, transcriptID uuid.UUID) (*model.Todo, error) {
	if _, err := s.transcriptRepo.FindByID(ctx, userID, transcriptID); err != nil {
		return nil, err
	}
	return s.todoRepo.LinkTranscription(ctx, userID, todoID, transcriptID)
}

// weekBounds returns the most recent Monday 00:00:00 UTC relative to now and
// the instant seven days later.
func weekBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	// time.Weekday counts from Sunday; shift so Monday is day zero.
	sinceMonday := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -sinceMonday)
	return start, start.AddDate(0, 0, 7)
}
