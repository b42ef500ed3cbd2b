package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
)

// PersistenceError reports that a mutation was applied in memory but could
// not be saved. The in-memory state is kept either way.
type PersistenceError struct {
	Op  Op
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// TaskStore owns the task collection and the selection set. Every mutation
// is applied as a whole, saved through the task repository before the
// method returns and then announced to subscribers.
//
// Operations addressing an id that isn't in the collection are silent
// no-ops, so that bulk actions stay robust against stale ids. Validation
// failures are returned as errors wrapping models.ErrValidation, and save
// failures as *PersistenceError.
type TaskStore interface {
	// Load replaces the collection with the one saved in the repository.
	// It clears the selection and does not write anything back.
	Load(ctx context.Context)

	// Tasks returns a copy of the collection in canonical order.
	Tasks() []models.Task

	// Task returns a copy of the task with the given id
	// or ErrTaskNotFound.
	Task(id string) (models.Task, error)

	// AddTask validates the draft, assigns a fresh id and the pending
	// status, fills defaults and appends the task to the collection.
	AddTask(ctx context.Context, draft TaskDraft) (models.Task, error)

	// UpdateTask merges the non-nil patch fields into the task. The id and
	// the status are never changed by this path.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) error

	// DeleteTask removes the task and evicts it from the selection.
	DeleteTask(ctx context.Context, id string) error

	ToggleTaskStatus(ctx context.Context, id string) error
	SetTaskPriority(ctx context.Context, id string, priority models.Priority) error

	// AddSubtask appends a pending subtask with a fresh id. The returned
	// subtask is zero when the parent doesn't exist.
	AddSubtask(ctx context.Context, taskID, text string) (models.Subtask, error)
	ToggleSubtaskStatus(ctx context.Context, taskID, subtaskID string) error
	DeleteSubtask(ctx context.Context, taskID, subtaskID string) error

	// SetTasks replaces the collection wholesale. The selection is kept,
	// minus ids the new collection no longer contains.
	SetTasks(ctx context.Context, tasks []models.Task) error

	// ReorderTasks reconciles an ordering produced on a filtered or sorted
	// view with the full collection and stores the result.
	ReorderTasks(ctx context.Context, orderedIDs []string) error

	SelectedTaskIDs() []string
	SelectedTasks() []models.Task
	IsSelected(id string) bool
	ToggleTaskSelection(id string)
	SelectAllTasks(ids []string)
	DeselectAllTasks()

	// The bulk operations below act on the selected tasks and clear the
	// selection afterwards.
	MarkSelectedTasksComplete(ctx context.Context) error
	SetSelectedTasksPriority(ctx context.Context, priority models.Priority) error
	DeleteSelectedTasks(ctx context.Context) error
	// ToggleSelectedTasksStatus flips every selected task on its own.
	ToggleSelectedTasksStatus(ctx context.Context) error

	Subscribe() chan Event
	Unsubscribe(ch chan Event)
}

type ThemeService interface {
	Theme(ctx context.Context) models.Theme
	SetTheme(ctx context.Context, theme models.Theme) error
	ToggleTheme(ctx context.Context) (models.Theme, error)
}

type NotificationService interface {
	// Pending returns due-today and overdue notices for tasks that were not
	// announced before and records them as announced.
	Pending(ctx context.Context, today time.Time) ([]views.Notice, error)
}

type TaskDraft struct {
	Title    string
	DueDate  *models.Date
	Priority models.Priority
	Notes    string
	Repeat   models.Repeat
	Subtasks []models.Subtask
}

// TaskPatch is a partial update: a nil field means "no change".
//
// An empty DueDate clears the due date. Subtasks replaces the whole
// sequence; entries without an id get a fresh one. A blank Title is
// rejected the same way it is on creation.
type TaskPatch struct {
	Title    *string
	DueDate  *string
	Priority *models.Priority
	Notes    *string
	Repeat   *models.Repeat
	Subtasks *[]models.Subtask
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.DueDate == nil &&
		p.Priority == nil &&
		p.Notes == nil &&
		p.Repeat == nil &&
		p.Subtasks == nil
}
