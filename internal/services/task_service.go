package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/reorder"
	"github.com/adanyl0v/go-taskboard/internal/storage"
)

const saveTimeout = 10 * time.Second

type taskStoreImpl struct {
	logger zerolog.Logger
	repo   storage.TaskRepository
	bus    *bus

	mu       sync.RWMutex
	tasks    []models.Task
	selected map[string]struct{}
}

func NewTaskStore(
	logger zerolog.Logger,
	repo storage.TaskRepository,
) TaskStore {
	return &taskStoreImpl{
		logger:   logger,
		repo:     repo,
		bus:      newBus(),
		tasks:    []models.Task{},
		selected: map[string]struct{}{},
	}
}

func (s *taskStoreImpl) Load(ctx context.Context) {
	tasks := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = tasks
	s.selected = map[string]struct{}{}
	s.bus.publish(Event{Op: OpLoad, At: time.Now()})

	s.logger.Info().
		Int("count", len(tasks)).
		Msg("loaded tasks into store")
}

func (s *taskStoreImpl) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneTasks(s.tasks)
}

func (s *taskStoreImpl) Task(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound
	}
	return s.tasks[i].Clone(), nil
}

func (s *taskStoreImpl) AddTask(ctx context.Context, draft TaskDraft) (models.Task, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		s.logger.Error().Msg("task title is required")
		return models.Task{}, models.ErrTaskTitleRequired
	}

	priority := draft.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		s.logger.Error().
			Str("priority", string(priority)).
			Msg("invalid priority")
		return models.Task{}, fmt.Errorf("%w: %q", models.ErrInvalidPriority, priority)
	}

	repeat := draft.Repeat
	if repeat == "" {
		repeat = models.RepeatNone
	}
	if !repeat.Valid() {
		s.logger.Error().
			Str("repeat", string(repeat)).
			Msg("invalid repeat")
		return models.Task{}, fmt.Errorf("%w: %q", models.ErrInvalidRepeat, repeat)
	}

	subtasks, err := prepareSubtasks(draft.Subtasks)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid subtasks")
		return models.Task{}, err
	}

	task := models.Task{
		Title:    title,
		Priority: priority,
		Status:   models.StatusPending,
		Notes:    draft.Notes,
		Subtasks: subtasks,
		Repeat:   repeat,
	}
	if draft.DueDate != nil && !draft.DueDate.IsZero() {
		dueDate := *draft.DueDate
		task.DueDate = &dueDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for task.ID == "" || s.indexOf(task.ID) >= 0 {
		task.ID, err = newID()
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to generate task id")
			return models.Task{}, err
		}
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("generated task id")

	next := append(slices.Clone(s.tasks), task)
	err = s.commit(ctx, OpAddTask, next, task.ID)

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("added task")
	return task.Clone(), err
}

func (s *taskStoreImpl) UpdateTask(ctx context.Context, id string, patch TaskPatch) error {
	if patch.IsEmpty() {
		s.logger.Warn().
			Str("task_id", id).
			Msg("no fields to update")
		return nil
	}

	_, err := s.mutateTask(ctx, OpUpdateTask, id, func(t *models.Task) (bool, error) {
		return true, applyPatch(t, patch)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("updated task")
	return nil
}

func (s *taskStoreImpl) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil
	}

	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	delete(s.selected, id)
	err := s.commit(ctx, OpDeleteTask, next, id)

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return err
}

func (s *taskStoreImpl) ToggleTaskStatus(ctx context.Context, id string) error {
	_, err := s.mutateTask(ctx, OpToggleStatus, id, func(t *models.Task) (bool, error) {
		t.Status = t.Status.Toggled()
		return true, nil
	})
	return err
}

func (s *taskStoreImpl) SetTaskPriority(ctx context.Context, id string, priority models.Priority) error {
	if !priority.Valid() {
		s.logger.Error().
			Str("priority", string(priority)).
			Msg("invalid priority")
		return fmt.Errorf("%w: %q", models.ErrInvalidPriority, priority)
	}

	_, err := s.mutateTask(ctx, OpSetPriority, id, func(t *models.Task) (bool, error) {
		t.Priority = priority
		return true, nil
	})
	return err
}

func (s *taskStoreImpl) AddSubtask(ctx context.Context, taskID, text string) (models.Subtask, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Error().
			Str("task_id", taskID).
			Msg("subtask text is required")
		return models.Subtask{}, models.ErrSubtaskTextRequired
	}

	subtaskID, err := newID()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate subtask id")
		return models.Subtask{}, err
	}
	subtask := models.Subtask{
		ID:   subtaskID,
		Text: text,
	}

	found, err := s.mutateTask(ctx, OpAddSubtask, taskID, func(t *models.Task) (bool, error) {
		t.Subtasks = append(t.Subtasks, subtask)
		return true, nil
	})
	if !found {
		return models.Subtask{}, err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("subtask_id", subtask.ID).
		Msg("added subtask")
	return subtask, err
}

func (s *taskStoreImpl) ToggleSubtaskStatus(ctx context.Context, taskID, subtaskID string) error {
	_, err := s.mutateTask(ctx, OpToggleSubtask, taskID, func(t *models.Task) (bool, error) {
		j := t.SubtaskIndex(subtaskID)
		if j < 0 {
			s.logger.Warn().
				Str("task_id", taskID).
				Str("subtask_id", subtaskID).
				Msg("subtask not found")
			return false, nil
		}
		t.Subtasks[j].Completed = !t.Subtasks[j].Completed
		return true, nil
	})
	return err
}

func (s *taskStoreImpl) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	_, err := s.mutateTask(ctx, OpDeleteSubtask, taskID, func(t *models.Task) (bool, error) {
		j := t.SubtaskIndex(subtaskID)
		if j < 0 {
			s.logger.Warn().
				Str("task_id", taskID).
				Str("subtask_id", subtaskID).
				Msg("subtask not found")
			return false, nil
		}
		t.Subtasks = slices.Delete(t.Subtasks, j, j+1)
		return true, nil
	})
	return err
}

func (s *taskStoreImpl) SetTasks(ctx context.Context, tasks []models.Task) error {
	next := cloneTasks(tasks)
	for i := range next {
		next[i].Normalize()
	}

	err := models.ValidateCollection(next)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid task collection")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replaceLocked(ctx, OpSetTasks, next)
}

func (s *taskStoreImpl) ReorderTasks(ctx context.Context, orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stale := reorder.Stale(s.tasks, orderedIDs)
	if len(stale) > 0 {
		s.logger.Warn().
			Strs("task_ids", stale).
			Msg("ignoring stale ids in reorder")
	}

	next := reorder.Reconcile(s.tasks, orderedIDs)
	return s.replaceLocked(ctx, OpReorder, next)
}

func (s *taskStoreImpl) SelectedTaskIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.selected))
	for _, t := range s.tasks {
		if _, ok := s.selected[t.ID]; ok {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (s *taskStoreImpl) SelectedTasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.selected))
	for _, t := range s.tasks {
		if _, ok := s.selected[t.ID]; ok {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks
}

func (s *taskStoreImpl) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.selected[id]
	return ok
}

func (s *taskStoreImpl) ToggleTaskSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		if s.indexOf(id) < 0 {
			s.logger.Warn().
				Str("task_id", id).
				Msg("cannot select unknown task")
			return
		}
		s.selected[id] = struct{}{}
	}
	s.bus.publish(Event{Op: OpSelection, TaskIDs: []string{id}, At: time.Now()})
}

func (s *taskStoreImpl) SelectAllTasks(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]struct{}, len(s.tasks))
	for _, t := range s.tasks {
		known[t.ID] = struct{}{}
	}

	added := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, ok := s.selected[id]; ok {
			continue
		}
		s.selected[id] = struct{}{}
		added = append(added, id)
	}
	if len(added) == 0 {
		return
	}

	s.logger.Debug().
		Int("added", len(added)).
		Int("selected", len(s.selected)).
		Msg("selected tasks")
	s.bus.publish(Event{Op: OpSelection, TaskIDs: added, At: time.Now()})
}

func (s *taskStoreImpl) DeselectAllTasks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selected) == 0 {
		return
	}
	s.selected = map[string]struct{}{}
	s.bus.publish(Event{Op: OpSelection, At: time.Now()})
}

func (s *taskStoreImpl) MarkSelectedTasksComplete(ctx context.Context) error {
	return s.bulkUpdate(ctx, OpBulkComplete, func(t *models.Task) {
		t.Status = models.StatusCompleted
	})
}

func (s *taskStoreImpl) SetSelectedTasksPriority(ctx context.Context, priority models.Priority) error {
	if !priority.Valid() {
		s.logger.Error().
			Str("priority", string(priority)).
			Msg("invalid priority")
		return fmt.Errorf("%w: %q", models.ErrInvalidPriority, priority)
	}

	return s.bulkUpdate(ctx, OpBulkPriority, func(t *models.Task) {
		t.Priority = priority
	})
}

func (s *taskStoreImpl) ToggleSelectedTasksStatus(ctx context.Context) error {
	return s.bulkUpdate(ctx, OpBulkToggleState, func(t *models.Task) {
		t.Status = t.Status.Toggled()
	})
}

func (s *taskStoreImpl) DeleteSelectedTasks(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selected) == 0 {
		s.logger.Debug().Msg("nothing selected")
		return nil
	}

	next := make([]models.Task, 0, len(s.tasks))
	deleted := make([]string, 0, len(s.selected))
	for _, t := range s.tasks {
		if _, ok := s.selected[t.ID]; ok {
			deleted = append(deleted, t.ID)
			continue
		}
		next = append(next, t)
	}
	s.selected = map[string]struct{}{}
	err := s.commit(ctx, OpBulkDelete, next, deleted...)

	s.logger.Info().
		Int("count", len(deleted)).
		Msg("deleted selected tasks")
	return err
}

func (s *taskStoreImpl) Subscribe() chan Event {
	return s.bus.subscribe()
}

func (s *taskStoreImpl) Unsubscribe(ch chan Event) {
	s.bus.unsubscribe(ch)
}

// mutateTask applies fn to a copy of the task and commits the copy when fn
// reports a change. It returns false when the task doesn't exist.
func (s *taskStoreImpl) mutateTask(
	ctx context.Context,
	op Op,
	id string,
	fn func(t *models.Task) (bool, error),
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Warn().
			Str("task_id", id).
			Str("op", string(op)).
			Msg("task not found")
		return false, nil
	}

	task := s.tasks[i].Clone()
	changed, err := fn(&task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Str("op", string(op)).
			Msg("failed to apply change")
		return true, err
	}
	if !changed {
		return true, nil
	}

	next := slices.Clone(s.tasks)
	next[i] = task
	err = s.commit(ctx, op, next, id)

	s.logger.Debug().
		Str("task_id", id).
		Str("op", string(op)).
		Msg("mutated task")
	return true, err
}

// bulkUpdate applies fn to every selected task and clears the selection.
func (s *taskStoreImpl) bulkUpdate(ctx context.Context, op Op, fn func(t *models.Task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selected) == 0 {
		s.logger.Debug().
			Str("op", string(op)).
			Msg("nothing selected")
		return nil
	}

	next := make([]models.Task, len(s.tasks))
	touched := make([]string, 0, len(s.selected))
	for i, t := range s.tasks {
		if _, ok := s.selected[t.ID]; ok {
			t = t.Clone()
			fn(&t)
			touched = append(touched, t.ID)
		}
		next[i] = t
	}
	s.selected = map[string]struct{}{}
	err := s.commit(ctx, op, next, touched...)

	s.logger.Info().
		Str("op", string(op)).
		Int("count", len(touched)).
		Msg("updated selected tasks")
	return err
}

// replaceLocked swaps in a new collection and drops selected ids the new
// collection lacks.
func (s *taskStoreImpl) replaceLocked(ctx context.Context, op Op, next []models.Task) error {
	present := make(map[string]struct{}, len(next))
	for _, t := range next {
		present[t.ID] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := present[id]; !ok {
			delete(s.selected, id)
		}
	}

	err := s.commit(ctx, op, next)

	s.logger.Info().
		Str("op", string(op)).
		Int("count", len(next)).
		Msg("replaced tasks")
	return err
}

// commit installs next as the collection, saves it and announces the
// change. The caller must hold the write lock. The new state stays in
// place even if the save fails. The save ignores cancellation of ctx so an
// applied change is never left unsaved because the caller went away.
func (s *taskStoreImpl) commit(ctx context.Context, op Op, next []models.Task, taskIDs ...string) error {
	s.tasks = next

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	err := s.repo.Save(saveCtx, next)
	s.bus.publish(Event{Op: op, TaskIDs: taskIDs, At: time.Now()})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("op", string(op)).
			Msg("failed to persist tasks")
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (s *taskStoreImpl) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func applyPatch(t *models.Task, p TaskPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return models.ErrTaskTitleRequired
		}
		t.Title = title
	}

	if p.DueDate != nil {
		if strings.TrimSpace(*p.DueDate) == "" {
			t.DueDate = nil
		} else {
			dueDate, err := models.ParseDate(*p.DueDate)
			if err != nil {
				return err
			}
			t.DueDate = &dueDate
		}
	}

	if p.Priority != nil {
		if !p.Priority.Valid() {
			return fmt.Errorf("%w: %q", models.ErrInvalidPriority, *p.Priority)
		}
		t.Priority = *p.Priority
	}

	if p.Notes != nil {
		t.Notes = *p.Notes
	}

	if p.Repeat != nil {
		if !p.Repeat.Valid() {
			return fmt.Errorf("%w: %q", models.ErrInvalidRepeat, *p.Repeat)
		}
		t.Repeat = *p.Repeat
	}

	if p.Subtasks != nil {
		subtasks, err := prepareSubtasks(*p.Subtasks)
		if err != nil {
			return err
		}
		t.Subtasks = subtasks
	}

	return nil
}

// prepareSubtasks trims texts, assigns ids to entries without one and
// checks id uniqueness. The result is never nil.
func prepareSubtasks(in []models.Subtask) ([]models.Subtask, error) {
	out := make([]models.Subtask, 0, len(in))
	for _, st := range in {
		st.Text = strings.TrimSpace(st.Text)
		if st.Text == "" {
			return nil, models.ErrSubtaskTextRequired
		}
		if strings.TrimSpace(st.ID) == "" {
			id, err := newID()
			if err != nil {
				return nil, fmt.Errorf("failed to generate subtask id: %w", err)
			}
			st.ID = id
		}
		out = append(out, st)
	}

	err := models.ValidateSubtasks(out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
