package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type TaskRepository interface {
	// Save serializes the whole collection into the tasks slot. Saves are
	// applied in call order; a later save never overtakes an earlier one.
	Save(ctx context.Context, tasks []models.Task) error

	// Load returns the saved collection in its saved order. It never fails:
	// a missing, unreadable or malformed payload yields an empty collection
	// and is logged.
	Load(ctx context.Context) []models.Task
}

type taskRepositoryImpl struct {
	logger zerolog.Logger
	slot   Slot
	key    string
	// Serializes writes.
	mu sync.Mutex
}

func NewTaskRepository(
	logger zerolog.Logger,
	slot Slot,
	key string,
) TaskRepository {
	return &taskRepositoryImpl{
		logger: logger,
		slot:   slot,
		key:    key,
	}
}

func (r *taskRepositoryImpl) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}

	payload, err := json.Marshal(tasks)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to marshal tasks")
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.slot.Set(ctx, r.key, payload)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("key", r.key).
			Msg("failed to save tasks")
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	r.logger.Debug().
		Str("key", r.key).
		Int("count", len(tasks)).
		Msg("saved tasks")
	return nil
}

func (r *taskRepositoryImpl) Load(ctx context.Context) []models.Task {
	payload, err := r.slot.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			r.logger.Info().
				Str("key", r.key).
				Msg("no saved tasks")
			return []models.Task{}
		}

		r.logger.Error().
			Err(err).
			Str("key", r.key).
			Msg("failed to read tasks, starting empty")
		return []models.Task{}
	}

	var records []json.RawMessage
	err = json.Unmarshal(payload, &records)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("key", r.key).
			Msg("saved tasks are malformed, starting empty")
		return []models.Task{}
	}

	tasks := make([]models.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		var task models.Task
		err = json.Unmarshal(record, &task)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Int("index", i).
				Msg("skipping undecodable task")
			continue
		}

		task.Normalize()
		err = task.Validate()
		if err != nil {
			r.logger.Warn().
				Err(err).
				Int("index", i).
				Str("task_id", task.ID).
				Msg("skipping invalid task")
			continue
		}

		if _, ok := seen[task.ID]; ok {
			r.logger.Warn().
				Int("index", i).
				Str("task_id", task.ID).
				Msg("skipping duplicate task id")
			continue
		}
		seen[task.ID] = struct{}{}
		tasks = append(tasks, task)
	}

	r.logger.Info().
		Str("key", r.key).
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return tasks
}
