package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

// PreferenceRepository persists UI state that lives outside the task
// collection: the theme and the ids of tasks already announced as due.
type PreferenceRepository interface {
	// Theme returns the stored theme or models.DefaultTheme when the slot
	// is empty, unreadable or holds an unknown value.
	Theme(ctx context.Context) models.Theme
	SetTheme(ctx context.Context, theme models.Theme) error

	// NotifiedTaskIDs returns the set of task ids a notice was already
	// delivered for. Read failures yield an empty set.
	NotifiedTaskIDs(ctx context.Context) map[string]struct{}
	SetNotifiedTaskIDs(ctx context.Context, ids map[string]struct{}) error
}

type preferenceRepositoryImpl struct {
	logger zerolog.Logger
	slot   Slot
	keys   Keys
}

func NewPreferenceRepository(
	logger zerolog.Logger,
	slot Slot,
	keys Keys,
) PreferenceRepository {
	return &preferenceRepositoryImpl{
		logger: logger,
		slot:   slot,
		keys:   keys,
	}
}

func (r *preferenceRepositoryImpl) Theme(ctx context.Context) models.Theme {
	payload, err := r.slot.Get(ctx, r.keys.Theme)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			r.logger.Error().
				Err(err).
				Str("key", r.keys.Theme).
				Msg("failed to read theme")
		}
		return models.DefaultTheme
	}

	theme, err := models.ParseTheme(string(payload))
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("key", r.keys.Theme).
			Msg("stored theme is invalid, using default")
		return models.DefaultTheme
	}
	return theme
}

func (r *preferenceRepositoryImpl) SetTheme(ctx context.Context, theme models.Theme) error {
	err := r.slot.Set(ctx, r.keys.Theme, []byte(theme))
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("theme", string(theme)).
			Msg("failed to save theme")
		return fmt.Errorf("failed to save theme: %w", err)
	}
	r.logger.Debug().
		Str("theme", string(theme)).
		Msg("saved theme")
	return nil
}

func (r *preferenceRepositoryImpl) NotifiedTaskIDs(ctx context.Context) map[string]struct{} {
	ids := map[string]struct{}{}

	payload, err := r.slot.Get(ctx, r.keys.Notified)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			r.logger.Error().
				Err(err).
				Str("key", r.keys.Notified).
				Msg("failed to read notified task ids")
		}
		return ids
	}

	var list []string
	err = json.Unmarshal(payload, &list)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("key", r.keys.Notified).
			Msg("notified task ids are malformed, starting empty")
		return ids
	}
	for _, id := range list {
		ids[id] = struct{}{}
	}
	return ids
}

func (r *preferenceRepositoryImpl) SetNotifiedTaskIDs(ctx context.Context, ids map[string]struct{}) error {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal notified task ids: %w", err)
	}

	err = r.slot.Set(ctx, r.keys.Notified, payload)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to save notified task ids")
		return fmt.Errorf("failed to save notified task ids: %w", err)
	}
	return nil
}
