package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/storage"
)

const OpSetTheme Op = "set_theme"

type themeServiceImpl struct {
	logger zerolog.Logger
	prefs  storage.PreferenceRepository

	mu sync.Mutex
}

func NewThemeService(
	logger zerolog.Logger,
	prefs storage.PreferenceRepository,
) ThemeService {
	return &themeServiceImpl{
		logger: logger,
		prefs:  prefs,
	}
}

func (s *themeServiceImpl) Theme(ctx context.Context) models.Theme {
	return s.prefs.Theme(ctx)
}

func (s *themeServiceImpl) SetTheme(ctx context.Context, theme models.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setTheme(ctx, theme)
}

func (s *themeServiceImpl) setTheme(ctx context.Context, theme models.Theme) error {
	theme, err := models.ParseTheme(string(theme))
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid theme")
		return err
	}

	err = s.prefs.SetTheme(ctx, theme)
	if err != nil {
		return &PersistenceError{Op: OpSetTheme, Err: err}
	}

	s.logger.Info().
		Str("theme", string(theme)).
		Msg("set theme")
	return nil
}

func (s *themeServiceImpl) ToggleTheme(ctx context.Context) (models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs.Theme(ctx).Toggled()

	err := s.setTheme(ctx, next)
	if err != nil {
		return next, fmt.Errorf("failed to toggle theme: %w", err)
	}
	return next, nil
}
