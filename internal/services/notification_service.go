package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/storage"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

const OpRecordNotices Op = "record_notices"

type notificationServiceImpl struct {
	logger zerolog.Logger
	store  TaskStore
	prefs  storage.PreferenceRepository

	mu sync.Mutex
}

func NewNotificationService(
	logger zerolog.Logger,
	store TaskStore,
	prefs storage.PreferenceRepository,
) NotificationService {
	return &notificationServiceImpl{
		logger: logger,
		store:  store,
		prefs:  prefs,
	}
}

// Pending forgets ids whose task is no longer due, so a task that is
// rescheduled and falls due again is announced again.
func (s *notificationServiceImpl) Pending(ctx context.Context, today time.Time) ([]views.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := views.DueNotices(s.store.Tasks(), today)
	notified := s.prefs.NotifiedTaskIDs(ctx)

	stillDue := make(map[string]struct{}, len(due))
	fresh := make([]views.Notice, 0, len(due))
	for _, n := range due {
		stillDue[n.TaskID] = struct{}{}
		if _, ok := notified[n.TaskID]; !ok {
			fresh = append(fresh, n)
		}
	}

	pruned := 0
	for id := range notified {
		if _, ok := stillDue[id]; !ok {
			delete(notified, id)
			pruned++
		}
	}
	if len(fresh) == 0 && pruned == 0 {
		return fresh, nil
	}

	for _, n := range fresh {
		notified[n.TaskID] = struct{}{}
	}
	err := s.prefs.SetNotifiedTaskIDs(ctx, notified)
	if err != nil {
		return fresh, &PersistenceError{Op: OpRecordNotices, Err: err}
	}

	s.logger.Debug().
		Int("fresh", len(fresh)).
		Int("pruned", pruned).
		Msg("recorded due notices")
	return fresh, nil
}
