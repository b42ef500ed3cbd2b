package app

import (
	"context"

	"github.com/adanyl0v/go-taskboard/internal/config"
	"github.com/adanyl0v/go-taskboard/internal/services"
	"github.com/adanyl0v/go-taskboard/internal/storage"
)

var (
	globalTaskStore           services.TaskStore
	globalThemeService        services.ThemeService
	globalNotificationService services.NotificationService
)

// InitStore wires the repositories and services on top of the opened slot
// and loads the saved collection.
func InitStore() {
	keys := storage.NewKeys(config.Global().Storage.Namespace)

	taskRepo := storage.NewTaskRepository(globalLogger, globalSlot, keys.Tasks)
	prefRepo := storage.NewPreferenceRepository(globalLogger, globalSlot, keys)

	globalTaskStore = services.NewTaskStore(globalLogger, taskRepo)
	globalThemeService = services.NewThemeService(globalLogger, prefRepo)
	globalNotificationService = services.NewNotificationService(globalLogger, globalTaskStore, prefRepo)

	globalTaskStore.Load(context.Background())
}
